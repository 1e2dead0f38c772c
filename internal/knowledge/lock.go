package knowledge

import (
	"fmt"

	"github.com/gofrs/flock"
)

// Locker serializes knowledge file writes across concurrently ending
// sessions. Backends hide the platform locking primitive.
type Locker interface {
	Acquire() error
	Release() error
}

type fileLocker struct {
	fl *flock.Flock
}

// NewFileLocker returns an advisory file lock at path.
func NewFileLocker(path string) Locker {
	return &fileLocker{fl: flock.New(path)}
}

func (l *fileLocker) Acquire() error {
	if err := l.fl.Lock(); err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.fl.Path(), err)
	}
	return nil
}

func (l *fileLocker) Release() error {
	return l.fl.Unlock()
}

type noopLocker struct{}

// NoopLocker is for callers that already hold exclusivity (tests).
func NoopLocker() Locker { return noopLocker{} }

func (noopLocker) Acquire() error { return nil }
func (noopLocker) Release() error { return nil }
