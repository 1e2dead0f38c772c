package knowledge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer inserts stub entries into a project's knowledge file. All
// mutation happens under the lock and lands via temp-file rename, so a
// crash mid-write never leaves a torn file.
type Writer struct {
	path string
	lock Locker
}

func NewWriter(projectDir string, lock Locker) *Writer {
	return &Writer{
		path: filepath.Join(projectDir, FileName),
		lock: lock,
	}
}

func (w *Writer) Path() string {
	return w.path
}

// Ensure creates the knowledge file from the template if it does not
// exist yet. Safe to call repeatedly; an existing file is left alone.
func (w *Writer) Ensure() (created bool, err error) {
	if err := w.lock.Acquire(); err != nil {
		return false, err
	}
	defer w.lock.Release()
	return w.ensureLocked()
}

func (w *Writer) ensureLocked() (bool, error) {
	if _, err := os.Stat(w.path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat %s: %w", w.path, err)
	}
	if err := w.replace([]byte(Template)); err != nil {
		return false, err
	}
	return true, nil
}

// InsertStub places the stub at the head of the Recent Sessions
// section, creating the file from the template first if needed. The
// document is validated before and after the edit.
func (w *Writer) InsertStub(stub string) error {
	if err := w.lock.Acquire(); err != nil {
		return err
	}
	defer w.lock.Release()

	if _, err := w.ensureLocked(); err != nil {
		return err
	}

	content, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("read %s: %w", w.path, err)
	}

	doc, err := Parse(string(content))
	if err != nil {
		return err
	}
	doc.InsertStub(stub)
	if _, err := Parse(doc.String()); err != nil {
		return fmt.Errorf("post-insert validation: %w", err)
	}

	return w.replace([]byte(doc.String()))
}

// Load parses the current knowledge file.
func (w *Writer) Load() (*Document, error) {
	content, err := os.ReadFile(w.path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", w.path, err)
	}
	return Parse(string(content))
}

func (w *Writer) replace(content []byte) error {
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp) // best-effort cleanup
		return fmt.Errorf("atomic rename %s: %w", w.path, err)
	}
	return nil
}
