package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type Store struct {
	db      *sql.DB
	rootDir string
}

func New(projectDir string) (*Store, error) {
	idxDir := filepath.Join(projectDir, ".learnlog")
	if err := os.MkdirAll(idxDir, 0755); err != nil {
		return nil, fmt.Errorf("create .learnlog dir: %w", err)
	}

	dbPath := filepath.Join(idxDir, "index.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, rootDir: projectDir}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id              TEXT PRIMARY KEY,
		captured_at     DATETIME NOT NULL,
		project         TEXT NOT NULL DEFAULT '',
		topics          TEXT NOT NULL DEFAULT '',
		summary         TEXT NOT NULL DEFAULT '',
		stub            TEXT NOT NULL DEFAULT '',
		transcript_path TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS processed_transcripts (
		file_path   TEXT PRIMARY KEY,
		session_id  TEXT NOT NULL REFERENCES sessions(id),
		file_size   INTEGER NOT NULL DEFAULT 0,
		captured_at DATETIME NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// RecordSession inserts a captured session. An empty id gets a random
// one so manual captures without a host payload still index cleanly.
func (s *Store) RecordSession(id, project, topics, summary, stub, transcriptPath string) (*Session, error) {
	if id == "" {
		var err error
		id, err = generateID()
		if err != nil {
			return nil, err
		}
	}
	now := time.Now().UTC()
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO sessions (id, captured_at, project, topics, summary, stub, transcript_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, now, project, topics, summary, stub, transcriptPath,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return &Session{
		ID: id, CapturedAt: now, Project: project,
		Topics: topics, Summary: summary, Stub: stub, TranscriptPath: transcriptPath,
	}, nil
}

func (s *Store) ListSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, captured_at, project, topics, summary, stub, transcript_path
		 FROM sessions ORDER BY captured_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.CapturedAt, &sess.Project, &sess.Topics,
			&sess.Summary, &sess.Stub, &sess.TranscriptPath); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

func (s *Store) GetSession(id string) (*Session, error) {
	var sess Session
	err := s.db.QueryRow(
		`SELECT id, captured_at, project, topics, summary, stub, transcript_path
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.CapturedAt, &sess.Project, &sess.Topics,
		&sess.Summary, &sess.Stub, &sess.TranscriptPath)
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) IsTranscriptProcessed(filePath string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM processed_transcripts WHERE file_path = ?", filePath).Scan(&count)
	return count > 0, err
}

func (s *Store) MarkTranscriptProcessed(filePath, sessionID string, fileSize int64) error {
	_, err := s.db.Exec(
		"INSERT OR REPLACE INTO processed_transcripts (file_path, session_id, file_size, captured_at) VALUES (?, ?, ?, ?)",
		filePath, sessionID, fileSize, time.Now().UTC(),
	)
	return err
}

func generateID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
