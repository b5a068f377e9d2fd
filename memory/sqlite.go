package memory

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const turnsSchema = `CREATE TABLE IF NOT EXISTS turns (
	seq     INTEGER PRIMARY KEY,
	role    TEXT NOT NULL,
	content TEXT NOT NULL
)`

// ErrDiverged reports a snapshot that does not extend the stored turns.
var ErrDiverged = errors.New("snapshot does not extend the stored conversation")

// SQLiteStore keeps one row per turn, ordered by sequence number.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (creating if needed) the database at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(turnsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load() ([]Turn, error) {
	rows, err := s.db.Query(`SELECT role, content FROM turns ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, err
		}
		r, err := ParseRole(role)
		if err != nil {
			return nil, err
		}
		turns = append(turns, Turn{Role: r, Content: content})
	}
	return turns, rows.Err()
}

// Save appends the turns not yet stored. The stored rows must be a prefix of
// turns; anything else is ErrDiverged and nothing is written.
func (s *SQLiteStore) Save(turns []Turn) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.Query(`SELECT role, content FROM turns ORDER BY seq`)
	if err != nil {
		return err
	}
	stored := 0
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			_ = rows.Close()
			return err
		}
		if stored >= len(turns) || turns[stored].Role.String() != role || turns[stored].Content != content {
			_ = rows.Close()
			return fmt.Errorf("turn %d: %w", stored, ErrDiverged)
		}
		stored++
	}
	if err := rows.Close(); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := stored; i < len(turns); i++ {
		if _, err := tx.Exec(`INSERT INTO turns (seq, role, content) VALUES (?, ?, ?)`,
			i, turns[i].Role.String(), turns[i].Content); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) Reset() error {
	_, err := s.db.Exec(`DELETE FROM turns`)
	return err
}

func (s *SQLiteStore) Close() error { return s.db.Close() }
