package vocab

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store is the persistence boundary for the shared vocabulary. The
// classifier reads it on every classification; the learning loop appends
// to it. AddWords must behave as an atomic set union so concurrent
// learners cannot lose each other's words.
type Store interface {
	Load() (Vocabulary, error)
	Save(Vocabulary) error
	AddWords(p Polarity, words []string) (int, error)
	Count(p Polarity) (int, error)
}

// SQLiteStore is a Store backed by a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
	path string
}

// Open creates or opens the vocabulary database at the given path. A
// fresh database is seeded with the default vocabulary before first use.
func Open(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening vocabulary database: %w", err)
	}

	// Single connection serializes read-modify-write at the storage
	// layer; concurrent learners queue instead of losing updates.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	if err := migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating schema: %w", err)
	}

	s := &SQLiteStore{conn: conn, path: dbPath}

	if err := s.seedIfEmpty(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("seeding vocabulary: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func migrate(conn *sql.DB) error {
	_, err := conn.Exec(`
CREATE TABLE IF NOT EXISTS keywords (
    word TEXT NOT NULL,
    polarity TEXT NOT NULL CHECK (polarity IN ('positive', 'negative')),
    added_at TEXT DEFAULT (datetime('now')),
    PRIMARY KEY (word, polarity)
);
`)
	if err != nil {
		return fmt.Errorf("creating keywords table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) seedIfEmpty() error {
	var count int
	if err := s.conn.QueryRow("SELECT COUNT(*) FROM keywords").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.Save(Default())
}

// Load reads the full vocabulary.
func (s *SQLiteStore) Load() (Vocabulary, error) {
	rows, err := s.conn.Query("SELECT word, polarity FROM keywords ORDER BY word")
	if err != nil {
		return Vocabulary{}, fmt.Errorf("loading vocabulary: %w", err)
	}
	defer rows.Close()

	var v Vocabulary
	for rows.Next() {
		var word string
		var polarity Polarity
		if err := rows.Scan(&word, &polarity); err != nil {
			return Vocabulary{}, fmt.Errorf("scanning keyword: %w", err)
		}
		if polarity == Positive {
			v.Positive = append(v.Positive, word)
		} else {
			v.Negative = append(v.Negative, word)
		}
	}
	return v, rows.Err()
}

// Save replaces the stored vocabulary with v in a single transaction.
func (s *SQLiteStore) Save(v Vocabulary) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM keywords"); err != nil {
		return fmt.Errorf("clearing keywords: %w", err)
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO keywords (word, polarity) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range v.Positive {
		if _, err := stmt.Exec(w, Positive); err != nil {
			return fmt.Errorf("inserting positive keyword %q: %w", w, err)
		}
	}
	for _, w := range v.Negative {
		if _, err := stmt.Exec(w, Negative); err != nil {
			return fmt.Errorf("inserting negative keyword %q: %w", w, err)
		}
	}

	return tx.Commit()
}

// AddWords appends words to the given set, skipping words already
// present. INSERT OR IGNORE inside one transaction gives the append
// set-union semantics, so concurrent writers merge instead of clobbering
// each other. Returns the number of words actually added.
func (s *SQLiteStore) AddWords(p Polarity, words []string) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO keywords (word, polarity) VALUES (?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	added := 0
	for _, w := range words {
		res, err := stmt.Exec(w, p)
		if err != nil {
			return 0, fmt.Errorf("inserting keyword %q: %w", w, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// Count returns the number of words in the given set.
func (s *SQLiteStore) Count(p Polarity) (int, error) {
	var count int
	err := s.conn.QueryRow("SELECT COUNT(*) FROM keywords WHERE polarity = ?", p).Scan(&count)
	return count, err
}
