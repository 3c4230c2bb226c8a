package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Memory is the DSN of a private in-memory database. The store is rebuilt from the export files on
// every run and never written to disk.
const Memory = ":memory:"

const createTables = `
CREATE TABLE IF NOT EXISTS Play (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ts INTEGER NOT NULL,
  day TEXT NOT NULL,
  weekday INTEGER NOT NULL,
  year INTEGER NOT NULL,
  artist TEXT NOT NULL DEFAULT '',
  track TEXT NOT NULL DEFAULT '',
  album TEXT NOT NULL DEFAULT '',
  ms_played INTEGER NOT NULL DEFAULT 0,
  platform TEXT NOT NULL DEFAULT '',
  skipped INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS PlayDay ON Play(day);
CREATE INDEX IF NOT EXISTS PlaySong ON Play(artist, track);
`

type Store struct {
	db *sql.DB
}

func New(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Every connection to :memory: gets its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTables); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// limitArg maps "no limit" (<= 0) to SQLite's LIMIT -1.
func limitArg(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
