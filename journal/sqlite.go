package journal

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists journal keys in a single kv table.
type SQLiteStore struct {
	db    *sql.DB
	clock Clock
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// SQLiteClock sets the clock that stamps updated_at on Save. The default is
// SystemClock.
func SQLiteClock(c Clock) SQLiteOption { return func(s *SQLiteStore) { s.clock = c } }

func NewSQLiteStore(path string, opts ...SQLiteOption) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, clock: SystemClock{}}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *SQLiteStore) Load(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Save(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.clock.Now().UTC(),
	)
	return err
}

// UpdatedAt reports when key was last saved, in UTC, as read from the store clock.
func (s *SQLiteStore) UpdatedAt(key string) (time.Time, error) {
	var t time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM kv WHERE key = ?`, key).Scan(&t)
	return t, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
