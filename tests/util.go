package testutil

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/trezcool/aimforms/core/location"
)

// schema mirrors fs/migrations in SQLite syntax.
const schema = `
CREATE TABLE country (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    country_name TEXT NOT NULL UNIQUE
);
CREATE TABLE state (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    state_name TEXT NOT NULL,
    country_id INTEGER NOT NULL REFERENCES country (id) ON DELETE CASCADE,
    UNIQUE (country_id, state_name)
);
CREATE TABLE city (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    city_name TEXT NOT NULL,
    state_id  INTEGER NOT NULL REFERENCES state (id) ON DELETE CASCADE,
    UNIQUE (state_id, city_name)
);`

// PrepareDB returns a fresh SQLite database holding the location tables.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "test.db")+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err = db.Exec(schema); err != nil {
		t.Fatalf("PrepareDB() failed: %v", err)
	}
	return db
}

func CreateCountry(t *testing.T, repo location.Repository, name string) location.Country {
	t.Helper()
	c, err := repo.CreateCountry(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateCountry() failed: %v", err)
	}
	return c
}

func CreateState(t *testing.T, repo location.Repository, countryID int, name string) location.State {
	t.Helper()
	s, err := repo.GetOrCreateState(context.Background(), countryID, name)
	if err != nil {
		t.Fatalf("CreateState() failed: %v", err)
	}
	return s
}

// Logger records the messages it receives.
type Logger struct {
	mu       sync.Mutex
	Messages []string
	Errors   []string
}

func (l *Logger) record(errs bool, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, msg)
	if errs {
		l.Errors = append(l.Errors, msg)
	}
}

func (l *Logger) Debug(msg string, _ ...interface{}) { l.record(false, msg) }
func (l *Logger) Info(msg string, _ ...interface{})  { l.record(false, msg) }
func (l *Logger) Warn(msg string, _ ...interface{})  { l.record(false, msg) }
func (l *Logger) Error(msg string, _ ...interface{}) { l.record(true, msg) }
func (l *Logger) Fatal(msg string, _ ...interface{}) { l.record(true, msg) }
