package testutil

import (
	"database/sql"
	"testing"

	"github.com/dagimg/prdesk/internal/db"
	"github.com/dagimg/prdesk/internal/session"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewTestStore creates a session store backed by a fresh in-memory database.
func NewTestStore(t *testing.T) *session.Store {
	t.Helper()
	store, err := session.NewStore(NewTestDB(t))
	if err != nil {
		t.Fatalf("failed to create session store: %v", err)
	}
	return store
}
