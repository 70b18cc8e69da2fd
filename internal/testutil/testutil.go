package testutil

import (
	"context"
	"database/sql"
	"testing"

	"usertable-api/internal/database"
)

// OpenSQLite opens a named shared-cache in-memory SQLite database with the
// Users table migrated. The database is closed through t.Cleanup.
func OpenSQLite(t *testing.T, name string) (*sql.DB, database.Dialect) {
	t.Helper()
	d, err := database.NewConnection(context.Background(), "sqlite3", "file:"+name+"?mode=memory&cache=shared", 0)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	dialect, err := database.DialectFor("sqlite3")
	if err != nil {
		t.Fatalf("dialect: %v", err)
	}
	if err := database.RunMigrations(d, dialect); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d, dialect
}

// InsertUser adds a row with the base columns set and returns its id.
func InsertUser(t *testing.T, d *sql.DB, name, email string) int64 {
	t.Helper()
	res, err := d.Exec(`INSERT INTO "Users" ("Name", "Email") VALUES (?, ?)`, name, email)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}
