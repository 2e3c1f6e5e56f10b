// Package repotest opens throwaway SQLite databases carrying the service
// schema, so repository SQL can be exercised without a Postgres server.
package repotest

import (
	"path/filepath"
	"testing"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

// Schema mirrors repository/migrations/001_init.sql in the SQLite dialect.
const Schema = `
CREATE TABLE members (
    member_id       TEXT      PRIMARY KEY,
    member_nickname TEXT      NOT NULL DEFAULT '',
    member_point    INTEGER   NOT NULL DEFAULT 0,
    created_at      TIMESTAMP NOT NULL
);

CREATE TABLE point_history (
    history_no INTEGER   PRIMARY KEY AUTOINCREMENT,
    member_id  TEXT      NOT NULL,
    amount     INTEGER   NOT NULL,
    reason     TEXT      NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE TABLE reviews (
    review_no      INTEGER   PRIMARY KEY AUTOINCREMENT,
    login_id       TEXT      NOT NULL,
    contents_id    INTEGER   NOT NULL,
    review_rating  INTEGER   NOT NULL,
    review_text    TEXT      NOT NULL,
    review_spoiler BOOLEAN   NOT NULL DEFAULT false,
    created_at     TIMESTAMP NOT NULL,
    updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE daily_quest_progress (
    user_id        TEXT      NOT NULL,
    quest_type     TEXT      NOT NULL,
    quest_date     TEXT      NOT NULL,
    current_count  INTEGER   NOT NULL DEFAULT 0,
    reward_claimed BOOLEAN   NOT NULL DEFAULT false,
    claimed_at     TIMESTAMP,
    updated_at     TIMESTAMP NOT NULL,
    PRIMARY KEY (user_id, quest_type, quest_date)
);
`

// OpenSQLite returns an in-memory database with Schema applied. It is closed
// when the test ends.
func OpenSQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// every connection to :memory: is its own database
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return prepare(t, db)
}

// OpenSQLiteFile returns a file backed WAL database that serves up to
// maxOpenConns connections at once, so transactions from different goroutines
// really overlap. Writers wait on each other through busy_timeout.
func OpenSQLiteFile(t testing.TB, maxOpenConns int) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	dsn := "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)"

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxOpenConns)

	return prepare(t, db)
}

func prepare(t testing.TB, db *sqlx.DB) *sqlx.DB {
	t.Helper()

	t.Cleanup(func() {
		_ = db.Close()
	})

	if _, err := db.Exec(Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	return db
}
