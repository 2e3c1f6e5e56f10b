package repository

import (
	"context"
	"testing"

	"finalproject_backend/internal/repository/repotest"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewWithDB(repotest.OpenSQLite(t))
}

// newConcurrentTestRepository lets goroutines hold separate connections, so
// their statements and transactions interleave inside the database.
func newConcurrentTestRepository(t *testing.T) *Repository {
	t.Helper()
	return NewWithDB(repotest.OpenSQLiteFile(t, 16))
}

func TestRepository_Transaction(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		err := repo.Transaction(ctx, func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO members (member_id, member_nickname, member_point, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
				"committed", "c", 0)
			return err
		})
		require.NoError(t, err)

		_, err = repo.GetMember(ctx, "committed")
		assert.NoError(t, err)
	})

	t.Run("rollback on error", func(t *testing.T) {
		err := repo.Transaction(ctx, func(tx *sqlx.Tx) error {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO members (member_id, member_nickname, member_point, created_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)`,
				"rolled-back", "r", 0)
			if err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, errors.Cause(err), assert.AnError)

		_, err = repo.GetMember(ctx, "rolled-back")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestConfig_GetDatabaseURL(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "finalproject",
	}

	assert.Equal(t, "postgres://app:secret@db:5432/finalproject?sslmode=disable", cfg.GetDatabaseURL())
}

func TestMigrations_Embedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	script, err := migrations.ReadFile("migrations/" + entries[0].Name())
	require.NoError(t, err)
	for _, table := range []string{"members", "point_history", "reviews", "daily_quest_progress"} {
		assert.Contains(t, string(script), "CREATE TABLE IF NOT EXISTS "+table)
	}
}
