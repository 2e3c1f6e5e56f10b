package service

import (
	"testing"

	"finalproject_backend/internal/repository"
	"finalproject_backend/internal/repository/repotest"
)

func newSQLiteRepository(t *testing.T) *repository.Repository {
	t.Helper()
	return repository.NewWithDB(repotest.OpenSQLite(t))
}
