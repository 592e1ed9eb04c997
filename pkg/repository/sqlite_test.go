package repository_test

import (
	"path/filepath"
	"testing"

	"github.com/abhiram98920/teamtracker/pkg/repository/sqlite"
	"github.com/m-mizutani/gt"
)

func TestSQLiteMigrationStatus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.db")

	repo, err := sqlite.Open(path)
	gt.NoError(t, err).Required()
	defer func() { gt.NoError(t, repo.Close()) }()

	before, err := repo.MigrationStatus()
	gt.NoError(t, err).Required()
	gt.Bool(t, before.Pending).True()
	gt.Value(t, before.CurrentVersion).Equal(uint(0))

	gt.NoError(t, repo.Migrate()).Required()
	// second run is a no-op
	gt.NoError(t, repo.Migrate()).Required()

	after, err := repo.MigrationStatus()
	gt.NoError(t, err).Required()
	gt.Bool(t, after.Pending).False()
	gt.Bool(t, after.Dirty).False()
	gt.Value(t, after.CurrentVersion).Equal(after.LatestVersion)
	gt.Value(t, after.LatestVersion).Equal(uint(2))
}
