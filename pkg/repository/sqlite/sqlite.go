package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"time"

	"github.com/abhiram98920/teamtracker/pkg/domain/interfaces"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/m-mizutani/goerr/v2"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrNotFound is returned when a row does not exist
var ErrNotFound = interfaces.ErrNotFound

// SQLite is a single file backend. Migrations are embedded in the binary.
type SQLite struct {
	db      *sql.DB
	token   *tokenRepository
	project *projectRepository
	task    *taskRepository
	leave   *leaveRepository
}

var _ interfaces.Repository = &SQLite{}

// MigrationStatus holds information about the schema version
type MigrationStatus struct {
	CurrentVersion uint
	LatestVersion  uint
	Dirty          bool
	Pending        bool
}

// Open opens the database without running migrations
func Open(path string) (*SQLite, error) {
	if path == "" {
		return nil, goerr.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite database", goerr.V("path", path))
	}

	return &SQLite{
		db:      db,
		token:   &tokenRepository{db: db},
		project: &projectRepository{db: db},
		task:    &taskRepository{db: db},
		leave:   &leaveRepository{db: db},
	}, nil
}

// New opens the database and applies all pending migrations
func New(path string) (*SQLite, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Token() interfaces.TokenRepository {
	return s.token
}

func (s *SQLite) Project() interfaces.ProjectRepository {
	return s.project
}

func (s *SQLite) Task() interfaces.TaskRepository {
	return s.task
}

func (s *SQLite) Leave() interfaces.LeaveRepository {
	return s.leave
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Migrate applies all pending migrations
func (s *SQLite) Migrate() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return goerr.Wrap(err, "failed to run sqlite migrations")
	}
	return nil
}

// MigrationStatus returns the current and latest schema versions
func (s *SQLite) MigrationStatus() (*MigrationStatus, error) {
	m, err := s.migrator()
	if err != nil {
		return nil, err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, goerr.Wrap(err, "failed to get migration version")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load migrations")
	}

	var latest uint
	if first, err := source.First(); err == nil {
		latest = first
		for {
			next, err := source.Next(latest)
			if err != nil {
				break
			}
			latest = next
		}
	}

	return &MigrationStatus{
		CurrentVersion: version,
		LatestVersion:  latest,
		Dirty:          dirty,
		Pending:        version < latest,
	}, nil
}

func (s *SQLite) migrator() (*migrate.Migrate, error) {
	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create migration driver")
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load migrations")
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create migrator")
	}
	return m, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, goerr.Wrap(err, "invalid stored timestamp", goerr.V("value", s))
	}
	return t, nil
}
