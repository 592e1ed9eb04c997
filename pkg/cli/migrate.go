package cli

import (
	"context"

	"github.com/abhiram98920/teamtracker/pkg/cli/config"
	"github.com/abhiram98920/teamtracker/pkg/repository/firestore"
	"github.com/abhiram98920/teamtracker/pkg/repository/sqlite"
	"github.com/abhiram98920/teamtracker/pkg/utils/logging"
	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var repoCfg config.Repository
	var dryRun bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Preview changes without applying",
			Destination: &dryRun,
		},
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate SQLite schema or Firestore indexes",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			logger.Info("Migrate configuration",
				"backend", repoCfg.Backend(),
				"dryRun", dryRun)

			switch repoCfg.Backend() {
			case config.BackendSQLite:
				return migrateSQLite(repoCfg.SQLitePath(), dryRun)
			case config.BackendFirestore:
				if repoCfg.ProjectID() == "" {
					return goerr.New("firestore-project-id is required when using firestore backend")
				}
				return migrateFirestore(ctx, repoCfg.ProjectID(), repoCfg.DatabaseID(),
					getIndexConfig(repoCfg.CollectionPrefix()), dryRun)
			case config.BackendMemory:
				logger.Info("Memory backend has nothing to migrate")
				return nil
			default:
				return goerr.New("invalid repository backend", goerr.V("backend", repoCfg.Backend()))
			}
		},
	}
}

func migrateSQLite(path string, dryRun bool) error {
	logger := logging.Default()

	db, err := sqlite.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close sqlite database", "error", err.Error())
		}
	}()

	status, err := db.MigrationStatus()
	if err != nil {
		return err
	}
	logger.Info("SQLite schema status",
		"path", path,
		"current", status.CurrentVersion,
		"latest", status.LatestVersion,
		"dirty", status.Dirty,
		"pending", status.Pending)

	if dryRun || !status.Pending {
		return nil
	}

	if err := db.Migrate(); err != nil {
		return err
	}
	logger.Info("Migrations applied successfully", "version", status.LatestVersion)
	return nil
}

func migrateFirestore(ctx context.Context, projectID, databaseID string, indexConfig *fireconf.Config, dryRun bool) error {
	logger := logging.Default()

	client, err := fireconf.NewClient(ctx, projectID, databaseID)
	if err != nil {
		return goerr.Wrap(err, "failed to create fireconf client")
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close fireconf client", "error", err.Error())
		}
	}()

	if dryRun {
		logger.Info("Dry run mode - previewing changes")
		plan, err := client.GetMigrationPlan(ctx, indexConfig)
		if err != nil {
			return goerr.Wrap(err, "failed to create migration plan")
		}

		if len(plan.Steps) == 0 {
			logger.Info("No changes required")
			return nil
		}

		for _, step := range plan.Steps {
			logger.Info("Migration step",
				"collection", step.Collection,
				"operation", step.Operation,
				"description", step.Description,
				"destructive", step.Destructive)
		}
		return nil
	}

	logger.Info("Applying migrations")
	if err := client.Migrate(ctx, indexConfig); err != nil {
		return goerr.Wrap(err, "failed to apply migrations")
	}
	logger.Info("Migrations applied successfully")
	return nil
}

// getIndexConfig returns the composite indexes required by the Firestore queries
func getIndexConfig(prefix string) *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: firestore.TasksCollection(prefix),
				Indexes: []fireconf.Index{
					// ListByAssignee: assignee_key ASC, end_date ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "assignee_key", Order: fireconf.OrderAscending},
							{Path: "end_date", Order: fireconf.OrderAscending},
						},
					},
				},
			},
			{
				Name: firestore.LeavesCollection(prefix),
				Indexes: []fireconf.Index{
					// ListByDate: date ASC, created_at ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "date", Order: fireconf.OrderAscending},
							{Path: "created_at", Order: fireconf.OrderAscending},
						},
					},
					// ListByMember: member_key ASC, date ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "member_key", Order: fireconf.OrderAscending},
							{Path: "date", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}
