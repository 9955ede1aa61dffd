package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/resell-server/internal/config"
	"github.com/carson-networks/resell-server/internal/storage/migrations"
	"github.com/carson-networks/resell-server/internal/storage/sqlconfig"
)

func openDB(ctx context.Context) (*sql.DB, error) {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}
	return sqlconfig.Open(ctx, env)
}

func logStatus(status migrations.Status) {
	logrus.WithFields(logrus.Fields{
		"preMigrationVersion":  status.PreMigrationVersion,
		"postMigrationVersion": status.PostMigrationVersion,
	}).Info("Migration status")
}

func withDB(run func(*cli.Context, *sql.DB) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := openDB(c.Context)
		if err != nil {
			return err
		}
		defer db.Close()
		return run(c, db)
	}
}

func main() {
	app := &cli.App{
		Name:  "db_migrations",
		Usage: "manage the resell-server postgres schema",
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Action: withDB(func(_ *cli.Context, db *sql.DB) error {
					status, err := migrations.Up(db)
					if err != nil {
						return err
					}
					logStatus(status)
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: withDB(func(c *cli.Context, db *sql.DB) error {
					status, err := migrations.Down(db, c.Int("steps"))
					if err != nil {
						return err
					}
					logStatus(status)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "print the applied schema version",
				Action: withDB(func(_ *cli.Context, db *sql.DB) error {
					v, err := migrations.Version(db)
					if err != nil {
						return err
					}
					logrus.WithField("version", v).Info("Migration version")
					return nil
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("db_migrations")
	}
}
