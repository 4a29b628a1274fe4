package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/mealchain/internal/repository/postgres"
	"github.com/andresuchdata/mealchain/internal/seed"
	"github.com/andresuchdata/mealchain/pkg/logger"
)

type dbKey struct{}

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection URL",
		EnvVars:  []string{"DATABASE_URL"},
		Required: true,
	}
}

func newDataDirFlag(value string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data-dir",
		Usage:   "Directory containing seed CSV files",
		Value:   value,
		EnvVars: []string{"SEED_DATA_DIR"},
	}
}

func initDB(c *cli.Context) error {
	db, err := postgres.Open(c.Context, c.String("db-url"))
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, dbKey{}, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey{}).(*postgres.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func dbFrom(c *cli.Context) (*postgres.DB, error) {
	db, ok := c.Context.Value(dbKey{}).(*postgres.DB)
	if !ok || db == nil {
		return nil, fmt.Errorf("database not initialized")
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	logger.Setup(os.Stderr, os.Getenv("LOG_FORMAT"))

	app := &cli.App{
		Name:  "seed",
		Usage: "Create the planner schema and load collaborator data from CSV",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Create the inventory, recipe and production tables",
				Flags:  []cli.Flag{newDBURLFlag()},
				Before: initDB,
				After:  closeDB,
				Action: runMigrate,
			},
			{
				Name:   "master",
				Usage:  "Seed inventory items, recipes and recipe ingredients",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag("./data/seeds/master")},
				Before: initDB,
				After:  closeDB,
				Action: seedTables(seed.Master),
			},
			{
				Name:   "ledger",
				Usage:  "Seed inventory lots and production batches",
				Flags:  []cli.Flag{newDBURLFlag(), newDataDirFlag("./data/seeds/ledger")},
				Before: initDB,
				After:  closeDB,
				Action: seedTables(seed.Ledger),
			},
			{
				Name:  "all",
				Usage: "Migrate, then seed master and ledger data from one directory",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{
						Name:  "master-dir",
						Value: "./data/seeds/master",
					},
					&cli.StringFlag{
						Name:  "ledger-dir",
						Value: "./data/seeds/ledger",
					},
				},
				Before: initDB,
				After:  closeDB,
				Action: runAll,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func runMigrate(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}
	if err := postgres.Migrate(c.Context, db); err != nil {
		return err
	}
	log.Info().Int("statements", len(postgres.Schema)).Msg("schema is up to date")
	return nil
}

func seedTables(tables []seed.Table) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := dbFrom(c)
		if err != nil {
			return err
		}

		dataDir := c.String("data-dir")
		log.Info().Str("dir", dataDir).Msg("Starting database seeding...")

		err = db.WithTx(c.Context, func(tx *sqlx.Tx) error {
			return seed.LoadDir(c.Context, tx, dataDir, tables)
		})
		if err != nil {
			return err
		}

		log.Info().Msg("Database seeding completed successfully!")
		return nil
	}
}

func runAll(c *cli.Context) error {
	db, err := dbFrom(c)
	if err != nil {
		return err
	}

	if err := postgres.Migrate(c.Context, db); err != nil {
		return err
	}

	err = db.WithTx(c.Context, func(tx *sqlx.Tx) error {
		if err := seed.LoadDir(c.Context, tx, c.String("master-dir"), seed.Master); err != nil {
			return err
		}
		return seed.LoadDir(c.Context, tx, c.String("ledger-dir"), seed.Ledger)
	})
	if err != nil {
		return err
	}

	log.Info().Msg("Database seeding completed successfully!")
	return nil
}
