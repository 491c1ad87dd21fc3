package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

type ctxKey string

const dbKey ctxKey = "db"

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func newDataFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "data",
		Usage:   "Path to the dashboard data JSON",
		Value:   "./data/dashboard_data.json",
		EnvVars: []string{"SNAPSHOT_DATA_PATH"},
	}
}

func newDetailFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "detail",
		Usage:   "Path to the detailed analysis JSON (optional)",
		Value:   "./data/detailed_analysis.json",
		EnvVars: []string{"SNAPSHOT_DETAIL_PATH"},
	}
}

func initDB(c *cli.Context) error {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	c.Context = context.WithValue(c.Context, dbKey, db)
	return nil
}

func closeDB(c *cli.Context) error {
	if db, ok := c.Context.Value(dbKey).(*sql.DB); ok && db != nil {
		return db.Close()
	}
	return nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Load snapshot JSON into the database or publish it to object storage",
		Commands: []*cli.Command{
			{
				Name:  "load",
				Usage: "Load the snapshot JSON files into the snapshot tables",
				Flags: []cli.Flag{
					newDBURLFlag(),
					newDataFlag(),
					newDetailFlag(),
				},
				Before: initDB,
				After:  closeDB,
				Action: runLoad,
			},
			{
				Name:  "publish",
				Usage: "Upload the snapshot JSON files to the configured bucket",
				Flags: []cli.Flag{
					newDataFlag(),
					newDetailFlag(),
				},
				Action: runPublish,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
