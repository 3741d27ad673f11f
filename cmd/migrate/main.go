// Package main provides a standalone CLI for running lineage engine
// database migrations, independent of the server's fx graph.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.uber.org/zap"

	"github.com/emergent-company/lineage-engine/internal/migrate"
)

func main() {
	command := flag.String("command", "up", "Migration command: up, up-to, down, status, version")
	version := flag.Int64("version", 0, "Target version (used by up-to)")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"postgres://%s:%s@%s:%s/%s?sslmode=%s",
			getEnv("POSTGRES_USER", "lineage"),
			getEnv("POSTGRES_PASSWORD", ""),
			getEnv("POSTGRES_HOST", "localhost"),
			getEnv("POSTGRES_PORT", "5432"),
			getEnv("POSTGRES_DB", "lineage"),
			getEnv("POSTGRES_SSL_MODE", "disable"),
		)
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Printf("failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	m := migrate.NewMigrator(db, log)
	ctx := context.Background()

	switch *command {
	case "up":
		err = m.Up(ctx)
	case "up-to":
		err = m.UpTo(ctx, *version)
	case "down":
		err = m.Down(ctx)
	case "status":
		err = m.Status(ctx)
	case "version":
		var v int64
		v, err = m.Version(ctx)
		if err == nil {
			fmt.Printf("current version: %d\n", v)
		}
	default:
		fmt.Printf("unknown command %q: want up, up-to, down, status, version\n", *command)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("migrate %s failed: %v\n", *command, err)
		os.Exit(1)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
