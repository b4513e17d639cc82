package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/erp/selling/internal/bootstrap"
	"github.com/erp/selling/internal/infrastructure/config"
	"github.com/erp/selling/internal/infrastructure/fixtures"
	"github.com/erp/selling/internal/infrastructure/logger"
	"github.com/erp/selling/internal/infrastructure/migration"
	"github.com/erp/selling/internal/infrastructure/persistence"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	var (
		logLevel     string
		tenant       string
		fixturesPath string
	)
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&tenant, "tenant", "", "Tenant UUID to seed (seed only)")
	flag.StringVar(&fixturesPath, "fixtures", "", "YAML fixture file to seed instead of the built-in set")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	log.Info("Migration CLI started", zap.String("command", command))

	// seed goes through the application services and works on either driver
	if command == "seed" {
		if err := seed(cfg, log, tenant, fixturesPath); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		return
	}

	if cfg.Database.Driver == config.DriverSQLite {
		log.Fatal("Schema migrations target PostgreSQL; the sqlite driver migrates on server start")
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database", zap.Error(err))
	}

	m, err := migration.New(db, log)
	if err != nil {
		log.Fatal("Failed to create migrator", zap.Error(err))
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}

	case "down":
		if err := m.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}

	case "step":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate step <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := m.Steps(n); err != nil {
			log.Fatal("Migration step failed", zap.Error(err))
		}

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatal("Failed to get version", zap.Error(err))
		}
		if version == 0 {
			log.Info("No migrations applied")
		} else {
			log.Info("Current migration version",
				zap.Uint("version", version),
				zap.Bool("dirty", dirty),
			)
		}

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version number", zap.String("value", args[1]))
		}
		if err := m.Force(version); err != nil {
			log.Fatal("Force version failed", zap.Error(err))
		}

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func seed(cfg *config.Config, log *zap.Logger, tenant, fixturesPath string) error {
	tenantID, err := uuid.Parse(tenant)
	if err != nil {
		return fmt.Errorf("-tenant must be a UUID: %w", err)
	}

	var set *fixtures.Set
	if fixturesPath != "" {
		set, err = fixtures.LoadFile(fixturesPath)
	} else {
		set, err = fixtures.Builtin()
	}
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database, nil)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.Driver == config.DriverSQLite {
		if err := persistence.AutoMigrate(db.DB); err != nil {
			return err
		}
	}

	container := bootstrap.NewContainer(db.DB, cfg, log)
	summary, err := container.Seeder(log).Seed(context.Background(), tenantID, set)
	if err != nil {
		return err
	}
	log.Info("Seed complete", zap.Int("created", summary.Created), zap.Int("skipped", summary.Skipped))
	return nil
}

func printUsage() {
	fmt.Println(`Selling Database Migration Tool

Usage:
  migrate [flags] <command> [arguments]

Commands:
  up                    Apply all pending migrations
  down                  Roll back all migrations
  step <n>              Apply n migrations (positive=up, negative=down)
  version               Show current migration version
  force <version>       Force set migration version (use with caution)
  seed                  Create the fixture companies, groups and customers for -tenant

Flags:
  -log-level string     Log level: debug, info, warn, error (default: info)
  -tenant string        Tenant UUID for seed
  -fixtures string      YAML fixture file for seed (default: built-in set)

Environment Variables:
  SELLING_DATABASE_HOST, SELLING_DATABASE_PORT, SELLING_DATABASE_USER,
  SELLING_DATABASE_PASSWORD, SELLING_DATABASE_DBNAME, SELLING_DATABASE_SSLMODE

Examples:
  migrate up
  migrate step -1
  migrate -tenant 6f1c2f0e-8a55-4a4c-9d59-3c2b9a1f7e10 seed`)
}
