package main

import (
	"fmt"
	"os"
	"strconv"

	"masareef/internal/config"
	"masareef/internal/database"
	"masareef/internal/legacy"
	"masareef/internal/logger"
	"masareef/internal/services"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"
)

const usage = `usage: migrate <command>

commands:
  up                                   apply all pending migrations
  down [N]                             roll back N migrations (default 1)
  version                              print the current migration version
  bootstrap <username> <email> <pass>  create a user with the default categories
  import <email> <dir>                 import a legacy JSON ledger for a user`

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("%s", usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch command := os.Args[1]; command {
	case "up", "down", "version":
		return runMigration(cfg, command)
	case "bootstrap":
		if len(os.Args) != 5 {
			return fmt.Errorf("usage: migrate bootstrap <username> <email> <password>")
		}
		return runBootstrap(os.Args[2], os.Args[3], os.Args[4])
	case "import":
		if len(os.Args) != 4 {
			return fmt.Errorf("usage: migrate import <email> <dir>")
		}
		return runImport(os.Args[2], os.Args[3])
	default:
		return fmt.Errorf("unknown command: %s\n%s", command, usage)
	}
}

func runMigration(cfg *config.Config, command string) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode)

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps := 1
		if len(os.Args) > 2 {
			steps, err = strconv.Atoi(os.Args[2])
			if err != nil {
				return fmt.Errorf("invalid step count: %w", err)
			}
		}
		if err := m.Steps(-steps); err != nil && err != migrate.ErrNoChange {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)
	}

	return nil
}

// runBootstrap creates a user and seeds the default category set. It
// replaces the old application's habit of creating accounts as a side
// effect of first use.
func runBootstrap(username, email, password string) error {
	db, err := openDB()
	if err != nil {
		return err
	}

	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)

	user, err := userService.CreateUser(username, email, password)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := categoryService.SeedDefaults(user.ID); err != nil {
		return fmt.Errorf("failed to seed default categories: %w", err)
	}

	logger.Get().Infof("Bootstrapped user %s (%s)", user.Username, user.ID)
	return nil
}

func runImport(email, dir string) error {
	db, err := openDB()
	if err != nil {
		return err
	}

	user, err := services.NewUserService(db).GetUserByEmail(email)
	if err != nil {
		return fmt.Errorf("failed to find user %s: %w", email, err)
	}

	result, err := legacy.NewImporter(db).Import(user.ID, dir)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	logger.Get().Infof("Imported %d categories (%d skipped) and %d expenses for %s",
		result.CategoriesCreated, result.CategoriesSkipped, result.ExpensesCreated, email)
	return nil
}

func openDB() (db *gorm.DB, err error) {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	manager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return manager.DB(), nil
}
