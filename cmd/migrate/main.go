package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	infraconfig "github.com/sammyhga/SoulsData/infrastructure/config"
	"github.com/sammyhga/SoulsData/internal/config"
)

// Exit codes for the migrate command.
const (
	exitSuccess = 0
	exitFailure = 1
)

// migrationsPath is the relative path to the migrations directory.
const migrationsPath = "file://migrations"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: migrate <up|down|version|force N>")
		return exitFailure
	}

	direction := os.Args[1]
	switch direction {
	case "up", "down", "version":
	case "force":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: migrate force N")
			return exitFailure
		}
	default:
		fmt.Fprintf(os.Stderr, "Invalid command: %q (must be up, down, version or force)\n", direction)
		return exitFailure
	}

	cfg, err := config.Load(infraconfig.GetConfigPath("config.yml"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return exitFailure
	}

	m, err := migrate.New(migrationsPath, cfg.Database.URL())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create migrate instance: %v\n", err)
		return exitFailure
	}
	defer func() { _, _ = m.Close() }()

	if err = runMigration(m, direction, os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Migration %s failed: %v\n", direction, err)
		return exitFailure
	}

	return exitSuccess
}

// runMigration executes the requested command.
func runMigration(m *migrate.Migrate, command string, args []string) error {
	var err error

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		version, dirty, vErr := m.Version()
		if errors.Is(vErr, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return nil
		}
		if vErr != nil {
			return vErr
		}
		fmt.Printf("Version %d (dirty: %t)\n", version, dirty)
		return nil
	case "force":
		version, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], convErr)
		}
		err = m.Force(version)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No migrations to apply")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("Migration %s completed successfully\n", command)
	return nil
}
