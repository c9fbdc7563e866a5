// Command migrate applies the embedded schema migrations.
//
// The connection string comes from -dsn, then SCREENER_DB_DSN, then the
// SCREENER_DB_* variables the server reads.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"

	"github.com/JaimeStill/screener/internal/config"
	"github.com/JaimeStill/screener/pkg/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

const envDSN = "SCREENER_DB_DSN"

type command struct {
	dsn     string
	up      bool
	down    bool
	steps   int
	version bool
	force   int
	forced  bool
}

func main() {
	cmd := parseFlags()

	dsn, err := resolveDSN(cmd.dsn)
	if err != nil {
		log.Fatalf("resolve dsn: %v", err)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		log.Fatalf("create migrator: %v", err)
	}
	defer m.Close()

	if err := run(m, cmd); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() command {
	var cmd command
	flag.StringVar(&cmd.dsn, "dsn", "", "database connection string")
	flag.BoolVar(&cmd.up, "up", false, "apply all pending migrations")
	flag.BoolVar(&cmd.down, "down", false, "revert all migrations")
	flag.IntVar(&cmd.steps, "steps", 0, "apply N migrations (negative reverts)")
	flag.BoolVar(&cmd.version, "version", false, "print the current schema version")
	flag.IntVar(&cmd.force, "force", -1, "force the schema version without migrating")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		cmd.forced = cmd.forced || f.Name == "force"
	})
	return cmd
}

func resolveDSN(flagDSN string) (string, error) {
	if flagDSN != "" {
		return flagDSN, nil
	}
	if v := os.Getenv(envDSN); v != "" {
		return v, nil
	}

	cfg := database.Config{Name: "screener", User: "screener", Password: "screener"}
	if err := cfg.Finalize(config.DatabaseEnv); err != nil {
		return "", err
	}
	return cfg.Dsn(), nil
}

func run(m *migrate.Migrate, cmd command) error {
	ignoreNoChange := func(err error) error {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return err
	}

	switch {
	case cmd.version:
		v, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("read version: %w", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case cmd.forced:
		if err := m.Force(cmd.force); err != nil {
			return fmt.Errorf("force version %d: %w", cmd.force, err)
		}
		fmt.Printf("forced to version %d\n", cmd.force)
	case cmd.up:
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		fmt.Println("schema up to date")
	case cmd.down:
		if err := ignoreNoChange(m.Down()); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Println("schema reverted")
	case cmd.steps != 0:
		if err := ignoreNoChange(m.Steps(cmd.steps)); err != nil {
			return fmt.Errorf("migrate %d steps: %w", cmd.steps, err)
		}
		fmt.Printf("applied %d steps\n", cmd.steps)
	default:
		fmt.Fprintln(os.Stderr, "usage: migrate [-dsn url] -up | -down | -steps N | -version | -force N")
		flag.PrintDefaults()
	}
	return nil
}
