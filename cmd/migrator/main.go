package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

const usage = "usage: migrator [up | down N | version] [flags]"

type command struct {
	action string
	steps  int
}

var errUsage = errors.New(usage)

// parseArgs splits the action off args and returns the rest for config.Load.
func parseArgs(args []string) (command, []string, error) {
	cmd := command{action: "up"}
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		cmd.action, args = args[0], args[1:]
	}
	switch cmd.action {
	case "up", "version":
	case "down":
		if len(args) == 0 {
			return cmd, nil, errUsage
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return cmd, nil, errUsage
		}
		cmd.steps, args = n, args[1:]
	default:
		return cmd, nil, errUsage
	}
	return cmd, args, nil
}

func main() {
	cmd, args, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(args)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(2)
	}

	var logger *slog.Logger
	if cfg.Development {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, logger, cfg.DatabasePath(), cmd)
	cancel()
	if err != nil {
		logger.Error("migration failed", slog.String("action", cmd.action), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, path string, cmd command) error {
	db, err := database.Connect(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to connect to db: %w", err)
	}
	migrator, err := database.NewMigrator(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	switch cmd.action {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Steps(-cmd.steps)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Info("database is empty", slog.String("path", path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}
	logger.Info("migration successful",
		slog.String("action", cmd.action),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)
	return nil
}
