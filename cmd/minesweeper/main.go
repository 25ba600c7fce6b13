package main

import (
	"context"
	"errors"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/console"
	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
	"github.com/vancomm/minesweeper/internal/settings"
	"github.com/vancomm/minesweeper/internal/tui"
)

func createRand(seed uint64) *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func createLogger(cfg *config.Config) (*slog.Logger, io.Closer) {
	var (
		out    io.Writer = os.Stderr
		closer io.Closer = io.NopCloser(nil)
	)
	// the terminal belongs to the UI
	if !cfg.Script {
		file := &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
		}
		out, closer = file, file
	}

	if cfg.Development {
		return slog.New(
			tint.NewHandler(out, &tint.Options{Level: slog.LevelDebug, NoColor: !cfg.Script}),
		), closer
	}
	return slog.New(slog.NewJSONHandler(out, nil)), closer
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(2)
	}

	logger, closer := createLogger(cfg)
	defer closer.Close()
	mines.Log = logger

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("exiting", slog.Any("error", err))
		if !cfg.Script {
			fmt.Fprintln(os.Stderr, err)
		}
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	game := mines.New(createRand(cfg.Seed))

	if cfg.Script {
		logger.Info("starting console", slog.Uint64("seed", cfg.Seed))
		c := console.New(logger, game, os.Stdout)
		if params, ok, err := cfg.GameParams(); err != nil {
			return err
		} else if ok {
			if _, err := c.Execute(console.Command{Verb: console.NewGame, Params: params}); err != nil {
				return err
			}
		}
		return c.Run(ctx, os.Stdin)
	}

	db, err := database.ConnectAndMigrate(ctx, cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("failed to connect and migrate db: %w", err)
	}
	defer db.Close()

	store, err := settings.NewStore(ctx, db, "settings")
	if err != nil {
		return fmt.Errorf("failed to open settings: %w", err)
	}
	prefs := settings.NewPreferences(store)

	params, ok, err := cfg.GameParams()
	if err != nil {
		return err
	}
	if !ok {
		if params, err = prefs.GameParams(ctx); err != nil {
			logger.Warn("falling back to beginner", slog.Any("error", err))
			params, _ = mines.Beginner.Params()
		}
	}

	app := tui.New(ctx, tui.Options{
		Logger:      logger,
		Game:        game,
		Preferences: prefs,
		BestTimes:   repository.NewStore(db),
		Player:      cfg.Player,
		Limit:       cfg.BestTimes.Limit,
	})
	if err := app.NewGame(params); err != nil {
		return err
	}

	logger.Info("starting ui",
		slog.String("data_dir", cfg.DataDir),
		slog.String("params", params.String()),
	)
	return app.Run(ctx)
}
