package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vancomm/minesweeper/internal/mines"
)

const envPrefix = "MINES"

type Log struct {
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

type BestTimes struct {
	Limit int `mapstructure:"limit"`
}

type Config struct {
	Development bool      `mapstructure:"development"`
	DataDir     string    `mapstructure:"data_dir"`
	Log         Log       `mapstructure:"log"`
	Seed        uint64    `mapstructure:"seed"`
	Difficulty  string    `mapstructure:"difficulty"`
	Custom      string    `mapstructure:"custom"`
	Script      bool      `mapstructure:"script"`
	Player      string    `mapstructure:"player"`
	BestTimes   BestTimes `mapstructure:"best_times"`
}

func defaultDataDir() string {
	if dir, ok := os.LookupEnv("XDG_DATA_HOME"); ok && dir != "" {
		return filepath.Join(dir, "minesweeper")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "minesweeper")
}

func defaultPlayer() string {
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "anonymous"
}

// Load reads configuration from, in order of precedence, command line flags,
// MINES_* environment variables and an optional config file.
func Load(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("minesweeper", pflag.ContinueOnError)
	configFile := fs.String("config", "", "path to a config file")
	fs.Bool("dev", false, "development mode (debug logs)")
	fs.String("data-dir", "", "directory for the database and logs")
	fs.String("log-file", "", "log file path")
	fs.Uint64("seed", 0, "random seed for mine placement (0 picks one)")
	fs.String("difficulty", "", "beginner, intermediate or expert")
	fs.String("custom", "", "custom field as WIDTH:HEIGHT:MINES")
	fs.Bool("script", false, "read commands from stdin instead of starting the UI")
	fs.String("player", "", "name stored with best times")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("development", false)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 5)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("seed", 0)
	v.SetDefault("difficulty", "")
	v.SetDefault("custom", "")
	v.SetDefault("script", false)
	v.SetDefault("player", defaultPlayer())
	v.SetDefault("best_times.limit", 10)

	for key, flag := range map[string]string{
		"development": "dev",
		"data_dir":    "data-dir",
		"log.file":    "log-file",
		"seed":        "seed",
		"difficulty":  "difficulty",
		"custom":      "custom",
		"script":      "script",
		"player":      "player",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("unable to bind flag %s: %w", flag, err)
		}
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else if dir, err := os.UserConfigDir(); err == nil {
		v.SetConfigName("config")
		v.AddConfigPath(filepath.Join(dir, "minesweeper"))
		var notFound viper.ConfigFileNotFoundError
		if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "minesweeper.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.BestTimes.Limit < 1 {
		return fmt.Errorf("best_times.limit must be positive, got %d", c.BestTimes.Limit)
	}
	if c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("log.max_size_mb must be positive, got %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must not be negative, got %d", c.Log.MaxBackups)
	}
	if c.Difficulty != "" {
		if _, err := mines.ParseDifficulty(c.Difficulty); err != nil {
			return err
		}
	}
	if c.Custom != "" {
		if _, err := mines.ParseSeed(c.Custom); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "minesweeper.db")
}

// GameParams resolves the field requested on startup. ok is false when
// nothing was requested and the caller should fall back to saved settings.
func (c Config) GameParams() (params mines.GameParams, ok bool, err error) {
	if c.Custom != "" {
		p, err := mines.ParseSeed(c.Custom)
		if err != nil {
			return params, false, err
		}
		return *p, true, nil
	}
	if c.Difficulty == "" {
		return params, false, nil
	}
	d, err := mines.ParseDifficulty(c.Difficulty)
	if err != nil {
		return params, false, err
	}
	params, ok = d.Params()
	if !ok {
		return params, false, fmt.Errorf("difficulty %s needs --custom", d)
	}
	return params, true, nil
}
