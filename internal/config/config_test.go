package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/mines"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.False(t, cfg.Development)
	assert.Equal(t, filepath.Join(dir, "data", "minesweeper"), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "minesweeper.log"), cfg.Log.File)
	assert.Equal(t, filepath.Join(cfg.DataDir, "minesweeper.db"), cfg.DatabasePath())
	assert.Equal(t, 10, cfg.BestTimes.Limit)
	assert.Zero(t, cfg.Seed)

	_, ok, err := cfg.GameParams()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadEnvAndFlags(t *testing.T) {
	dir := isolate(t)
	t.Setenv("MINES_DATA_DIR", dir)
	t.Setenv("MINES_SEED", "1234")
	t.Setenv("MINES_BEST_TIMES_LIMIT", "3")
	t.Setenv("MINES_DIFFICULTY", "beginner")
	t.Setenv("USER", "someone")

	cfg, err := Load([]string{"--dev", "--difficulty", "expert", "--script", "--player", "ann"})
	require.NoError(t, err)

	assert.True(t, cfg.Development)
	assert.True(t, cfg.Script)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, uint64(1234), cfg.Seed)
	assert.Equal(t, 3, cfg.BestTimes.Limit)
	assert.Equal(t, "ann", cfg.Player)

	params, ok, err := cfg.GameParams()
	require.NoError(t, err)
	require.True(t, ok)
	expert, _ := mines.Expert.Params()
	assert.Equal(t, expert, params)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "mines.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""+
		"custom: \"12:10:20\"\n"+
		"log:\n"+
		"  file: /tmp/mines-test.log\n"+
		"  max_backups: 1\n",
	), 0o644))

	cfg, err := Load([]string{"--config", path})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/mines-test.log", cfg.Log.File)
	assert.Equal(t, 1, cfg.Log.MaxBackups)
	params, ok, err := cfg.GameParams()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mines.GameParams{Width: 12, Height: 10, MineCount: 20}, params)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)

	_, err := Load([]string{"--custom", "3:3:9"})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	_, err = Load([]string{"--difficulty", "nightmare"})
	assert.ErrorIs(t, err, mines.ErrUnknownDifficulty)

	t.Setenv("MINES_BEST_TIMES_LIMIT", "0")
	_, err = Load(nil)
	assert.Error(t, err)

	_, err = Load([]string{"--config", "/does/not/exist.yaml"})
	assert.Error(t, err)

	_, err = Load([]string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestLoadRejectsNegativeBackups(t *testing.T) {
	isolate(t)

	t.Setenv("MINES_LOG_MAX_BACKUPS", "0")
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Zero(t, cfg.Log.MaxBackups)

	t.Setenv("MINES_LOG_MAX_BACKUPS", "-1")
	_, err = Load(nil)
	assert.ErrorContains(t, err, "log.max_backups")
}

func TestGameParamsCustomDifficulty(t *testing.T) {
	cfg := Config{Difficulty: "custom"}
	_, _, err := cfg.GameParams()
	assert.Error(t, err)
}
