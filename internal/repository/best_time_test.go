package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/database"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

func setupQueries(t *testing.T) *repository.Queries {
	t.Helper()
	db, err := database.ConnectAndMigrate(
		context.Background(), filepath.Join(t.TempDir(), "mines.db"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.New(db)
}

func TestInsertBestTime(t *testing.T) {
	q := setupQueries(t)
	ctx := context.Background()

	expert, _ := mines.Expert.Params()
	gameID := uuid.New()
	achievedAt := time.Date(2024, 10, 1, 12, 30, 0, 0, time.UTC)

	b, err := q.InsertBestTime(ctx, repository.InsertBestTimeParams{
		GameID:     gameID,
		GameParams: expert,
		Player:     "anonymous",
		Playtime:   95*time.Second + 250*time.Millisecond,
		AchievedAt: achievedAt,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, b.BestTimeID)
	assert.Equal(t, gameID.String(), b.GameID)
	assert.Equal(t, "expert", b.Difficulty)
	assert.Equal(t, 30, b.Width)
	assert.Equal(t, 16, b.Height)
	assert.Equal(t, 99, b.MineCount)
	assert.Equal(t, int64(95250), b.PlaytimeMs)
	assert.Equal(t, 95*time.Second+250*time.Millisecond, b.Playtime())
	assert.True(t, achievedAt.Equal(b.AchievedAt))
}

func TestInsertBestTimeRejectsInvalid(t *testing.T) {
	q := setupQueries(t)
	ctx := context.Background()

	_, err := q.InsertBestTime(ctx, repository.InsertBestTimeParams{
		GameParams: mines.GameParams{Width: 1, Height: 1, MineCount: 1},
	})
	assert.ErrorIs(t, err, mines.ErrInvalidParams)

	beginner, _ := mines.Beginner.Params()
	_, err = q.InsertBestTime(ctx, repository.InsertBestTimeParams{
		GameParams: beginner,
		Playtime:   -time.Second,
	})
	assert.Error(t, err)
}

func TestBestTimes(t *testing.T) {
	q := setupQueries(t)
	ctx := context.Background()

	beginner, _ := mines.Beginner.Params()
	expert, _ := mines.Expert.Params()

	records := []struct {
		params   mines.GameParams
		player   string
		playtime time.Duration
	}{
		{beginner, "ann", 40 * time.Second},
		{beginner, "bob", 12 * time.Second},
		{beginner, "ann", 25 * time.Second},
		{expert, "bob", 300 * time.Second},
		{beginner, "cid", 90 * time.Second},
	}
	for _, r := range records {
		_, err := q.InsertBestTime(ctx, repository.InsertBestTimeParams{
			GameID:     uuid.New(),
			GameParams: r.params,
			Player:     r.player,
			Playtime:   r.playtime,
		})
		require.NoError(t, err)
	}

	all, err := q.BestTimes(ctx, repository.BestTimeFilter{})
	require.NoError(t, err)
	assert.Len(t, all, len(records))

	top, err := q.BestTimes(ctx, repository.BestTimeFilter{GameParams: &beginner, Limit: 3})
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, int64(12000), top[0].PlaytimeMs)
	assert.Equal(t, int64(25000), top[1].PlaytimeMs)
	assert.Equal(t, int64(40000), top[2].PlaytimeMs)

	ann := "ann"
	mine, err := q.BestTimes(ctx, repository.BestTimeFilter{Player: &ann, GameParams: &beginner})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "ann", mine[0].Player)

	rank, err := q.Rank(ctx, beginner, 20*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	rank, err = q.Rank(ctx, expert, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	custom := mines.GameParams{Width: 5, Height: 5, MineCount: 5}
	none, err := q.BestTimes(ctx, repository.BestTimeFilter{GameParams: &custom})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWithTxRollback(t *testing.T) {
	db, err := database.ConnectAndMigrate(
		context.Background(), filepath.Join(t.TempDir(), "mines.db"),
	)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	beginner, _ := mines.Beginner.Params()
	_, err = repository.New(db).WithTx(tx).InsertBestTime(ctx, repository.InsertBestTimeParams{
		GameID:     uuid.New(),
		GameParams: beginner,
		Playtime:   time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	bestTimes, err := repository.New(db).BestTimes(ctx, repository.BestTimeFilter{})
	require.NoError(t, err)
	assert.Empty(t, bestTimes)
}

func TestSaveBestTime(t *testing.T) {
	db, err := database.ConnectAndMigrate(
		context.Background(), filepath.Join(t.TempDir(), "mines.db"),
	)
	require.NoError(t, err)
	defer db.Close()
	ctx := context.Background()
	s := repository.NewStore(db)

	beginner, _ := mines.Beginner.Params()
	save := func(playtime time.Duration) (int, error) {
		rank, b, err := s.SaveBestTime(ctx, repository.InsertBestTimeParams{
			GameID:     uuid.New(),
			GameParams: beginner,
			Player:     "ann",
			Playtime:   playtime,
		})
		if err == nil {
			assert.Equal(t, playtime.Milliseconds(), b.PlaytimeMs)
		}
		return rank, err
	}

	rank, err := save(30 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = save(10 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = save(20 * time.Second)
	require.NoError(t, err)
	assert.Equal(t, 2, rank)

	// a failed insert leaves nothing behind
	_, err = save(-time.Second)
	assert.Error(t, err)

	all, err := s.BestTimes(ctx, repository.BestTimeFilter{GameParams: &beginner})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
