package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

type BestTime struct {
	BestTimeID string    `json:"best_time_id"`
	GameID     string    `json:"game_id"`
	Difficulty string    `json:"difficulty"`
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	MineCount  int       `json:"mine_count"`
	Player     string    `json:"player"`
	PlaytimeMs int64     `json:"playtime_ms"`
	AchievedAt time.Time `json:"achieved_at"`
}

func (b BestTime) Playtime() time.Duration {
	return time.Duration(b.PlaytimeMs) * time.Millisecond
}

const bestTimeColumns = `best_time_id, game_id, difficulty, width, height,
	mine_count, player, playtime_ms, achieved_at`

func scanBestTime(row interface{ Scan(...any) error }) (*BestTime, error) {
	var (
		b          BestTime
		achievedAt int64
	)
	err := row.Scan(
		&b.BestTimeID, &b.GameID, &b.Difficulty, &b.Width, &b.Height,
		&b.MineCount, &b.Player, &b.PlaytimeMs, &achievedAt,
	)
	if err != nil {
		return nil, err
	}
	b.AchievedAt = time.UnixMilli(achievedAt).UTC()
	return &b, nil
}

type InsertBestTimeParams struct {
	GameID     uuid.UUID
	GameParams mines.GameParams
	Player     string
	Playtime   time.Duration
	AchievedAt time.Time
}

func (q *Queries) InsertBestTime(ctx context.Context, params InsertBestTimeParams) (*BestTime, error) {
	if err := params.GameParams.Validate(); err != nil {
		return nil, err
	}
	if params.Playtime < 0 {
		return nil, fmt.Errorf("negative playtime %s", params.Playtime)
	}
	achievedAt := params.AchievedAt
	if achievedAt.IsZero() {
		achievedAt = time.Now()
	}

	row := q.db.QueryRowContext(
		ctx,
		`INSERT INTO best_time (`+bestTimeColumns+`)
		VALUES (
			@best_time_id, @game_id, @difficulty, @width, @height,
			@mine_count, @player, @playtime_ms, @achieved_at
		)
		RETURNING `+bestTimeColumns+`;`,
		sql.Named("best_time_id", uuid.NewString()),
		sql.Named("game_id", params.GameID.String()),
		sql.Named("difficulty", mines.DifficultyOf(params.GameParams).String()),
		sql.Named("width", params.GameParams.Width),
		sql.Named("height", params.GameParams.Height),
		sql.Named("mine_count", params.GameParams.MineCount),
		sql.Named("player", params.Player),
		sql.Named("playtime_ms", params.Playtime.Milliseconds()),
		sql.Named("achieved_at", achievedAt.UnixMilli()),
	)
	return scanBestTime(row)
}

type BestTimeFilter struct {
	Player     *string
	GameParams *mines.GameParams
	Limit      int
}

func (f BestTimeFilter) WhereClause() (string, []any) {
	clauses := make([]string, 0)
	args := make([]any, 0)
	if f.Player != nil {
		clauses = append(clauses, "player = @player")
		args = append(args, sql.Named("player", *f.Player))
	}
	if f.GameParams != nil {
		clauses = append(
			clauses,
			"width = @width",
			"height = @height",
			"mine_count = @mine_count",
		)
		args = append(args,
			sql.Named("width", f.GameParams.Width),
			sql.Named("height", f.GameParams.Height),
			sql.Named("mine_count", f.GameParams.MineCount),
		)
	}
	return strings.Join(clauses, " AND "), args
}

// BestTimes lists records fastest first.
func (q *Queries) BestTimes(ctx context.Context, filter BestTimeFilter) ([]BestTime, error) {
	query := `SELECT ` + bestTimeColumns + ` FROM best_time`

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY playtime_ms, achieved_at"
	if filter.Limit > 0 {
		query += " LIMIT @limit"
		args = append(args, sql.Named("limit", filter.Limit))
	}

	rows, err := q.db.QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bestTimes []BestTime
	for rows.Next() {
		b, err := scanBestTime(rows)
		if err != nil {
			return nil, err
		}
		bestTimes = append(bestTimes, *b)
	}
	return bestTimes, rows.Err()
}

// Rank is the 1-based position a game on params finished in playtime would
// take among the stored records.
func (q *Queries) Rank(ctx context.Context, params mines.GameParams, playtime time.Duration) (int, error) {
	var faster int
	err := q.db.QueryRowContext(
		ctx,
		`SELECT count(*) FROM best_time
		WHERE width = @width AND height = @height AND mine_count = @mine_count
			AND playtime_ms <= @playtime_ms;`,
		sql.Named("width", params.Width),
		sql.Named("height", params.Height),
		sql.Named("mine_count", params.MineCount),
		sql.Named("playtime_ms", playtime.Milliseconds()),
	).Scan(&faster)
	if err != nil {
		return 0, err
	}
	return faster + 1, nil
}
