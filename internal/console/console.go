package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Console plays a game from line-oriented commands, printing the board after
// every command that can change it.
type Console struct {
	logger *slog.Logger
	game   *mines.Game
	gameID uuid.UUID
	over   bool
	out    io.Writer
}

func New(logger *slog.Logger, game *mines.Game, out io.Writer) *Console {
	return &Console{logger: logger, game: game, out: out}
}

// Execute applies cmd to the game. It reports whether the session should
// continue.
func (c *Console) Execute(cmd Command) (bool, error) {
	switch cmd.Verb {
	case NewGame:
		if err := c.game.NewGame(cmd.Params); err != nil {
			return false, err
		}
		c.gameID = uuid.New()
		c.over = false
		c.logger.Info("new game",
			slog.String("game_id", c.gameID.String()),
			slog.String("params", cmd.Params.String()),
		)
		return true, c.print(mines.Continue)
	case Open:
		return true, c.print(c.game.Reveal(cmd.Point.X, cmd.Point.Y))
	case Flag:
		c.game.ToggleFlag(cmd.Point.X, cmd.Point.Y)
		return true, c.print(c.outcome())
	case Chord:
		return true, c.print(c.game.ChordReveal(cmd.Point.X, cmd.Point.Y))
	case Print:
		return true, c.print(c.outcome())
	case Quit:
		return false, nil
	}
	return false, fmt.Errorf("%w %s", ErrUnknownCommand, cmd.Verb)
}

func (c *Console) outcome() mines.Outcome {
	switch c.game.Status() {
	case mines.Won:
		return mines.Win
	case mines.Lost:
		return mines.Loss
	default:
		return mines.Continue
	}
}

func (c *Console) print(outcome mines.Outcome) error {
	if outcome != mines.Continue && !c.over {
		c.over = true
		c.logger.Info("game over",
			slog.String("game_id", c.gameID.String()),
			slog.String("outcome", outcome.String()),
		)
	}
	_, err := fmt.Fprintf(c.out, "%s%s mines=%d\n",
		c.game.Render(), outcome, c.game.RemainingMines())
	return err
}

// Run executes commands read from r until EOF, a q command or ctx is done. A
// malformed line stops the session with an error naming the line.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if cmd == nil {
			continue
		}
		more, err := c.Execute(*cmd)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
		if !more {
			return nil
		}
	}
	return scanner.Err()
}
