package mines

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/gammazero/deque"
)

var Log *slog.Logger = slog.Default()

type Status uint8

const (
	NotStarted Status = iota
	Playing
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

type Outcome uint8

const (
	Continue Outcome = iota
	Win
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// Game owns one minefield and every transition on it. It is not safe for
// concurrent use.
type Game struct {
	GameParams
	grid   Grid
	mines  []Point
	opened int // revealed safe cells
	flags  int
	status Status
	rnd    *rand.Rand
}

func New(r *rand.Rand) *Game {
	return &Game{rnd: r}
}

// NewGame discards the current field and generates a fresh one. Invalid params
// leave the game untouched.
func (g *Game) NewGame(params GameParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	g.setField(params, params.placeMines(g.rnd))

	if Log.Enabled(context.Background(), slog.LevelDebug) {
		layout := make(Grid, len(g.grid))
		for i, c := range g.grid {
			if c.Mine {
				layout[i].State = Flagged
			}
		}
		Log.Debug("generated field",
			slog.String("params", params.String()),
			slog.String("layout", layout.ToString(params.Width)),
		)
	}
	return nil
}

// setField installs a field with mines at locations and starts play on it.
func (g *Game) setField(params GameParams, locations []Point) {
	grid := make(Grid, params.Cells())
	for _, m := range locations {
		grid[m.Y*params.Width+m.X].Mine = true
		params.neighbours(m.X, m.Y, func(nx, ny int) {
			grid[ny*params.Width+nx].Adjacent++
		})
	}

	*g = Game{
		GameParams: params,
		grid:       grid,
		mines:      locations,
		status:     Playing,
		rnd:        g.rnd,
	}
}

func (g *Game) ToggleFlag(x, y int) bool {
	if g.status != Playing || !g.Contains(x, y) {
		return false
	}
	c := &g.grid[y*g.Width+x]
	switch c.State {
	case Hidden:
		c.State = Flagged
		g.flags++
	case Flagged:
		c.State = Hidden
		g.flags--
	default:
		return false
	}
	return true
}

func (g *Game) Reveal(x, y int) Outcome {
	if g.status != Playing || !g.Contains(x, y) {
		return g.outcome()
	}
	if g.grid[y*g.Width+x].State != Hidden {
		return g.outcome()
	}
	g.reveal(x, y)
	return g.outcome()
}

// reveal opens (x, y) and, through blank cells, everything connected to it.
// (x, y) must be hidden.
func (g *Game) reveal(x, y int) {
	var (
		todo   deque.Deque[Point]
		queued = make([]bool, len(g.grid))
	)

	todo.PushBack(Point{x, y})
	queued[y*g.Width+x] = true

	for todo.Len() > 0 {
		p := todo.PopBack()
		c := &g.grid[p.Y*g.Width+p.X]

		if c.Mine {
			c.State = DetonatedMine
			g.lose(p)
			return
		}

		c.State = Revealed
		g.opened++

		if c.Adjacent > 0 {
			continue
		}

		g.neighbours(p.X, p.Y, func(nx, ny int) {
			j := ny*g.Width + nx
			if queued[j] || g.grid[j].State != Hidden {
				return
			}
			queued[j] = true
			todo.PushBack(Point{nx, ny})
		})
	}

	if g.opened == g.Cells()-g.MineCount {
		g.status = Won
		Log.Debug("game won", slog.String("params", g.GameParams.String()))
	}
}

func (g *Game) lose(triggered Point) {
	for _, m := range g.mines {
		if m == triggered {
			continue
		}
		c := &g.grid[m.Y*g.Width+m.X]
		if c.State == Flagged {
			g.flags--
		}
		c.State = RevealedMine
	}
	g.status = Lost
	Log.Debug("game lost",
		slog.String("params", g.GameParams.String()),
		slog.Int("x", triggered.X),
		slog.Int("y", triggered.Y),
	)
}

func (g *Game) ChordReveal(x, y int) Outcome {
	if g.status != Playing || !g.Contains(x, y) {
		return g.outcome()
	}
	c := g.grid[y*g.Width+x]
	if c.State != Revealed {
		return g.outcome()
	}

	flagged := 0
	hidden := make([]Point, 0, 8)
	g.neighbours(x, y, func(nx, ny int) {
		switch g.grid[ny*g.Width+nx].State {
		case Flagged:
			flagged++
		case Hidden:
			hidden = append(hidden, Point{nx, ny})
		}
	})
	if flagged != c.Adjacent {
		return g.outcome()
	}

	for _, p := range hidden {
		// an earlier neighbour's flood fill may have opened this one already
		if g.grid[p.Y*g.Width+p.X].State != Hidden {
			continue
		}
		g.reveal(p.X, p.Y)
		if g.status != Playing {
			break
		}
	}
	return g.outcome()
}

func (g *Game) outcome() Outcome {
	switch g.status {
	case Won:
		return Win
	case Lost:
		return Loss
	default:
		return Continue
	}
}

func (g *Game) Cell(x, y int) (Cell, bool) {
	if g.grid == nil || !g.Contains(x, y) {
		return Cell{}, false
	}
	return g.grid[y*g.Width+x], true
}

// RemainingMines is the mine counter shown to the player. It goes negative
// when more flags than mines are placed.
func (g *Game) RemainingMines() int {
	return g.MineCount - g.flags
}

func (g *Game) Config() GameParams { return g.GameParams }
func (g *Game) Status() Status     { return g.status }
func (g *Game) Opened() int        { return g.opened }
func (g *Game) Flags() int         { return g.flags }

func (g *Game) MineLocations() []Point {
	locations := make([]Point, len(g.mines))
	copy(locations, g.mines)
	return locations
}

func (g *Game) Grid() Grid {
	grid := make(Grid, len(g.grid))
	copy(grid, g.grid)
	return grid
}

func (g *Game) Render() string {
	if g.grid == nil {
		return ""
	}
	return g.grid.ToString(g.Width)
}
