package mines

import (
	"strconv"
	"strings"
)

type CellState uint8

const (
	Hidden CellState = iota
	Flagged
	Revealed
	RevealedMine  // post-game-over
	DetonatedMine // the mine the player hit
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	case RevealedMine:
		return "revealed mine"
	case DetonatedMine:
		return "detonated mine"
	default:
		return "CellState(" + strconv.Itoa(int(s)) + ")"
	}
}

type Cell struct {
	State    CellState
	Mine     bool
	Adjacent int // mines among the 8 neighbours
}

func (c Cell) IsMine() bool       { return c.Mine }
func (c Cell) IsFlagged() bool    { return c.State == Flagged }
func (c Cell) WasTriggered() bool { return c.State == DetonatedMine }

func (c Cell) IsRevealed() bool {
	return c.State == Revealed || c.State == RevealedMine || c.State == DetonatedMine
}

// Glyph is the single-character form of c as the player sees it.
func (c Cell) Glyph() byte {
	switch c.State {
	case Flagged:
		return '*'
	case Revealed:
		if c.Adjacent == 0 {
			return '.'
		}
		return byte('0' + c.Adjacent)
	case RevealedMine:
		return 'M'
	case DetonatedMine:
		return 'X'
	default:
		return ' '
	}
}

type Grid []Cell

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteByte(g[y*width+x].Glyph())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
