package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Counters show three characters, like the seven-segment displays of the
// desktop game.
const (
	counterMin = -99
	counterMax = 999
)

func formatCounter(n int) string {
	n = max(counterMin, min(counterMax, n))
	return fmt.Sprintf("%03d", n)
}

var numberColors = [...]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorBlack,
	8: tcell.ColorGray,
}

var (
	hiddenStyle    = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	openStyle      = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	flagStyle      = hiddenStyle.Foreground(tcell.ColorRed).Bold(true)
	wrongFlagStyle = hiddenStyle.Foreground(tcell.ColorMaroon).Bold(true)
	mineStyle      = openStyle.Foreground(tcell.ColorBlack).Bold(true)
	detonatedStyle = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorBlack).Bold(true)
)

// cellLook is the glyph and style of c on a board in the given status. Once
// the game is lost, flags on safe cells are marked as wrong; once it is won,
// every mine shows as flagged.
func cellLook(c mines.Cell, status mines.Status) (rune, tcell.Style) {
	switch c.State {
	case mines.Flagged:
		if status == mines.Lost && !c.IsMine() {
			return 'x', wrongFlagStyle
		}
		return 'F', flagStyle
	case mines.Revealed:
		if c.Adjacent == 0 {
			return ' ', openStyle
		}
		return rune('0' + c.Adjacent), openStyle.Foreground(numberColors[c.Adjacent]).Bold(true)
	case mines.RevealedMine:
		return '*', mineStyle
	case mines.DetonatedMine:
		return '*', detonatedStyle
	}
	if status == mines.Won && c.IsMine() {
		return 'F', flagStyle
	}
	return ' ', hiddenStyle
}

func face(status mines.Status) string {
	switch status {
	case mines.Won:
		return "B)"
	case mines.Lost:
		return "X("
	default:
		return ":)"
	}
}
