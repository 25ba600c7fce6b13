package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/vancomm/minesweeper/internal/mines"
)

// Each cell is drawn three columns wide so the board looks roughly square.
var cellSize = mines.CellSize{Width: 3, Height: 1}

type move uint8

const (
	reveal move = iota + 1
	flag
	chord
)

// field draws a game and turns mouse and keyboard input on it into moves.
type field struct {
	*tview.Box
	game   *mines.Game
	cursor mines.Point
	onMove func(m move, p mines.Point)
}

func newField(game *mines.Game, onMove func(m move, p mines.Point)) *field {
	f := &field{
		Box:    tview.NewBox(),
		game:   game,
		onMove: onMove,
	}
	f.SetBorder(true)
	f.SetDrawFunc(f.draw)
	f.SetMouseCapture(f.mouse)
	f.SetInputCapture(f.key)
	return f
}

// size is the number of screen columns and rows the field needs, border
// included.
func (f *field) size() (width, height int) {
	params := f.game.Config()
	return params.Width*cellSize.Width + 2, params.Height*cellSize.Height + 2
}

func (f *field) resetCursor() {
	params := f.game.Config()
	f.cursor = mines.Point{X: params.Width / 2, Y: params.Height / 2}
}

func (f *field) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	left, top := x+1, y+1
	status := f.game.Status()
	params := f.game.Config()
	for cy := 0; cy < params.Height; cy++ {
		for cx := 0; cx < params.Width; cx++ {
			c, _ := f.game.Cell(cx, cy)
			glyph, style := cellLook(c, status)
			if f.HasFocus() && f.cursor == (mines.Point{X: cx, Y: cy}) && status == mines.Playing {
				style = style.Reverse(true)
			}
			px, py := left+cx*cellSize.Width, top+cy*cellSize.Height
			screen.SetContent(px, py, ' ', nil, style)
			screen.SetContent(px+1, py, glyph, nil, style)
			screen.SetContent(px+2, py, ' ', nil, style)
		}
	}
	return left, top, width - 2, height - 2
}

// cellAt maps a screen position to the cell drawn there.
func (f *field) cellAt(x, y int) (mines.Point, bool) {
	ix, iy, _, _ := f.GetInnerRect()
	p := mines.PointFromPixel(x-ix, y-iy, cellSize)
	return p, f.game.Config().Contains(p.X, p.Y)
}

func (f *field) mouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	p, ok := f.cellAt(event.Position())
	if !ok {
		return action, event
	}
	switch action {
	case tview.MouseMove:
		f.cursor = p
		return action, event
	case tview.MouseLeftClick:
		f.cursor = p
		f.onMove(reveal, p)
	case tview.MouseRightClick:
		f.cursor = p
		f.onMove(flag, p)
	case tview.MouseLeftDoubleClick, tview.MouseMiddleClick:
		f.cursor = p
		f.onMove(chord, p)
	default:
		return action, event
	}
	return action, nil
}

func (f *field) moveCursor(dx, dy int) {
	next := mines.Point{X: f.cursor.X + dx, Y: f.cursor.Y + dy}
	if f.game.Config().Contains(next.X, next.Y) {
		f.cursor = next
	}
}

func (f *field) key(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyUp:
		f.moveCursor(0, -1)
	case tcell.KeyDown:
		f.moveCursor(0, 1)
	case tcell.KeyLeft:
		f.moveCursor(-1, 0)
	case tcell.KeyRight:
		f.moveCursor(1, 0)
	case tcell.KeyEnter:
		f.onMove(reveal, f.cursor)
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			f.moveCursor(0, -1)
		case 'j':
			f.moveCursor(0, 1)
		case 'h':
			f.moveCursor(-1, 0)
		case 'l':
			f.moveCursor(1, 0)
		case ' ':
			f.onMove(reveal, f.cursor)
		case 'f':
			f.onMove(flag, f.cursor)
		case 'c':
			f.onMove(chord, f.cursor)
		default:
			return event
		}
	default:
		return event
	}
	return nil
}
