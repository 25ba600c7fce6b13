package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/repository"
)

const (
	pageMain   = "main"
	pageDialog = "dialog"

	tickInterval = 250 * time.Millisecond
)

type Preferences interface {
	Remember(ctx context.Context, params mines.GameParams) error
}

type BestTimes interface {
	SaveBestTime(ctx context.Context, params repository.InsertBestTimeParams) (int, *repository.BestTime, error)
	BestTimes(ctx context.Context, filter repository.BestTimeFilter) ([]repository.BestTime, error)
}

type Options struct {
	Logger      *slog.Logger
	Game        *mines.Game
	Preferences Preferences
	BestTimes   BestTimes
	Player      string
	Limit       int // best times shown per difficulty
}

// App is the terminal front end. All engine calls happen on the tview event
// loop.
type App struct {
	ctx     context.Context
	logger  *slog.Logger
	game    *mines.Game
	prefs   Preferences
	records BestTimes
	player  string
	limit   int
	now     func() time.Time
	tick    time.Duration

	app    *tview.Application
	pages  *tview.Pages
	layout *tview.Flex
	row    *tview.Flex
	status *tview.TextView
	field  *field

	gameID   uuid.UUID
	started  time.Time
	finished time.Time
}

func New(ctx context.Context, opts Options) *App {
	a := &App{
		ctx:     ctx,
		logger:  opts.Logger,
		game:    opts.Game,
		prefs:   opts.Preferences,
		records: opts.BestTimes,
		player:  opts.Player,
		limit:   opts.Limit,
		now:     time.Now,
		tick:    tickInterval,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		status:  tview.NewTextView().SetTextAlign(tview.AlignCenter),
	}
	a.field = newField(a.game, a.move)

	hint := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText("click/space open  right-click/f flag  double-click/c chord\n" +
			"n new  1-3 presets  x custom  b best times  ? help  q quit")

	a.row = tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(a.field, 0, 0, true).
		AddItem(nil, 0, 1, false)
	a.layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(a.status, 1, 0, false).
		AddItem(a.row, 0, 0, true).
		AddItem(hint, 2, 0, false).
		AddItem(nil, 0, 1, false)

	a.pages.AddPage(pageMain, a.layout, true, true)
	a.app.SetRoot(a.pages, true).
		SetFocus(a.field).
		EnableMouse(true).
		SetInputCapture(a.key)
	return a
}

// Run shows the UI until the player quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return a.app.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		a.app.Stop()
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(a.tick)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if !a.redraw(ctx) {
					return nil
				}
			}
		}
	})
	return g.Wait()
}

// redraw refreshes the status line on the event loop. It reports false when
// ctx ends first, since a stopped loop never runs the update.
func (a *App) redraw(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.app.QueueUpdateDraw(a.refreshStatus)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// NewGame starts a fresh field and remembers it for the next run.
func (a *App) NewGame(params mines.GameParams) error {
	if err := a.game.NewGame(params); err != nil {
		return err
	}
	a.gameID = uuid.New()
	a.started, a.finished = time.Time{}, time.Time{}
	a.logger.Info("new game",
		slog.String("game_id", a.gameID.String()),
		slog.String("params", params.String()),
	)
	if err := a.prefs.Remember(a.ctx, params); err != nil {
		a.logger.Error("failed to save preferences", slog.Any("error", err))
	}

	width, height := a.field.size()
	a.row.ResizeItem(a.field, width, 0)
	a.layout.ResizeItem(a.row, height, 0)
	a.field.resetCursor()
	a.app.SetFocus(a.field)
	a.refreshStatus()
	return nil
}

func (a *App) elapsed() time.Duration {
	switch {
	case a.started.IsZero():
		return 0
	case !a.finished.IsZero():
		return a.finished.Sub(a.started)
	default:
		return a.now().Sub(a.started)
	}
}

func (a *App) refreshStatus() {
	params := a.game.Config()
	a.status.SetText(fmt.Sprintf("%s   %s   %s    %s %s",
		formatCounter(a.game.RemainingMines()),
		face(a.game.Status()),
		formatCounter(int(a.elapsed()/time.Second)),
		mines.DifficultyOf(params), params,
	))
}

// move applies one player move. The clock starts with the first move that
// opens something.
func (a *App) move(m move, p mines.Point) {
	if front, _ := a.pages.GetFrontPage(); front != pageMain {
		return
	}
	if a.game.Status() != mines.Playing {
		return
	}

	opened := a.game.Opened()
	outcome := mines.Continue
	switch m {
	case reveal:
		outcome = a.game.Reveal(p.X, p.Y)
	case chord:
		outcome = a.game.ChordReveal(p.X, p.Y)
	case flag:
		a.game.ToggleFlag(p.X, p.Y)
	}
	if a.started.IsZero() && (a.game.Opened() != opened || outcome != mines.Continue) {
		a.started = a.now()
	}
	if outcome != mines.Continue {
		a.finish(outcome)
	}
	a.refreshStatus()
}

func (a *App) finish(outcome mines.Outcome) {
	a.finished = a.now()
	playtime := a.elapsed()
	params := a.game.Config()
	a.logger.Info("game over",
		slog.String("game_id", a.gameID.String()),
		slog.String("outcome", outcome.String()),
		slog.Duration("playtime", playtime),
	)

	text := fmt.Sprintf("Boom! You lost after %s.", playtime.Round(time.Second))
	if outcome == mines.Win {
		text = fmt.Sprintf("You cleared the field in %s.", playtime.Round(time.Millisecond))
		if rank, ok := a.saveBestTime(params, playtime); ok {
			text += fmt.Sprintf("\nThat is #%d on %s.", rank, mines.DifficultyOf(params))
		}
	}

	a.showModal(text, []string{"New game", "Best times", "Close"}, func(label string) {
		switch label {
		case "New game":
			a.restart(params)
		case "Best times":
			a.showBestTimes()
		}
	})
}

// saveBestTime records a win on a preset field and returns its rank among
// the stored times.
func (a *App) saveBestTime(params mines.GameParams, playtime time.Duration) (int, bool) {
	if mines.DifficultyOf(params) == mines.Custom {
		return 0, false
	}
	rank, _, err := a.records.SaveBestTime(a.ctx, repository.InsertBestTimeParams{
		GameID:     a.gameID,
		GameParams: params,
		Player:     a.player,
		Playtime:   playtime,
		AchievedAt: a.finished,
	})
	if err != nil {
		a.logger.Error("failed to save best time", slog.Any("error", err))
		return 0, false
	}
	return rank, true
}

func (a *App) restart(params mines.GameParams) {
	if err := a.NewGame(params); err != nil {
		a.logger.Error("failed to start game", slog.Any("error", err))
	}
}

func (a *App) key(event *tcell.EventKey) *tcell.EventKey {
	if front, _ := a.pages.GetFrontPage(); front != pageMain {
		return event
	}
	if event.Key() != tcell.KeyRune {
		return event
	}
	switch r := event.Rune(); r {
	case 'q':
		a.app.Stop()
	case 'n':
		a.restart(a.game.Config())
	case '1', '2', '3':
		d, _ := mines.ParseDifficulty(string(r))
		params, _ := d.Params()
		a.restart(params)
	case 'x':
		a.showCustomForm()
	case 'b':
		a.showBestTimes()
	case '?':
		a.showHelp()
	default:
		return event
	}
	return nil
}

func (a *App) closeDialog() {
	a.pages.RemovePage(pageDialog)
	a.app.SetFocus(a.field)
}

func (a *App) showDialog(p tview.Primitive, width, height int) {
	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 0, 1, false).
			AddItem(p, height, 0, true).
			AddItem(nil, 0, 1, false), width, 0, true).
		AddItem(nil, 0, 1, false)
	a.pages.AddPage(pageDialog, centered, true, true)
	a.app.SetFocus(p)
}

func (a *App) showModal(text string, buttons []string, done func(label string)) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons(buttons).
		SetDoneFunc(func(_ int, label string) {
			a.closeDialog()
			if done != nil {
				done(label)
			}
		})
	a.pages.AddPage(pageDialog, modal, false, true)
	a.app.SetFocus(modal)
}

func (a *App) showCustomForm() {
	form := customForm(a.game.Config(), func(params mines.GameParams) {
		a.closeDialog()
		a.restart(params)
	}, a.closeDialog)
	a.showDialog(form, 40, 11)
}

func (a *App) showBestTimes() {
	params := a.game.Config()
	if mines.DifficultyOf(params) == mines.Custom {
		params, _ = mines.Beginner.Params()
	}
	times, err := a.records.BestTimes(a.ctx, repository.BestTimeFilter{
		GameParams: &params,
		Limit:      a.limit,
	})
	if err != nil {
		a.logger.Error("failed to load best times", slog.Any("error", err))
		a.showModal("Best times are unavailable.", []string{"OK"}, nil)
		return
	}

	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)
	for col, header := range []string{"#", "Player", "Time", "Date"} {
		table.SetCell(0, col, tview.NewTableCell(header).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))
	}
	for i, b := range times {
		table.SetCell(i+1, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).SetAlign(tview.AlignRight))
		table.SetCell(i+1, 1, tview.NewTableCell(b.Player))
		table.SetCell(i+1, 2, tview.NewTableCell(b.Playtime().Round(time.Millisecond).String()).SetAlign(tview.AlignRight))
		table.SetCell(i+1, 3, tview.NewTableCell(b.AchievedAt.Local().Format(time.DateOnly)))
	}
	if len(times) == 0 {
		table.SetCell(1, 1, tview.NewTableCell("no games won yet"))
	}
	table.SetBorder(true).SetTitle(fmt.Sprintf(" Best times: %s ", mines.DifficultyOf(params)))
	table.SetDoneFunc(func(tcell.Key) { a.closeDialog() })
	a.showDialog(table, 50, len(times)+4)
}

var helpText = strings.Join([]string{
	"Open every cell that is not a mine.",
	"",
	"A number tells how many of the eight cells",
	"around it hide a mine. Flag the cells you",
	"are sure about; chording a number whose",
	"mines are all flagged opens its other",
	"neighbours at once.",
	"",
	"Opening a mine ends the game.",
}, "\n")

func (a *App) showHelp() {
	a.showModal(helpText, []string{"OK"}, nil)
}
