package tui

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/internal/input"
	"github.com/park285/draft-chess/internal/msgcat"
	"github.com/park285/draft-chess/internal/render"
	"github.com/park285/draft-chess/pkg/draftview"
	"go.uber.org/zap"
)

// Snapshotter saves a rendered board image and reports where it went.
type Snapshotter interface {
	Board(ctx context.Context, view *draftview.View, opts render.Options) (string, error)
}

// App is the terminal front-end. Run's goroutine is the only one that touches
// the game; tcell's poller only feeds it events.
type App struct {
	screen tcell.Screen
	game   *draft.Game
	ctrl   *input.Controller
	cat    *msgcat.Catalog
	snap   Snapshotter
	logger *zap.Logger
	mouse  bool

	hover   draft.Square
	hovered bool
	pressed bool
	status  string
	done    bool
}

type Option func(*App)

func WithCatalog(c *msgcat.Catalog) Option { return func(a *App) { a.cat = c } }

func WithSnapshots(s Snapshotter) Option { return func(a *App) { a.snap = s } }

func WithMouse(enabled bool) Option { return func(a *App) { a.mouse = enabled } }

func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// New wires an App around an initialized screen.
func New(screen tcell.Screen, game *draft.Game, opts ...Option) *App {
	a := &App{
		screen: screen,
		game:   game,
		logger: zap.NewNop(),
		mouse:  true,
		// start on light's pawn rank so keyboard drafting works without a mouse
		hover:   draft.Sq(draft.BoardSize-2, draft.BoardSize/2),
		hovered: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cat == nil {
		if c, err := msgcat.New(""); err == nil {
			a.cat = c
		}
	}
	a.ctrl = input.NewController(game, a.logger)
	return a
}

// Run draws and handles events until quit or ctx is done. The caller owns
// screen Init/Fini.
func (a *App) Run(ctx context.Context) error {
	if a.mouse {
		a.screen.EnableMouse()
	}
	a.screen.HideCursor()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	a.logger.Info("tui_start", zap.Bool("mouse", a.mouse))
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.Handle(ctx, ev)
			if a.done {
				a.logger.Info("tui_quit", zap.String("phase", a.game.Phase().String()))
				return nil
			}
			a.Draw()
		}
	}
}

// Done reports whether a quit was requested.
func (a *App) Done() bool { return a.done }

// Handle applies one event to the game.
func (a *App) Handle(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(ctx, ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.screen.Sync()
	}
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.done = true
		return
	case tcell.KeyEscape:
		_, selected := a.game.Selection()
		if a.game.AnyMenuOpen() || selected {
			a.ctrl.Cancel()
			return
		}
		a.done = true
		return
	case tcell.KeyUp:
		a.moveHover(-1, 0)
		return
	case tcell.KeyDown:
		a.moveHover(1, 0)
		return
	case tcell.KeyLeft:
		a.moveHover(0, -1)
		return
	case tcell.KeyRight:
		a.moveHover(0, 1)
		return
	case tcell.KeyEnter:
		if a.hovered {
			a.report(a.ctrl.Click(a.hover))
		}
		return
	case tcell.KeyRune:
	default:
		return
	}

	r := ev.Rune()
	switch {
	case r == 's' || r == 'S':
		a.snapshot(ctx)
	case r == 'y' || r == 'Y':
		if side, ok := a.game.Rules().BandSide(a.hover.Rank); ok {
			a.report(a.ctrl.ToggleReady(side))
		}
	case r >= '1' && r <= '9':
		for _, s := range draft.Sides {
			if a.game.Menu(s).Open {
				a.report(a.ctrl.PickMenu(s, int(r-'1')))
				return
			}
		}
	default:
		if a.hovered && a.game.Phase() == draft.Drafting {
			err := a.ctrl.KeyPress(r, a.hover)
			if errors.Is(err, input.ErrUnmappedKey) {
				return
			}
			a.report(err)
		}
	}
}

func (a *App) moveHover(dr, df int) {
	next := draft.Sq(a.hover.Rank+dr, a.hover.File+df)
	if next.Valid() {
		a.hover = next
		a.hovered = true
	}
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	if sq, ok := boardGeometry.SquareAt(x, y); ok {
		a.hover = sq
		a.hovered = true
	} else {
		a.hovered = false
	}

	down := ev.Buttons()&tcell.Button1 != 0
	press := down && !a.pressed
	a.pressed = down
	if !press {
		return
	}
	a.click(x, y)
}

func (a *App) click(x, y int) {
	for _, s := range draft.Sides {
		if !a.game.Menu(s).Open {
			continue
		}
		if i, ok := menuHit(x, y, len(a.game.MenuEntries(s))); ok {
			a.report(a.ctrl.PickMenu(s, i))
			return
		}
	}
	if a.game.Phase() == draft.Drafting {
		if side, ok := readyHit(x, y); ok {
			a.report(a.ctrl.ToggleReady(side))
			return
		}
	}
	if sq, ok := boardGeometry.SquareAt(x, y); ok {
		a.report(a.ctrl.Click(sq))
		return
	}
	a.ctrl.Cancel()
}

func (a *App) snapshot(ctx context.Context) {
	if a.snap == nil {
		return
	}
	view := a.game.View()
	path, err := a.snap.Board(ctx, view, a.renderOptions(view))
	if err != nil {
		a.status = a.cat.Text("status.snapshot_failed", map[string]any{"Err": err.Error()})
		return
	}
	a.status = a.cat.Text("status.snapshot_saved", map[string]any{"Path": path})
}

func (a *App) renderOptions(view *draftview.View) render.Options {
	return render.Options{
		Title:      a.cat.Text("hud.title", nil),
		Status:     a.phaseText(view),
		LightLabel: a.budgetText(view.Light),
		DarkLabel:  a.budgetText(view.Dark),
	}
}

// report shows a rejection on the status line; nil clears it.
func (a *App) report(err error) {
	if err == nil {
		a.status = ""
		return
	}
	a.logger.Debug("tui_rejected", zap.Error(err))
	a.status = a.cat.Text("status.rejected", map[string]any{"Reason": err.Error()})
}
