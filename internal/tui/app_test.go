package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/internal/render"
	"github.com/park285/draft-chess/pkg/draftview"
)

func newTestApp(t *testing.T, opts ...Option) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	g, err := draft.New(draft.DefaultRules())
	if err != nil {
		t.Fatalf("draft.New: %v", err)
	}
	return New(screen, g, opts...), screen
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func clickAt(t *testing.T, a *App, x, y int) {
	t.Helper()
	a.Handle(context.Background(), tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	a.Handle(context.Background(), tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func clickSquare(t *testing.T, a *App, sq draft.Square) {
	t.Helper()
	x, y := boardGeometry.Origin(sq)
	clickAt(t, a, x+1, y)
}

func rowText(s tcell.SimulationScreen, y, width int) string {
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestKeyboardDraftOnHover(t *testing.T) {
	a, _ := newTestApp(t)
	a.Handle(context.Background(), key('q'))
	p, ok := a.game.Board().PieceAt(draft.Sq(6, 4))
	if !ok || p.Kind != draft.Queen || p.Side != draft.Light {
		t.Fatalf("expected light queen on default hover square, got %v %v", p, ok)
	}

	// arrows move the hover into the neutral zone, where keys are rejected
	for i := 0; i < 3; i++ {
		a.Handle(context.Background(), tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
	}
	if a.hover != draft.Sq(3, 4) {
		t.Fatalf("hover = %v", a.hover)
	}
	a.Handle(context.Background(), key('r'))
	if a.game.Board().Occupied(draft.Sq(3, 4)) {
		t.Fatalf("placed outside a draft zone")
	}
	if a.status == "" {
		t.Fatalf("rejection not reported on the status line")
	}
}

func TestMouseMenuPick(t *testing.T) {
	a, _ := newTestApp(t)
	clickSquare(t, a, draft.Sq(1, 0))
	if !a.game.Menu(draft.Dark).Open {
		t.Fatalf("dark menu not opened")
	}
	// dark menu reads queen first
	clickAt(t, a, panelX()+1, menuTop+1)
	p, ok := a.game.Board().PieceAt(draft.Sq(1, 0))
	if !ok || p.Kind != draft.Queen || p.Side != draft.Dark {
		t.Fatalf("expected dark queen, got %v %v", p, ok)
	}
	if a.game.AnyMenuOpen() {
		t.Fatalf("menu still open after pick")
	}
}

func TestDigitPicksMenuEntry(t *testing.T) {
	a, _ := newTestApp(t)
	clickSquare(t, a, draft.Sq(7, 0))
	// light menu: none, pawn, knight, bishop, rook, queen
	a.Handle(context.Background(), key('5'))
	if p, _ := a.game.Board().PieceAt(draft.Sq(7, 0)); p.Kind != draft.Rook {
		t.Fatalf("expected rook, got %v", p)
	}
}

func TestReadyButtonsStartPlay(t *testing.T) {
	a, _ := newTestApp(t)
	clickAt(t, a, panelX()+2, readyRow(draft.Light))
	if !a.game.Ready(draft.Light) {
		t.Fatalf("light ready button not pressed")
	}
	clickAt(t, a, panelX()+2, readyRow(draft.Dark))
	if a.game.Phase() != draft.Playing {
		t.Fatalf("expected play to start")
	}

	clickSquare(t, a, draft.Sq(7, 4))
	clickSquare(t, a, draft.Sq(6, 4))
	if a.game.Turn() != draft.Dark {
		t.Fatalf("king move not applied")
	}
}

func TestHeldButtonClicksOnce(t *testing.T) {
	a, _ := newTestApp(t)
	x, y := boardGeometry.Origin(draft.Sq(6, 6))
	a.Handle(context.Background(), tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if !a.game.Menu(draft.Light).Open {
		t.Fatalf("press should open the menu")
	}
	// a drag report with the button still held must not act as a second click
	a.Handle(context.Background(), tcell.NewEventMouse(x+1, y, tcell.Button1, tcell.ModNone))
	if !a.game.Menu(draft.Light).Open {
		t.Fatalf("held button closed the menu")
	}
}

func TestEscapeCancelsThenQuits(t *testing.T) {
	a, _ := newTestApp(t)
	clickSquare(t, a, draft.Sq(6, 1))
	esc := tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	a.Handle(context.Background(), esc)
	if a.game.AnyMenuOpen() || a.Done() {
		t.Fatalf("first escape should only close the menu")
	}
	a.Handle(context.Background(), esc)
	if !a.Done() {
		t.Fatalf("second escape should quit")
	}
}

func TestDrawShowsBoardAndHUD(t *testing.T) {
	a, screen := newTestApp(t)
	a.Draw()

	x, y := boardGeometry.Origin(draft.Sq(0, 4))
	r, _, style, _ := screen.GetContent(x+1, y)
	if r != pieceGlyph(draftview.Piece{Kind: "king"}) {
		t.Fatalf("dark king glyph missing, got %q", r)
	}
	if fg, _, _ := style.Decompose(); fg != pieceDark {
		t.Fatalf("dark king drawn with wrong color")
	}
	if row := rowText(screen, budgetRow(draft.Light), 80); !strings.Contains(row, "Light 39") {
		t.Fatalf("light budget missing: %q", row)
	}
	if row := rowText(screen, 0, 80); !strings.Contains(row, "Drafting") {
		t.Fatalf("phase missing: %q", row)
	}
	if row := rowText(screen, readyRow(draft.Dark), 80); !strings.Contains(row, "ready") {
		t.Fatalf("dark ready button missing: %q", row)
	}
}

type recordingSnapshotter struct {
	calls int
	opts  render.Options
	err   error
}

func (r *recordingSnapshotter) Board(_ context.Context, _ *draftview.View, opts render.Options) (string, error) {
	r.calls++
	r.opts = opts
	return "snap.png", r.err
}

func TestSnapshotKey(t *testing.T) {
	rec := &recordingSnapshotter{}
	a, _ := newTestApp(t, WithSnapshots(rec))
	a.Handle(context.Background(), key('s'))
	if rec.calls != 1 {
		t.Fatalf("snapshotter not called")
	}
	if rec.opts.LightLabel != "Light 39" || rec.opts.Status != "Drafting" {
		t.Fatalf("unexpected render options %+v", rec.opts)
	}
	if !strings.Contains(a.status, "snap.png") {
		t.Fatalf("status = %q", a.status)
	}

	rec.err = errors.New("disk full")
	a.Handle(context.Background(), key('S'))
	if !strings.Contains(a.status, "disk full") {
		t.Fatalf("status = %q", a.status)
	}
}

func TestRunQuitsOnCtrlC(t *testing.T) {
	a, screen := newTestApp(t, WithMouse(false))
	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after ctrl-c")
	}
}

func TestReadyWithMenuOpenOnlyCloses(t *testing.T) {
	a, _ := newTestApp(t)
	clickSquare(t, a, draft.Sq(7, 1))
	clickAt(t, a, panelX()+2, readyRow(draft.Light))
	if a.game.AnyMenuOpen() || a.game.Ready(draft.Light) {
		t.Fatalf("ready press should only close the menu")
	}
	if a.status != "" {
		t.Fatalf("closing a menu reported %q", a.status)
	}

	clickSquare(t, a, draft.Sq(6, 2))
	a.hover = draft.Sq(6, 2)
	a.Handle(context.Background(), key('y'))
	if a.game.AnyMenuOpen() || a.game.Ready(draft.Light) || a.status != "" {
		t.Fatalf("y with menu open: open=%v ready=%v status=%q", a.game.AnyMenuOpen(), a.game.Ready(draft.Light), a.status)
	}
}

func TestDraftKeysIgnoredDuringPlay(t *testing.T) {
	a, _ := newTestApp(t)
	for _, s := range draft.Sides {
		if err := a.game.SetReady(s, true); err != nil {
			t.Fatalf("ready %s: %v", s, err)
		}
	}
	a.Handle(context.Background(), key('q'))
	if a.status != "" {
		t.Fatalf("draft key during play reported %q", a.status)
	}
	if a.game.Board().Occupied(draft.Sq(6, 4)) {
		t.Fatalf("draft key placed a piece during play")
	}
}
