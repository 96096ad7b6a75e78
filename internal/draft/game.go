package draft

import (
	"fmt"

	"github.com/park285/draft-chess/pkg/draftview"
	"go.uber.org/zap"
)

// Menu is one side's draft overlay: open flag and the square it places on.
type Menu struct {
	Open   bool
	Origin Square
}

// Game is the single source of truth for a match. It is not safe for concurrent
// use; the owner (the frame loop) serializes every call.
type Game struct {
	rules     Rules
	board     Board
	phase     Phase
	turn      Side
	budget    map[Side]int
	ready     map[Side]bool
	menu      map[Side]Menu
	selection *Square
	logger    *zap.Logger
}

// Option configures a Game.
type Option func(*Game)

// WithLogger attaches a logger; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.logger = l
		}
	}
}

// New creates a game in the drafting phase with both kings on their home squares.
func New(rules Rules, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		rules:  rules.clone(),
		phase:  Drafting,
		turn:   Light,
		budget: make(map[Side]int, 2),
		ready:  make(map[Side]bool, 2),
		menu:   make(map[Side]Menu, 2),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	for _, s := range Sides {
		g.budget[s] = g.rules.StartingBudget[s]
		g.board.put(Piece{Kind: King, Side: s, Square: g.rules.KingHome[s]})
	}
	return g, nil
}

func (g *Game) Phase() Phase      { return g.phase }
func (g *Game) Turn() Side        { return g.turn }
func (g *Game) Budget(s Side) int { return g.budget[s] }
func (g *Game) Ready(s Side) bool { return g.ready[s] }
func (g *Game) Menu(s Side) Menu  { return g.menu[s] }

// Rules returns a copy of the game's rules; editing it does not affect the game.
func (g *Game) Rules() Rules { return g.rules.clone() }

// Board returns the live board; callers must treat it as read-only.
func (g *Game) Board() *Board { return &g.board }

// Selection returns the selected square, if any.
func (g *Game) Selection() (Square, bool) {
	if g.selection == nil {
		return Square{}, false
	}
	return *g.selection, true
}

// PlacePiece puts a new piece on sq and debits side. An existing occupant is
// refunded to its owner first. Draft zone and phase are the caller's policy;
// the budget may go negative.
func (g *Game) PlacePiece(kind Kind, side Side, sq Square) error {
	if _, known := kindNames[kind]; !known {
		return ErrNoKind
	}
	if !sq.Valid() {
		return fmt.Errorf("place %s: %w", sq, ErrOffBoard)
	}
	if old, ok := g.board.remove(sq); ok {
		g.credit(old)
	}
	g.board.put(Piece{Kind: kind, Side: side, Square: sq})
	g.budget[side] -= g.rules.Value(kind)
	g.logger.Debug("draft_place",
		zap.String("side", side.String()),
		zap.String("kind", kind.String()),
		zap.String("square", sq.String()),
		zap.Int("budget", g.budget[side]),
	)
	return nil
}

// RefundPiece removes the piece on sq and credits its owner.
func (g *Game) RefundPiece(sq Square) error {
	if !sq.Valid() {
		return fmt.Errorf("refund %s: %w", sq, ErrOffBoard)
	}
	p, ok := g.board.remove(sq)
	if !ok {
		return ErrNoPiece
	}
	g.credit(p)
	return nil
}

// credit returns the value of a removed piece to its owner.
func (g *Game) credit(p Piece) {
	g.budget[p.Side] += g.rules.Value(p.Kind)
	g.logger.Debug("draft_refund",
		zap.String("side", p.Side.String()),
		zap.String("kind", p.Kind.String()),
		zap.String("square", p.Square.String()),
		zap.Int("budget", g.budget[p.Side]),
	)
}

// SetReady changes side's readiness during drafting. Becoming ready needs a
// non-negative budget. When both sides are ready the game starts.
func (g *Game) SetReady(side Side, value bool) error {
	if g.phase != Drafting {
		return ErrWrongPhase
	}
	if value && g.budget[side] < 0 {
		return ErrOverBudget
	}
	g.ready[side] = value
	if g.ready[Light] && g.ready[Dark] {
		g.start()
	}
	return nil
}

// ToggleReady flips side's readiness.
func (g *Game) ToggleReady(side Side) error {
	return g.SetReady(side, !g.ready[side])
}

func (g *Game) start() {
	g.phase = Playing
	g.turn = Light
	g.selection = nil
	for _, s := range Sides {
		g.menu[s] = Menu{}
	}
	g.logger.Info("draft_complete",
		zap.Int("light_pieces", g.board.Count(Light, NoKind)),
		zap.Int("dark_pieces", g.board.Count(Dark, NoKind)),
		zap.Int("light_budget", g.budget[Light]),
		zap.Int("dark_budget", g.budget[Dark]),
	)
}

// Select marks a piece of the side to move as pending a destination.
func (g *Game) Select(sq Square) error {
	if g.phase != Playing {
		return ErrWrongPhase
	}
	p, ok := g.board.PieceAt(sq)
	if !ok {
		return ErrNoPiece
	}
	if p.Side != g.turn {
		return ErrNotYourTurn
	}
	s := sq
	g.selection = &s
	return nil
}

func (g *Game) ClearSelection() { g.selection = nil }

// LegalMovesFrom returns the destinations of the piece on sq.
func (g *Game) LegalMovesFrom(sq Square) []Square {
	p, ok := g.board.PieceAt(sq)
	if !ok {
		return nil
	}
	return LegalMoves(&g.board, p, g.rules)
}

// AttemptMove moves the piece on from to to if legal, capturing any opposing
// piece there without refund, and passes the turn. The selection is cleared
// whatever the outcome.
func (g *Game) AttemptMove(from, to Square) error {
	g.selection = nil
	if g.phase != Playing {
		return ErrWrongPhase
	}
	p, ok := g.board.PieceAt(from)
	if !ok {
		return ErrNoPiece
	}
	if p.Side != g.turn {
		return ErrNotYourTurn
	}
	if !containsSquare(LegalMoves(&g.board, p, g.rules), to) {
		g.logger.Debug("move_rejected",
			zap.String("side", p.Side.String()),
			zap.String("kind", p.Kind.String()),
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
		return ErrIllegalMove
	}
	if victim, captured := g.board.remove(to); captured {
		g.logger.Info("capture",
			zap.String("by", p.String()),
			zap.String("victim", victim.String()),
		)
	}
	g.board.relocate(from, to)
	g.turn = g.turn.Opposite()
	g.logger.Debug("move",
		zap.String("kind", p.Kind.String()),
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.String("next", g.turn.String()),
	)
	return nil
}

// MoveSelected attempts to move the selected piece to to.
func (g *Game) MoveSelected(to Square) error {
	if g.phase != Playing {
		return ErrWrongPhase
	}
	if g.selection == nil {
		return ErrNoSelection
	}
	return g.AttemptMove(*g.selection, to)
}

// Material sums the point values of side's pieces.
func (g *Game) Material(side Side) int {
	total := 0
	for _, p := range g.board.Pieces() {
		if p.Side == side {
			total += g.rules.Value(p.Kind)
		}
	}
	return total
}

// View snapshots the game for renderers.
func (g *Game) View() *draftview.View {
	v := &draftview.View{
		Phase: g.phase.String(),
		Turn:  g.turn.String(),
		Light: g.sideView(Light),
		Dark:  g.sideView(Dark),
	}
	for _, p := range g.board.Pieces() {
		v.Pieces = append(v.Pieces, draftview.Piece{
			Kind:   p.Kind.String(),
			Side:   p.Side.String(),
			Square: viewSquare(p.Square),
		})
	}
	if sel, ok := g.Selection(); ok {
		vs := viewSquare(sel)
		v.Selected = &vs
		for _, m := range g.LegalMovesFrom(sel) {
			v.LegalMoves = append(v.LegalMoves, viewSquare(m))
		}
	}
	return v
}

func (g *Game) sideView(s Side) draftview.Side {
	band := g.rules.DraftBand[s]
	menu := g.menu[s]
	sv := draftview.Side{
		Name:     s.String(),
		Budget:   g.budget[s],
		Ready:    g.ready[s],
		Material: g.Material(s),
		BandFrom: band.From,
		BandTo:   band.To,
		MenuOpen: menu.Open,
		MenuAt:   viewSquare(menu.Origin),
	}
	if menu.Open {
		for _, k := range g.MenuEntries(s) {
			cost := g.rules.Value(k)
			sv.MenuItems = append(sv.MenuItems, draftview.MenuItem{
				Kind:       k.String(),
				Cost:       cost,
				Affordable: k == NoKind || g.budget[s]-cost >= 0,
			})
		}
	}
	return sv
}

func viewSquare(sq Square) draftview.Square {
	return draftview.Square{Rank: sq.Rank, File: sq.File}
}
