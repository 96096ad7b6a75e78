package input

import (
	"errors"
	"unicode"

	"github.com/park285/draft-chess/internal/draft"
	"go.uber.org/zap"
)

var (
	ErrOutsideDraftZone = errors.New("square is outside an open draft zone")
	ErrSideReady        = errors.New("side is ready and cannot draft")
	ErrUnmappedKey      = errors.New("key has no placement binding")
	ErrMenuIndex        = errors.New("menu entry out of range")
)

// quick-placement bindings; the king is only draftable through the menu.
var keyKinds = map[rune]draft.Kind{
	'p': draft.Pawn,
	'n': draft.Knight,
	'b': draft.Bishop,
	'r': draft.Rook,
	'q': draft.Queen,
}

// Controller turns pointer and key events into core operations. It owns the
// draft-zone policy the core leaves to its callers.
type Controller struct {
	game   *draft.Game
	logger *zap.Logger
}

func NewController(game *draft.Game, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{game: game, logger: logger}
}

func (c *Controller) Game() *draft.Game { return c.game }

// DraftSide returns the side that may draft on sq right now.
func (c *Controller) DraftSide(sq draft.Square) (draft.Side, error) {
	if !sq.Valid() {
		return draft.Light, draft.ErrOffBoard
	}
	side, ok := c.game.Rules().BandSide(sq.Rank)
	if !ok {
		return draft.Light, ErrOutsideDraftZone
	}
	if c.game.Ready(side) {
		return side, ErrSideReady
	}
	return side, nil
}

// HoverTarget reports whether a hover marker belongs on sq: drafting, no menu
// open, an empty square in a side's open draft zone.
func (c *Controller) HoverTarget(sq draft.Square) (draft.Side, bool) {
	if c.game.Phase() != draft.Drafting || c.game.AnyMenuOpen() {
		return draft.Light, false
	}
	side, err := c.DraftSide(sq)
	if err != nil || c.game.Board().Occupied(sq) {
		return side, false
	}
	return side, true
}

// KeyPress places the bound kind on the hovered square for the side owning
// that draft zone.
func (c *Controller) KeyPress(r rune, hover draft.Square) error {
	if c.game.Phase() != draft.Drafting {
		return draft.ErrWrongPhase
	}
	if c.game.AnyMenuOpen() {
		return draft.ErrMenuBusy
	}
	kind, ok := keyKinds[unicode.ToLower(r)]
	if !ok {
		return ErrUnmappedKey
	}
	side, err := c.DraftSide(hover)
	if err != nil {
		c.reject("key", hover, err)
		return err
	}
	return c.game.PlacePiece(kind, side, hover)
}

// Click handles a board click. An open menu swallows the click and closes.
// While drafting, a click in an open zone opens that side's menu. While
// playing, the first click selects and the second attempts the move.
func (c *Controller) Click(sq draft.Square) error {
	switch c.game.Phase() {
	case draft.Drafting:
		if c.game.AnyMenuOpen() {
			c.closeMenus()
			return nil
		}
		side, err := c.DraftSide(sq)
		if err != nil {
			c.reject("click", sq, err)
			return err
		}
		return c.game.OpenMenu(side, sq)
	case draft.Playing:
		if _, ok := c.game.Selection(); !ok {
			return c.game.Select(sq)
		}
		return c.game.MoveSelected(sq)
	default:
		return draft.ErrWrongPhase
	}
}

// PickMenu applies the index-th entry of side's open menu.
func (c *Controller) PickMenu(side draft.Side, index int) error {
	if !c.game.Menu(side).Open {
		return draft.ErrMenuClosed
	}
	entries := c.game.MenuEntries(side)
	if index < 0 || index >= len(entries) {
		c.closeMenus()
		return ErrMenuIndex
	}
	return c.game.PickMenu(side, entries[index])
}

// ToggleReady presses side's ready button. With a menu open the press only
// closes it, like any other click.
func (c *Controller) ToggleReady(side draft.Side) error {
	if c.game.AnyMenuOpen() {
		c.closeMenus()
		return nil
	}
	return c.game.ToggleReady(side)
}

// Cancel drops any open menu and pending selection.
func (c *Controller) Cancel() {
	c.closeMenus()
	c.game.ClearSelection()
}

func (c *Controller) closeMenus() {
	for _, s := range draft.Sides {
		c.game.CloseMenu(s)
	}
}

func (c *Controller) reject(source string, sq draft.Square, err error) {
	c.logger.Debug("input_rejected",
		zap.String("source", source),
		zap.String("square", sq.String()),
		zap.Error(err),
	)
}
