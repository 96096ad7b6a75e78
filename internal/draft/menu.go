package draft

import (
	"errors"

	"go.uber.org/zap"
)

// MenuEntries lists what side's draft menu offers, top to bottom. NoKind is the
// "none" entry that clears the origin square. The king is offered only while
// side has none; dark's list is reversed so it reads from its own edge.
func (g *Game) MenuEntries(side Side) []Kind {
	entries := []Kind{NoKind, Pawn, Knight, Bishop, Rook, Queen}
	if g.board.Count(side, King) == 0 {
		entries = append(entries, King)
	}
	if side == Dark {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries
}

// OpenMenu opens side's draft menu at origin. Only one menu may be open.
func (g *Game) OpenMenu(side Side, origin Square) error {
	if g.phase != Drafting {
		return ErrWrongPhase
	}
	if !origin.Valid() {
		return ErrOffBoard
	}
	if g.menu[side.Opposite()].Open {
		return ErrMenuBusy
	}
	g.menu[side] = Menu{Open: true, Origin: origin}
	return nil
}

// CloseMenu closes side's menu; closing a closed menu is a no-op.
func (g *Game) CloseMenu(side Side) {
	g.menu[side] = Menu{}
}

// AnyMenuOpen reports whether either side has its menu open.
func (g *Game) AnyMenuOpen() bool {
	return g.menu[Light].Open || g.menu[Dark].Open
}

// PickMenu applies entry at side's menu origin and closes the menu. The none
// entry refunds the origin square; an empty square makes it a plain close.
func (g *Game) PickMenu(side Side, entry Kind) error {
	m := g.menu[side]
	if !m.Open {
		return ErrMenuClosed
	}
	g.CloseMenu(side)
	if entry == NoKind {
		if err := g.RefundPiece(m.Origin); err != nil && !errors.Is(err, ErrNoPiece) {
			return err
		}
		return nil
	}
	if err := g.PlacePiece(entry, side, m.Origin); err != nil {
		g.logger.Debug("menu_pick_failed", zap.String("side", side.String()), zap.Error(err))
		return err
	}
	return nil
}
