package draft

import "errors"

var (
	ErrInvalidRules = errors.New("invalid draft rules")
	ErrWrongPhase   = errors.New("operation not allowed in current phase")
	ErrNotYourTurn  = errors.New("piece does not belong to the side to move")
	ErrNoPiece      = errors.New("no piece on square")
	ErrIllegalMove  = errors.New("illegal move")
	ErrOverBudget   = errors.New("budget is negative")
	ErrOffBoard     = errors.New("square is off the board")
	ErrNoKind       = errors.New("no piece kind given")
	ErrMenuBusy     = errors.New("another draft menu is open")
	ErrMenuClosed   = errors.New("draft menu is not open")
	ErrNoSelection  = errors.New("no piece selected")
)
