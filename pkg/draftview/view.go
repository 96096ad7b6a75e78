// Package draftview holds read-only snapshots of a draft chess game for renderers.
package draftview

// Square is a board coordinate. Rank 0 is the dark back rank.
type Square struct {
	Rank int
	File int
}

// Piece is one occupied square.
type Piece struct {
	Kind   string // pawn, knight, bishop, rook, queen, king
	Side   string // light, dark
	Square Square
}

// Side carries per-side economy state.
type Side struct {
	Name      string
	Budget    int
	Ready     bool
	Material  int
	BandFrom  int
	BandTo    int
	MenuOpen  bool
	MenuAt    Square
	MenuItems []MenuItem
}

// MenuItem is one draft menu entry. Kind is "none" for the refund entry.
type MenuItem struct {
	Kind       string
	Cost       int
	Affordable bool
}

// View is everything a frame needs to paint.
type View struct {
	Phase      string // drafting, playing
	Turn       string
	Pieces     []Piece
	Light      Side
	Dark       Side
	Selected   *Square
	LegalMoves []Square
}

// SideByName returns the side view by name.
func (v *View) SideByName(name string) *Side {
	if v == nil {
		return nil
	}
	if name == "dark" {
		return &v.Dark
	}
	return &v.Light
}

// PieceAt returns the piece on sq, if any.
func (v *View) PieceAt(sq Square) (Piece, bool) {
	if v == nil {
		return Piece{}, false
	}
	for _, p := range v.Pieces {
		if p.Square == sq {
			return p, true
		}
	}
	return Piece{}, false
}

// IsLegalTarget reports whether sq is among the selection's destinations.
func (v *View) IsLegalTarget(sq Square) bool {
	if v == nil {
		return false
	}
	for _, m := range v.LegalMoves {
		if m == sq {
			return true
		}
	}
	return false
}
