package draft

// Board holds the pieces in play, one slot per square.
type Board struct {
	slots [BoardSize * BoardSize]Piece
}

// PieceAt returns the piece on sq, if any.
func (b *Board) PieceAt(sq Square) (Piece, bool) {
	if b == nil || !sq.Valid() {
		return Piece{}, false
	}
	p := b.slots[sq.index()]
	if p.Kind == NoKind {
		return Piece{}, false
	}
	return p, true
}

// Occupied reports whether any piece stands on sq.
func (b *Board) Occupied(sq Square) bool {
	_, ok := b.PieceAt(sq)
	return ok
}

// Pieces returns the pieces in rank-major square order.
func (b *Board) Pieces() []Piece {
	if b == nil {
		return nil
	}
	out := make([]Piece, 0, 16)
	for _, p := range b.slots {
		if p.Kind != NoKind {
			out = append(out, p)
		}
	}
	return out
}

// Count returns how many pieces of kind side owns; NoKind counts all of side's pieces.
func (b *Board) Count(side Side, kind Kind) int {
	n := 0
	for _, p := range b.Pieces() {
		if p.Side == side && (kind == NoKind || p.Kind == kind) {
			n++
		}
	}
	return n
}

func (b *Board) put(p Piece) {
	b.slots[p.Square.index()] = p
}

func (b *Board) remove(sq Square) (Piece, bool) {
	p, ok := b.PieceAt(sq)
	if !ok {
		return Piece{}, false
	}
	b.slots[sq.index()] = Piece{}
	return p, true
}

func (b *Board) relocate(from, to Square) {
	p := b.slots[from.index()]
	b.slots[from.index()] = Piece{}
	p.Square = to
	b.slots[to.index()] = p
}
