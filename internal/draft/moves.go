package draft

type delta struct{ dr, df int }

var (
	knightOffsets = []delta{
		{+2, +1}, {+2, -1}, {-2, +1}, {-2, -1},
		{+1, +2}, {+1, -2}, {-1, +2}, {-1, -2},
	}
	kingOffsets = []delta{
		{+1, 0}, {-1, 0}, {0, +1}, {0, -1},
		{+1, +1}, {+1, -1}, {-1, +1}, {-1, -1},
	}
	rookDirs   = []delta{{+1, 0}, {-1, 0}, {0, +1}, {0, -1}}
	bishopDirs = []delta{{+1, +1}, {-1, -1}, {+1, -1}, {-1, +1}}
	queenDirs  = append(append([]delta(nil), rookDirs...), bishopDirs...)
)

// LegalMoves returns the squares p may move to on b, in a fixed per-kind order.
// There is no notion of check: squares attacked by the opponent are included.
func LegalMoves(b *Board, p Piece, rules Rules) []Square {
	if b == nil || !p.Square.Valid() {
		return nil
	}
	switch p.Kind {
	case Pawn:
		return pawnMoves(b, p, rules)
	case Knight:
		return stepMoves(b, p, knightOffsets)
	case King:
		return stepMoves(b, p, kingOffsets)
	case Rook:
		return rayMoves(b, p, rookDirs)
	case Bishop:
		return rayMoves(b, p, bishopDirs)
	case Queen:
		return rayMoves(b, p, queenDirs)
	default:
		return nil
	}
}

// reachable: on board and either empty or held by the other side.
func reachable(b *Board, side Side, sq Square) bool {
	if !sq.Valid() {
		return false
	}
	occ, ok := b.PieceAt(sq)
	return !ok || occ.Side != side
}

func pawnMoves(b *Board, p Piece, rules Rules) []Square {
	dir := forward(p.Side)
	var moves []Square

	one := p.Square.offset(dir, 0)
	if one.Valid() && !b.Occupied(one) {
		moves = append(moves, one)
		if p.Square.Rank == rules.PawnStartRank[p.Side] {
			two := p.Square.offset(2*dir, 0)
			if two.Valid() && !b.Occupied(two) {
				moves = append(moves, two)
			}
		}
	}

	for _, df := range []int{-1, +1} {
		diag := p.Square.offset(dir, df)
		if occ, ok := b.PieceAt(diag); ok && occ.Side != p.Side {
			moves = append(moves, diag)
		}
	}
	return moves
}

func stepMoves(b *Board, p Piece, offsets []delta) []Square {
	moves := make([]Square, 0, len(offsets))
	for _, d := range offsets {
		to := p.Square.offset(d.dr, d.df)
		if reachable(b, p.Side, to) {
			moves = append(moves, to)
		}
	}
	return moves
}

func rayMoves(b *Board, p Piece, dirs []delta) []Square {
	var moves []Square
	for _, d := range dirs {
		to := p.Square.offset(d.dr, d.df)
		for to.Valid() {
			occ, ok := b.PieceAt(to)
			if !ok {
				moves = append(moves, to)
				to = to.offset(d.dr, d.df)
				continue
			}
			if occ.Side != p.Side {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// containsSquare reports whether sq is in list.
func containsSquare(list []Square, sq Square) bool {
	for _, s := range list {
		if s == sq {
			return true
		}
	}
	return false
}
