package input

import "github.com/park285/draft-chess/internal/draft"

// Geometry maps raw pointer coordinates onto board squares. Rank 0 is the top row.
type Geometry struct {
	OriginX int
	OriginY int
	TileW   int
	TileH   int
}

// SquareAt returns the square under (x, y); ok is false off the board.
func (g Geometry) SquareAt(x, y int) (draft.Square, bool) {
	if g.TileW <= 0 || g.TileH <= 0 {
		return draft.Square{}, false
	}
	dx, dy := x-g.OriginX, y-g.OriginY
	if dx < 0 || dy < 0 {
		return draft.Square{}, false
	}
	sq := draft.Sq(dy/g.TileH, dx/g.TileW)
	if !sq.Valid() {
		return draft.Square{}, false
	}
	return sq, true
}

// Origin returns the top-left coordinate of sq's tile.
func (g Geometry) Origin(sq draft.Square) (int, int) {
	return g.OriginX + sq.File*g.TileW, g.OriginY + sq.Rank*g.TileH
}

// Size returns the board's width and height.
func (g Geometry) Size() (int, int) {
	return g.TileW * draft.BoardSize, g.TileH * draft.BoardSize
}
