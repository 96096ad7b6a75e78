package tui

import (
	"github.com/park285/draft-chess/internal/draft"
	"github.com/park285/draft-chess/internal/input"
)

const (
	tileW = 4
	tileH = 2

	boardX = 3
	boardY = 2

	readyWidth = 10
)

var boardGeometry = input.Geometry{OriginX: boardX, OriginY: boardY, TileW: tileW, TileH: tileH}

// panelX is the first column right of the board.
func panelX() int {
	w, _ := boardGeometry.Size()
	return boardX + w + 3
}

func boardBottom() int {
	_, h := boardGeometry.Size()
	return boardY + h
}

// readyRow places dark's button level with its back rank and light's with its own.
func readyRow(side draft.Side) int {
	if side == draft.Dark {
		return boardY + 1
	}
	return boardBottom() - 2
}

func budgetRow(side draft.Side) int {
	if side == draft.Dark {
		return boardY
	}
	return boardBottom() - 1
}

const menuTop = boardY + 4

// readyHit returns the side whose ready button covers (x, y).
func readyHit(x, y int) (draft.Side, bool) {
	px := panelX()
	if x < px || x >= px+readyWidth {
		return draft.Light, false
	}
	for _, s := range draft.Sides {
		if y == readyRow(s) {
			return s, true
		}
	}
	return draft.Light, false
}

// menuHit returns the entry index under (x, y) for a menu of n entries.
func menuHit(x, y, n int) (int, bool) {
	px := panelX()
	if x < px || x >= px+menuWidth {
		return 0, false
	}
	i := y - (menuTop + 1)
	if i < 0 || i >= n {
		return 0, false
	}
	return i, true
}

const menuWidth = 16
