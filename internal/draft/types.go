package draft

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// BoardSize is the number of ranks and files.
const BoardSize = 8

// Kind identifies a piece type.
type Kind uint8

const (
	NoKind Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = map[Kind]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

// Kinds lists every drafted kind in menu order.
var Kinds = []Kind{Pawn, Knight, Bishop, Rook, Queen, King}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "none"
}

// Letter returns the upper-case algebraic letter (P, N, B, R, Q, K).
func (k Kind) Letter() string {
	switch k {
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return "?"
	}
}

// ParseKind accepts full names ("queen") and letters ("q").
func ParseKind(s string) (Kind, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if v == name || v == strings.ToLower(k.Letter()) {
			return k, true
		}
	}
	return NoKind, false
}

// Side identifies a player.
type Side uint8

const (
	Light Side = iota
	Dark
)

// Sides lists both sides, light first.
var Sides = []Side{Light, Dark}

func (s Side) String() string {
	if s == Dark {
		return "dark"
	}
	return "light"
}

func (s Side) Opposite() Side {
	if s == Dark {
		return Light
	}
	return Dark
}

// ParseSide accepts "light"/"l" and "dark"/"d".
func ParseSide(s string) (Side, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "l", "white", "w":
		return Light, true
	case "dark", "d", "black", "b":
		return Dark, true
	default:
		return Light, false
	}
}

// Phase is the game lifecycle state.
type Phase uint8

const (
	Drafting Phase = iota
	Playing
)

func (p Phase) String() string {
	if p == Playing {
		return "playing"
	}
	return "drafting"
}

// Square is a (rank, file) pair. Rank 0 is the dark back rank.
type Square struct {
	Rank int
	File int
}

// Sq is shorthand for Square{Rank: rank, File: file}.
func Sq(rank, file int) Square { return Square{Rank: rank, File: file} }

func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

func (s Square) offset(dr, df int) Square {
	return Square{Rank: s.Rank + dr, File: s.File + df}
}

func (s Square) index() int { return s.Rank*BoardSize + s.File }

// Chess maps the square onto the standard board: rank 0 is chess rank 8, file 0 is file a.
func (s Square) Chess() nchess.Square {
	return nchess.NewSquare(nchess.File(s.File), nchess.Rank(BoardSize-1-s.Rank))
}

// String returns the algebraic name ("e1") or "(r,f)" when off board.
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("(%d,%d)", s.Rank, s.File)
	}
	return s.Chess().String()
}

// Piece is a piece instance on the board.
type Piece struct {
	Kind   Kind
	Side   Side
	Square Square
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s@%s", p.Side, p.Kind, p.Square)
}
