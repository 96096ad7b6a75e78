package draftview

import "testing"

func TestViewLookups(t *testing.T) {
	v := &View{
		Pieces: []Piece{
			{Kind: "king", Side: "light", Square: Square{Rank: 7, File: 4}},
			{Kind: "queen", Side: "dark", Square: Square{Rank: 0, File: 3}},
		},
		Light:      Side{Name: "light", Budget: 39},
		Dark:       Side{Name: "dark", Budget: 30},
		LegalMoves: []Square{{Rank: 6, File: 4}},
	}

	p, ok := v.PieceAt(Square{Rank: 0, File: 3})
	if !ok || p.Kind != "queen" || p.Side != "dark" {
		t.Fatalf("PieceAt returned %+v %v", p, ok)
	}
	if _, ok := v.PieceAt(Square{Rank: 4, File: 4}); ok {
		t.Fatalf("empty square reported occupied")
	}
	if !v.IsLegalTarget(Square{Rank: 6, File: 4}) || v.IsLegalTarget(Square{Rank: 5, File: 4}) {
		t.Fatalf("IsLegalTarget mismatch")
	}
	if v.SideByName("dark").Budget != 30 || v.SideByName("light").Budget != 39 {
		t.Fatalf("SideByName mismatch")
	}
}

func TestNilViewIsEmpty(t *testing.T) {
	var v *View
	if _, ok := v.PieceAt(Square{}); ok {
		t.Fatalf("nil view has pieces")
	}
	if v.IsLegalTarget(Square{}) || v.SideByName("light") != nil {
		t.Fatalf("nil view must report nothing")
	}
}
