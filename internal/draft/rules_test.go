package draft

import (
	"errors"
	"testing"
)

func TestDefaultRulesValid(t *testing.T) {
	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("default rules invalid: %v", err)
	}
}

func TestRulesValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"negative value", func(r *Rules) { r.Values[Pawn] = -1 }},
		{"missing budget", func(r *Rules) { delete(r.StartingBudget, Dark) }},
		{"inverted band", func(r *Rules) { r.DraftBand[Light] = Band{From: 7, To: 5} }},
		{"band off board", func(r *Rules) { r.DraftBand[Light] = Band{From: 5, To: 8} }},
		{"overlapping bands", func(r *Rules) { r.DraftBand[Dark] = Band{From: 2, To: 5} }},
		{"pawn rank off board", func(r *Rules) { r.PawnStartRank[Dark] = -1 }},
		{"king off board", func(r *Rules) { r.KingHome[Light] = Sq(8, 4) }},
		{"shared king home", func(r *Rules) { r.KingHome[Dark] = r.KingHome[Light] }},
		{"negative budget", func(r *Rules) { r.StartingBudget[Light] = -5 }},
		{"pawn rank outside band", func(r *Rules) { r.PawnStartRank[Light] = 4 }},
		{"king outside band", func(r *Rules) { r.KingHome[Dark] = Sq(3, 4) }},
	}
	for _, tc := range cases {
		r := DefaultRules()
		tc.mutate(&r)
		if err := r.Validate(); !errors.Is(err, ErrInvalidRules) {
			t.Fatalf("%s: expected ErrInvalidRules, got %v", tc.name, err)
		}
	}
}

func TestBandSide(t *testing.T) {
	r := DefaultRules()
	for rank := 0; rank < BoardSize; rank++ {
		side, ok := r.BandSide(rank)
		switch {
		case rank <= 2:
			if !ok || side != Dark {
				t.Fatalf("rank %d should be dark's band", rank)
			}
		case rank >= 5:
			if !ok || side != Light {
				t.Fatalf("rank %d should be light's band", rank)
			}
		default:
			if ok {
				t.Fatalf("rank %d should be neutral", rank)
			}
		}
	}
}

func TestNewCopiesRules(t *testing.T) {
	r := DefaultRules()
	g, err := New(r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Values[Queen] = 1
	if g.Rules().Value(Queen) != 9 {
		t.Fatalf("game rules aliased caller map")
	}

	got := g.Rules()
	got.Values[Queen] = 100
	got.StartingBudget[Light] = 0
	if err := g.PlacePiece(Queen, Light, Sq(7, 3)); err != nil {
		t.Fatalf("PlacePiece: %v", err)
	}
	if g.Budget(Light) != 30 {
		t.Fatalf("edited rules copy changed queen cost: budget %d, want 30", g.Budget(Light))
	}
	if err := g.RefundPiece(Sq(7, 3)); err != nil || g.Budget(Light) != 39 {
		t.Fatalf("refund restored %d (%v), want 39", g.Budget(Light), err)
	}
}

func TestZeroBudgetIsValid(t *testing.T) {
	r := DefaultRules()
	r.StartingBudget[Dark] = 0
	g, err := New(r)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := g.SetReady(Dark, true); err != nil {
		t.Fatalf("zero budget side should be able to ready: %v", err)
	}
}

func TestSquareNames(t *testing.T) {
	cases := map[Square]string{
		Sq(0, 0): "a8",
		Sq(7, 4): "e1",
		Sq(0, 4): "e8",
		Sq(6, 7): "h2",
	}
	for sq, want := range cases {
		if got := sq.String(); got != want {
			t.Fatalf("%v: got %q want %q", sq, got, want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"q": Queen, "Knight": Knight, "n": Knight, "P": Pawn, "king": King} {
		got, ok := ParseKind(in)
		if !ok || got != want {
			t.Fatalf("ParseKind(%q) = %v,%v", in, got, ok)
		}
	}
	if _, ok := ParseKind("x"); ok {
		t.Fatalf("ParseKind accepted x")
	}
}
