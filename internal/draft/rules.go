package draft

import (
	"fmt"
)

// Band is an inclusive rank range.
type Band struct {
	From int
	To   int
}

func (b Band) Contains(rank int) bool { return rank >= b.From && rank <= b.To }

// Rules holds the configuration constants the engine consumes.
type Rules struct {
	Values         map[Kind]int
	StartingBudget map[Side]int
	DraftBand      map[Side]Band
	PawnStartRank  map[Side]int
	KingHome       map[Side]Square
}

// DefaultRules returns the reference configuration.
func DefaultRules() Rules {
	return Rules{
		Values: map[Kind]int{
			King:   0,
			Queen:  9,
			Rook:   5,
			Bishop: 3,
			Knight: 3,
			Pawn:   1,
		},
		StartingBudget: map[Side]int{Light: 39, Dark: 39},
		DraftBand: map[Side]Band{
			Light: {From: 5, To: 7},
			Dark:  {From: 0, To: 2},
		},
		PawnStartRank: map[Side]int{Light: 6, Dark: 1},
		KingHome: map[Side]Square{
			Light: {Rank: 7, File: 4},
			Dark:  {Rank: 0, File: 4},
		},
	}
}

// Validate reports the first inconsistency in r.
func (r Rules) Validate() error {
	for _, k := range Kinds {
		v, ok := r.Values[k]
		if !ok {
			return fmt.Errorf("%w: missing value for %s", ErrInvalidRules, k)
		}
		if v < 0 {
			return fmt.Errorf("%w: negative value for %s", ErrInvalidRules, k)
		}
	}
	for _, s := range Sides {
		budget, ok := r.StartingBudget[s]
		if !ok {
			return fmt.Errorf("%w: missing budget for %s", ErrInvalidRules, s)
		}
		if budget < 0 {
			return fmt.Errorf("%w: negative budget for %s", ErrInvalidRules, s)
		}
		band, ok := r.DraftBand[s]
		if !ok {
			return fmt.Errorf("%w: missing draft band for %s", ErrInvalidRules, s)
		}
		if band.From > band.To || band.From < 0 || band.To >= BoardSize {
			return fmt.Errorf("%w: draft band %d..%d for %s", ErrInvalidRules, band.From, band.To, s)
		}
		pr, ok := r.PawnStartRank[s]
		if !ok || !band.Contains(pr) {
			return fmt.Errorf("%w: pawn start rank for %s outside its draft band", ErrInvalidRules, s)
		}
		home, ok := r.KingHome[s]
		if !ok || !home.Valid() || !band.Contains(home.Rank) {
			return fmt.Errorf("%w: king home for %s outside its draft band", ErrInvalidRules, s)
		}
	}
	lb, db := r.DraftBand[Light], r.DraftBand[Dark]
	if lb.From <= db.To && db.From <= lb.To {
		return fmt.Errorf("%w: draft bands overlap", ErrInvalidRules)
	}
	if r.KingHome[Light] == r.KingHome[Dark] {
		return fmt.Errorf("%w: kings share a home square", ErrInvalidRules)
	}
	return nil
}

// Value returns the point cost of kind; unknown kinds cost nothing.
func (r Rules) Value(k Kind) int { return r.Values[k] }

// InDraftBand reports whether rank lies in side's draft zone.
func (r Rules) InDraftBand(s Side, rank int) bool {
	band, ok := r.DraftBand[s]
	return ok && band.Contains(rank)
}

// BandSide returns the side whose draft band contains rank.
func (r Rules) BandSide(rank int) (Side, bool) {
	for _, s := range Sides {
		if r.InDraftBand(s, rank) {
			return s, true
		}
	}
	return Light, false
}

// forward is the rank delta a pawn of side s advances by.
func forward(s Side) int {
	if s == Light {
		return -1
	}
	return 1
}

func (r Rules) clone() Rules {
	out := Rules{
		Values:         make(map[Kind]int, len(r.Values)),
		StartingBudget: make(map[Side]int, len(r.StartingBudget)),
		DraftBand:      make(map[Side]Band, len(r.DraftBand)),
		PawnStartRank:  make(map[Side]int, len(r.PawnStartRank)),
		KingHome:       make(map[Side]Square, len(r.KingHome)),
	}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	for k, v := range r.StartingBudget {
		out.StartingBudget[k] = v
	}
	for k, v := range r.DraftBand {
		out.DraftBand[k] = v
	}
	for k, v := range r.PawnStartRank {
		out.PawnStartRank[k] = v
	}
	for k, v := range r.KingHome {
		out.KingHome[k] = v
	}
	return out
}
