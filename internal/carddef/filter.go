package carddef

import (
	"slices"

	"reskin/backend/internal/apperr"
	"reskin/backend/internal/cost"
)

// Filter narrows a definition listing. Zero values match everything. Colors
// and Tiers only apply to token cards.
type Filter struct {
	Colors    []cost.Color
	Tiers     []int
	MinPoints *int
	MaxPoints *int
	MinCost   map[cost.Color]int
	MaxCost   map[cost.Color]int
}

// Validate checks the filter against the kind it will be applied to.
func (f Filter) Validate(kind Kind) error {
	if kind != TokenCards && (len(f.Colors) > 0 || len(f.Tiers) > 0) {
		return apperr.Validation("color and tier filters are not supported for %s", kind)
	}
	if f.MinPoints != nil && f.MaxPoints != nil && *f.MinPoints > *f.MaxPoints {
		return apperr.Validation("minPoints %d is greater than maxPoints %d", *f.MinPoints, *f.MaxPoints)
	}
	for _, c := range cost.Colors() {
		lo, hasLo := f.MinCost[c]
		hi, hasHi := f.MaxCost[c]
		if hasLo && hasHi && lo > hi {
			return apperr.Validation("minimum %s cost %d is greater than maximum %d", c, lo, hi)
		}
	}
	return nil
}

// Match reports whether d passes the filter.
func (f Filter) Match(d Definition) bool {
	if tc, ok := d.(TokenCard); ok {
		if len(f.Colors) > 0 && !slices.Contains(f.Colors, tc.Token) {
			return false
		}
		if len(f.Tiers) > 0 && !slices.Contains(f.Tiers, tc.Tier) {
			return false
		}
	}

	points := d.DefinitionPoints()
	if f.MinPoints != nil && points < *f.MinPoints {
		return false
	}
	if f.MaxPoints != nil && points > *f.MaxPoints {
		return false
	}

	vec := d.DefinitionCost()
	for c, lo := range f.MinCost {
		if vec.Get(c) < lo {
			return false
		}
	}
	for c, hi := range f.MaxCost {
		if vec.Get(c) > hi {
			return false
		}
	}
	return true
}
