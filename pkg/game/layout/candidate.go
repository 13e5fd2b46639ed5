package layout

import "dungeongen/pkg/engine/random"

// Variant is one concrete skeleton of a candidate, with its selection weight
type Variant struct {
	Weight int
	Layout *Layout
}

// Candidate is a named layout choice offered by a quest. Each time it is
// tried a concrete variant is drawn by weight.
type Candidate struct {
	Name     string
	Variants []Variant
}

// NewCandidate creates a candidate with a single variant
func NewCandidate(name string, l *Layout) *Candidate {
	return &Candidate{Name: name, Variants: []Variant{{Weight: 1, Layout: l}}}
}

// Choose draws a variant by weight. Variants with non-positive weight are
// never chosen unless every weight is non-positive, in which case the
// choice is uniform. Returns nil for a candidate without variants.
func (c *Candidate) Choose(rng random.Source) *Layout {
	if len(c.Variants) == 0 {
		return nil
	}
	total := 0
	for _, v := range c.Variants {
		if v.Weight > 0 {
			total += v.Weight
		}
	}
	if total == 0 {
		return c.Variants[rng.Intn(len(c.Variants))].Layout
	}
	r := rng.Intn(total)
	for _, v := range c.Variants {
		if v.Weight <= 0 {
			continue
		}
		if r < v.Weight {
			return v.Layout
		}
		r -= v.Weight
	}
	return c.Variants[len(c.Variants)-1].Layout
}
