package segment

import (
	"errors"
	"fmt"

	"dungeongen/pkg/engine/random"
)

// Ref is a stable index of a segment in a Catalog
type Ref int

// NoSegment is the zero reference for an unassigned cell
const NoSegment Ref = -1

var (
	// ErrEmptyCatalog is returned when a catalog has no ordinary segments
	ErrEmptyCatalog = errors.New("segment catalog has no ordinary segments")
	// ErrSizeMismatch is returned when segments differ in size
	ErrSizeMismatch = errors.New("all segments must have the same size")
)

// Catalog owns the segment templates. Ordinary segments are bucketed by
// their number of ordinary homes; category segments are keyed by category.
type Catalog struct {
	segments []*Segment
	byHomes  [][]Ref
	special  map[int][]Ref
	width    int
	height   int
}

// NewCatalog indexes segments. Every segment must have the same size.
func NewCatalog(segments []*Segment) (*Catalog, error) {
	c := &Catalog{special: make(map[int][]Ref)}
	for _, s := range segments {
		if s == nil {
			continue
		}
		if len(c.segments) == 0 {
			c.width, c.height = s.Width(), s.Height()
		} else if s.Width() != c.width || s.Height() != c.height {
			return nil, fmt.Errorf("segment %s is %dx%d, want %dx%d: %w",
				s.Name, s.Width(), s.Height(), c.width, c.height, ErrSizeMismatch)
		}

		ref := Ref(len(c.segments))
		c.segments = append(c.segments, s)

		if s.Category >= 0 {
			c.special[s.Category] = append(c.special[s.Category], ref)
			continue
		}
		n := s.NumHomes()
		for len(c.byHomes) <= n {
			c.byHomes = append(c.byHomes, nil)
		}
		c.byHomes[n] = append(c.byHomes[n], ref)
	}
	if len(c.byHomes) == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Size returns the common segment width and height
func (c *Catalog) Size() (width, height int) {
	return c.width, c.height
}

// Len returns the number of segments
func (c *Catalog) Len() int {
	return len(c.segments)
}

// Segment returns the segment for ref, or nil
func (c *Catalog) Segment(ref Ref) *Segment {
	if ref < 0 || int(ref) >= len(c.segments) {
		return nil
	}
	return c.segments[ref]
}

// CategoryHasSpecialExit reports whether any segment of a category has a
// home flagged as a special exit
func (c *Catalog) CategoryHasSpecialExit(category int) bool {
	for _, r := range c.special[category] {
		if c.segments[r].HasSpecialExit() {
			return true
		}
	}
	return false
}

// MaxHomes returns the most ordinary homes any ordinary segment offers
func (c *Catalog) MaxHomes() int {
	for n := len(c.byHomes) - 1; n >= 0; n-- {
		if len(c.byHomes[n]) > 0 {
			return n
		}
	}
	return 0
}

// HomeSegment draws uniformly among ordinary segments with at least
// minHomes ordinary homes
func (c *Catalog) HomeSegment(rng random.Source, minHomes int) (Ref, bool) {
	if minHomes < 0 {
		minHomes = 0
	}
	total := 0
	for n := minHomes; n < len(c.byHomes); n++ {
		total += len(c.byHomes[n])
	}
	if total == 0 {
		return NoSegment, false
	}
	r := rng.Intn(total)
	for n := minHomes; n < len(c.byHomes); n++ {
		if r < len(c.byHomes[n]) {
			return c.byHomes[n][r], true
		}
		r -= len(c.byHomes[n])
	}
	return NoSegment, false
}

// SpecialSegment draws uniformly among segments of a category that used
// does not report. Once every one of them is used any may be drawn again.
// A nil used accepts everything.
func (c *Catalog) SpecialSegment(rng random.Source, category int, used func(Ref) bool) (Ref, bool) {
	refs := c.special[category]
	if len(refs) == 0 {
		return NoSegment, false
	}
	if used != nil {
		fresh := make([]Ref, 0, len(refs))
		for _, r := range refs {
			if !used(r) {
				fresh = append(fresh, r)
			}
		}
		if len(fresh) > 0 {
			refs = fresh
		}
	}
	return random.Pick(rng, refs), true
}

// HasCategory reports whether any segment belongs to category
func (c *Catalog) HasCategory(category int) bool {
	return len(c.special[category]) > 0
}
