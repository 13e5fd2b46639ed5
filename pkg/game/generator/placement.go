package generator

import (
	"fmt"
	"slices"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/game/failure"
	"dungeongen/pkg/game/quest"
	"dungeongen/pkg/game/segment"
)

// segmentTries bounds the search for a segment not used yet
const segmentTries = 50

// placeSegments decides which segment goes in every cell and distributes
// the homes according to the quest's home policy
func (st *state) placeSegments(q *quest.Quest, nplayers int) error {
	homesRequired := nplayers
	if q.Home.ExemptsHomes() {
		homesRequired = 0
	}

	// one edge segment per player, one home assigned from each
	if q.Home == quest.HomeAway {
		for i := 0; i < nplayers; i++ {
			b, ok := popBlock(&st.edges)
			if !ok {
				return failure.Retryf("only %d edge cells for %d players", i, nplayers)
			}
			if err := st.setHomeSegment(b, 1, 1); err != nil {
				return err
			}
		}
	}

	for _, cat := range q.RequiredSegments {
		b, ok := st.popEdgeOrBlock()
		if !ok {
			return failure.Retryf("no cell left for a segment of category %d", cat)
		}
		ref, ok := st.catalog.SpecialSegment(st.rng, cat, st.used.Has)
		if !ok {
			return fmt.Errorf("required segment category %d: %w", cat, ErrUnknownCategory)
		}
		st.distribute(st.addSegment(ref, b), 0)
	}

	// special edges only ever hold required segments
	st.edges = slices.DeleteFunc(st.edges, func(b blockPos) bool { return b.special })

	if q.Home == quest.HomeClose {
		if most := st.catalog.MaxHomes(); nplayers > most {
			return failure.Retryf("%d players share one home segment but the most homes any segment has is %d", nplayers, most)
		}
		b, ok := st.popEdgeOrBlock()
		if !ok {
			return failure.Retryf("no cell left for the shared home segment")
		}
		if err := st.setHomeSegment(b, nplayers, nplayers); err != nil {
			return err
		}
	}

	st.blocks = append(st.blocks, st.edges...)
	st.edges = nil
	random.ShuffleSlice(st.rng, st.blocks)

	for len(st.blocks) > 0 {
		h := homesRequired - len(st.assigned) - len(st.unassigned)
		n := len(st.blocks)

		minHomes := 0
		switch {
		case h > 2*n:
			return failure.Retryf("%d more homes needed but only %d cells left", h, n)
		case h == 2*n:
			minHomes = 2
		case h == 2*n-1:
			minHomes = 1
		}

		b, _ := popBlock(&st.blocks)
		if err := st.setHomeSegment(b, minHomes, 0); err != nil {
			return err
		}
	}

	if homesRequired > 0 && len(st.assigned) < nplayers {
		need := nplayers - len(st.assigned)
		if len(st.unassigned) < need {
			return failure.Retryf("%d homes for %d players", len(st.assigned)+len(st.unassigned), nplayers)
		}
		random.ShuffleSlice(st.rng, st.unassigned)
		st.assigned = append(st.assigned, st.unassigned[:need]...)
		st.unassigned = slices.Delete(st.unassigned, 0, need)
	}

	random.ShuffleSlice(st.rng, st.assigned)
	return nil
}

// setHomeSegment puts an ordinary segment with at least minHomes homes in
// the cell and assigns assign of them to players. A segment already in
// the dungeon is only reused when no fresh one turns up.
func (st *state) setHomeSegment(b blockPos, minHomes, assign int) error {
	ref := segment.NoSegment
	for i := 0; i < segmentTries; i++ {
		r, ok := st.catalog.HomeSegment(st.rng, minHomes)
		if !ok {
			break
		}
		ref = r
		if !st.used.Has(r) {
			break
		}
	}
	if ref == segment.NoSegment {
		return failure.Retryf("no segment with %d homes", minHomes)
	}
	st.distribute(st.addSegment(ref, b), assign)
	return nil
}

// addSegment places a segment with a random turn and returns its homes
func (st *state) addSegment(ref segment.Ref, b blockPos) []Anchor {
	c := st.cell(b.x, b.y)
	c.ref = ref
	c.reflect, c.nrot = false, 0
	if st.catalog.Segment(ref).IsSquare() {
		c.reflect = st.rng.Bool()
		c.nrot = st.rng.Intn(4)
	}
	st.used.Put(ref)

	homes := st.anchors(b.x, b.y)
	st.allHomes = append(st.allHomes, homes...)
	return homes
}

// distribute hands assign randomly chosen ordinary homes to players and
// keeps the rest spare
func (st *state) distribute(homes []Anchor, assign int) {
	homes = slices.Clone(homes)
	random.ShuffleSlice(st.rng, homes)
	for _, h := range homes {
		switch {
		case h.SpecialExit:
		case assign > 0:
			st.assigned = append(st.assigned, h)
			assign--
		default:
			st.unassigned = append(st.unassigned, h)
		}
	}
}

func popBlock(list *[]blockPos) (blockPos, bool) {
	n := len(*list)
	if n == 0 {
		return blockPos{}, false
	}
	b := (*list)[n-1]
	*list = (*list)[:n-1]
	return b, true
}

// popEdgeOrBlock prefers an edge cell
func (st *state) popEdgeOrBlock() (blockPos, bool) {
	if b, ok := popBlock(&st.edges); ok {
		return b, true
	}
	return popBlock(&st.blocks)
}
