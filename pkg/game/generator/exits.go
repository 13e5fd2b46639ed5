package generator

import (
	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/game/failure"
	"dungeongen/pkg/game/quest"
)

// chooseExits gives every player an exit according to the exit policy
func (st *state) chooseExits(q *quest.Quest, nplayers int) error {
	st.exits = nil
	switch q.Exit {
	case quest.ExitSelf:
		st.exits = append(st.exits, st.assigned...)

	case quest.ExitOther:
		n := len(st.assigned)
		for i := 0; i < n; i++ {
			if n == 1 {
				st.exits = append(st.exits, st.assigned[0])
				break
			}
			j := st.rng.Intn(n - 1)
			if j >= i {
				j++
			}
			st.exits = append(st.exits, st.assigned[j])
		}

	case quest.ExitRandom:
		if len(st.unassigned) == 0 {
			return failure.Retryf("no spare home to use as an exit")
		}
		for i := 0; i < nplayers; i++ {
			st.exits = append(st.exits, random.Pick(st.rng, st.unassigned))
		}

	case quest.ExitSpecial:
		exit, ok := st.findSpecialExit(q.ExitCategory)
		if !ok {
			return failure.Retryf("no special exit in a segment of category %d", q.ExitCategory)
		}
		for i := 0; i < nplayers; i++ {
			st.exits = append(st.exits, exit)
		}
		st.unassigned = append(st.unassigned, exit)
	}
	return nil
}

// findSpecialExit scans the cells row by row for a segment of the given
// category and returns its first special exit home
func (st *state) findSpecialExit(category int) (Anchor, bool) {
	for y := 0; y < st.lh; y++ {
		for x := 0; x < st.lw; x++ {
			seg := st.catalog.Segment(st.cell(x, y).ref)
			if seg == nil || seg.Category != category {
				continue
			}
			for _, a := range st.anchors(x, y) {
				if a.SpecialExit {
					return a, true
				}
			}
		}
	}
	return Anchor{}, false
}
