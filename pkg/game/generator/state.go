package generator

import (
	"github.com/zyedidia/generic/mapset"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/layout"
	"dungeongen/pkg/game/segment"
)

// blockPos is a layout cell waiting for a segment
type blockPos struct {
	x, y    int
	special bool
}

// cellInfo is the segment placed in a layout cell and how it is turned
type cellInfo struct {
	ref     segment.Ref
	reflect bool
	nrot    int
}

// state is owned by a single attempt and thrown away when it fails
type state struct {
	rng     random.Source
	catalog *segment.Catalog

	lw, lh int // layout size in cells, shrinks during compression
	rw, rh int // segment size in squares

	cells     []cellInfo
	horizOpen []bool // (lw-1)*lh
	vertOpen  []bool // lw*(lh-1)

	// pending cells, popped from the back
	blocks []blockPos
	edges  []blockPos

	used mapset.Set[segment.Ref]

	allHomes   []Anchor
	assigned   []Anchor
	unassigned []Anchor // ordinary homes only; special exits join when promoted
	exits      []Anchor
}

func newState(rng random.Source, catalog *segment.Catalog, l *layout.Layout) *state {
	st := &state{
		rng:       rng,
		catalog:   catalog,
		lw:        l.Width(),
		lh:        l.Height(),
		cells:     make([]cellInfo, l.Width()*l.Height()),
		horizOpen: make([]bool, (l.Width()-1)*l.Height()),
		vertOpen:  make([]bool, l.Width()*(l.Height()-1)),
		used:      mapset.New[segment.Ref](),
	}
	st.rw, st.rh = catalog.Size()

	for y := 0; y < st.lh; y++ {
		for x := 0; x < st.lw; x++ {
			st.cells[y*st.lw+x].ref = segment.NoSegment
			switch l.Block(x, y) {
			case layout.Block:
				st.blocks = append(st.blocks, blockPos{x: x, y: y})
			case layout.Edge:
				st.edges = append(st.edges, blockPos{x: x, y: y})
			case layout.SpecialEdge:
				st.edges = append(st.edges, blockPos{x: x, y: y, special: true})
			}
			if x < st.lw-1 {
				st.horizOpen[y*(st.lw-1)+x] = l.HorizOpen(x, y)
			}
			if y < st.lh-1 {
				st.vertOpen[y*st.lw+x] = l.VertOpen(x, y)
			}
		}
	}

	random.ShuffleSlice(rng, st.blocks)
	random.ShuffleSlice(rng, st.edges)
	return st
}

func (st *state) cell(x, y int) *cellInfo {
	return &st.cells[y*st.lw+x]
}

func (st *state) occupied(x, y int) bool {
	return st.cell(x, y).ref != segment.NoSegment
}

// corner returns the map square where the top-left of cell (x,y) goes.
// Every cell is surrounded by a one square wall shared with its neighbours.
func (st *state) corner(x, y int) world.Coord {
	return world.Coord{X: x*(st.rw+1) + 1, Y: y*(st.rh+1) + 1}
}

// anchors returns the homes of the segment in cell (x,y) in map coordinates
func (st *state) anchors(x, y int) []Anchor {
	c := st.cell(x, y)
	seg := st.catalog.Segment(c.ref)
	if seg == nil {
		return nil
	}
	base := st.corner(x, y)
	homes := seg.Homes(c.reflect, c.nrot)
	out := make([]Anchor, len(homes))
	for i, h := range homes {
		out[i] = Anchor{
			Pos:         world.Coord{X: base.X + h.X, Y: base.Y + h.Y},
			Facing:      h.Facing,
			SpecialExit: h.SpecialExit,
		}
	}
	return out
}
