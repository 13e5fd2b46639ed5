package generator

import (
	"fmt"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/segment"
)

// materialize resets the map and copies every cell into it. Empty cells
// become solid wall, and every cell gets a wall border shared with its
// neighbours.
func (st *state) materialize(dmap *world.Map, monsters segment.MonsterSink, walls []*world.Tile) error {
	dmap.Create(st.lw*(st.rw+1)+1, st.lh*(st.rh+1)+1)

	for y := 0; y < st.lh; y++ {
		for x := 0; x < st.lw; x++ {
			corner := st.corner(x, y)
			c := st.cell(x, y)
			if c.ref == segment.NoSegment {
				for dy := 0; dy < st.rh; dy++ {
					for dx := 0; dx < st.rw; dx++ {
						setTiles(dmap, world.Coord{X: corner.X + dx, Y: corner.Y + dy}, walls)
					}
				}
				continue
			}
			seg := st.catalog.Segment(c.ref)
			if err := seg.CopyToMap(dmap, monsters, corner, c.reflect, c.nrot); err != nil {
				return fmt.Errorf("cell %d,%d: %w", x, y, err)
			}
		}
	}

	// room numbers must not give the layout away
	dmap.Rooms().DoneAddingRooms(st.rng.Shuffle)

	for ys := 0; ys < st.lh; ys++ {
		for xs := 0; xs < st.lw; xs++ {
			left, top := xs*(st.rw+1), ys*(st.rh+1)
			for x := 0; x < st.rw+2; x++ {
				setTiles(dmap, world.Coord{X: left + x, Y: top}, walls)
				setTiles(dmap, world.Coord{X: left + x, Y: top + st.rh + 1}, walls)
			}
			for y := 0; y < st.rh+2; y++ {
				setTiles(dmap, world.Coord{X: left, Y: top + y}, walls)
				setTiles(dmap, world.Coord{X: left + st.rw + 1, Y: top + y}, walls)
			}
		}
	}
	return nil
}

// setTiles replaces whatever is on a square with clones of tiles
func setTiles(dmap *world.Map, pos world.Coord, tiles []*world.Tile) {
	dmap.ClearTiles(pos)
	for _, t := range tiles {
		dmap.AddTile(pos, t.Clone())
	}
}
