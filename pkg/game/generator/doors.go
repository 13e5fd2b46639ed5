package generator

import (
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
)

const (
	doorTries        = 30
	doorsPerBoundary = 3
)

// knockThroughDoors carves up to three doors through every open wall
// between two occupied cells. The same square may be picked twice, so
// fewer doors is normal; none at all fails the attempt.
func (st *state) knockThroughDoors(dmap *world.Map, hdoor, vdoor []*world.Tile) error {
	// doors in horizontal walls, between (x,y) and (x,y+1)
	for x := 0; x < st.lw; x++ {
		for y := 0; y < st.lh-1; y++ {
			if !st.occupied(x, y) || !st.occupied(x, y+1) || !st.vertOpen[y*st.lw+x] {
				continue
			}
			placed := 0
			for i := 0; i < doorTries && placed < doorsPerBoundary; i++ {
				pos := world.Coord{
					X: st.rng.Intn(st.rw) + x*(st.rw+1) + 1,
					Y: (y + 1) * (st.rh + 1),
				}
				if placeDoor(dmap, pos, world.West, world.North, hdoor) {
					placed++
				}
			}
			if placed == 0 {
				return failure.Retryf("no door fits between cells %d,%d and %d,%d", x, y, x, y+1)
			}
		}
	}

	// doors in vertical walls, between (x,y) and (x+1,y)
	for x := 0; x < st.lw-1; x++ {
		for y := 0; y < st.lh; y++ {
			if !st.occupied(x, y) || !st.occupied(x+1, y) || !st.horizOpen[y*(st.lw-1)+x] {
				continue
			}
			placed := 0
			for i := 0; i < doorTries && placed < doorsPerBoundary; i++ {
				pos := world.Coord{
					X: (x + 1) * (st.rw + 1),
					Y: st.rng.Intn(st.rh) + y*(st.rh+1) + 1,
				}
				if placeDoor(dmap, pos, world.North, world.West, vdoor) {
					placed++
				}
			}
			if placed == 0 {
				return failure.Retryf("no door fits between cells %d,%d and %d,%d", x, y, x+1, y)
			}
		}
	}
	return nil
}

// placeDoor puts a door at pos if the squares it joins (along across) are
// open floor and the wall on either side (along side) is still solid
func placeDoor(dmap *world.Map, pos world.Coord, side, across world.Direction, door []*world.Tile) bool {
	front, back := pos.Displace(across), pos.Displace(across.Opposite())
	for _, p := range []world.Coord{front, back} {
		if dmap.Access(p, world.HeightWalking) != world.AccessClear {
			return false
		}
		// no doors onto stairs or pits
		tiles := dmap.Tiles(p)
		if len(tiles) == 0 {
			return false
		}
		for _, t := range tiles {
			if t.Stair || !t.ItemsAllowed {
				return false
			}
		}
	}

	// an open side means a door is already there
	if dmap.Access(pos.Displace(side), world.HeightWalking) != world.AccessBlocked {
		return false
	}
	if dmap.Access(pos.Displace(side.Opposite()), world.HeightWalking) != world.AccessBlocked {
		return false
	}

	if dmap.Rooms().IsCorner(pos) {
		return false
	}

	setTiles(dmap, pos, door)
	return true
}
