// Package setup dresses a materialised dungeon: locks, traps, items and
// monsters, plus the checks that decide whether the result is playable.
package setup

import (
	"cmp"
	"slices"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
)

const lockpickTries = 10

// CheckConnectivity proves that every key (or the lock picks) can be
// collected from start. The search walks the map breadth first, picking up
// keys as it goes and re-trying doors that were locked when a new key turns
// up. If the proof fails, lock picks are dropped on a random reachable
// square and its position is returned. If nowhere qualifies the attempt fails.
func CheckConnectivity(rng random.Source, dmap *world.Map, start world.Coord, numKeys int, lockpicks *world.ItemType) (*world.Coord, error) {
	if numKeys <= 0 {
		return nil, nil
	}

	open := queue.New[world.Coord]()
	visited := mapset.New[world.Coord]()
	blocked := mapset.New[world.Coord]()
	locked := mapset.New[world.Coord]()
	keys := mapset.New[int]()

	open.Enqueue(start)
	for !open.Empty() {
		pos := open.Dequeue()
		if !dmap.Valid(pos) || visited.Has(pos) || blocked.Has(pos) || locked.Has(pos) {
			continue
		}

		tiles := dmap.Tiles(pos)

		if itype := itemAt(dmap, pos, tiles); itype != nil {
			if itype.IsLockpick() {
				return nil, nil
			}
			if k := itype.KeyNumber(); k > 0 {
				keys.Put(k)
				if keys.Size() >= numKeys {
					return nil, nil
				}
				// the new key may open doors we already bounced off
				for _, c := range sortedCoords(&locked) {
					open.Enqueue(c)
				}
				locked = mapset.New[world.Coord]()
			}
		}

		through, isLocked := passable(tiles, &keys)
		if through {
			for _, n := range pos.Neighbors() {
				open.Enqueue(n)
			}
		}

		switch {
		case isLocked:
			locked.Put(pos)
		case through:
			visited.Put(pos)
		default:
			blocked.Put(pos)
		}
	}

	if lockpicks == nil {
		return nil, failure.Retryf("keys unreachable from %s and no lock picks configured", start)
	}

	squares := sortedCoords(&visited)
	if len(squares) > 0 {
		for i := 0; i < lockpickTries; i++ {
			pos := random.Pick(rng, squares)
			if FindItemCategory(dmap, pos) < 0 {
				continue
			}
			// lock picks hidden in a barrel might never be found
			if hasContainer(dmap.Tiles(pos)) {
				continue
			}
			if PlaceItem(dmap, pos, world.NewItem(lockpicks, 1)) {
				return &pos, nil
			}
		}
	}
	return nil, failure.Retryf("keys unreachable from %s and nowhere to drop lock picks", start)
}

// itemAt returns the type of the item on the floor, or else of the first
// item hidden in a container on the square
func itemAt(dmap *world.Map, pos world.Coord, tiles []*world.Tile) *world.ItemType {
	if item := dmap.Item(pos); item != nil {
		return item.Type
	}
	for _, t := range tiles {
		if item := t.PlacedItem(); item != nil {
			return item.Type
		}
	}
	return nil
}

// passable decides whether the walker can cross a square with the keys it
// holds. isLocked is set when a key it does not have would open the way.
func passable(tiles []*world.Tile, keys *mapset.Set[int]) (through, isLocked bool) {
	for _, t := range tiles {
		switch t.Connectivity {
		case world.ConnectivityImpassable:
			return false, false
		case world.ConnectivityPassable:
			continue
		}

		if t.Access(world.HeightWalking) == world.AccessClear {
			continue
		}
		if t.Destructible {
			continue
		}
		if t.IsLockable() {
			// unlocked and lever-operated locks report 0; levers are assumed reachable
			n := t.Lock.KeyNumber()
			if n > 0 && !keys.Has(n) {
				return false, true
			}
			return true, false
		}
		return false, false
	}
	return true, false
}

func hasContainer(tiles []*world.Tile) bool {
	for _, t := range tiles {
		if t.CanPlaceItem() {
			return true
		}
	}
	return false
}

// sortedCoords returns the members of a set in row-major order so that
// random choices among them replay identically
func sortedCoords(s *mapset.Set[world.Coord]) []world.Coord {
	out := make([]world.Coord, 0, s.Size())
	s.Each(func(c world.Coord) {
		out = append(out, c)
	})
	slices.SortFunc(out, func(a, b world.Coord) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return out
}
