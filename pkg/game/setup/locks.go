// Package setup dresses a materialised dungeon: locks, traps, items and
// monsters, plus the checks that decide whether the result is playable.
package setup

import (
	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
)

// GenerateLocksAndTraps visits every lockable tile. On pretrapped quests a
// trap is tried first; a tile that gets no trap gets a lock drawn for nkeys keys.
func GenerateLocksAndTraps(rng random.Source, dmap *world.Map, nkeys int, pretrapped bool) (locks, traps int) {
	dmap.ForEachSquare(func(pos world.Coord) {
		for _, t := range dmap.Tiles(pos) {
			if !t.IsLockable() {
				continue
			}
			if pretrapped && t.GenerateTrap(rng) {
				traps++
				continue
			}
			t.Lock.Generate(rng, nkeys)
			if t.Lock.IsLocked() {
				locks++
			}
		}
	})
	return locks, traps
}
