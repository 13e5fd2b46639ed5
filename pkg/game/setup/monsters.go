// Package setup dresses a materialised dungeon: locks, traps, items and
// monsters, plus the checks that decide whether the result is playable.
package setup

import (
	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/quest"
)

const monsterTries = 10

// ApplyMonsterLimits records the per-type and total ceilings on the manager
func ApplyMonsterLimits(mm *world.MonsterManager, limits []quest.MonsterLimit, total int) {
	for _, l := range limits {
		mm.LimitMonster(l.Type, l.Max)
	}
	mm.LimitTotal(total)
}

// GenerateMonsters tries to place count monsters of one type on random
// clear, non-stair squares. A monster that finds no square in ten tries is
// skipped. Returns the number placed.
func GenerateMonsters(rng random.Source, dmap *world.Map, mm *world.MonsterManager, mt *world.MonsterType, count int) int {
	w, h := dmap.Width(), dmap.Height()
	if w == 0 || h == 0 {
		return 0
	}
	placed := 0
	for i := 0; i < count; i++ {
		if !mm.CanPlace(mt) {
			break
		}
		for try := 0; try < monsterTries; try++ {
			pos := world.Coord{X: rng.Intn(w), Y: rng.Intn(h)}
			if dmap.Access(pos, mt.Height) != world.AccessClear {
				continue
			}
			if hasStair(dmap.Tiles(pos)) {
				continue
			}
			// facing is arbitrary; the monster turns as soon as it moves
			if mm.PlaceMonster(dmap, mt, pos, world.North) {
				placed++
			}
			break
		}
	}
	return placed
}

func hasStair(tiles []*world.Tile) bool {
	for _, t := range tiles {
		if t.Stair {
			return true
		}
	}
	return false
}
