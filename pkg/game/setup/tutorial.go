// Package setup dresses a materialised dungeon: locks, traps, items and
// monsters, plus the checks that decide whether the result is playable.
package setup

import (
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
)

// CheckTutorial validates the start of a tutorial dungeon. start is the
// floor square in front of the home and facing points at the home. The
// start square and its neighbours (except the home itself) must hold no
// tutorial tiles and no items, and wooden doors in the starting rooms must
// be unlocked.
func CheckTutorial(dmap *world.Map, start world.Coord, facing world.Direction) error {
	home := start.Displace(facing)
	for y := start.Y - 1; y <= start.Y+1; y++ {
		for x := start.X - 1; x <= start.X+1; x++ {
			pos := world.Coord{X: x, Y: y}
			if !dmap.Valid(pos) || pos == home {
				continue
			}
			for _, t := range dmap.Tiles(pos) {
				if t.TutorialKey > 0 {
					return failure.Retryf("tutorial tile %s next to the start at %s", t.Name, pos)
				}
			}
			if dmap.Item(pos) != nil {
				return failure.Retryf("item next to the tutorial start at %s", pos)
			}
		}
	}

	for _, r := range dmap.Rooms().RoomsAt(start) {
		room, _ := dmap.Rooms().Room(r)
		for y := 0; y < room.Height; y++ {
			for x := 0; x < room.Width; x++ {
				pos := world.Coord{X: room.TopLeft.X + x, Y: room.TopLeft.Y + y}
				for _, t := range dmap.Tiles(pos) {
					if t.IsLockable() && t.Destructible && t.Lock.IsLocked() {
						return failure.Retryf("locked wooden door at %s in the tutorial start room", pos)
					}
				}
			}
		}
	}
	return nil
}
