package setup

import (
	"testing"

	"dungeongen/pkg/engine/world"
)

var (
	testKey1      = &world.ItemType{Name: "key1", Key: 1}
	testKey2      = &world.ItemType{Name: "key2", Key: 2}
	testLockpicks = &world.ItemType{Name: "lockpicks", Key: world.Lockpick}
	testGem       = world.NewItemType("gem")
)

func floorTile() *world.Tile {
	t := world.NewTile("floor", world.AccessClear)
	t.ItemsAllowed = true
	t.ItemCategory = 0
	return t
}

func bareFloorTile() *world.Tile {
	t := world.NewTile("bare floor", world.AccessClear)
	return t
}

func wallTile() *world.Tile {
	return world.NewTile("wall", world.AccessBlocked)
}

func ironDoor(lock int) *world.Tile {
	t := world.NewTile("iron door", world.AccessBlocked)
	t.Lock = &world.Lock{Num: lock, KeyMax: 1}
	return t
}

func woodenDoor(lock int) *world.Tile {
	t := ironDoor(lock)
	t.Name = "wooden door"
	t.Destructible = true
	return t
}

func chestTile() *world.Tile {
	t := world.NewTile("chest", world.AccessApproach)
	t.Container = true
	t.ItemCategory = 1
	t.Lock = world.NewLock(0, 0, 1)
	return t
}

// buildMap turns rows of symbols into a map:
//
//	'#' wall  '.' floor  ',' floor that takes no items  's' floor (returned as start)
//	'S' floor that takes no items (returned as start)
//	'a' key 1 on floor  'b' key 2 on floor  '1'/'2' iron doors locked with that key
//	'w' locked wooden door  'c' chest on floor  'T' tutorial floor  '>' stairs
func buildMap(t *testing.T, rows ...string) (*world.Map, world.Coord) {
	t.Helper()
	dmap := world.NewMap(len(rows[0]), len(rows))
	var start world.Coord
	for y, row := range rows {
		if len(row) != dmap.Width() {
			t.Fatalf("row %d has length %d, want %d", y, len(row), dmap.Width())
		}
		for x, ch := range row {
			pos := world.Coord{X: x, Y: y}
			switch ch {
			case '#':
				dmap.AddTile(pos, wallTile())
			case '.':
				dmap.AddTile(pos, floorTile())
			case ',':
				dmap.AddTile(pos, bareFloorTile())
			case 's':
				dmap.AddTile(pos, floorTile())
				start = pos
			case 'S':
				dmap.AddTile(pos, bareFloorTile())
				start = pos
			case 'a':
				dmap.AddTile(pos, floorTile())
				dmap.AddItem(pos, world.NewItem(testKey1, 1))
			case 'b':
				dmap.AddTile(pos, floorTile())
				dmap.AddItem(pos, world.NewItem(testKey2, 1))
			case '1':
				dmap.AddTile(pos, ironDoor(1))
			case '2':
				dmap.AddTile(pos, ironDoor(2))
			case 'w':
				dmap.AddTile(pos, woodenDoor(1))
			case 'c':
				dmap.AddTile(pos, floorTile())
				dmap.AddTile(pos, chestTile())
			case 'T':
				tut := floorTile()
				tut.TutorialKey = 3
				dmap.AddTile(pos, tut)
			case '>':
				stairs := floorTile()
				stairs.Stair = true
				dmap.AddTile(pos, stairs)
			default:
				t.Fatalf("unknown map symbol %q", ch)
			}
		}
	}
	return dmap, start
}
