package generator

import (
	"strings"
	"testing"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/layout"
	"dungeongen/pkg/game/quest"
	"dungeongen/pkg/game/segment"
)

const segSize = 5

var (
	testWall  = world.NewTile("wall", world.AccessBlocked)
	testHDoor = world.NewTile("hdoor", world.AccessClear)
	testVDoor = world.NewTile("vdoor", world.AccessClear)
	testGem   = world.NewItemType("gem")
	testPicks = &world.ItemType{Name: "lockpicks", Key: world.Lockpick}
)

func testFloor() *world.Tile {
	t := world.NewTile("floor", world.AccessClear)
	t.ItemsAllowed = true
	t.ItemCategory = 0
	return t
}

// floorSegment is an open room with the given homes
func floorSegment(name string, homes ...segment.Home) *segment.Segment {
	seg := segment.New(name, segSize, segSize)
	floor := testFloor()
	for y := 0; y < segSize; y++ {
		for x := 0; x < segSize; x++ {
			seg.AddTile(x, y, floor)
		}
	}
	for _, h := range homes {
		seg.AddHome(h.X, h.Y, h.Facing, h.SpecialExit)
	}
	return seg
}

// hall has two homes, closet none
func testSegments() []*segment.Segment {
	return []*segment.Segment{
		floorSegment("hall",
			segment.Home{X: 2, Y: 0, Facing: world.North},
			segment.Home{X: 2, Y: 4, Facing: world.South},
		),
		floorSegment("closet"),
	}
}

func newTestGenerator(t *testing.T, extra ...*segment.Segment) *Generator {
	t.Helper()
	cat, err := segment.NewCatalog(append(testSegments(), extra...))
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	g, err := New(Config{
		Catalog:        cat,
		WallTiles:      []*world.Tile{testWall},
		HorizDoorTiles: []*world.Tile{testHDoor},
		VertDoorTiles:  []*world.Tile{testVDoor},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func mustLayout(t *testing.T, rows ...string) *layout.Layout {
	t.Helper()
	l, err := layout.FromRows(rows, nil)
	if err != nil {
		t.Fatalf("FromRows(%q): %v", rows, err)
	}
	return l
}

func testQuest(t *testing.T, home quest.HomeType, rows ...string) *quest.Quest {
	t.Helper()
	q := quest.New("test")
	q.Home = home
	q.Layouts = []*layout.Candidate{layout.NewCandidate("main", mustLayout(t, rows...))}
	q.Stuff.SetStuff(0, 0, nil, 1)
	return q
}

// render draws the top tile name's first letter of every square, plus
// items as '*', so two maps can be compared
func render(dmap *world.Map) string {
	var sb strings.Builder
	for y := 0; y < dmap.Height(); y++ {
		for x := 0; x < dmap.Width(); x++ {
			pos := world.Coord{X: x, Y: y}
			tiles := dmap.Tiles(pos)
			switch {
			case dmap.Item(pos) != nil:
				sb.WriteByte('*')
			case len(tiles) == 0:
				sb.WriteByte(' ')
			default:
				sb.WriteByte(tiles[len(tiles)-1].Name[0])
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func countTiles(dmap *world.Map, name string) int {
	n := 0
	dmap.ForEachSquare(func(pos world.Coord) {
		for _, t := range dmap.Tiles(pos) {
			if t.Name == name {
				n++
			}
		}
	})
	return n
}
