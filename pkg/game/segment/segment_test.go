package segment

import (
	"errors"
	"testing"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
)

func TestSegment_HomesTransform(t *testing.T) {
	s := New("corner", 3, 3)
	s.AddHome(0, 1, world.East, false)

	tests := []struct {
		name    string
		reflect bool
		nrot    int
		want    Home
	}{
		{"identity", false, 0, Home{X: 0, Y: 1, Facing: world.East}},
		{"reflect", true, 0, Home{X: 2, Y: 1, Facing: world.West}},
		{"rotate once", false, 1, Home{X: 1, Y: 0, Facing: world.South}},
		{"rotate twice", false, 2, Home{X: 2, Y: 1, Facing: world.West}},
		{"reflect and rotate", true, 1, Home{X: 1, Y: 2, Facing: world.North}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Homes(tt.reflect, tt.nrot)
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("Homes(%v, %d) = %+v, want %+v", tt.reflect, tt.nrot, got, tt.want)
			}
		})
	}
}

type countingSink struct {
	mm *world.MonsterManager
	n  int
}

func (c *countingSink) PlaceMonster(dmap *world.Map, mt *world.MonsterType, pos world.Coord, facing world.Direction) bool {
	c.n++
	return c.mm.PlaceMonster(dmap, mt, pos, facing)
}

func TestSegment_CopyToMapUsesVariantsAndClones(t *testing.T) {
	hdoor := world.NewTile("hdoor", world.AccessBlocked)
	vdoor := world.NewTile("vdoor", world.AccessBlocked)
	hdoor.Rotated = vdoor
	vdoor.Rotated = hdoor
	floor := world.NewTile("floor", world.AccessClear)

	s := New("room", 2, 2)
	s.AddTile(0, 0, floor)
	s.AddTile(0, 0, hdoor)
	s.AddItem(1, 1, world.NewItemType("gem"), 2)
	s.AddMonster(1, 0, &world.MonsterType{Name: "vampire bat"}, world.North)
	s.AddRoom(0, 0, 2, 1)

	dmap := world.NewMap(4, 4)
	sink := &countingSink{mm: world.NewMonsterManager()}
	if err := s.CopyToMap(dmap, sink, world.Coord{X: 1, Y: 1}, false, 1); err != nil {
		t.Fatalf("CopyToMap: %v", err)
	}

	// (0,0) rotates to (1,0); corner offset (1,1)
	tiles := dmap.Tiles(world.Coord{X: 2, Y: 1})
	if len(tiles) != 2 || tiles[0].Name != "floor" || tiles[1].Name != "vdoor" {
		t.Fatalf("rotated square tiles = %v", tiles)
	}
	if tiles[1] == vdoor {
		t.Error("map holds the template tile instead of a clone")
	}
	// (1,1) rotates to (0,1)
	if item := dmap.Item(world.Coord{X: 1, Y: 2}); item == nil || item.Count != 2 {
		t.Errorf("item not copied to rotated position, got %v", item)
	}
	// (1,0) rotates to (1,1)
	mon := dmap.Monster(world.Coord{X: 2, Y: 2})
	if mon == nil || mon.Facing != world.East {
		t.Errorf("monster = %+v, want facing east at 2,2", mon)
	}
	if sink.n != 1 {
		t.Errorf("sink called %d times, want 1", sink.n)
	}
	// 2x1 room becomes 1x2 after a quarter turn
	room, ok := dmap.Rooms().Room(0)
	if !ok || room.Width != 1 || room.Height != 2 || room.TopLeft != (world.Coord{X: 2, Y: 1}) {
		t.Errorf("room = %+v", room)
	}
}

func TestSegment_CopyToMapRejectsTransformedRectangles(t *testing.T) {
	s := New("long", 3, 2)
	dmap := world.NewMap(5, 5)
	if err := s.CopyToMap(dmap, nil, world.Coord{}, true, 0); !errors.Is(err, ErrNotSquare) {
		t.Errorf("reflect: got %v, want ErrNotSquare", err)
	}
	if err := s.CopyToMap(dmap, nil, world.Coord{}, false, 4); !errors.Is(err, ErrRotation) {
		t.Errorf("nrot=4: got %v, want ErrRotation", err)
	}
	if err := s.CopyToMap(dmap, nil, world.Coord{}, false, 0); err != nil {
		t.Errorf("untransformed copy: %v", err)
	}
}

func TestCatalog_HomeSegmentRespectsMinimum(t *testing.T) {
	none := New("none", 3, 3)
	one := New("one", 3, 3)
	one.AddHome(0, 0, world.North, false)
	two := New("two", 3, 3)
	two.AddHome(0, 0, world.North, false)
	two.AddHome(2, 2, world.South, false)
	two.AddHome(1, 1, world.South, true)
	exit := New("exit", 3, 3)
	exit.Category = 4
	exit.AddHome(1, 1, world.West, true)

	c, err := NewCatalog([]*Segment{none, one, two, exit})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if c.MaxHomes() != 2 {
		t.Errorf("MaxHomes = %d, want 2 (special exits do not count)", c.MaxHomes())
	}

	rng := random.New(3)
	for i := 0; i < 40; i++ {
		ref, ok := c.HomeSegment(rng, 2)
		if !ok || c.Segment(ref) != two {
			t.Fatalf("HomeSegment(2) = %v, %v", ref, ok)
		}
		ref, ok = c.HomeSegment(rng, 0)
		if !ok || c.Segment(ref) == exit {
			t.Fatalf("HomeSegment(0) returned a category segment")
		}
	}
	if _, ok := c.HomeSegment(rng, 3); ok {
		t.Error("HomeSegment(3) succeeded with no such segment")
	}
	if ref, ok := c.SpecialSegment(rng, 4, nil); !ok || c.Segment(ref) != exit {
		t.Errorf("SpecialSegment(4) = %v, %v", ref, ok)
	}
	if _, ok := c.SpecialSegment(rng, 5, nil); ok {
		t.Error("SpecialSegment(5) succeeded for unknown category")
	}
}

func TestCatalog_SpecialSegmentPrefersUnused(t *testing.T) {
	plain := New("plain", 3, 3)
	vaultA := New("vault A", 3, 3)
	vaultA.Category = 1
	vaultB := New("vault B", 3, 3)
	vaultB.Category = 1
	c, err := NewCatalog([]*Segment{plain, vaultA, vaultB})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	rng := random.New(8)
	usedA := func(r Ref) bool { return c.Segment(r) == vaultA }
	usedBoth := func(r Ref) bool { return c.Segment(r).Category == 1 }
	sawA, sawB := false, false
	for i := 0; i < 40; i++ {
		ref, ok := c.SpecialSegment(rng, 1, usedA)
		if !ok || c.Segment(ref) != vaultB {
			t.Fatalf("SpecialSegment with vault A used = %v, %v, want vault B", ref, ok)
		}
		// once all are used any may come back
		ref, ok = c.SpecialSegment(rng, 1, usedBoth)
		if !ok {
			t.Fatal("SpecialSegment failed with every vault used")
		}
		switch c.Segment(ref) {
		case vaultA:
			sawA = true
		case vaultB:
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Errorf("reuse draws saw A=%v B=%v, want both", sawA, sawB)
	}
}

func TestCatalog_CategoryHasSpecialExit(t *testing.T) {
	stairs := New("stairs", 3, 3)
	stairs.Category = 1
	stairs.AddHome(1, 1, world.North, true)
	vault := New("vault", 3, 3)
	vault.Category = 2
	vault.AddHome(1, 1, world.North, false)
	c, err := NewCatalog([]*Segment{New("plain", 3, 3), stairs, vault})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	tests := []struct {
		category int
		want     bool
	}{
		{1, true},
		{2, false},
		{3, false},
	}
	for _, tt := range tests {
		if got := c.CategoryHasSpecialExit(tt.category); got != tt.want {
			t.Errorf("CategoryHasSpecialExit(%d) = %v, want %v", tt.category, got, tt.want)
		}
	}
	if !stairs.HasSpecialExit() || vault.HasSpecialExit() {
		t.Error("HasSpecialExit disagrees with the homes added")
	}
}

func TestCatalog_Errors(t *testing.T) {
	if _, err := NewCatalog(nil); !errors.Is(err, ErrEmptyCatalog) {
		t.Errorf("empty: got %v, want ErrEmptyCatalog", err)
	}
	if _, err := NewCatalog([]*Segment{New("a", 3, 3), New("b", 4, 3)}); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("mixed sizes: got %v, want ErrSizeMismatch", err)
	}
}
