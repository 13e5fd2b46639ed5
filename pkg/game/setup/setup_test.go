package setup

import (
	"errors"
	"testing"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
	"dungeongen/pkg/game/quest"
)

func TestFindItemCategory(t *testing.T) {
	dmap, _ := buildMap(t, "#.,c.")
	tests := []struct {
		name string
		pos  world.Coord
		want int
	}{
		{"wall", world.Coord{X: 0}, -1},
		{"floor", world.Coord{X: 1}, 0},
		{"floor without items", world.Coord{X: 2}, -1},
		{"chest on floor", world.Coord{X: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FindItemCategory(dmap, tt.pos); got != tt.want {
				t.Errorf("FindItemCategory(%s) = %d, want %d", tt.pos, got, tt.want)
			}
		})
	}

	dmap.AddItem(world.Coord{X: 4}, world.NewItem(testGem, 1))
	if got := FindItemCategory(dmap, world.Coord{X: 4}); got != -1 {
		t.Errorf("occupied floor category = %d, want -1", got)
	}
	PlaceItem(dmap, world.Coord{X: 3}, world.NewItem(testGem, 1))
	if got := FindItemCategory(dmap, world.Coord{X: 3}); got != -1 {
		t.Errorf("full chest category = %d, want -1", got)
	}
}

func TestGenerateRequiredItem_UsesWeightedCategory(t *testing.T) {
	dmap, _ := buildMap(t, "cc.cc")
	stuff := quest.NewStuffTable()
	stuff.SetStuff(0, 0, nil, 0)
	stuff.SetStuff(1, 0, nil, 1)

	rng := random.New(9)
	for i := 0; i < 2; i++ {
		if err := GenerateRequiredItem(rng, dmap, testGem, stuff); err != nil {
			t.Fatalf("GenerateRequiredItem #%d: %v", i, err)
		}
	}
	if dmap.Item(world.Coord{X: 2}) != nil {
		t.Error("item placed on the zero-weight floor while chests were free")
	}
	full := 0
	for _, x := range []int{0, 1, 3, 4} {
		if FindItemCategory(dmap, world.Coord{X: x}) == -1 {
			full++
		}
	}
	if full != 2 {
		t.Errorf("%d chests filled, want 2", full)
	}
}

func TestGenerateRequiredItem_LastTryFallsBack(t *testing.T) {
	// nothing has the weighted category; the last try takes any allowed square
	dmap, _ := buildMap(t, "...")
	stuff := quest.NewStuffTable()
	stuff.SetStuff(0, 0, nil, 0)
	stuff.SetStuff(1, 0, nil, 1)

	if err := GenerateRequiredItem(random.New(5), dmap, testGem, stuff); err != nil {
		t.Fatalf("fallback placement: %v", err)
	}
	items := 0
	dmap.ForEachSquare(func(pos world.Coord) {
		if dmap.Item(pos) != nil {
			items++
		}
	})
	if items != 1 {
		t.Errorf("%d items on the floor, want 1", items)
	}
}

func TestGenerateRequiredItem_ForbiddenCategoryFails(t *testing.T) {
	dmap, _ := buildMap(t, "#...#")
	stuff := quest.NewStuffTable()
	stuff.SetStuff(0, 0, nil, -1)
	stuff.SetStuff(1, 0, nil, 2)

	err := GenerateRequiredItem(random.New(2), dmap, testGem, stuff)
	if !failure.IsRetryable(err) {
		t.Errorf("err = %v, want retryable failure", err)
	}

	empty := quest.NewStuffTable()
	if err := GenerateRequiredItem(random.New(2), dmap, testGem, empty); !errors.Is(err, ErrNoItemWeights) {
		t.Errorf("err = %v, want ErrNoItemWeights", err)
	}
}

func TestGenerateStuff(t *testing.T) {
	dmap, _ := buildMap(t,
		"#####",
		"#...#",
		"#.c.#",
		"#####",
	)
	stuff := quest.NewStuffTable()
	stuff.SetStuff(0, 1, quest.NewFixedGenerator("gem", testGem, 2, 2), 1)

	placed := GenerateStuff(random.New(3), dmap, stuff)
	if placed != 5 {
		t.Errorf("placed %d items, want one per floor square (5)", placed)
	}
	if item := dmap.Item(world.Coord{X: 1, Y: 1}); item == nil || item.Count != 2 {
		t.Errorf("floor item = %v, want 2 gems", item)
	}
	if dmap.Item(world.Coord{X: 2, Y: 2}) != nil {
		t.Error("chest square got loot but category 1 has no rule")
	}
}

func TestGenerateLocksAndTraps(t *testing.T) {
	dmap := world.NewMap(3, 1)
	trapped := chestTile()
	trapped.TrapChance = 1
	trapped.Traps = []world.TrapKind{{Name: "poison needle"}}
	dmap.AddTile(world.Coord{X: 0}, trapped)

	door := world.NewTile("door", world.AccessBlocked)
	door.Lock = world.NewLock(1, 0, 1)
	dmap.AddTile(world.Coord{X: 1}, door)

	special := world.NewTile("portcullis", world.AccessBlocked)
	special.Lock = world.NewSpecialLock()
	dmap.AddTile(world.Coord{X: 2}, special)

	locks, traps := GenerateLocksAndTraps(random.New(1), dmap, 1, true)
	if traps != 1 || trapped.Trap == nil {
		t.Errorf("traps = %d, want the chest trapped", traps)
	}
	if trapped.Lock.Num != world.LockNotGenerated {
		t.Errorf("trapped chest got lock %d, want none generated", trapped.Lock.Num)
	}
	if door.Lock.Num != 1 {
		t.Errorf("door lock = %d, want 1", door.Lock.Num)
	}
	if special.Lock.Num != world.LockSpecial {
		t.Errorf("special lock changed to %d", special.Lock.Num)
	}
	if locks != 2 {
		t.Errorf("locks = %d, want 2 (door and special)", locks)
	}
}

func TestGenerateMonsters(t *testing.T) {
	dmap, _ := buildMap(t, ".>.")
	mm := world.NewMonsterManager()
	zombie := &world.MonsterType{Name: "zombie"}
	ApplyMonsterLimits(mm, []quest.MonsterLimit{{Type: zombie, Max: 5}}, world.NoLimit)

	placed := GenerateMonsters(random.New(8), dmap, mm, zombie, 50)
	if placed > 2 {
		t.Errorf("placed %d monsters on a map with two free squares", placed)
	}
	if placed == 0 {
		t.Error("placed no monsters")
	}
	if dmap.Monster(world.Coord{X: 1}) != nil {
		t.Error("monster placed on the stairs")
	}
	if mm.Count(zombie) != placed {
		t.Errorf("manager count %d, placed %d", mm.Count(zombie), placed)
	}
}

func TestGenerateMonsters_RespectsLimit(t *testing.T) {
	dmap, _ := buildMap(t,
		"........",
		"........",
	)
	mm := world.NewMonsterManager()
	bat := &world.MonsterType{Name: "bat", Height: world.HeightFlying}
	ApplyMonsterLimits(mm, nil, 3)
	if placed := GenerateMonsters(random.New(2), dmap, mm, bat, 10); placed > 3 {
		t.Errorf("placed %d bats past a total limit of 3", placed)
	}
	if mm.TotalLimit() != 3 {
		t.Errorf("total limit = %d, want 3", mm.TotalLimit())
	}
}

func TestCheckTutorial(t *testing.T) {
	// home tile is the wall at (2,0); the start square is (2,1) facing north
	start := world.Coord{X: 2, Y: 1}

	dmap, _ := buildMap(t,
		"#####",
		"#...#",
		"#...#",
		"#####",
	)
	if err := CheckTutorial(dmap, start, world.North); err != nil {
		t.Errorf("clean start: %v", err)
	}

	withItem, _ := buildMap(t,
		"#####",
		"#...#",
		"#...#",
		"#####",
	)
	withItem.AddItem(world.Coord{X: 3, Y: 2}, world.NewItem(testGem, 1))
	if err := CheckTutorial(withItem, start, world.North); !failure.IsRetryable(err) {
		t.Errorf("item next to start: err = %v, want retryable", err)
	}

	withTutorial, _ := buildMap(t,
		"#####",
		"#.T.#",
		"#...#",
		"#####",
	)
	// the tutorial tile is the home square itself
	if err := CheckTutorial(withTutorial, world.Coord{X: 2, Y: 2}, world.North); err != nil {
		t.Errorf("tutorial tile on the home square: %v", err)
	}
	if err := CheckTutorial(withTutorial, world.Coord{X: 2, Y: 2}, world.South); !failure.IsRetryable(err) {
		t.Errorf("tutorial tile next to start: err = %v, want retryable", err)
	}

	locked, _ := buildMap(t,
		"#####",
		"#...w",
		"#...#",
		"#####",
	)
	locked.Rooms().AddRoom(world.Coord{}, 5, 4)
	locked.Rooms().DoneAddingRooms(nil)
	if err := CheckTutorial(locked, world.Coord{X: 1, Y: 2}, world.West); !failure.IsRetryable(err) {
		t.Errorf("locked wooden door in the start room: err = %v, want retryable", err)
	}
}
