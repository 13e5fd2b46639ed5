package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
	"dungeongen/pkg/game/layout"
	"dungeongen/pkg/game/quest"
	"dungeongen/pkg/game/segment"
)

var (
	ErrUnknownTile      = errors.New("unknown tile")
	ErrUnknownItem      = errors.New("unknown item")
	ErrUnknownMonster   = errors.New("unknown monster")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrUnknownGenerator = errors.New("unknown generator")
	ErrGeneratorCycle   = errors.New("generator refers to itself")
	ErrBadValue         = errors.New("invalid value")
)

// Setup is everything needed to generate a dungeon
type Setup struct {
	Quest     *quest.Quest
	Generator generator.Config

	Tiles    map[string]*world.Tile
	Items    map[string]*world.ItemType
	Monsters map[string]*world.MonsterType
	// SegmentCategories maps segment category indices back to names
	SegmentCategories []string
}

type builder struct {
	f          *File
	setup      *Setup
	categories map[string]int
	segCats    map[string]int
	generators map[string]*quest.ItemGenerator
}

// Build resolves the names in a parsed file into linked tiles, items,
// segments and a quest
func Build(f *File) (*Setup, error) {
	b := &builder{
		f: f,
		setup: &Setup{
			Tiles:             make(map[string]*world.Tile),
			Items:             make(map[string]*world.ItemType),
			Monsters:          make(map[string]*world.MonsterType),
			SegmentCategories: f.SegmentCategories,
		},
		categories: indexNames(f.Categories),
		segCats:    indexNames(f.SegmentCategories),
		generators: make(map[string]*quest.ItemGenerator),
	}

	steps := []struct {
		name string
		fn   func() error
	}{
		{"items", b.buildItems},
		{"monsters", b.buildMonsters},
		{"tiles", b.buildTiles},
		{"generators", b.buildGenerators},
		{"dungeon", b.buildDungeon},
		{"quest", b.buildQuest},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return nil, fmt.Errorf("failed to build %s: %w", step.name, err)
		}
	}
	return b.setup, nil
}

func indexNames(names []string) map[string]int {
	m := make(map[string]int, len(names))
	for i, n := range names {
		m[n] = i
	}
	return m
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func (b *builder) buildItems() error {
	for _, name := range sortedKeys(b.f.Items) {
		y := b.f.Items[name]
		it := world.NewItemType(name)
		switch {
		case y.Lockpick && y.Key != 0:
			return fmt.Errorf("item %s: %w: a lockpick cannot also be key %d", name, ErrBadValue, y.Key)
		case y.Lockpick:
			it.Key = world.Lockpick
		case y.Key < 0:
			return fmt.Errorf("item %s: %w: key %d", name, ErrBadValue, y.Key)
		default:
			it.Key = y.Key
		}
		b.setup.Items[name] = it
	}
	return nil
}

func (b *builder) buildMonsters() error {
	for _, name := range sortedKeys(b.f.Monsters) {
		h, ok := world.ParseHeight(b.f.Monsters[name].Height)
		if !ok {
			return fmt.Errorf("monster %s: %w: height %q", name, ErrBadValue, b.f.Monsters[name].Height)
		}
		b.setup.Monsters[name] = &world.MonsterType{Name: name, Height: h}
	}
	return nil
}

func (b *builder) buildTiles() error {
	names := sortedKeys(b.f.Tiles)
	for _, name := range names {
		t, err := b.buildTile(name, b.f.Tiles[name])
		if err != nil {
			return fmt.Errorf("tile %s: %w", name, err)
		}
		b.setup.Tiles[name] = t
	}

	// variants may refer to tiles defined anywhere in the file
	for _, name := range names {
		y := b.f.Tiles[name]
		t := b.setup.Tiles[name]
		var err error
		if t.Reflected, err = b.optionalTile(y.Reflected); err != nil {
			return fmt.Errorf("tile %s reflected: %w", name, err)
		}
		if t.Rotated, err = b.optionalTile(y.Rotated); err != nil {
			return fmt.Errorf("tile %s rotated: %w", name, err)
		}
	}
	return nil
}

func (b *builder) buildTile(name string, y TileYAML) (*world.Tile, error) {
	access, ok := world.ParseAccess(y.Access)
	if !ok {
		return nil, fmt.Errorf("%w: access %q", ErrBadValue, y.Access)
	}
	t := world.NewTile(name, access)
	for h, s := range map[world.Height]string{world.HeightFlying: y.AccessFlying, world.HeightMissiles: y.AccessMissiles} {
		if s == "" {
			continue
		}
		a, ok := world.ParseAccess(s)
		if !ok {
			return nil, fmt.Errorf("%w: access %q", ErrBadValue, s)
		}
		t.SetAccess(h, a)
	}

	t.ItemsAllowed = y.Items
	t.Container = y.Container
	t.Destructible = y.Destructible
	t.Stair = y.Stair
	t.TutorialKey = y.Tutorial
	if y.Category != "" {
		cat, ok := b.categories[y.Category]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, y.Category)
		}
		t.ItemCategory = cat
	}

	switch y.Connectivity {
	case "":
		t.Connectivity = world.ConnectivityDefault
	case "passable":
		t.Connectivity = world.ConnectivityPassable
	case "impassable":
		t.Connectivity = world.ConnectivityImpassable
	default:
		return nil, fmt.Errorf("%w: connectivity %q", ErrBadValue, y.Connectivity)
	}

	if y.Lock != nil {
		if y.Lock.Special {
			t.Lock = world.NewSpecialLock()
		} else {
			t.Lock = world.NewLock(y.Lock.Chance, y.Lock.PickOnly, y.Lock.KeyMax)
		}
	}
	t.TrapChance = y.TrapChance
	for _, tr := range y.Traps {
		kind := world.TrapKind{Name: tr.Name}
		if tr.Disarm != "" {
			it, ok := b.setup.Items[tr.Disarm]
			if !ok {
				return nil, fmt.Errorf("trap %s: %w: %q", tr.Name, ErrUnknownItem, tr.Disarm)
			}
			kind.DisarmItem = it
		}
		t.Traps = append(t.Traps, kind)
	}
	return t, nil
}

func (b *builder) optionalTile(name string) (*world.Tile, error) {
	if name == "" {
		return nil, nil
	}
	t, ok := b.setup.Tiles[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	return t, nil
}

func (b *builder) tileList(names []string) ([]*world.Tile, error) {
	tiles := make([]*world.Tile, 0, len(names))
	for _, n := range names {
		t, ok := b.setup.Tiles[n]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTile, n)
		}
		tiles = append(tiles, t)
	}
	return tiles, nil
}

// buildGenerators creates every generator first and links weighted
// choices afterwards, rejecting cycles
func (b *builder) buildGenerators() error {
	names := sortedKeys(b.f.Generators)
	for _, name := range names {
		y := b.f.Generators[name]
		switch {
		case y.Item != "" && len(y.Choices) > 0:
			return fmt.Errorf("generator %s: %w: both item and choices given", name, ErrBadValue)
		case y.Item != "":
			it, ok := b.setup.Items[y.Item]
			if !ok {
				return fmt.Errorf("generator %s: %w: %q", name, ErrUnknownItem, y.Item)
			}
			b.generators[name] = quest.NewFixedGenerator(name, it, y.Min, y.Max)
		default:
			b.generators[name] = quest.NewWeightedGenerator(name)
		}
	}

	for _, name := range names {
		for _, c := range b.f.Generators[name].Choices {
			child, ok := b.generators[c.Generator]
			if !ok {
				return fmt.Errorf("generator %s: %w: %q", name, ErrUnknownGenerator, c.Generator)
			}
			b.generators[name].Add(child, c.Weight)
		}
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(names))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("generator %s: %w", name, ErrGeneratorCycle)
		case done:
			return nil
		}
		state[name] = visiting
		for _, c := range b.f.Generators[name].Choices {
			if err := visit(c.Generator); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, name := range names {
		if err := visit(name); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) generator(name string) (*quest.ItemGenerator, error) {
	if name == "" {
		return nil, nil
	}
	g, ok := b.generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return g, nil
}

func (b *builder) buildDungeon() error {
	segs := make([]*segment.Segment, 0, len(b.f.Segments))
	for i, y := range b.f.Segments {
		seg, err := b.buildSegment(y)
		if err != nil {
			name := y.Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("segment %s: %w", name, err)
		}
		segs = append(segs, seg)
	}
	cat, err := segment.NewCatalog(segs)
	if err != nil {
		return err
	}

	cfg := generator.Config{Catalog: cat}
	if cfg.WallTiles, err = b.tileList(b.f.Dungeon.Wall); err != nil {
		return fmt.Errorf("wall: %w", err)
	}
	if cfg.HorizDoorTiles, err = b.tileList(b.f.Dungeon.HorizDoor); err != nil {
		return fmt.Errorf("horiz_door: %w", err)
	}
	if cfg.VertDoorTiles, err = b.tileList(b.f.Dungeon.VertDoor); err != nil {
		return fmt.Errorf("vert_door: %w", err)
	}
	b.setup.Generator = cfg
	return nil
}

func (b *builder) buildSegment(y SegmentYAML) (*segment.Segment, error) {
	if len(y.Rows) == 0 || len(y.Rows[0]) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrBadValue)
	}
	w, h := len(y.Rows[0]), len(y.Rows)
	seg := segment.New(y.Name, w, h)
	if y.Category != "" {
		cat, ok := b.segCats[y.Category]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, y.Category)
		}
		seg.Category = cat
	}

	legend := make(map[byte][]*world.Tile, len(y.Legend))
	for sym, names := range y.Legend {
		if len(sym) != 1 {
			return nil, fmt.Errorf("%w: legend symbol %q", ErrBadValue, sym)
		}
		tiles, err := b.tileList(names)
		if err != nil {
			return nil, fmt.Errorf("legend %q: %w", sym, err)
		}
		legend[sym[0]] = tiles
	}

	for yy, row := range y.Rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrBadValue, yy, len(row), w)
		}
		for x := 0; x < w; x++ {
			tiles, ok := legend[row[x]]
			if !ok {
				return nil, fmt.Errorf("%w: symbol %q at %d,%d is not in the legend", ErrBadValue, row[x], x, yy)
			}
			for _, t := range tiles {
				seg.AddTile(x, yy, t)
			}
		}
	}

	inside := func(x, y int) error {
		if x < 0 || x >= w || y < 0 || y >= h {
			return fmt.Errorf("%w: %d,%d is outside the segment", ErrBadValue, x, y)
		}
		return nil
	}
	for _, hm := range y.Homes {
		if err := inside(hm.X, hm.Y); err != nil {
			return nil, err
		}
		dir, ok := world.ParseDirection(hm.Facing)
		if !ok {
			return nil, fmt.Errorf("home %d,%d: %w: facing %q", hm.X, hm.Y, ErrBadValue, hm.Facing)
		}
		seg.AddHome(hm.X, hm.Y, dir, hm.Special)
	}
	for _, it := range y.Items {
		if err := inside(it.X, it.Y); err != nil {
			return nil, err
		}
		itype, ok := b.setup.Items[it.Item]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownItem, it.Item)
		}
		seg.AddItem(it.X, it.Y, itype, max(it.Count, 1))
	}
	for _, m := range y.Monsters {
		if err := inside(m.X, m.Y); err != nil {
			return nil, err
		}
		mt, ok := b.setup.Monsters[m.Monster]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMonster, m.Monster)
		}
		dir := world.South
		if m.Facing != "" {
			if dir, ok = world.ParseDirection(m.Facing); !ok {
				return nil, fmt.Errorf("monster %s: %w: facing %q", m.Monster, ErrBadValue, m.Facing)
			}
		}
		seg.AddMonster(m.X, m.Y, mt, dir)
	}
	for _, r := range y.Rooms {
		seg.AddRoom(r.X, r.Y, r.W, r.H)
	}
	return seg, nil
}

func (b *builder) buildQuest() error {
	y := b.f.Quest
	q := quest.New(y.Name)

	for _, ly := range y.Layouts {
		c := &layout.Candidate{Name: ly.Name}
		for i, v := range ly.Variants {
			l, err := layout.FromRows(v.Rows, v.Exits)
			if err != nil {
				return fmt.Errorf("layout %s variant %d: %w", ly.Name, i, err)
			}
			weight := v.Weight
			if weight == 0 {
				weight = 1
			}
			c.Variants = append(c.Variants, layout.Variant{Weight: weight, Layout: l})
		}
		q.Layouts = append(q.Layouts, c)
	}

	var ok bool
	if q.Home, ok = quest.ParseHomeType(y.Home); !ok {
		return fmt.Errorf("%w: home %q", ErrBadValue, y.Home)
	}
	if q.Exit, ok = quest.ParseExitType(y.Exit); !ok {
		return fmt.Errorf("%w: exit %q", ErrBadValue, y.Exit)
	}
	if y.ExitCategory != "" {
		if q.ExitCategory, ok = b.segCats[y.ExitCategory]; !ok {
			return fmt.Errorf("exit_category: %w: %q", ErrUnknownCategory, y.ExitCategory)
		}
	}
	for _, name := range y.RequiredSegments {
		cat, ok := b.segCats[name]
		if !ok {
			return fmt.Errorf("required_segments: %w: %q", ErrUnknownCategory, name)
		}
		q.RequiredSegments = append(q.RequiredSegments, cat)
	}

	q.NumKeys = y.Keys
	q.Pretrapped = y.Pretrapped
	q.Tutorial = y.Tutorial
	if y.Lockpicks != "" {
		if q.Lockpicks, ok = b.setup.Items[y.Lockpicks]; !ok {
			return fmt.Errorf("lockpicks: %w: %q", ErrUnknownItem, y.Lockpicks)
		}
	}

	for _, r := range y.RequiredItems {
		it, ok := b.setup.Items[r.Item]
		if !ok {
			return fmt.Errorf("required_items: %w: %q", ErrUnknownItem, r.Item)
		}
		q.RequiredItems = append(q.RequiredItems, quest.RequiredItem{Type: it, Count: max(r.Count, 1)})
	}

	for _, s := range y.Stuff {
		cat, ok := b.categories[s.Category]
		if !ok {
			return fmt.Errorf("stuff: %w: %q", ErrUnknownCategory, s.Category)
		}
		gen, err := b.generator(s.Generator)
		if err != nil {
			return fmt.Errorf("stuff %s: %w", s.Category, err)
		}
		q.Stuff.SetStuff(cat, s.Chance, gen, s.Weight)
	}

	for _, m := range y.Monsters {
		mt, ok := b.setup.Monsters[m.Monster]
		if !ok {
			return fmt.Errorf("monsters: %w: %q", ErrUnknownMonster, m.Monster)
		}
		q.Monsters = append(q.Monsters, quest.MonsterCount{Type: mt, Count: m.Count})
	}
	for _, m := range y.MonsterLimits {
		mt, ok := b.setup.Monsters[m.Monster]
		if !ok {
			return fmt.Errorf("monster_limits: %w: %q", ErrUnknownMonster, m.Monster)
		}
		q.MonsterLimits = append(q.MonsterLimits, quest.MonsterLimit{Type: mt, Max: m.Count})
	}
	if y.TotalMonsters != nil {
		q.TotalMonsterLimit = *y.TotalMonsters
	}

	b.setup.Quest = q
	return nil
}
