// Package generator builds a dungeon map from a layout skeleton and a
// catalog of segments, retrying with fresh random choices until every
// structural requirement of the quest holds.
package generator

import (
	"errors"
	"fmt"
	"io"
	"log"
	"slices"

	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
	"dungeongen/pkg/game/layout"
	"dungeongen/pkg/game/quest"
	"dungeongen/pkg/game/segment"
	"dungeongen/pkg/game/setup"
)

// MaxAttempts is the number of attempts made on each candidate layout
const MaxAttempts = 50

// Configuration errors. These are never retried.
var (
	ErrNoCatalog       = errors.New("generator needs a segment catalog")
	ErrNoWallTiles     = errors.New("generator needs at least one wall tile")
	ErrNoDoorTiles     = errors.New("generator needs horizontal and vertical door tiles")
	ErrNoLayouts       = errors.New("quest has no candidate layouts")
	ErrNoVariants      = errors.New("layout candidate has no variants")
	ErrNoPlayers       = errors.New("at least one player is required")
	ErrUnknownCategory = errors.New("no segment in the catalog has this category")
	ErrExitCategory    = errors.New("special exit category is not a required segment")
	ErrNoSpecialExit   = errors.New("special exit category has no special exit home")
	ErrExitNeedsHomes  = errors.New("exit policy needs player homes")
)

// Config holds the dungeon-wide tiles and the segment catalog
type Config struct {
	Catalog *segment.Catalog

	// WallTiles fill empty cells and the border around every cell
	WallTiles []*world.Tile
	// HorizDoorTiles are knocked through horizontal walls (between a cell and the one below)
	HorizDoorTiles []*world.Tile
	// VertDoorTiles are knocked through vertical walls (between a cell and the one to its right)
	VertDoorTiles []*world.Tile

	// Logger receives one line per attempt; nil discards
	Logger *log.Logger
}

// Anchor is a home or exit in map coordinates. Facing points from the
// start square towards the home square.
type Anchor struct {
	Pos         world.Coord
	Facing      world.Direction
	SpecialExit bool
}

// StartSquare returns the floor square in front of the anchor
func (a Anchor) StartSquare() world.Coord {
	return a.Pos.Displace(a.Facing.Opposite())
}

// Result describes a successfully generated dungeon. The map itself is the
// one passed to Generate.
type Result struct {
	// Warning is set when a fallback layout had to be used
	Warning string
	// Layout is the name of the candidate that succeeded
	Layout string
	// Attempts counts every attempt made, failed ones included
	Attempts int

	// Width and Height are the compressed layout size in cells
	Width, Height int

	// Homes holds one anchor per player (empty for policies without homes)
	Homes []Anchor
	// AllHomes holds every home anchor in the dungeon
	AllHomes []Anchor
	// Exits holds one anchor per player (empty for ExitNone)
	Exits []Anchor

	Locks       int
	Traps       int
	StuffPlaced int

	// LockpicksAdded lists squares where the reachability proof dropped lock picks
	LockpicksAdded []world.Coord
	// MonstersPlaced reports the initial monsters actually placed, in quest order
	MonstersPlaced []quest.MonsterCount
	// Monsters lists every placed monster in placement order
	Monsters []*world.Monster
}

// Generator turns quests into dungeons
type Generator struct {
	cfg Config
	log *log.Logger
}

// New checks the configuration and creates a generator
func New(cfg Config) (*Generator, error) {
	if cfg.Catalog == nil {
		return nil, ErrNoCatalog
	}
	if len(cfg.WallTiles) == 0 {
		return nil, ErrNoWallTiles
	}
	if len(cfg.HorizDoorTiles) == 0 || len(cfg.VertDoorTiles) == 0 {
		return nil, ErrNoDoorTiles
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Generator{cfg: cfg, log: logger}, nil
}

// Generate fills dmap with a dungeon for the quest. Candidate layouts are
// tried in order, each up to MaxAttempts times. A retryable failure starts
// a fresh attempt; any other error is a configuration problem and is
// returned at once. When every attempt fails the error wraps
// failure.ErrGenerationFailed.
func (g *Generator) Generate(rng random.Source, dmap *world.Map, monsters *world.MonsterManager, q *quest.Quest, nplayers int) (*Result, error) {
	if err := g.validate(q, nplayers); err != nil {
		return nil, err
	}
	if monsters == nil {
		monsters = world.NewMonsterManager()
	}

	attempts := 0
	var lastErr error
	for ci, cand := range q.Layouts {
		for n := 1; n <= MaxAttempts; n++ {
			attempts++
			base := cand.Choose(rng)
			if base == nil {
				return nil, fmt.Errorf("layout %s: %w", cand.Name, ErrNoVariants)
			}

			res, err := g.attempt(rng, dmap, monsters, q, nplayers, base)
			if err != nil {
				if !failure.IsRetryable(err) {
					return nil, err
				}
				g.log.Printf("layout=%s attempt=%d: %v", cand.Name, n, err)
				lastErr = err
				continue
			}

			res.Layout = cand.Name
			res.Attempts = attempts
			if ci > 0 {
				res.Warning = gotext.Get("Could not generate layout \"%s\", using \"%s\" instead", q.Layouts[0].Name, cand.Name)
			}
			g.log.Printf("layout=%s attempt=%d: ok", cand.Name, n)
			return res, nil
		}
	}
	// leave nothing of the last failed attempt behind
	dmap.Create(0, 0)
	monsters.Reset()
	return nil, fmt.Errorf("%w after %d attempts: %v", failure.ErrGenerationFailed, attempts, lastErr)
}

// validate rejects quests that no amount of retrying could satisfy
func (g *Generator) validate(q *quest.Quest, nplayers int) error {
	if len(q.Layouts) == 0 {
		return ErrNoLayouts
	}
	if nplayers < 1 {
		return ErrNoPlayers
	}
	for _, cat := range q.RequiredSegments {
		if !g.cfg.Catalog.HasCategory(cat) {
			return fmt.Errorf("required segment category %d: %w", cat, ErrUnknownCategory)
		}
	}
	switch q.Exit {
	case quest.ExitSpecial:
		if !slices.Contains(q.RequiredSegments, q.ExitCategory) {
			return fmt.Errorf("category %d: %w", q.ExitCategory, ErrExitCategory)
		}
		if !g.cfg.Catalog.CategoryHasSpecialExit(q.ExitCategory) {
			return fmt.Errorf("category %d: %w", q.ExitCategory, ErrNoSpecialExit)
		}
	case quest.ExitSelf, quest.ExitOther:
		if q.Home.ExemptsHomes() {
			return fmt.Errorf("exit %s with home %s: %w", q.Exit, q.Home, ErrExitNeedsHomes)
		}
	}
	return nil
}

// attempt runs every phase once. The map and monster manager are reset
// before anything is written to them.
func (g *Generator) attempt(rng random.Source, dmap *world.Map, monsters *world.MonsterManager, q *quest.Quest, nplayers int, base *layout.Layout) (*Result, error) {
	st := newState(rng, g.cfg.Catalog, base.RandomTransform(rng))

	if err := st.placeSegments(q, nplayers); err != nil {
		return nil, err
	}
	if err := st.compress(); err != nil {
		return nil, err
	}

	monsters.Reset()
	if err := st.materialize(dmap, monsters, g.cfg.WallTiles); err != nil {
		return nil, err
	}
	if err := st.knockThroughDoors(dmap, g.cfg.HorizDoorTiles, g.cfg.VertDoorTiles); err != nil {
		return nil, err
	}
	if err := st.chooseExits(q, nplayers); err != nil {
		return nil, err
	}

	res := &Result{
		Width:    st.lw,
		Height:   st.lh,
		Homes:    st.assigned,
		AllHomes: st.allHomes,
		Exits:    st.exits,
	}

	res.Locks, res.Traps = setup.GenerateLocksAndTraps(rng, dmap, q.NumKeys, q.Pretrapped)
	if err := setup.GenerateRequiredItems(rng, dmap, q.RequiredItems, q.Stuff); err != nil {
		return nil, err
	}
	res.StuffPlaced = setup.GenerateStuff(rng, dmap, q.Stuff)

	setup.ApplyMonsterLimits(monsters, q.MonsterLimits, q.TotalMonsterLimit)
	for _, mc := range q.Monsters {
		n := setup.GenerateMonsters(rng, dmap, monsters, mc.Type, mc.Count)
		res.MonstersPlaced = append(res.MonstersPlaced, quest.MonsterCount{Type: mc.Type, Count: n})
	}
	res.Monsters = monsters.Monsters()

	for _, home := range st.assigned {
		pos, err := setup.CheckConnectivity(rng, dmap, home.StartSquare(), q.NumKeys, q.Lockpicks)
		if err != nil {
			return nil, err
		}
		if pos != nil {
			res.LockpicksAdded = append(res.LockpicksAdded, *pos)
		}
	}

	if q.Tutorial && len(st.assigned) > 0 {
		first := st.assigned[0]
		if err := setup.CheckTutorial(dmap, first.StartSquare(), first.Facing); err != nil {
			return nil, err
		}
	}
	return res, nil
}
