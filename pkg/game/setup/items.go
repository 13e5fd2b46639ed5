// Package setup dresses a materialised dungeon: locks, traps, items and
// monsters, plus the checks that decide whether the result is playable.
package setup

import (
	"errors"

	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/failure"
	"dungeongen/pkg/game/quest"
)

const requiredItemTries = 5

// ErrNoItemWeights is returned when required items are requested but no
// tile category has a positive weight
var ErrNoItemWeights = errors.New("required items need at least one tile category with positive weight")

// FindItemCategory returns the stuff category of a square, or -1 if no
// item may be generated there. The topmost categorised tile wins.
func FindItemCategory(dmap *world.Map, pos world.Coord) int {
	chosen := -1
	for _, t := range dmap.Tiles(pos) {
		if t.ItemCategory >= 0 {
			chosen = t.ItemCategory
		}
		if t.CanPlaceItem() {
			if t.ItemPlacedAlready() {
				return -1
			}
		} else if !t.ItemsAllowed {
			// containers take placed items even when nothing may lie on them
			return -1
		}
	}
	if dmap.Item(pos) != nil {
		return -1
	}
	return chosen
}

// PlaceItem hides the item in the first empty container on the square,
// or drops it on the floor if there is none
func PlaceItem(dmap *world.Map, pos world.Coord, item *world.Item) bool {
	for _, t := range dmap.Tiles(pos) {
		if t.CanPlaceItem() && !t.ItemPlacedAlready() {
			return t.PlaceItem(item)
		}
	}
	return dmap.AddItem(pos, item)
}

// GenerateRequiredItems places every copy of every required item
func GenerateRequiredItems(rng random.Source, dmap *world.Map, items []quest.RequiredItem, stuff *quest.StuffTable) error {
	for _, ri := range items {
		for i := 0; i < ri.Count; i++ {
			if err := GenerateRequiredItem(rng, dmap, ri.Type, stuff); err != nil {
				return err
			}
		}
	}
	return nil
}

// GenerateRequiredItem places one item on a square whose category is drawn
// by weight. The last try accepts any category that is not forbidden.
func GenerateRequiredItem(rng random.Source, dmap *world.Map, itype *world.ItemType, stuff *quest.StuffTable) error {
	if stuff == nil || stuff.TotalWeight() <= 0 {
		return ErrNoItemWeights
	}
	w, h := dmap.Width(), dmap.Height()
	if w == 0 || h == 0 {
		return failure.Retryf("no room for %s on an empty map", itype.Name)
	}

	for try := 0; try < requiredItemTries; try++ {
		chosen, _ := stuff.ChooseCategory(rng)
		lastTry := try == requiredItemTries-1

		for q := 0; q < w*h; q++ {
			pos := world.Coord{X: rng.Intn(w), Y: rng.Intn(h)}
			cat := FindItemCategory(dmap, pos)
			if cat == chosen || (lastTry && cat >= 0 && !stuff.Forbidden(cat)) {
				PlaceItem(dmap, pos, world.NewItem(itype, 1))
				return nil
			}
		}
	}
	return failure.Retryf("could not place required item %s", itype.Name)
}

// GenerateStuff rolls the ambient loot rule of every square's category.
// Returns the number of items placed.
func GenerateStuff(rng random.Source, dmap *world.Map, stuff *quest.StuffTable) int {
	if stuff == nil {
		return 0
	}
	placed := 0
	dmap.ForEachSquare(func(pos world.Coord) {
		cat := FindItemCategory(dmap, pos)
		if cat < 0 {
			return
		}
		info, ok := stuff.Lookup(cat)
		if !ok || info.Generator == nil || !rng.Chance(info.Chance) {
			return
		}
		itype, n := info.Generator.Generate(rng)
		if itype == nil {
			return
		}
		if PlaceItem(dmap, pos, world.NewItem(itype, n)) {
			placed++
		}
	})
	return placed
}
