package world

import (
	"dungeongen/pkg/engine/random"
)

// Height is the level at which something moves through a square
type Height int

// Heights
const (
	HeightWalking Height = iota
	HeightFlying
	HeightMissiles
	numHeights
)

// ParseHeight parses "walking", "flying" or "missiles"
func ParseHeight(s string) (Height, bool) {
	switch s {
	case "walking", "":
		return HeightWalking, true
	case "flying":
		return HeightFlying, true
	case "missiles":
		return HeightMissiles, true
	default:
		return HeightWalking, false
	}
}

// Access is how freely a square can be entered. Values are ordered from most to least restrictive.
type Access int

// Access levels
const (
	AccessBlocked Access = iota
	AccessApproach
	AccessClear
)

// ParseAccess parses "blocked", "approach" or "clear"
func ParseAccess(s string) (Access, bool) {
	switch s {
	case "blocked":
		return AccessBlocked, true
	case "approach":
		return AccessApproach, true
	case "clear":
		return AccessClear, true
	default:
		return AccessBlocked, false
	}
}

// Connectivity is an explicit override used by the reachability proof
type Connectivity int

// Connectivity overrides
const (
	ConnectivityImpassable Connectivity = -1
	ConnectivityDefault    Connectivity = 0
	ConnectivityPassable   Connectivity = 1
)

// TrapKind is a trap that can be pre-set on a lockable tile
type TrapKind struct {
	Name string
	// DisarmItem is dropped when the trap is disarmed (may be nil)
	DisarmItem *ItemType
}

// Tile is one layer of a map square. Tiles on a template are never placed
// directly; the map always receives a Clone.
type Tile struct {
	Name string

	access [numHeights]Access

	Destructible bool // can be chopped through (wooden doors, barrels)
	Stair        bool // stairs or stair tops
	ItemsAllowed bool // items may lie on this tile

	// ItemCategory is the stuff category of this tile, or -1
	ItemCategory int

	// Container tiles (barrels, chests) hold a single placed item
	Container bool

	Connectivity Connectivity

	// TutorialKey > 0 marks tiles that trigger tutorial messages
	TutorialKey int

	// Lock is non-nil for lockable tiles (doors and chests)
	Lock *Lock

	// Trap generation (pretrapped quests)
	TrapChance float64
	Traps      []TrapKind
	Trap       *TrapKind

	// Variants used when a segment is reflected or rotated (nil means unchanged)
	Reflected *Tile
	Rotated   *Tile

	placed *Item
}

// NewTile creates a tile with the same access at every height
func NewTile(name string, access Access) *Tile {
	t := &Tile{Name: name, ItemCategory: -1}
	for h := range t.access {
		t.access[h] = access
	}
	return t
}

// Access returns the tile's access at the given height
func (t *Tile) Access(h Height) Access {
	if h < 0 || h >= numHeights {
		return AccessBlocked
	}
	return t.access[h]
}

// SetAccess sets the tile's access at one height
func (t *Tile) SetAccess(h Height, a Access) {
	if h < 0 || h >= numHeights {
		return
	}
	t.access[h] = a
}

// Clone returns an independent copy with no placed item
func (t *Tile) Clone() *Tile {
	c := *t
	if t.Lock != nil {
		lock := *t.Lock
		c.Lock = &lock
	}
	if t.Trap != nil {
		trap := *t.Trap
		c.Trap = &trap
	}
	c.placed = nil
	return &c
}

// Reflect returns the tile to use after an x reflection
func (t *Tile) Reflect() *Tile {
	if t.Reflected != nil {
		return t.Reflected
	}
	return t
}

// Rotate returns the tile to use after a clockwise quarter turn
func (t *Tile) Rotate() *Tile {
	if t.Rotated != nil {
		return t.Rotated
	}
	return t
}

// IsLockable returns true for doors and chests
func (t *Tile) IsLockable() bool {
	return t.Lock != nil
}

// CanPlaceItem returns true if this is a container
func (t *Tile) CanPlaceItem() bool {
	return t.Container
}

// ItemPlacedAlready returns true if the container is already holding an item
func (t *Tile) ItemPlacedAlready() bool {
	return t.placed != nil
}

// PlacedItem returns the item hidden in this container, or nil
func (t *Tile) PlacedItem() *Item {
	return t.placed
}

// PlaceItem hides an item in this container. Returns false if the tile
// is not a container or is already holding something.
func (t *Tile) PlaceItem(item *Item) bool {
	if !t.Container || t.placed != nil || item == nil {
		return false
	}
	t.placed = item
	return true
}

// GenerateTrap arms a random trap with the tile's trap chance.
// Returns true if a trap was set.
func (t *Tile) GenerateTrap(rng random.Source) bool {
	if t.Lock == nil || len(t.Traps) == 0 {
		return false
	}
	if !rng.Chance(t.TrapChance) {
		return false
	}
	trap := t.Traps[rng.Intn(len(t.Traps))]
	t.Trap = &trap
	return true
}
