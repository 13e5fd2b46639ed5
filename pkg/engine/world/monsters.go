package world

// MonsterType describes a kind of monster
type MonsterType struct {
	Name   string
	Height Height // height the monster moves at
}

// Monster is a monster standing on the map
type Monster struct {
	Type   *MonsterType
	Pos    Coord
	Facing Direction
}

// NoLimit means a monster count is unbounded
const NoLimit = -1

// MonsterManager places monsters on a map and keeps per-type and total counts,
// refusing placements that would exceed the configured limits.
type MonsterManager struct {
	counts     map[*MonsterType]int
	limits     map[*MonsterType]int
	total      int
	totalLimit int
	placed     []*Monster
}

// NewMonsterManager creates a manager with no limits
func NewMonsterManager() *MonsterManager {
	mm := &MonsterManager{}
	mm.Reset()
	return mm
}

// Reset forgets all placed monsters and limits
func (mm *MonsterManager) Reset() {
	mm.counts = make(map[*MonsterType]int)
	mm.limits = make(map[*MonsterType]int)
	mm.total = 0
	mm.totalLimit = NoLimit
	mm.placed = nil
}

// LimitMonster caps the number of monsters of one type
func (mm *MonsterManager) LimitMonster(mt *MonsterType, max int) {
	mm.limits[mt] = max
}

// LimitTotal caps the total number of monsters
func (mm *MonsterManager) LimitTotal(max int) {
	mm.totalLimit = max
}

// Limit returns the cap for a monster type, or NoLimit
func (mm *MonsterManager) Limit(mt *MonsterType) int {
	if l, ok := mm.limits[mt]; ok {
		return l
	}
	return NoLimit
}

// TotalLimit returns the total cap, or NoLimit
func (mm *MonsterManager) TotalLimit() int {
	return mm.totalLimit
}

// Count returns the number of monsters of a type placed so far
func (mm *MonsterManager) Count(mt *MonsterType) int {
	return mm.counts[mt]
}

// Total returns the number of monsters placed so far
func (mm *MonsterManager) Total() int {
	return mm.total
}

// Monsters returns the placed monsters in placement order
func (mm *MonsterManager) Monsters() []*Monster {
	return mm.placed
}

// CanPlace returns true if another monster of type mt stays within the limits
func (mm *MonsterManager) CanPlace(mt *MonsterType) bool {
	if mm.totalLimit >= 0 && mm.total >= mm.totalLimit {
		return false
	}
	if l, ok := mm.limits[mt]; ok && l >= 0 && mm.counts[mt] >= l {
		return false
	}
	return true
}

// PlaceMonster puts a monster on the map. Returns false if a limit would be
// exceeded or the square is off the map or occupied.
func (mm *MonsterManager) PlaceMonster(dmap *Map, mt *MonsterType, pos Coord, facing Direction) bool {
	if mt == nil || !mm.CanPlace(mt) {
		return false
	}
	mon := &Monster{Type: mt, Pos: pos, Facing: facing}
	if !dmap.setMonster(pos, mon) {
		return false
	}
	mm.counts[mt]++
	mm.total++
	mm.placed = append(mm.placed, mon)
	return true
}
