package world

// square is the contents of one map position. Tiles are ordered bottom to top.
type square struct {
	tiles   []*Tile
	item    *Item
	monster *Monster
}

// Map is the dungeon map the generator builds into
type Map struct {
	width   int
	height  int
	squares []square
	rooms   *RoomMap
}

// NewMap creates a new map with the given dimensions
func NewMap(width, height int) *Map {
	m := &Map{}
	m.Create(width, height)
	return m
}

// Create resets the map to an empty width x height map with a fresh room index
func (m *Map) Create(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.squares = make([]square, width*height)
	m.rooms = NewRoomMap()
}

// Width returns the number of columns
func (m *Map) Width() int {
	return m.width
}

// Height returns the number of rows
func (m *Map) Height() int {
	return m.height
}

// Valid checks if a position is within map bounds
func (m *Map) Valid(pos Coord) bool {
	return pos.X >= 0 && pos.X < m.width && pos.Y >= 0 && pos.Y < m.height
}

func (m *Map) at(pos Coord) *square {
	if !m.Valid(pos) {
		return nil
	}
	return &m.squares[pos.Y*m.width+pos.X]
}

// Rooms returns the room index
func (m *Map) Rooms() *RoomMap {
	return m.rooms
}

// Access returns the access level of a square at the given height.
// A square holding a monster is blocked.
func (m *Map) Access(pos Coord, h Height) Access {
	sq := m.at(pos)
	if sq == nil {
		return AccessBlocked
	}
	if sq.monster != nil {
		return AccessBlocked
	}
	return m.AccessTilesOnly(pos, h)
}

// AccessTilesOnly returns the most restrictive access of the square's tiles.
// An empty square is clear; an off-map square is blocked.
func (m *Map) AccessTilesOnly(pos Coord, h Height) Access {
	sq := m.at(pos)
	if sq == nil {
		return AccessBlocked
	}
	acc := AccessClear
	for _, t := range sq.tiles {
		if a := t.Access(h); a < acc {
			acc = a
		}
	}
	return acc
}

// Tiles returns the tiles at a position, bottom first. The slice is a copy.
func (m *Map) Tiles(pos Coord) []*Tile {
	sq := m.at(pos)
	if sq == nil || len(sq.tiles) == 0 {
		return nil
	}
	out := make([]*Tile, len(sq.tiles))
	copy(out, sq.tiles)
	return out
}

// ClearTiles removes every tile from a square
func (m *Map) ClearTiles(pos Coord) {
	if sq := m.at(pos); sq != nil {
		sq.tiles = nil
	}
}

// AddTile puts a tile on top of a square
func (m *Map) AddTile(pos Coord, t *Tile) bool {
	sq := m.at(pos)
	if sq == nil || t == nil {
		return false
	}
	sq.tiles = append(sq.tiles, t)
	return true
}

// RemoveTile removes a tile (by identity) from a square
func (m *Map) RemoveTile(pos Coord, t *Tile) bool {
	sq := m.at(pos)
	if sq == nil {
		return false
	}
	for i, existing := range sq.tiles {
		if existing == t {
			sq.tiles = append(sq.tiles[:i], sq.tiles[i+1:]...)
			return true
		}
	}
	return false
}

// Item returns the item lying on a square, or nil
func (m *Map) Item(pos Coord) *Item {
	if sq := m.at(pos); sq != nil {
		return sq.item
	}
	return nil
}

// AddItem drops an item on a square. Fails if the square already has one.
func (m *Map) AddItem(pos Coord, item *Item) bool {
	sq := m.at(pos)
	if sq == nil || item == nil || sq.item != nil {
		return false
	}
	sq.item = item
	return true
}

// Monster returns the monster standing on a square, or nil
func (m *Map) Monster(pos Coord) *Monster {
	if sq := m.at(pos); sq != nil {
		return sq.monster
	}
	return nil
}

func (m *Map) setMonster(pos Coord, mon *Monster) bool {
	sq := m.at(pos)
	if sq == nil || sq.monster != nil {
		return false
	}
	sq.monster = mon
	return true
}

// ForEachSquare calls fn for every position, row by row
func (m *Map) ForEachSquare(fn func(pos Coord)) {
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			fn(Coord{X: x, Y: y})
		}
	}
}
