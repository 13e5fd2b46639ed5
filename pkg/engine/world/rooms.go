package world

import "errors"

// ErrRoomsSealed is returned when a room is added after DoneAddingRooms
var ErrRoomsSealed = errors.New("room map: room added after rooms were finalised")

// Room is an axis-aligned rectangle of squares, walls included
type Room struct {
	TopLeft Coord
	Width   int
	Height  int
}

// Contains returns true if the position lies inside the room rectangle
func (r Room) Contains(pos Coord) bool {
	return pos.X >= r.TopLeft.X && pos.X < r.TopLeft.X+r.Width &&
		pos.Y >= r.TopLeft.Y && pos.Y < r.TopLeft.Y+r.Height
}

func (r Room) isCornerX(x int) bool {
	return x == r.TopLeft.X || x == r.TopLeft.X+r.Width-1
}

func (r Room) isCornerY(y int) bool {
	return y == r.TopLeft.Y || y == r.TopLeft.Y+r.Height-1
}

// RoomMap indexes the rooms of a Map. Rooms are registered while segments are
// copied, then sealed (and shuffled) with DoneAddingRooms.
type RoomMap struct {
	rooms  []Room
	sealed bool
}

// NewRoomMap creates an empty room index
func NewRoomMap() *RoomMap {
	return &RoomMap{}
}

// AddRoom registers a room
func (rm *RoomMap) AddRoom(topLeft Coord, w, h int) error {
	if rm.sealed {
		return ErrRoomsSealed
	}
	rm.rooms = append(rm.rooms, Room{TopLeft: topLeft, Width: w, Height: h})
	return nil
}

// DoneAddingRooms seals the index. Room numbers are randomised by shuffle
// so they give nothing away about the layout.
func (rm *RoomMap) DoneAddingRooms(shuffle func(n int, swap func(i, j int))) {
	rm.sealed = true
	if shuffle != nil {
		shuffle(len(rm.rooms), func(i, j int) {
			rm.rooms[i], rm.rooms[j] = rm.rooms[j], rm.rooms[i]
		})
	}
}

// Count returns the number of registered rooms
func (rm *RoomMap) Count() int {
	return len(rm.rooms)
}

// IsCorner returns true if pos is a corner square of any room
func (rm *RoomMap) IsCorner(pos Coord) bool {
	for _, r := range rm.rooms {
		if r.isCornerX(pos.X) && r.isCornerY(pos.Y) {
			return true
		}
	}
	return false
}

// RoomsAt returns the rooms containing pos, at most two (a square on a shared
// wall belongs to both rooms). Corner squares belong to no room.
func (rm *RoomMap) RoomsAt(pos Coord) []int {
	var found []int
	for i, r := range rm.rooms {
		if !r.Contains(pos) {
			continue
		}
		if r.isCornerX(pos.X) && r.isCornerY(pos.Y) {
			continue
		}
		found = append(found, i)
		if len(found) == 2 {
			break
		}
	}
	return found
}

// Room returns the rectangle of room r, or false if r is out of range
func (rm *RoomMap) Room(r int) (Room, bool) {
	if r < 0 || r >= len(rm.rooms) {
		return Room{}, false
	}
	return rm.rooms[r], true
}
