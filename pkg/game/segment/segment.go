// Package segment holds room templates ("segments") and the catalog the
// generator draws them from.
package segment

import (
	"errors"
	"fmt"

	"dungeongen/pkg/engine/world"
)

// NoCategory marks an ordinary segment
const NoCategory = -1

var (
	// ErrNotSquare is returned when a non-square segment is asked to reflect or rotate
	ErrNotSquare = errors.New("only square segments can be reflected or rotated")
	// ErrRotation is returned for a rotation count outside 0..3
	ErrRotation = errors.New("rotation count must be between 0 and 3")
)

// Home is a player spawn anchor inside a segment. Facing points from the
// start square towards the home square.
type Home struct {
	X, Y        int
	Facing      world.Direction
	SpecialExit bool
}

// MonsterSink receives the monsters a segment carries
type MonsterSink interface {
	PlaceMonster(dmap *world.Map, mt *world.MonsterType, pos world.Coord, facing world.Direction) bool
}

type itemInfo struct {
	x, y  int
	itype *world.ItemType
	count int
}

type monsterInfo struct {
	x, y   int
	mtype  *world.MonsterType
	facing world.Direction
}

type roomInfo struct {
	x, y, w, h int
}

// Segment is a read-only room template
type Segment struct {
	Name     string
	Category int

	width   int
	height  int
	squares [][]*world.Tile

	items    []itemInfo
	monsters []monsterInfo
	rooms    []roomInfo
	homes    []Home
}

// New creates an empty, ordinary segment
func New(name string, width, height int) *Segment {
	return &Segment{
		Name:     name,
		Category: NoCategory,
		width:    width,
		height:   height,
		squares:  make([][]*world.Tile, width*height),
	}
}

// Width returns the segment width in squares
func (s *Segment) Width() int { return s.width }

// Height returns the segment height in squares
func (s *Segment) Height() int { return s.height }

// IsSquare reports whether reflections and rotations are allowed
func (s *Segment) IsSquare() bool { return s.width == s.height }

func (s *Segment) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// AddTile stacks a template tile on a square
func (s *Segment) AddTile(x, y int, t *world.Tile) {
	if t == nil || !s.inside(x, y) {
		return
	}
	s.squares[y*s.width+x] = append(s.squares[y*s.width+x], t)
}

// Tiles returns the template tiles of a square, bottom first
func (s *Segment) Tiles(x, y int) []*world.Tile {
	if !s.inside(x, y) {
		return nil
	}
	return s.squares[y*s.width+x]
}

// AddItem puts an item on a square
func (s *Segment) AddItem(x, y int, itype *world.ItemType, count int) {
	if itype == nil || !s.inside(x, y) {
		return
	}
	s.items = append(s.items, itemInfo{x: x, y: y, itype: itype, count: count})
}

// AddMonster puts a monster on a square
func (s *Segment) AddMonster(x, y int, mt *world.MonsterType, facing world.Direction) {
	if mt == nil || !s.inside(x, y) {
		return
	}
	s.monsters = append(s.monsters, monsterInfo{x: x, y: y, mtype: mt, facing: facing})
}

// AddRoom registers a room rectangle (walls included) in segment coordinates
func (s *Segment) AddRoom(x, y, w, h int) {
	s.rooms = append(s.rooms, roomInfo{x: x, y: y, w: w, h: h})
}

// AddHome registers a home anchor
func (s *Segment) AddHome(x, y int, facing world.Direction, specialExit bool) {
	if !s.inside(x, y) {
		return
	}
	s.homes = append(s.homes, Home{X: x, Y: y, Facing: facing, SpecialExit: specialExit})
}

// NumHomes returns the number of ordinary (non special-exit) homes
func (s *Segment) NumHomes() int {
	n := 0
	for _, h := range s.homes {
		if !h.SpecialExit {
			n++
		}
	}
	return n
}

// HasSpecialExit reports whether any home is flagged as a special exit
func (s *Segment) HasSpecialExit() bool {
	for _, h := range s.homes {
		if h.SpecialExit {
			return true
		}
	}
	return false
}

// Homes returns all homes after reflecting in x and turning nrot quarter turns clockwise
func (s *Segment) Homes(reflect bool, nrot int) []Home {
	out := make([]Home, len(s.homes))
	for i, h := range s.homes {
		if reflect {
			h.Facing = h.Facing.ReflectX()
		}
		for r := 0; r < nrot; r++ {
			h.Facing = h.Facing.Clockwise()
		}
		h.X, h.Y = s.transform(reflect, nrot, h.X, h.Y)
		out[i] = h
	}
	return out
}

// transform maps a segment square to its transformed position. Rotations
// use the width, so callers must only transform square segments.
func (s *Segment) transform(reflect bool, nrot, x, y int) (int, int) {
	size := s.width
	if reflect {
		x = size - 1 - x
	}
	for i := 0; i < nrot; i++ {
		x, y = size-1-y, x
	}
	return x, y
}

// CopyToMap writes the segment into dmap with its top-left at corner.
// Tiles are cloned (through their reflected/rotated variants), items and
// monsters are placed, and rooms are registered in the map's room index.
func (s *Segment) CopyToMap(dmap *world.Map, sink MonsterSink, corner world.Coord, reflect bool, nrot int) error {
	if nrot < 0 || nrot > 3 {
		return fmt.Errorf("segment %s: %w", s.Name, ErrRotation)
	}
	if (reflect || nrot != 0) && !s.IsSquare() {
		return fmt.Errorf("segment %s: %w", s.Name, ErrNotSquare)
	}

	at := func(x, y int) world.Coord {
		tx, ty := s.transform(reflect, nrot, x, y)
		return world.Coord{X: corner.X + tx, Y: corner.Y + ty}
	}

	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			pos := at(x, y)
			dmap.ClearTiles(pos)
			for _, t := range s.squares[y*s.width+x] {
				if reflect {
					t = t.Reflect()
				}
				for k := 0; k < nrot; k++ {
					t = t.Rotate()
				}
				dmap.AddTile(pos, t.Clone())
			}
		}
	}

	for _, it := range s.items {
		dmap.AddItem(at(it.x, it.y), world.NewItem(it.itype, it.count))
	}

	if sink != nil {
		for _, m := range s.monsters {
			facing := m.facing
			if reflect {
				facing = facing.ReflectX()
			}
			for k := 0; k < nrot; k++ {
				facing = facing.Clockwise()
			}
			sink.PlaceMonster(dmap, m.mtype, at(m.x, m.y), facing)
		}
	}

	for _, r := range s.rooms {
		c1 := at(r.x, r.y)
		c2 := at(r.x+r.w-1, r.y+r.h-1)
		minX, maxX := min(c1.X, c2.X), max(c1.X, c2.X)
		minY, maxY := min(c1.Y, c2.Y), max(c1.Y, c2.Y)
		if err := dmap.Rooms().AddRoom(world.Coord{X: minX, Y: minY}, maxX-minX+1, maxY-minY+1); err != nil {
			return err
		}
	}
	return nil
}
