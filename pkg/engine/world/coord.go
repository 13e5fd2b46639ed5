package world

import "fmt"

// Coord is a square position on a Map. X grows eastwards, Y southwards.
type Coord struct {
	X int
	Y int
}

// String returns "x,y"
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Displace returns the coordinate one step away in the given direction
func (c Coord) Displace(dir Direction) Coord {
	dx, dy := dir.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Neighbors returns the four orthogonal neighbours (N, E, S, W)
func (c Coord) Neighbors() []Coord {
	out := make([]Coord, 0, 4)
	for _, d := range AllDirections() {
		out = append(out, c.Displace(d))
	}
	return out
}
