// Package layout holds the coarse block skeleton a dungeon is built on:
// a grid of cells, each empty or waiting for a segment, plus the open
// adjacencies between neighbouring cells.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"dungeongen/pkg/engine/world"
)

// BlockType classifies a layout cell
type BlockType int

// Block types
const (
	Empty       BlockType = iota // no segment, filled with wall
	Block                        // ordinary segment
	Edge                         // segment preferred for "away" homes and required segments
	SpecialEdge                  // edge that may hold a required segment; left empty otherwise
)

// String returns the lower-case name of a block type
func (b BlockType) String() string {
	switch b {
	case Empty:
		return "none"
	case Block:
		return "block"
	case Edge:
		return "edge"
	case SpecialEdge:
		return "special"
	default:
		return "unknown"
	}
}

// ParseBlockType parses "none", "block", "edge" or "special"
func ParseBlockType(s string) (BlockType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "empty":
		return Empty, true
	case "block":
		return Block, true
	case "edge":
		return Edge, true
	case "special":
		return SpecialEdge, true
	default:
		return Empty, false
	}
}

// Layout errors
var (
	ErrBadSize        = errors.New("layout width and height must be positive")
	ErrCellCount      = errors.New("layout has the wrong number of cells")
	ErrIllegalExit    = errors.New("illegal exit from map edge")
	ErrExitsMismatch  = errors.New("exits do not match")
	ErrUnknownSymbol  = errors.New("unknown layout symbol")
	ErrRaggedRows     = errors.New("layout rows have different lengths")
	ErrBadExitsString = errors.New("exit overrides must name a cell as x,y")
)

// CellSpec describes one cell when building a layout. A nil Exits means
// every non-empty neighbour is connected.
type CellSpec struct {
	Type  BlockType
	Exits []world.Direction
}

// Layout is an immutable skeleton. Transformed copies are new values.
type Layout struct {
	width  int
	height int
	cells  []BlockType

	// horizOpen[y*(width-1)+x] connects (x,y) and (x+1,y)
	horizOpen []bool
	// vertOpen[y*width+x] connects (x,y) and (x,y+1)
	vertOpen []bool
}

// New builds a layout from width*height cells given row by row. Explicit
// exits must agree with the neighbour's explicit or derived exits.
func New(width, height int, cells []CellSpec) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadSize
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrCellCount, len(cells), width*height)
	}

	l := newEmpty(width, height)
	for i, c := range cells {
		l.cells[i] = c.Type
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n, e, s, w := l.cellExits(x, y, cells[y*width+x])

			if (n && y == 0) || (e && x == width-1) || (s && y == height-1) || (w && x == 0) {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, ErrIllegalExit)
			}
			if x > 0 && w != l.horizOpen[y*(width-1)+x-1] {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, ErrExitsMismatch)
			}
			if y > 0 && n != l.vertOpen[(y-1)*width+x] {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, ErrExitsMismatch)
			}

			if y < height-1 {
				l.vertOpen[y*width+x] = s
			}
			if x < width-1 {
				l.horizOpen[y*(width-1)+x] = e
			}
		}
	}
	return l, nil
}

// cellExits returns the exits of a cell, derived from its neighbours when not given
func (l *Layout) cellExits(x, y int, c CellSpec) (n, e, s, w bool) {
	if c.Exits != nil {
		for _, d := range c.Exits {
			switch d {
			case world.North:
				n = true
			case world.East:
				e = true
			case world.South:
				s = true
			case world.West:
				w = true
			}
		}
		return
	}
	if c.Type == Empty {
		return
	}
	n = y > 0 && l.cells[(y-1)*l.width+x] != Empty
	e = x < l.width-1 && l.cells[y*l.width+x+1] != Empty
	s = y < l.height-1 && l.cells[(y+1)*l.width+x] != Empty
	w = x > 0 && l.cells[y*l.width+x-1] != Empty
	return
}

func newEmpty(width, height int) *Layout {
	return &Layout{
		width:     width,
		height:    height,
		cells:     make([]BlockType, width*height),
		horizOpen: make([]bool, (width-1)*height),
		vertOpen:  make([]bool, width*(height-1)),
	}
}

// FromRows builds a layout from one string per row using
// '.' (empty), 'B' (block), 'E' (edge) and 'S' (special edge).
// exits optionally overrides the exits of cells keyed "x,y" with a
// string of direction letters such as "ns".
func FromRows(rows []string, exits map[string]string) (*Layout, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrBadSize
	}
	width := len(rows[0])
	height := len(rows)
	cells := make([]CellSpec, 0, width*height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d: %w", y, ErrRaggedRows)
		}
		for x, ch := range row {
			var bt BlockType
			switch ch {
			case '.', ' ':
				bt = Empty
			case 'B', 'b', '#':
				bt = Block
			case 'E', 'e':
				bt = Edge
			case 'S', 's':
				bt = SpecialEdge
			default:
				return nil, fmt.Errorf("%w %q at %d,%d", ErrUnknownSymbol, ch, x, y)
			}
			cells = append(cells, CellSpec{Type: bt})
		}
	}
	for key, letters := range exits {
		var x, y int
		if _, err := fmt.Sscanf(key, "%d,%d", &x, &y); err != nil || x < 0 || x >= width || y < 0 || y >= height {
			return nil, fmt.Errorf("%w: %q", ErrBadExitsString, key)
		}
		dirs := []world.Direction{}
		for _, ch := range letters {
			d, ok := world.ParseDirection(string(ch))
			if !ok {
				return nil, fmt.Errorf("cell %s: bad exit %q", key, ch)
			}
			dirs = append(dirs, d)
		}
		cells[y*width+x].Exits = dirs
	}
	return New(width, height, cells)
}

// Width returns the number of columns
func (l *Layout) Width() int {
	return l.width
}

// Height returns the number of rows
func (l *Layout) Height() int {
	return l.height
}

// Block returns the type of cell (x,y). Off-grid cells read as Block.
func (l *Layout) Block(x, y int) BlockType {
	if x < 0 || x >= l.width || y < 0 || y >= l.height {
		return Block
	}
	return l.cells[y*l.width+x]
}

// HorizOpen reports whether (x,y) connects to (x+1,y)
func (l *Layout) HorizOpen(x, y int) bool {
	if x < 0 || x >= l.width-1 || y < 0 || y >= l.height {
		return false
	}
	return l.horizOpen[y*(l.width-1)+x]
}

// VertOpen reports whether (x,y) connects to (x,y+1)
func (l *Layout) VertOpen(x, y int) bool {
	if x < 0 || x >= l.width || y < 0 || y >= l.height-1 {
		return false
	}
	return l.vertOpen[y*l.width+x]
}

// Count returns the number of cells of the given type
func (l *Layout) Count(bt BlockType) int {
	n := 0
	for _, c := range l.cells {
		if c == bt {
			n++
		}
	}
	return n
}

// Equal reports whether two layouts have the same cells and adjacencies
func (l *Layout) Equal(o *Layout) bool {
	if l.width != o.width || l.height != o.height {
		return false
	}
	for i := range l.cells {
		if l.cells[i] != o.cells[i] {
			return false
		}
	}
	for i := range l.horizOpen {
		if l.horizOpen[i] != o.horizOpen[i] {
			return false
		}
	}
	for i := range l.vertOpen {
		if l.vertOpen[i] != o.vertOpen[i] {
			return false
		}
	}
	return true
}

// String renders the cells row by row with the FromRows symbols
func (l *Layout) String() string {
	var sb strings.Builder
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			sb.WriteByte(".BES"[l.cells[y*l.width+x]])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
