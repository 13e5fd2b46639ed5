package layout

import "dungeongen/pkg/engine/random"

// Transform returns a new layout: optionally rotated a quarter turn
// clockwise, then optionally mirrored in x, then optionally mirrored in y.
func (l *Layout) Transform(flipX, flipY, rotate bool) *Layout {
	nw, nh := l.width, l.height
	if rotate {
		nw, nh = l.height, l.width
	}

	mapCell := func(x, y int) (int, int) {
		if rotate {
			x, y = l.height-1-y, x
		}
		if flipX {
			x = nw - 1 - x
		}
		if flipY {
			y = nh - 1 - y
		}
		return x, y
	}

	out := newEmpty(nw, nh)
	for y := 0; y < l.height; y++ {
		for x := 0; x < l.width; x++ {
			tx, ty := mapCell(x, y)
			out.cells[ty*nw+tx] = l.cells[y*l.width+x]

			if l.HorizOpen(x, y) {
				ex, ey := mapCell(x+1, y)
				out.open(tx, ty, ex, ey)
			}
			if l.VertOpen(x, y) {
				sx, sy := mapCell(x, y+1)
				out.open(tx, ty, sx, sy)
			}
		}
	}
	return out
}

// RandomTransform flips a coin for each of flipX, flipY and rotate
func (l *Layout) RandomTransform(rng random.Source) *Layout {
	flipX := rng.Bool()
	flipY := rng.Bool()
	rotate := rng.Bool()
	return l.Transform(flipX, flipY, rotate)
}

// open marks the adjacency between two orthogonally adjacent cells
func (l *Layout) open(ax, ay, bx, by int) {
	switch {
	case ay == by && bx == ax+1:
		l.horizOpen[ay*(l.width-1)+ax] = true
	case ay == by && ax == bx+1:
		l.horizOpen[ay*(l.width-1)+bx] = true
	case ax == bx && by == ay+1:
		l.vertOpen[ay*l.width+ax] = true
	case ax == bx && ay == by+1:
		l.vertOpen[by*l.width+ax] = true
	}
}
