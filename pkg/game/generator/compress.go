package generator

import (
	"dungeongen/pkg/game/failure"
)

// compress strips empty outer columns and rows (left, right, top, then
// bottom) and moves the recorded homes with them
func (st *state) compress() error {
	for {
		if st.lw <= 0 || st.lh <= 0 {
			return failure.Retryf("layout compressed to nothing")
		}
		if st.columnOccupied(0) {
			break
		}
		st.chop(1, 0, st.lw-1, st.lh)
		st.shiftHomes(-(st.rw + 1), 0)
	}
	for {
		if st.lw <= 0 || st.lh <= 0 {
			return failure.Retryf("layout compressed to nothing")
		}
		if st.columnOccupied(st.lw - 1) {
			break
		}
		st.chop(0, 0, st.lw-1, st.lh)
	}
	for {
		if st.lw <= 0 || st.lh <= 0 {
			return failure.Retryf("layout compressed to nothing")
		}
		if st.rowOccupied(0) {
			break
		}
		st.chop(0, 1, st.lw, st.lh-1)
		st.shiftHomes(0, -(st.rh + 1))
	}
	for {
		if st.lw <= 0 || st.lh <= 0 {
			return failure.Retryf("layout compressed to nothing")
		}
		if st.rowOccupied(st.lh - 1) {
			break
		}
		st.chop(0, 0, st.lw, st.lh-1)
	}
	return nil
}

func (st *state) columnOccupied(x int) bool {
	for y := 0; y < st.lh; y++ {
		if st.occupied(x, y) {
			return true
		}
	}
	return false
}

func (st *state) rowOccupied(y int) bool {
	for x := 0; x < st.lw; x++ {
		if st.occupied(x, y) {
			return true
		}
	}
	return false
}

// chop keeps the nw x nh window of cells starting at (xofs,yofs)
func (st *state) chop(xofs, yofs, nw, nh int) {
	cells := make([]cellInfo, 0, max(nw*nh, 0))
	for y := 0; y < nh; y++ {
		for x := 0; x < nw; x++ {
			cells = append(cells, st.cells[(y+yofs)*st.lw+x+xofs])
		}
	}

	horiz := make([]bool, 0, max((nw-1)*nh, 0))
	for y := 0; y < nh; y++ {
		for x := 0; x < nw-1; x++ {
			horiz = append(horiz, st.horizOpen[(y+yofs)*(st.lw-1)+x+xofs])
		}
	}

	vert := make([]bool, 0, max(nw*(nh-1), 0))
	for y := 0; y < nh-1; y++ {
		for x := 0; x < nw; x++ {
			vert = append(vert, st.vertOpen[(y+yofs)*st.lw+x+xofs])
		}
	}

	st.lw, st.lh = nw, nh
	st.cells, st.horizOpen, st.vertOpen = cells, horiz, vert
}

func (st *state) shiftHomes(dx, dy int) {
	for _, list := range [][]Anchor{st.allHomes, st.assigned, st.unassigned} {
		for i := range list {
			list[i].Pos.X += dx
			list[i].Pos.Y += dy
		}
	}
}
