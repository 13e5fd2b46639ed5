// Package devtools writes generated dungeons out for inspection: a text
// dump with a legend and an HTML snapshot.
package devtools

import (
	"strconv"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
)

// Glyph is how one square is drawn
type Glyph struct {
	Symbol rune
	// Class names the glyph kind; it doubles as the CSS class in HTML output
	Class string
}

// Glyph classes
const (
	ClassVoid        = "void"
	ClassWall        = "wall"
	ClassObstacle    = "obstacle"
	ClassFloor       = "floor"
	ClassDoor        = "door"
	ClassDoorLocked  = "door-locked"
	ClassDoorSpecial = "door-special"
	ClassTrap        = "trap"
	ClassChest       = "chest"
	ClassStair       = "stair"
	ClassItem        = "item"
	ClassKey         = "key"
	ClassMonster     = "monster"
	ClassHome        = "home"
	ClassExit        = "exit"
)

var styles = map[string]color.Style{
	ClassWall:        {color.FgGray},
	ClassObstacle:    {color.FgYellow},
	ClassFloor:       {color.FgGray, color.OpBold},
	ClassDoor:        {color.FgYellow},
	ClassDoorLocked:  {color.FgYellow, color.OpBold},
	ClassDoorSpecial: {color.FgCyan},
	ClassTrap:        {color.FgRed},
	ClassChest:       {color.FgMagenta, color.OpBold},
	ClassStair:       {color.FgCyan, color.OpBold},
	ClassItem:        {color.FgMagenta},
	ClassKey:         {color.FgBlue},
	ClassMonster:     {color.FgRed, color.OpBold},
	ClassHome:        {color.FgGreen, color.BgBlack, color.OpBold},
	ClassExit:        {color.FgGreen},
}

// legendEntry pairs a symbol with its description. text is called when
// the legend is written so the current language is used.
type legendEntry struct {
	symbol string
	class  string
	text   func() string
}

var legend = []legendEntry{
	{"#", ClassWall, func() string { return gotext.Get("wall") }},
	{".", ClassFloor, func() string { return gotext.Get("floor") }},
	{"o", ClassObstacle, func() string { return gotext.Get("obstacle") }},
	{"/", ClassDoor, func() string { return gotext.Get("door") }},
	{"+", ClassDoorLocked, func() string { return gotext.Get("locked door") }},
	{"&", ClassDoorSpecial, func() string { return gotext.Get("lever door") }},
	{"!", ClassTrap, func() string { return gotext.Get("trap") }},
	{"c", ClassChest, func() string { return gotext.Get("container") }},
	{"C", ClassChest, func() string { return gotext.Get("full container") }},
	{">", ClassStair, func() string { return gotext.Get("stairs") }},
	{"*", ClassItem, func() string { return gotext.Get("item") }},
	{"k", ClassKey, func() string { return gotext.Get("key") }},
	{"p", ClassKey, func() string { return gotext.Get("lock picks") }},
	{"M", ClassMonster, func() string { return gotext.Get("monster") }},
	{"1-9", ClassHome, func() string { return gotext.Get("player home") }},
	{"X", ClassExit, func() string { return gotext.Get("exit") }},
}

// SquareGlyph returns the glyph for a square without home or exit marks.
// Monsters hide items, items hide tiles, and the first notable tile wins.
func SquareGlyph(dmap *world.Map, pos world.Coord) Glyph {
	if dmap.Monster(pos) != nil {
		return Glyph{'M', ClassMonster}
	}
	if item := dmap.Item(pos); item != nil {
		return itemGlyph(item.Type)
	}

	tiles := dmap.Tiles(pos)
	if len(tiles) == 0 {
		return Glyph{' ', ClassVoid}
	}
	for _, t := range tiles {
		switch {
		case t.Stair:
			return Glyph{'>', ClassStair}
		case t.Trap != nil:
			return Glyph{'!', ClassTrap}
		case t.Container:
			if t.PlacedItem() != nil {
				return Glyph{'C', ClassChest}
			}
			return Glyph{'c', ClassChest}
		case t.IsLockable():
			if t.Lock.IsSpecial() {
				return Glyph{'&', ClassDoorSpecial}
			}
			if t.Lock.IsLocked() {
				return Glyph{'+', ClassDoorLocked}
			}
			return Glyph{'/', ClassDoor}
		}
	}

	switch dmap.AccessTilesOnly(pos, world.HeightWalking) {
	case world.AccessClear:
		return Glyph{'.', ClassFloor}
	case world.AccessApproach:
		return Glyph{'o', ClassObstacle}
	default:
		return Glyph{'#', ClassWall}
	}
}

func itemGlyph(it *world.ItemType) Glyph {
	switch {
	case it.IsLockpick():
		return Glyph{'p', ClassKey}
	case it.KeyNumber() > 0:
		return Glyph{'k', ClassKey}
	default:
		return Glyph{'*', ClassItem}
	}
}

// Grid is the glyph for every square of a map with homes and exits marked
type Grid struct {
	Width, Height int
	glyphs        []Glyph
}

// At returns the glyph at x, y
func (g *Grid) At(x, y int) Glyph {
	return g.glyphs[y*g.Width+x]
}

// NewGrid draws a map. Homes are numbered from 1 in player order (players
// beyond the ninth share '9'); an exit that is not also a home is an X.
func NewGrid(dmap *world.Map, res *generator.Result) *Grid {
	g := &Grid{Width: dmap.Width(), Height: dmap.Height()}
	g.glyphs = make([]Glyph, 0, g.Width*g.Height)
	dmap.ForEachSquare(func(pos world.Coord) {
		g.glyphs = append(g.glyphs, SquareGlyph(dmap, pos))
	})
	if res == nil {
		return g
	}

	mark := func(pos world.Coord, gl Glyph) {
		if dmap.Valid(pos) {
			g.glyphs[pos.Y*g.Width+pos.X] = gl
		}
	}
	for _, e := range res.Exits {
		mark(e.Pos, Glyph{'X', ClassExit})
	}
	for i, h := range res.Homes {
		n := min(i+1, 9)
		mark(h.Pos, Glyph{rune('0' + n), ClassHome})
	}
	return g
}

// homeLabel names a player's home for listings
func homeLabel(i int) string {
	return gotext.Get("player %s", strconv.Itoa(i+1))
}
