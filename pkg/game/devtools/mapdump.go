package devtools

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/terminal"
	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
)

// DumpOptions controls the text dump
type DumpOptions struct {
	// Color wraps every glyph in its ANSI style
	Color bool
	// Width is the column the legend wraps at; 0 means the width of the
	// terminal on stdout
	Width int
	// Seed is printed in the metadata when non-zero
	Seed int64
}

// WriteDump writes metadata, a legend, the map and the placement lists
func WriteDump(w io.Writer, dmap *world.Map, res *generator.Result, opts DumpOptions) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "--- "+gotext.Get("Dungeon")+" ---")
	if opts.Seed != 0 {
		fmt.Fprintf(bw, "seed: %d\n", opts.Seed)
	}
	fmt.Fprintf(bw, "map_size: %dx%d\n", dmap.Width(), dmap.Height())
	if res != nil {
		fmt.Fprintf(bw, "layout: %s\n", res.Layout)
		fmt.Fprintf(bw, "layout_cells: %dx%d\n", res.Width, res.Height)
		fmt.Fprintf(bw, "attempts: %d\n", res.Attempts)
		fmt.Fprintf(bw, "locks: %d\n", res.Locks)
		fmt.Fprintf(bw, "traps: %d\n", res.Traps)
		fmt.Fprintf(bw, "stuff: %d\n", res.StuffPlaced)
		if res.Warning != "" {
			fmt.Fprintf(bw, "warning: %s\n", res.Warning)
		}
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- "+gotext.Get("Legend")+" ---")
	writeLegend(bw, opts)
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "--- "+gotext.Get("Map")+" ---")
	grid := NewGrid(dmap, res)
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			gl := grid.At(x, y)
			if style, ok := styles[gl.Class]; ok && opts.Color {
				bw.WriteString(style.Sprint(string(gl.Symbol)))
				continue
			}
			bw.WriteRune(gl.Symbol)
		}
		bw.WriteByte('\n')
	}

	if res != nil {
		writeAnchors(bw, gotext.Get("Homes"), res.Homes, true)
		writeAnchors(bw, gotext.Get("Exits"), res.Exits, false)
		if len(res.LockpicksAdded) > 0 {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, gotext.Get("Lock picks added:"))
			for _, pos := range res.LockpicksAdded {
				fmt.Fprintf(bw, "  %s\n", pos)
			}
		}
		if len(res.MonstersPlaced) > 0 {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, gotext.Get("Monsters placed:"))
			for _, m := range res.MonstersPlaced {
				fmt.Fprintf(bw, "  %s: %d\n", m.Type.Name, m.Count)
			}
		}
		if len(res.Monsters) > 0 {
			fmt.Fprintln(bw)
			fmt.Fprintln(bw, gotext.Get("Monster positions:"))
			for _, m := range res.Monsters {
				fmt.Fprintf(bw, "  %s at %s facing %s\n", m.Type.Name, m.Pos, m.Facing)
			}
		}
	}
	return bw.Flush()
}

func writeAnchors(w io.Writer, title string, anchors []generator.Anchor, players bool) {
	if len(anchors) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title+":")
	for i, a := range anchors {
		label := fmt.Sprintf("%d", i+1)
		if players {
			label = homeLabel(i)
		}
		special := ""
		if a.SpecialExit {
			special = " (" + gotext.Get("special") + ")"
		}
		fmt.Fprintf(w, "  %s: %s facing %s, start %s%s\n", label, a.Pos, a.Facing, a.StartSquare(), special)
	}
}

// writeLegend packs "symbol = text" entries into lines no wider than the
// dump width
func writeLegend(w io.Writer, opts DumpOptions) {
	width := opts.Width
	if width <= 0 {
		width, _ = terminal.Size(os.Stdout)
	}

	var line strings.Builder
	lineLen := 0
	for _, e := range legend {
		desc := e.text()
		plain := e.symbol + " = " + desc
		text := plain
		if opts.Color {
			text = styles[e.class].Sprint(e.symbol) + " = " + desc
		}
		if lineLen > 0 && lineLen+2+len(plain) > width {
			fmt.Fprintln(w, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteString("  ")
			lineLen += 2
		}
		line.WriteString(text)
		lineLen += len(color.ClearCode(text))
	}
	if lineLen > 0 {
		fmt.Fprintln(w, line.String())
	}
}

// DumpToFile writes an uncoloured dump to filename and returns its
// absolute path
func DumpToFile(filename string, dmap *world.Map, res *generator.Result, seed int64) (string, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		return "", err
	}
	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, dmap, res, DumpOptions{Width: terminal.DefaultWidth, Seed: seed}); err != nil {
		return "", err
	}
	return absPath, f.Close()
}
