package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"github.com/leonelquinteros/gotext"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/generator"
)

const snapshotCSS = `        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .subtitle {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .wall { color: #666; }
        .floor { color: #888; }
        .obstacle { color: #aaaa00; }
        .door { color: #aaaa00; }
        .door-locked { color: #ffff00; font-weight: bold; }
        .door-special { color: #00ffff; }
        .trap { color: #ff4444; }
        .chest { color: #ff66ff; font-weight: bold; }
        .stair { color: #00ffff; font-weight: bold; }
        .item { color: #bb86fc; }
        .key { color: #4444ff; }
        .monster { color: #ff4444; font-weight: bold; }
        .home { color: #00ff00; font-weight: bold; }
        .exit { color: #00aa00; }
        .void { color: #1a1a2e; }
        .warning { color: #ff4444; margin-top: 10px; }
`

// WriteSnapshot writes the map as a standalone HTML page
func WriteSnapshot(w io.Writer, dmap *world.Map, res *generator.Result, title string) error {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n    <meta charset=\"UTF-8\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("    <style>\n" + snapshotCSS + "    </style>\n</head>\n<body>\n")

	sb.WriteString(fmt.Sprintf(`    <div class="header">%s</div>`+"\n", html.EscapeString(title)))
	if res != nil {
		sub := gotext.Get("Layout %s, %d attempts", res.Layout, res.Attempts)
		sb.WriteString(fmt.Sprintf(`    <div class="subtitle">%s</div>`+"\n", html.EscapeString(sub)))
		if res.Warning != "" {
			sb.WriteString(fmt.Sprintf(`    <div class="warning">%s</div>`+"\n", html.EscapeString(res.Warning)))
		}
	}

	sb.WriteString(`    <div class="map-container">` + "\n")
	grid := NewGrid(dmap, res)
	for y := 0; y < grid.Height; y++ {
		sb.WriteString(`        <div class="map-row">`)
		for x := 0; x < grid.Width; x++ {
			gl := grid.At(x, y)
			sb.WriteString(fmt.Sprintf(`<span class="%s">%s</span>`, gl.Class, html.EscapeString(string(gl.Symbol))))
		}
		sb.WriteString("</div>\n")
	}
	sb.WriteString("    </div>\n</body>\n</html>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SaveSnapshot writes an HTML snapshot to a timestamped file in the
// current directory and returns the file name
func SaveSnapshot(dmap *world.Map, res *generator.Result, title string) (string, error) {
	filename := fmt.Sprintf("dungeon-%s.html", time.Now().Format("20060102-150405"))
	f, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteSnapshot(f, dmap, res, title); err != nil {
		return "", err
	}
	return filename, f.Close()
}
