// Package terminal reports what the output terminal can show.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// Sizes assumed when the output is not a terminal
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// Size returns the width and height of the terminal behind f, or the
// defaults when f is a file or pipe
func Size(f *os.File) (width, height int) {
	if f == nil {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// Fits reports whether a map of the given size can be shown on f without
// scrolling. extraRows counts the lines printed around the map.
func Fits(f *os.File, mapWidth, mapHeight, extraRows int) bool {
	width, height := Size(f)
	return mapWidth <= width && mapHeight+extraRows <= height
}

// IsTerminal reports whether f is attached to a terminal. Map dumps only
// use colour when it is.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
