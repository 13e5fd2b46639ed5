package terminal

import (
	"os"
	"path/filepath"
	"testing"
)

func tempFile(t *testing.T) *os.File {
	t.Helper()
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestSize_FileUsesDefaults(t *testing.T) {
	w, h := Size(tempFile(t))
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if w, h := Size(nil); w != DefaultWidth || h != DefaultHeight {
		t.Errorf("Size(nil) = %dx%d, want defaults", w, h)
	}
}

func TestFits(t *testing.T) {
	f := tempFile(t)
	tests := []struct {
		name          string
		width, height int
		extra         int
		want          bool
	}{
		{"small map", 20, 10, 4, true},
		{"exact fit", DefaultWidth, DefaultHeight - 2, 2, true},
		{"too wide", DefaultWidth + 1, 5, 0, false},
		{"too tall with header", 10, DefaultHeight, 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fits(f, tt.width, tt.height, tt.extra); got != tt.want {
				t.Errorf("Fits(%d, %d, %d) = %v, want %v", tt.width, tt.height, tt.extra, got, tt.want)
			}
		})
	}
}

func TestIsTerminal_File(t *testing.T) {
	if IsTerminal(tempFile(t)) {
		t.Error("a regular file is not a terminal")
	}
	if IsTerminal(nil) {
		t.Error("nil is not a terminal")
	}
}
