package random

import "testing"

func TestRand_SameSeedSameSequence(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d: %d != %d for identical seeds", i, x, y)
		}
	}
}

func TestRand_ChanceBounds(t *testing.T) {
	r := New(1)
	for i := 0; i < 50; i++ {
		if r.Chance(0) {
			t.Fatal("Chance(0) = true, want false")
		}
		if !r.Chance(1) {
			t.Fatal("Chance(1) = false, want true")
		}
	}
}

func TestShuffleSlice_KeepsElements(t *testing.T) {
	r := New(7)
	items := []int{1, 2, 3, 4, 5, 6}
	ShuffleSlice(r, items)
	seen := make(map[int]bool)
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 6 {
		t.Errorf("ShuffleSlice lost elements: %v", items)
	}
}

func TestPick_InRange(t *testing.T) {
	r := New(3)
	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		got := Pick[string](r, items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("Pick returned %q, not an element", got)
		}
	}
}
