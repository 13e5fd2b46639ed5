package quest

import (
	"dungeongen/pkg/engine/random"
	"dungeongen/pkg/engine/world"
)

// ItemGenerator produces (item type, amount) pairs. It is either a fixed
// item with an amount range, or a weighted choice among child generators.
type ItemGenerator struct {
	Name string

	item     *world.ItemType
	min, max int

	children []weightedGenerator
	total    int
}

type weightedGenerator struct {
	gen    *ItemGenerator
	weight int
}

// NewFixedGenerator always yields itype, with an amount in [min, max]
func NewFixedGenerator(name string, itype *world.ItemType, min, max int) *ItemGenerator {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return &ItemGenerator{Name: name, item: itype, min: min, max: max}
}

// NewWeightedGenerator yields from its children in proportion to their weights
func NewWeightedGenerator(name string) *ItemGenerator {
	return &ItemGenerator{Name: name}
}

// Add adds a child generator. Non-positive weights are ignored.
func (g *ItemGenerator) Add(child *ItemGenerator, weight int) {
	if child == nil || weight <= 0 {
		return
	}
	g.children = append(g.children, weightedGenerator{gen: child, weight: weight})
	g.total += weight
}

// Generate draws an item type and amount. A weighted generator with no
// children yields (nil, 0).
func (g *ItemGenerator) Generate(rng random.Source) (*world.ItemType, int) {
	if g.item != nil {
		n := g.min
		if g.max > g.min {
			n += rng.Intn(g.max - g.min + 1)
		}
		return g.item, n
	}
	if g.total == 0 {
		return nil, 0
	}
	r := rng.Intn(g.total)
	for _, c := range g.children {
		if r < c.weight {
			return c.gen.Generate(rng)
		}
		r -= c.weight
	}
	return nil, 0
}

// StuffInfo is the ambient loot rule of one tile category
type StuffInfo struct {
	Category  int
	Chance    float64
	Generator *ItemGenerator
	// Weight is the category's share when choosing where required items go
	Weight int
	// Forbidden categories never receive required items, not even on the last try
	Forbidden bool
}

// StuffTable maps tile categories to loot rules, in insertion order
type StuffTable struct {
	entries []StuffInfo
	index   map[int]int
}

// NewStuffTable creates an empty table
func NewStuffTable() *StuffTable {
	return &StuffTable{index: make(map[int]int)}
}

// SetStuff sets the rule for a category. A negative weight forbids the
// category for required items without affecting ambient generation.
func (st *StuffTable) SetStuff(category int, chance float64, gen *ItemGenerator, weight int) {
	info := StuffInfo{
		Category:  category,
		Chance:    chance,
		Generator: gen,
		Weight:    max(weight, 0),
		Forbidden: weight < 0,
	}
	if i, ok := st.index[category]; ok {
		st.entries[i] = info
		return
	}
	st.index[category] = len(st.entries)
	st.entries = append(st.entries, info)
}

// Lookup returns the rule for a category
func (st *StuffTable) Lookup(category int) (StuffInfo, bool) {
	i, ok := st.index[category]
	if !ok {
		return StuffInfo{}, false
	}
	return st.entries[i], true
}

// Entries returns the rules in insertion order
func (st *StuffTable) Entries() []StuffInfo {
	return st.entries
}

// TotalWeight returns the sum of all category weights
func (st *StuffTable) TotalWeight() int {
	total := 0
	for _, e := range st.entries {
		total += e.Weight
	}
	return total
}

// Forbidden reports whether a category may never receive a required item.
// Categories without a rule are forbidden.
func (st *StuffTable) Forbidden(category int) bool {
	info, ok := st.Lookup(category)
	return !ok || info.Forbidden
}

// ChooseCategory draws a category by weight. Returns false if every weight is zero.
func (st *StuffTable) ChooseCategory(rng random.Source) (int, bool) {
	total := st.TotalWeight()
	if total <= 0 {
		return -1, false
	}
	r := rng.Intn(total)
	for _, e := range st.entries {
		if r < e.Weight {
			return e.Category, true
		}
		r -= e.Weight
	}
	return -1, false
}
