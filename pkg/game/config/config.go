// Package config loads tiles, items, segments and a quest from YAML and
// turns them into the values the generator works with.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the structure of a dungeon YAML file
type File struct {
	// Categories names the tile categories used for loot, in index order
	Categories []string `yaml:"categories"`
	// SegmentCategories names the categories of special segments
	SegmentCategories []string `yaml:"segment_categories"`

	Tiles      map[string]TileYAML      `yaml:"tiles"`
	Items      map[string]ItemYAML      `yaml:"items"`
	Generators map[string]GeneratorYAML `yaml:"generators"`
	Monsters   map[string]MonsterYAML   `yaml:"monsters"`

	Segments []SegmentYAML `yaml:"segments"`
	Dungeon  DungeonYAML   `yaml:"dungeon"`
	Quest    QuestYAML     `yaml:"quest"`
}

// TileYAML describes a tile
type TileYAML struct {
	Access         string `yaml:"access"`
	AccessFlying   string `yaml:"access_flying"`
	AccessMissiles string `yaml:"access_missiles"`

	Items        bool   `yaml:"items"`
	Category     string `yaml:"category"`
	Container    bool   `yaml:"container"`
	Destructible bool   `yaml:"destructible"`
	Stair        bool   `yaml:"stair"`
	Connectivity string `yaml:"connectivity"` // "passable" or "impassable"
	Tutorial     int    `yaml:"tutorial"`

	Lock       *LockYAML  `yaml:"lock"`
	TrapChance float64    `yaml:"trap_chance"`
	Traps      []TrapYAML `yaml:"traps"`

	Reflected string `yaml:"reflected"`
	Rotated   string `yaml:"rotated"`
}

// LockYAML describes the lock of a door or chest
type LockYAML struct {
	Chance   float64 `yaml:"chance"`
	PickOnly float64 `yaml:"pick_only"`
	KeyMax   int     `yaml:"key_max"`
	Special  bool    `yaml:"special"`
}

// TrapYAML is a trap that may be set on a lockable tile
type TrapYAML struct {
	Name   string `yaml:"name"`
	Disarm string `yaml:"disarm"`
}

// ItemYAML describes an item type
type ItemYAML struct {
	Key      int  `yaml:"key"`
	Lockpick bool `yaml:"lockpick"`
}

// GeneratorYAML is either a fixed item with an amount range or a list of
// weighted choices
type GeneratorYAML struct {
	Item    string       `yaml:"item"`
	Min     int          `yaml:"min"`
	Max     int          `yaml:"max"`
	Choices []ChoiceYAML `yaml:"choices"`
}

// ChoiceYAML is one weighted branch of a generator
type ChoiceYAML struct {
	Generator string `yaml:"generator"`
	Weight    int    `yaml:"weight"`
}

// MonsterYAML describes a monster type
type MonsterYAML struct {
	Height string `yaml:"height"`
}

// SegmentYAML is a room template drawn as rows of symbols
type SegmentYAML struct {
	Name     string              `yaml:"name"`
	Category string              `yaml:"category"`
	Rows     []string            `yaml:"rows"`
	Legend   map[string][]string `yaml:"legend"`
	Homes    []HomeYAML          `yaml:"homes"`
	Items    []PlacedItemYAML    `yaml:"items"`
	Monsters []PlacedMonsterYAML `yaml:"monsters"`
	Rooms    []RoomYAML          `yaml:"rooms"`
}

// HomeYAML is a home anchor inside a segment
type HomeYAML struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Facing  string `yaml:"facing"`
	Special bool   `yaml:"special"`
}

// PlacedItemYAML is an item lying in a segment
type PlacedItemYAML struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// PlacedMonsterYAML is a monster standing in a segment
type PlacedMonsterYAML struct {
	X       int    `yaml:"x"`
	Y       int    `yaml:"y"`
	Monster string `yaml:"monster"`
	Facing  string `yaml:"facing"`
}

// RoomYAML is a room rectangle inside a segment, walls included
type RoomYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// DungeonYAML names the tiles used between segments
type DungeonYAML struct {
	Wall      []string `yaml:"wall"`
	HorizDoor []string `yaml:"horiz_door"`
	VertDoor  []string `yaml:"vert_door"`
}

// QuestYAML describes the quest to generate for
type QuestYAML struct {
	Name             string             `yaml:"name"`
	Layouts          []LayoutYAML       `yaml:"layouts"`
	Home             string             `yaml:"home"`
	Exit             string             `yaml:"exit"`
	ExitCategory     string             `yaml:"exit_category"`
	RequiredSegments []string           `yaml:"required_segments"`
	Keys             int                `yaml:"keys"`
	Pretrapped       bool               `yaml:"pretrapped"`
	Tutorial         bool               `yaml:"tutorial"`
	Lockpicks        string             `yaml:"lockpicks"`
	RequiredItems    []RequiredYAML     `yaml:"required_items"`
	Stuff            []StuffYAML        `yaml:"stuff"`
	Monsters         []MonsterCountYAML `yaml:"monsters"`
	MonsterLimits    []MonsterCountYAML `yaml:"monster_limits"`
	TotalMonsters    *int               `yaml:"total_monster_limit"`
}

// LayoutYAML is a named candidate layout with weighted variants
type LayoutYAML struct {
	Name     string        `yaml:"name"`
	Variants []VariantYAML `yaml:"variants"`
}

// VariantYAML is one skeleton drawn as rows of B, E, S and '.'
type VariantYAML struct {
	Weight int               `yaml:"weight"`
	Rows   []string          `yaml:"rows"`
	Exits  map[string]string `yaml:"exits"`
}

// RequiredYAML is an item that must be placed Count times
type RequiredYAML struct {
	Item  string `yaml:"item"`
	Count int    `yaml:"count"`
}

// StuffYAML is the loot rule of a tile category. A negative weight keeps
// required items out of the category.
type StuffYAML struct {
	Category  string  `yaml:"category"`
	Chance    float64 `yaml:"chance"`
	Generator string  `yaml:"generator"`
	Weight    int     `yaml:"weight"`
}

// MonsterCountYAML pairs a monster type with a number
type MonsterCountYAML struct {
	Monster string `yaml:"monster"`
	Count   int    `yaml:"count"`
}

// Load reads and builds a dungeon YAML file
func Load(filename string) (*Setup, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read dungeon file: %w", err)
	}
	return Parse(data)
}

// Parse builds a setup from YAML text
func Parse(data []byte) (*Setup, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse dungeon YAML: %w", err)
	}
	return Build(&f)
}
