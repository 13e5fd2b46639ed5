// Package quest describes what a generated dungeon must contain: which
// layouts to try, where players start and leave, and which keys, items
// and monsters to seed.
package quest

import (
	"strings"

	"dungeongen/pkg/engine/world"
	"dungeongen/pkg/game/layout"
)

// HomeType is the policy for distributing player homes
type HomeType int

// Home policies
const (
	HomeNone          HomeType = iota // no homes assigned
	HomeClose                         // every player in one segment
	HomeAway                          // each player in a different edge segment
	HomeRandom                        // any homes in the dungeon
	HomeRandomRespawn                 // players respawn anywhere; no homes assigned
)

// String returns the config name of a home policy
func (h HomeType) String() string {
	switch h {
	case HomeNone:
		return "none"
	case HomeClose:
		return "close"
	case HomeAway:
		return "away"
	case HomeRandom:
		return "random"
	case HomeRandomRespawn:
		return "random_respawn"
	default:
		return "unknown"
	}
}

// ExemptsHomes reports whether the policy skips home generation entirely
func (h HomeType) ExemptsHomes() bool {
	return h == HomeNone || h == HomeRandomRespawn
}

// ParseHomeType parses a home policy name
func ParseHomeType(s string) (HomeType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return HomeNone, true
	case "close":
		return HomeClose, true
	case "away":
		return HomeAway, true
	case "random":
		return HomeRandom, true
	case "random_respawn", "respawn":
		return HomeRandomRespawn, true
	default:
		return HomeNone, false
	}
}

// ExitType is the policy for choosing each player's exit point
type ExitType int

// Exit policies
const (
	ExitNone    ExitType = iota
	ExitSelf             // leave by your own home
	ExitOther            // leave by another player's home
	ExitRandom           // leave by a random unassigned home
	ExitSpecial          // leave by the special exit of a category segment
)

// String returns the config name of an exit policy
func (e ExitType) String() string {
	switch e {
	case ExitNone:
		return "none"
	case ExitSelf:
		return "self"
	case ExitOther:
		return "other"
	case ExitRandom:
		return "random"
	case ExitSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// ParseExitType parses an exit policy name
func ParseExitType(s string) (ExitType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return ExitNone, true
	case "self":
		return ExitSelf, true
	case "other":
		return ExitOther, true
	case "random":
		return ExitRandom, true
	case "special":
		return ExitSpecial, true
	default:
		return ExitNone, false
	}
}

// RequiredItem is an item that must be placed somewhere in the dungeon
type RequiredItem struct {
	Type  *world.ItemType
	Count int // number of separate copies
}

// MonsterCount is an initial monster population
type MonsterCount struct {
	Type  *world.MonsterType
	Count int
}

// MonsterLimit is a ceiling on one monster type
type MonsterLimit struct {
	Type *world.MonsterType
	Max  int
}

// Quest is the full set of structural requirements for one generation
type Quest struct {
	Name string

	// Layouts are tried in order; the first is preferred
	Layouts []*layout.Candidate

	Home HomeType
	Exit ExitType
	// ExitCategory is the segment category searched for ExitSpecial
	ExitCategory int

	// RequiredSegments lists segment categories that must appear once each
	RequiredSegments []int

	NumKeys    int
	Pretrapped bool
	Tutorial   bool
	Lockpicks  *world.ItemType

	RequiredItems []RequiredItem
	Stuff         *StuffTable

	Monsters          []MonsterCount
	MonsterLimits     []MonsterLimit
	TotalMonsterLimit int // world.NoLimit for none
}

// New creates a quest with no requirements
func New(name string) *Quest {
	return &Quest{
		Name:              name,
		ExitCategory:      -1,
		Stuff:             NewStuffTable(),
		TotalMonsterLimit: world.NoLimit,
	}
}
