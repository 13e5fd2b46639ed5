package world

import (
	"dungeongen/pkg/engine/random"
)

// Lock numbers with special meaning
const (
	LockNotGenerated = -1
	LockUnlocked     = 0
	LockPickOnly     = 99998 // only lock picks open it
	LockSpecial      = 99999 // opened by levers or pressure pads, never by keys
)

// Lock holds the lock state and lock generation parameters of a lockable tile
type Lock struct {
	Num int

	Chance         float64 // chance of being locked at all
	PickOnlyChance float64 // chance a lock is pick-only
	KeyMax         int     // locks are drawn from 1..max(KeyMax, nkeys)
}

// NewLock creates a lock that has not been generated yet
func NewLock(chance, pickOnlyChance float64, keyMax int) *Lock {
	if keyMax < 1 {
		keyMax = 1
	}
	return &Lock{
		Num:            LockNotGenerated,
		Chance:         chance,
		PickOnlyChance: pickOnlyChance,
		KeyMax:         keyMax,
	}
}

// NewSpecialLock creates a lever-operated lock
func NewSpecialLock() *Lock {
	return &Lock{Num: LockSpecial, KeyMax: 1}
}

// Generate draws a lock number for a dungeon with nkeys keys.
// Already generated and special locks are left alone.
func (l *Lock) Generate(rng random.Source, nkeys int) {
	if l.Num >= 0 {
		return
	}
	if nkeys <= 0 || !rng.Chance(l.Chance) {
		l.Num = LockUnlocked
		return
	}
	if rng.Chance(l.PickOnlyChance) {
		l.Num = LockPickOnly
		return
	}
	top := l.KeyMax
	if nkeys > top {
		top = nkeys
	}
	l.Num = 1 + rng.Intn(top)
	if l.Num > nkeys {
		// keymax came into effect
		l.Num = LockUnlocked
	}
}

// IsLocked returns true for key, pick-only and special locks
func (l *Lock) IsLocked() bool {
	return l != nil && l.Num > 0
}

// IsSpecial returns true for lever-operated locks
func (l *Lock) IsSpecial() bool {
	return l != nil && l.Num == LockSpecial
}

// KeyNumber returns the number a key (or lock pick) must match, or 0 if
// no key is needed. Special locks report 0.
func (l *Lock) KeyNumber() int {
	if !l.IsLocked() || l.IsSpecial() {
		return 0
	}
	return l.Num
}
