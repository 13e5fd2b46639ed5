package world

// Key numbers carried by item types
const (
	NotAKey  = 0
	Lockpick = -1 // opens every lock that a key could open, plus pick-only locks
)

// ItemType describes a kind of item (gem, key, lock picks, ...)
type ItemType struct {
	Name string

	// Key is NotAKey, Lockpick, or a positive key number matching a lock.
	Key int
}

// NewItemType creates a new, non-key item type
func NewItemType(name string) *ItemType {
	return &ItemType{Name: name}
}

// IsLockpick returns true if this item type is the universal lock pick
func (t *ItemType) IsLockpick() bool {
	return t != nil && t.Key == Lockpick
}

// KeyNumber returns the key number (>0) or 0 if the item is not a numbered key
func (t *ItemType) KeyNumber() int {
	if t == nil || t.Key <= 0 {
		return 0
	}
	return t.Key
}

// Item is a stack of items of one type lying on a square or inside a container
type Item struct {
	Type  *ItemType
	Count int
}

// NewItem creates a new item stack
func NewItem(itype *ItemType, count int) *Item {
	if count < 1 {
		count = 1
	}
	return &Item{Type: itype, Count: count}
}
