package backup

import (
	"iter"
	"slices"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
)

// Inventory indexes the records of one storage tier by logical name.
// Insertion order is the discovery order of the remote listing, which is
// not guaranteed to be alphabetical.
//
// An Inventory is built once per run and only read afterwards; it is not
// safe for concurrent mutation.
type Inventory struct {
	order  []string
	files  map[string][]Record
	latest map[string]Record
}

// NewInventory returns an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{
		files:  make(map[string][]Record),
		latest: make(map[string]Record),
	}
}

// Insert appends r to its name's history and makes it the latest record when
// its date is strictly newer. On equal dates the first-seen record stays latest.
func (inv *Inventory) Insert(r Record) {
	cur, ok := inv.latest[r.Name]
	if !ok {
		inv.order = append(inv.order, r.Name)
		inv.latest[r.Name] = r
	} else if r.Date.After(cur.Date) {
		inv.latest[r.Name] = r
	}
	inv.files[r.Name] = append(inv.files[r.Name], r)
}

// Names yields the known logical names in first-insertion order.
func (inv *Inventory) Names() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, n := range inv.order {
			if !yield(n) {
				return
			}
		}
	}
}

// Len reports how many logical names the inventory holds.
func (inv *Inventory) Len() int { return len(inv.order) }

// Count reports how many records the inventory holds across all names.
func (inv *Inventory) Count() int {
	n := 0
	for _, rs := range inv.files {
		n += len(rs)
	}
	return n
}

// Has reports whether at least one record of name was inserted.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.latest[name]
	return ok
}

// RecordsFor yields every record of name in insertion order.
func (inv *Inventory) RecordsFor(name string) (iter.Seq[Record], error) {
	rs, ok := inv.files[name]
	if !ok {
		return nil, &errs.LookupError{Name: name}
	}
	return slices.Values(rs), nil
}

// LatestFor returns the newest record of name.
func (inv *Inventory) LatestFor(name string) (Record, error) {
	r, ok := inv.latest[name]
	if !ok {
		return Record{}, &errs.LookupError{Name: name}
	}
	return r, nil
}

// IsStaleOrAbsent is true when name is unknown or its newest record is older
// than thresholdDays at now. Absence and staleness are equivalent triggers.
func (inv *Inventory) IsStaleOrAbsent(name string, thresholdDays int, now time.Time) bool {
	r, ok := inv.latest[name]
	if !ok {
		return true
	}
	return r.AgeDays(now) > thresholdDays
}
