// Package policy decides which archives expire and which get promoted.
// Both selections are pure functions of their inventories: they never mutate
// them and never touch remote storage.
package policy

import (
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
)

// DefaultPromoteMaxAgeDays is how old the newest monthly archive may get
// before a fresh daily one is promoted.
const DefaultPromoteMaxAgeDays = 30

// Selection pairs a logical name with the record a policy picked for it.
type Selection struct {
	Name   string
	Record backup.Record
}

// SelectExpired returns every daily record, across each name's full history,
// whose age at now exceeds thresholdDays. Output follows inventory order.
func SelectExpired(daily *backup.Inventory, thresholdDays int, now time.Time) []Selection {
	var out []Selection
	for name := range daily.Names() {
		records, err := daily.RecordsFor(name)
		if err != nil {
			continue
		}
		for r := range records {
			if r.AgeDays(now) > thresholdDays {
				out = append(out, Selection{Name: name, Record: r})
			}
		}
	}
	return out
}

// SelectPromotions returns, for each daily name whose monthly copy is missing
// or older than maxAgeDays, the newest daily record of that name.
func SelectPromotions(daily, monthly *backup.Inventory, maxAgeDays int, now time.Time) []Selection {
	var out []Selection
	for name := range daily.Names() {
		if !monthly.IsStaleOrAbsent(name, maxAgeDays, now) {
			continue
		}
		latest, err := daily.LatestFor(name)
		if err != nil {
			continue
		}
		out = append(out, Selection{Name: name, Record: latest})
	}
	return out
}
