package backup

import (
	"fmt"
	"time"
)

// Record is one archive entity discovered in a remote listing.
type Record struct {
	Filename string    // exact remote entry name, used for remove/copy
	Name     string    // logical name, e.g. "db"
	Date     time.Time // midnight of the encoded calendar date
}

const day = 24 * time.Hour

// AgeDays returns the whole days elapsed between the record's date and now,
// measured on now's wall clock so DST shifts never change the count.
// Partial days round down; dates after now yield negative ages.
func (r Record) AgeDays(now time.Time) int {
	wall := time.Date(now.Year(), now.Month(), now.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(), time.UTC)
	d := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)

	diff := wall.Sub(d)
	days := int(diff / day)
	if diff < 0 && diff%day != 0 {
		days--
	}
	return days
}

func (r Record) String() string {
	return fmt.Sprintf("%s: %s %s", r.Filename, r.Name, r.Date.Format(time.DateOnly))
}
