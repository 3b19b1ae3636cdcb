package backup

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var runStart = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

func rec(name string, d time.Time) Record {
	return Record{Filename: Format(name, d), Name: name, Date: d}
}

func TestInsert_TracksLatest(t *testing.T) {
	inv := NewInventory()
	inv.Insert(rec("db", date(2024, 2, 20)))
	inv.Insert(rec("db", date(2024, 1, 1)))
	inv.Insert(rec("db", date(2024, 3, 1)))
	inv.Insert(rec("db", date(2024, 2, 1)))

	latest, err := inv.LatestFor("db")
	require.NoError(t, err)
	assert.Equal(t, "db-2024-03-01.tar.gz", latest.Filename)
	assert.Equal(t, 4, inv.Count())
	assert.Equal(t, 1, inv.Len())
}

func TestInsert_TieKeepsFirstSeen(t *testing.T) {
	inv := NewInventory()
	inv.Insert(Record{Filename: "db-2024-03-01.tar.gz", Name: "db", Date: date(2024, 3, 1)})
	inv.Insert(Record{Filename: "db-2024-3-1.tar.gz", Name: "db", Date: date(2024, 3, 1)})

	latest, err := inv.LatestFor("db")
	require.NoError(t, err)
	assert.Equal(t, "db-2024-03-01.tar.gz", latest.Filename)
}

func TestNames_FirstInsertionOrder(t *testing.T) {
	inv := NewInventory()
	for _, n := range []string{"mail", "db", "mail", "web", "db"} {
		inv.Insert(rec(n, date(2024, 3, 1)))
	}

	assert.Equal(t, []string{"mail", "db", "web"}, slices.Collect(inv.Names()))
	// restartable
	assert.Equal(t, []string{"mail", "db", "web"}, slices.Collect(inv.Names()))

	var first []string
	for n := range inv.Names() {
		first = append(first, n)
		break
	}
	assert.Equal(t, []string{"mail"}, first)
}

func TestRecordsFor(t *testing.T) {
	inv := NewInventory()
	inv.Insert(rec("db", date(2024, 2, 1)))
	inv.Insert(rec("mail", date(2024, 2, 3)))
	inv.Insert(rec("db", date(2024, 1, 1)))

	seq, err := inv.RecordsFor("db")
	require.NoError(t, err)
	got := slices.Collect(seq)
	require.Len(t, got, 2)
	assert.Equal(t, "db-2024-02-01.tar.gz", got[0].Filename)
	assert.Equal(t, "db-2024-01-01.tar.gz", got[1].Filename)
}

func TestLookups_NotFound(t *testing.T) {
	inv := NewInventory()

	_, err := inv.RecordsFor("ghost")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	_, err = inv.LatestFor("ghost")
	assert.True(t, errors.Is(err, errs.ErrNotFound))

	var le *errs.LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "ghost", le.Name)
	assert.False(t, inv.Has("ghost"))
}

func TestIsStaleOrAbsent(t *testing.T) {
	inv := NewInventory()
	inv.Insert(rec("db", date(2024, 2, 15)))  // 24d
	inv.Insert(rec("mail", date(2024, 2, 9))) // 30d
	inv.Insert(rec("web", date(2024, 2, 8)))  // 31d
	inv.Insert(rec("web", date(2023, 12, 1))) // older history is irrelevant

	tests := []struct {
		name string
		days int
		want bool
	}{
		{"ghost", 30, true},
		{"db", 30, false},
		{"db", 23, true},
		{"mail", 30, false},
		{"web", 30, true},
		{"web", 31, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, inv.IsStaleOrAbsent(tt.name, tt.days, runStart), "%s/%d", tt.name, tt.days)
	}
}

func TestLatest_IsMaximumDate(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "b", "c", "d"}

	for round := 0; round < 50; round++ {
		inv := NewInventory()
		maxDate := map[string]time.Time{}

		for i := 0; i < 1+rng.Intn(40); i++ {
			n := names[rng.Intn(len(names))]
			d := date(2023, 1, 1).AddDate(0, 0, rng.Intn(500))
			inv.Insert(rec(n, d))
			if d.After(maxDate[n]) {
				maxDate[n] = d
			}
		}

		for n := range inv.Names() {
			latest, err := inv.LatestFor(n)
			require.NoError(t, err)
			assert.True(t, maxDate[n].Equal(latest.Date))

			seq, err := inv.RecordsFor(n)
			require.NoError(t, err)
			for r := range seq {
				assert.False(t, r.Date.After(latest.Date))
			}
		}
		assert.Equal(t, len(maxDate), inv.Len())
	}
}
