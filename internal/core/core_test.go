package core

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

func newRun(mutate func(c *config.Config)) *config.RunContext {
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	return config.NewRunContext(&cfg, time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
}

func TestNewBase_BadPattern(t *testing.T) {
	_, err := NewBase(newRun(func(c *config.Config) { c.Pattern = "(" }), storage.NewMemory(), nil)

	var ce *errs.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "pattern", ce.Field)
}

func TestLoadTiers_RecordsSkippedEntries(t *testing.T) {
	st := storage.NewMemory().
		Put("/home/daily", "db-2024-03-01.tar.gz", "weird.tar.gz").
		Put("/home/monthly", "db-2024-02-01.tar.gz", "notes.txt")

	b, err := NewBase(newRun(nil), st, nil)
	require.NoError(t, err)

	tiers, err := b.LoadTiers(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, tiers.Daily.Inventory.Count())
	assert.Equal(t, 1, tiers.Monthly.Inventory.Count())
	assert.Equal(t, 2, b.Summary.Skipped)
	assert.Equal(t, "/home/daily/weird.tar.gz", b.Summary.Items[0].Path)
	assert.Equal(t, "/home/monthly/notes.txt", b.Summary.Items[1].Path)
	assert.Equal(t, 1, b.Summary.DailyRecords)
}

func TestLoadTiers_ListFailureAborts(t *testing.T) {
	st := storage.NewMemory()
	st.FailList("/home/monthly", errors.New("broken pipe"))

	b, err := NewBase(newRun(nil), st, nil)
	require.NoError(t, err)

	_, err = b.LoadTiers(context.Background())
	assert.ErrorContains(t, err, "failed to load monthly backups")
}

func TestOutcome_RecordsFailure(t *testing.T) {
	b, err := NewBase(newRun(nil), storage.NewMemory(), report.NewSummary("x", time.Now()))
	require.NoError(t, err)

	item := b.Outcome(errs.OpRemove, "db", "/home/daily/db.tar.gz", storage.Outcome{Output: "denied", Err: errors.New("denied")})
	assert.Equal(t, report.StatusFailed, item.Status)
	assert.Equal(t, 1, b.Summary.Failures[errs.OpRemove])
}
