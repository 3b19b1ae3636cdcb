package loader

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

var parser = backup.MustParser(backup.DefaultPattern)

func TestLoad_SkipsBadEntries(t *testing.T) {
	st := storage.NewMemory().Put("/home/daily",
		"db-2024-01-01.tar.gz",
		"weird.tar.gz",
		"invoicing-2024-02-30.tar.gz",
		"mail-2024-03-01.tar.gz",
		"db-2024-02-20.tar.gz",
	)

	res, err := Load(context.Background(), st, "/home/daily", parser, config.ParseErrorSkip)
	require.NoError(t, err)

	assert.Equal(t, []string{"db", "mail"}, slices.Collect(res.Inventory.Names()))
	assert.Equal(t, 3, res.Inventory.Count())
	require.Len(t, res.Skipped, 2)
	assert.Equal(t, errs.NoMatch, res.Skipped[0].Err.Kind)
	assert.Equal(t, "weird.tar.gz", res.Skipped[0].Err.Filename)
	assert.Equal(t, errs.InvalidDate, res.Skipped[1].Err.Kind)
	assert.Equal(t, "invoicing-2024-02-30.tar.gz", res.Skipped[1].Err.Filename)
}

func TestLoad_AbortPolicy(t *testing.T) {
	st := storage.NewMemory().Put("/home/daily", "db-2024-01-01.tar.gz", "weird.tar.gz")

	_, err := Load(context.Background(), st, "/home/daily", parser, config.ParseErrorAbort)

	var pe *errs.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, errs.NoMatch, pe.Kind)
}

func TestLoad_EmptyDir(t *testing.T) {
	res, err := Load(context.Background(), storage.NewMemory(), "/home/monthly", parser, config.ParseErrorSkip)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Inventory.Len())
	assert.Empty(t, res.Skipped)
}

func TestLoad_ListFailure(t *testing.T) {
	st := storage.NewMemory()
	st.FailList("/home/daily", errors.New("connection reset"))

	_, err := Load(context.Background(), st, "/home/daily", parser, config.ParseErrorSkip)

	var re *errs.RemoteOperationError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, errs.OpList, re.Op)
}
