package internal

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.UseTestMode()
	os.Exit(m.Run())
}

// tiers creates empty daily and monthly directories and isolates HOME so no
// user config file is picked up.
func tiers(t *testing.T) (daily, monthly string) {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	daily = filepath.Join(root, "daily")
	monthly = filepath.Join(root, "monthly")
	require.NoError(t, os.Mkdir(daily, 0o755))
	require.NoError(t, os.Mkdir(monthly, 0o755))
	return daily, monthly
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), []byte(n), 0o644))
	}
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func execute(args ...string) error {
	root := NewRootCmd()
	root.SetArgs(args)
	_, err := root.ExecuteC()
	return err
}

func fixClock(t *testing.T, now time.Time) {
	t.Helper()
	prev := clock
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = prev })
}

func TestRunCmd_FlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "run without operation", args: []string{"run"}},
		{name: "run dry-run with list only", args: []string{"run", "--list", "--dry-run"}},
		{name: "schedule without operation", args: []string{"schedule", "--cron", "@daily"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, middleware.ErrLogged)
		})
	}
}

func TestExpireCmd_DaysRequired(t *testing.T) {
	daily, monthly := tiers(t)

	err := execute("expire", "--daily", daily, "--monthly", monthly)
	assert.ErrorIs(t, err, middleware.ErrLogged)
}

func TestScheduleCmd_RequiresCron(t *testing.T) {
	daily, monthly := tiers(t)

	err := execute("schedule", "--list", "--daily", daily, "--monthly", monthly)
	assert.ErrorIs(t, err, middleware.ErrLogged)
}

func TestCommands_ConfigurationErrors(t *testing.T) {
	daily, monthly := tiers(t)

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"relative daily dir", []string{"list", "--daily", "daily", "--monthly", monthly}, "daily_dir"},
		{"same dirs", []string{"list", "--daily", daily, "--monthly", daily}, "monthly_dir"},
		{"negative expire", []string{"run", "--expire", "-1", "--daily", daily, "--monthly", monthly}, "expire_days"},
		{"bad pattern", []string{"list", "--re", `(?P<name>.+)\.tar`, "--daily", daily, "--monthly", monthly}, "pattern"},
		{"bad policy", []string{"list", "--on-parse-error", "ignore", "--daily", daily, "--monthly", monthly}, "on_parse_error"},
		{"bad cron", []string{"schedule", "--list", "--cron", "every day", "--daily", daily, "--monthly", monthly}, "schedule"},
		{
			"positional host needs identity",
			[]string{"list", "box.example.com", "--identity", filepath.Join(daily, "missing"), "--insecure-ignore-host-key"},
			"identity_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(tt.args...)
			var cfgErr *errs.ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "got %v", err)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestInitCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boxkeep", "config.yml")

	require.NoError(t, execute("init", "--config", path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "daily_dir: /home/daily")

	assert.ErrorIs(t, execute("init", "--config", path), middleware.ErrLogged)
	assert.NoError(t, execute("init", "--config", path, "--force"))
}

func TestRunCmd_LocalTiers(t *testing.T) {
	daily, monthly := tiers(t)
	fixClock(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	touch(t, daily, "db-2024-03-14.tar.gz", "db-2024-01-01.tar.gz", "web-2024-03-10.tar.gz", "notes.txt")
	touch(t, monthly, "db-2024-02-01.tar.gz")
	metricsFile := filepath.Join(t.TempDir(), "boxkeep.prom")

	err := execute("run", "--list", "--mkmonthly", "--expire", "30",
		"--daily", daily, "--monthly", monthly, "--metrics-file", metricsFile)
	require.NoError(t, err)

	assert.Equal(t, []string{"db-2024-02-01.tar.gz", "db-2024-03-14.tar.gz", "web-2024-03-10.tar.gz"}, dirNames(t, monthly))
	assert.Equal(t, []string{"db-2024-03-14.tar.gz", "notes.txt", "web-2024-03-10.tar.gz"}, dirNames(t, daily))

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "boxkeep_promoted_total 2")
	assert.Contains(t, out, "boxkeep_expired_total 1")
}

func TestRunCmd_DryRunChangesNothing(t *testing.T) {
	daily, monthly := tiers(t)
	fixClock(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	touch(t, daily, "db-2024-03-14.tar.gz", "db-2024-01-01.tar.gz")

	err := execute("run", "--mkmonthly", "--expire", "30", "--dry-run", "--daily", daily, "--monthly", monthly)
	require.NoError(t, err)

	assert.Equal(t, []string{"db-2024-01-01.tar.gz", "db-2024-03-14.tar.gz"}, dirNames(t, daily))
	assert.Empty(t, dirNames(t, monthly))
}

func TestPromoteCmd_AliasAndAbortPolicy(t *testing.T) {
	daily, monthly := tiers(t)
	fixClock(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC))

	touch(t, daily, "db-2024-03-14.tar.gz", "db-2024-13-01.tar.gz")

	err := execute("mkmonthly", "--on-parse-error", "abort", "--daily", daily, "--monthly", monthly)
	var parseErr *errs.ParseError
	require.True(t, errors.As(err, &parseErr), "got %v", err)
	assert.Equal(t, errs.InvalidDate, parseErr.Kind)
	assert.Empty(t, dirNames(t, monthly))

	require.NoError(t, execute("mkmonthly", "--daily", daily, "--monthly", monthly))
	assert.Equal(t, []string{"db-2024-03-14.tar.gz"}, dirNames(t, monthly))
}
