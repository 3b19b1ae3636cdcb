package config

import (
	"os"
	"path"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/robfig/cron/v3"
)

// Validate checks every parameter that could make a run destroy the wrong
// archives. It must pass before any remote session is opened.
func (c *Config) Validate() error {
	if c.ExpireDays < 0 {
		return invalid("expire_days", "must not be negative")
	}
	if c.PromoteMaxAgeDays < 0 {
		return invalid("promote_max_age_days", "must not be negative")
	}
	if err := checkDir("daily_dir", c.DailyDir, c.Remote()); err != nil {
		return err
	}
	if err := checkDir("monthly_dir", c.MonthlyDir, c.Remote()); err != nil {
		return err
	}
	if path.Clean(c.DailyDir) == path.Clean(c.MonthlyDir) {
		return invalid("monthly_dir", "must differ from daily_dir")
	}
	if _, err := backup.NewParser(c.Pattern); err != nil {
		return invalid("pattern", err.Error())
	}
	switch c.OnParseError {
	case ParseErrorSkip, ParseErrorAbort:
	default:
		return invalid("on_parse_error", `must be "skip" or "abort"`)
	}
	if c.CommandTimeout <= 0 {
		return invalid("command_timeout", "must be positive")
	}
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			return invalid("schedule", err.Error())
		}
	}

	if !c.Remote() {
		return nil
	}
	if c.Port < 1 || c.Port > 65535 {
		return invalid("port", "must be between 1 and 65535")
	}
	if _, err := os.Stat(c.IdentityFile); err != nil {
		return invalid("identity_file", err.Error())
	}
	if !c.InsecureIgnoreHostKey {
		if _, err := os.Stat(c.KnownHosts); err != nil {
			return invalid("known_hosts", err.Error())
		}
	}
	return nil
}

func checkDir(field, dir string, remote bool) error {
	if dir == "" {
		return invalid(field, "must not be empty")
	}
	if !path.IsAbs(dir) {
		return invalid(field, "must be an absolute path")
	}
	if remote {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return invalid(field, err.Error())
	}
	if !info.IsDir() {
		return invalid(field, dir+" is not a directory")
	}
	return nil
}

func invalid(field, reason string) error {
	return &errs.ConfigurationError{Field: field, Reason: reason}
}
