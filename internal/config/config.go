package config

import (
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/policy"
)

const (
	ParseErrorSkip  = "skip"
	ParseErrorAbort = "abort"
)

// Config is everything a run needs besides the clock.
type Config struct {
	Host                  string `yaml:"host"`
	Port                  int    `yaml:"port"`
	User                  string `yaml:"user,omitempty"`
	IdentityFile          string `yaml:"identity_file"`
	KnownHosts            string `yaml:"known_hosts"`
	InsecureIgnoreHostKey bool   `yaml:"insecure_ignore_host_key,omitempty"`

	DailyDir   string `yaml:"daily_dir"`
	MonthlyDir string `yaml:"monthly_dir"`
	Pattern    string `yaml:"pattern"`

	ExpireDays        int    `yaml:"expire_days,omitempty"`
	PromoteMaxAgeDays int    `yaml:"promote_max_age_days"`
	OnParseError      string `yaml:"on_parse_error"`

	CommandTimeout time.Duration `yaml:"command_timeout"`
	DryRun         bool          `yaml:"dry_run,omitempty"`
	Schedule       string        `yaml:"schedule,omitempty"`
	MetricsFile    string        `yaml:"metrics_file,omitempty"`
}

func Default() Config {
	return Config{
		Port:              22,
		IdentityFile:      "~/.ssh/id_ed25519",
		KnownHosts:        "~/.ssh/known_hosts",
		DailyDir:          "/home/daily",
		MonthlyDir:        "/home/monthly",
		Pattern:           backup.DefaultPattern,
		PromoteMaxAgeDays: policy.DefaultPromoteMaxAgeDays,
		OnParseError:      ParseErrorSkip,
		CommandTimeout:    2 * time.Minute,
	}
}

// Remote reports whether the tiers live on an SSH host rather than locally.
func (c *Config) Remote() bool { return c.Host != "" }
