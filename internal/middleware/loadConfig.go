package middleware

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// flagBinding copies one changed flag onto the configuration.
type flagBinding struct {
	name  string
	apply func(fs *pflag.FlagSet, cfg *config.Config) error
}

func str(name string, field func(*config.Config) *string) flagBinding {
	return flagBinding{name, func(fs *pflag.FlagSet, cfg *config.Config) (err error) {
		*field(cfg), err = fs.GetString(name)
		return
	}}
}

func integer(name string, field func(*config.Config) *int) flagBinding {
	return flagBinding{name, func(fs *pflag.FlagSet, cfg *config.Config) (err error) {
		*field(cfg), err = fs.GetInt(name)
		return
	}}
}

func boolean(name string, field func(*config.Config) *bool) flagBinding {
	return flagBinding{name, func(fs *pflag.FlagSet, cfg *config.Config) (err error) {
		*field(cfg), err = fs.GetBool(name)
		return
	}}
}

func duration(name string, field func(*config.Config) *time.Duration) flagBinding {
	return flagBinding{name, func(fs *pflag.FlagSet, cfg *config.Config) (err error) {
		*field(cfg), err = fs.GetDuration(name)
		return
	}}
}

var bindings = []flagBinding{
	str("host", func(c *config.Config) *string { return &c.Host }),
	integer("port", func(c *config.Config) *int { return &c.Port }),
	str("user", func(c *config.Config) *string { return &c.User }),
	str("identity", func(c *config.Config) *string { return &c.IdentityFile }),
	str("known-hosts", func(c *config.Config) *string { return &c.KnownHosts }),
	boolean("insecure-ignore-host-key", func(c *config.Config) *bool { return &c.InsecureIgnoreHostKey }),
	str("daily", func(c *config.Config) *string { return &c.DailyDir }),
	str("monthly", func(c *config.Config) *string { return &c.MonthlyDir }),
	str("re", func(c *config.Config) *string { return &c.Pattern }),
	str("on-parse-error", func(c *config.Config) *string { return &c.OnParseError }),
	integer("promote-max-age", func(c *config.Config) *int { return &c.PromoteMaxAgeDays }),
	integer("days", func(c *config.Config) *int { return &c.ExpireDays }),
	integer("expire", func(c *config.Config) *int { return &c.ExpireDays }),
	duration("timeout", func(c *config.Config) *time.Duration { return &c.CommandTimeout }),
	boolean("dry-run", func(c *config.Config) *bool { return &c.DryRun }),
	str("cron", func(c *config.Config) *string { return &c.Schedule }),
	str("metrics-file", func(c *config.Config) *string { return &c.MetricsFile }),
}

// LoadConfig resolves defaults, the config file, flags and the optional
// positional host, in that order, then validates the result. Nothing remote
// happens before validation passes.
func LoadConfig(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	required := flags.Changed("config")
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return err
	}

	for _, b := range bindings {
		if flags.Lookup(b.name) == nil || !flags.Changed(b.name) {
			continue
		}
		if err := b.apply(flags, cfg); err != nil {
			return err
		}
	}
	if len(args) > 0 {
		cfg.Host = args[0]
	}

	if err := cfg.ExpandHome(); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger.Debug("config: host=%q daily=%s monthly=%s pattern=%s", cfg.Host, cfg.DailyDir, cfg.MonthlyDir, cfg.Pattern)

	ctx := context.WithValue(cmd.Context(), CtxKeyConfig, cfg)
	cmd.SetContext(ctx)

	return next(cmd, args)
}
