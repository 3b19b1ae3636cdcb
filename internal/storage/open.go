package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/runner"
)

const dialTimeout = 30 * time.Second

// Open returns the storage described by cfg and a func releasing it.
// Without a host the tiers are local directories driven by the same commands.
func Open(ctx context.Context, cfg *config.Config) (*Shell, func() error, error) {
	if !cfg.Remote() {
		logger.Debug("using local directories")
		return NewShell(runner.ExecRunner{}, cfg.CommandTimeout), func() error { return nil }, nil
	}

	r, err := runner.DialSSH(ctx, runner.SSHConfig{
		Host:                  cfg.Host,
		Port:                  cfg.Port,
		User:                  cfg.User,
		IdentityFile:          cfg.IdentityFile,
		KnownHostsFile:        cfg.KnownHosts,
		InsecureIgnoreHostKey: cfg.InsecureIgnoreHostKey,
		DialTimeout:           dialTimeout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to %s: %w", cfg.Host, err)
	}
	logger.Debug("connected to %s:%d", cfg.Host, cfg.Port)
	return NewShell(r, cfg.CommandTimeout), r.Close, nil
}
