package internal

import (
	"context"
	"errors"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/core"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/expire"
	"github.com/MrSnakeDoc/boxkeep/internal/list"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/metrics"
	"github.com/MrSnakeDoc/boxkeep/internal/middleware"
	"github.com/MrSnakeDoc/boxkeep/internal/promote"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"

	"github.com/spf13/cobra"
)

// clock is replaced in tests.
var clock = time.Now

type operations struct {
	List    bool
	Promote bool
	Expire  bool
}

func (o operations) none() bool     { return !o.List && !o.Promote && !o.Expire }
func (o operations) mutating() bool { return o.Promote || o.Expire }

func operationsFromFlags(cmd *cobra.Command) operations {
	flags := cmd.Flags()
	l, _ := flags.GetBool("list")
	m, _ := flags.GetBool("mkmonthly")
	return operations{List: l, Promote: m, Expire: flags.Changed("expire")}
}

func addOperationFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("list", "l", false, "List the newest archive per name in both tiers")
	cmd.Flags().BoolP("mkmonthly", "m", false, "Promote stale names from the daily into the monthly tier")
	cmd.Flags().IntP("expire", "e", 0, "Delete daily archives older than this many days")
}

func requireOperation(cmd *cobra.Command, args []string, next func(cmd *cobra.Command, args []string) error) error {
	ops := operationsFromFlags(cmd)
	if ops.none() {
		return middleware.FlagComboError(errs.NoOperation, cmd.Name())
	}
	if dry, _ := cmd.Flags().GetBool("dry-run"); dry && !ops.mutating() {
		return middleware.FlagComboError(errs.DryRunWithListOnly)
	}
	return next(cmd, args)
}

// runOnce performs the selected operations in list, promote, expire order
// over one storage session. Per-item failures let the next operation run;
// any other failure ends the run.
func runOnce(ctx context.Context, cfg *config.Config, ops operations) error {
	run := config.NewRunContext(cfg, clock())
	logger.Info("%s started (run %s)", run.Now.Format("2006-01-02 15:04"), run.ID)

	st, closeStorage, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStorage(); err != nil {
			logger.Debug("failed to close storage session: %v", err)
		}
	}()

	summary := report.NewSummary(run.ID, run.Now)

	var steps []func(context.Context) error
	if ops.List {
		steps = append(steps, func(ctx context.Context) error {
			l, err := list.New(run, st, summary)
			if err != nil {
				return err
			}
			return l.Execute(ctx)
		})
	}
	if ops.Promote {
		steps = append(steps, func(ctx context.Context) error {
			p, err := promote.New(run, st, summary)
			if err != nil {
				return err
			}
			return p.Execute(ctx)
		})
	}
	if ops.Expire {
		steps = append(steps, func(ctx context.Context) error {
			e, err := expire.New(run, st, summary)
			if err != nil {
				return err
			}
			return e.Execute(ctx, cfg.ExpireDays)
		})
	}

	var failures []error
	for _, step := range steps {
		err := step(ctx)
		if err == nil {
			continue
		}
		failures = append(failures, err)
		if errors.Is(err, core.ErrItemsFailed) {
			continue
		}

		var remoteErr *errs.RemoteOperationError
		if errors.As(err, &remoteErr) && remoteErr.Op == errs.OpList {
			summary.Add(report.Item{Op: errs.OpList, Path: remoteErr.Path, Status: report.StatusFailed, Err: remoteErr})
		}
		break
	}

	if err := report.RenderProblems(summary); err != nil {
		failures = append(failures, err)
	}
	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile, summary); err != nil {
			logger.Warn("%v", err)
		}
	}
	return errors.Join(failures...)
}
