package expire

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/core"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/policy"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
)

// Expirer deletes daily archives older than a threshold.
type Expirer struct {
	*core.Base
}

func New(run *config.RunContext, st storage.Storage, summary *report.Summary) (*Expirer, error) {
	base, err := core.NewBase(run, st, summary)
	if err != nil {
		return nil, err
	}
	return &Expirer{Base: base}, nil
}

// Execute removes every daily record older than days, grouped by name in
// listing order. Only the daily tier is listed. Failures are reported per
// file and never stop the batch.
func (e *Expirer) Execute(ctx context.Context, days int) error {
	if days < 0 {
		return &errs.ConfigurationError{Field: "expire_days", Reason: "must not be negative"}
	}

	daily, err := e.LoadDaily(ctx)
	if err != nil {
		return err
	}

	cfg := e.Run.Config
	selections := policy.SelectExpired(daily.Inventory, days, e.Run.Now)

	deleted, failed := 0, 0
	current := ""
	for _, sel := range selections {
		if sel.Name != current {
			current = sel.Name
			logger.Heading("=== %s", current)
		}

		target := storage.Join(cfg.DailyDir, sel.Record.Filename)
		logger.Plain("DELETE %s (%dd)", target, sel.Record.AgeDays(e.Run.Now))

		if cfg.DryRun {
			e.DryRun(errs.OpRemove, sel.Name, target)
			continue
		}

		item := e.Outcome(errs.OpRemove, sel.Name, target, e.Storage.Remove(ctx, target))
		if item.Status == report.StatusFailed {
			failed++
			continue
		}
		deleted++
	}

	if cfg.DryRun {
		logger.Info("Would delete %d backups older than %d days", len(selections), days)
		return nil
	}
	logger.Success("Deleted %d backups older than %d days", deleted, days)

	if failed > 0 {
		return fmt.Errorf("%d of %d deletions failed: %w", failed, len(selections), core.ErrItemsFailed)
	}
	return nil
}
