package promote

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

// Promoter copies the newest daily archive of each name into the monthly
// tier when the monthly tier has no sufficiently recent copy.
type Promoter struct {
	*core.Base
}

func New(run *config.RunContext, st storage.Storage, summary *report.Summary) (*Promoter, error) {
	base, err := core.NewBase(run, st, summary)
	if err != nil {
		return nil, err
	}
	return &Promoter{Base: base}, nil
}

// Execute shows both tiers, then copies every selection one by one. A failed
// copy is reported and the remaining names are still processed.
func (p *Promoter) Execute(ctx context.Context) error {
	tiers, err := p.LoadTiers(ctx)
	if err != nil {
		return err
	}
	if err := p.ShowTiers(tiers); err != nil {
		return err
	}

	cfg := p.Run.Config
	selections := policy.SelectPromotions(tiers.Daily.Inventory, tiers.Monthly.Inventory, cfg.PromoteMaxAgeDays, p.Run.Now)

	copied, failed := 0, 0
	for _, sel := range selections {
		src := storage.Join(cfg.DailyDir, sel.Record.Filename)
		logger.Plain("UPDATE %s %s", src, cfg.MonthlyDir)

		if cfg.DryRun {
			p.DryRun(errs.OpCopy, sel.Name, src)
			continue
		}

		item := p.Outcome(errs.OpCopy, sel.Name, src, p.Storage.Copy(ctx, src, cfg.MonthlyDir))
		if item.Status == report.StatusFailed {
			failed++
			continue
		}
		copied++
	}

	if cfg.DryRun {
		logger.Info("Would copy %d backups", len(selections))
		return nil
	}
	logger.Success("Copied %d backups", copied)

	if failed > 0 {
		return fmt.Errorf("%d of %d promotions failed: %w", failed, len(selections), core.ErrItemsFailed)
	}
	return nil
}
