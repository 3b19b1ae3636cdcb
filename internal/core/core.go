package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/loader"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
)

// ErrItemsFailed is wrapped by every manager that finished its batch with
// at least one failed or aborted item.
var ErrItemsFailed = errors.New("some items failed")

// Base is the state shared by the list, promote and expire managers.
//
// Fields:
//   - Run: the run's id, fixed start time and configuration
//   - Storage: the remote protocol (ls/rm/cp)
//   - Parser: compiled filename pattern
//   - Summary: per-item results accumulated across the operations of the run
type Base struct {
	Run     *config.RunContext
	Storage storage.Storage
	Parser  *backup.Parser
	Summary *report.Summary
}

// Tiers holds one fresh snapshot of both storage tiers.
type Tiers struct {
	Daily   *loader.Result
	Monthly *loader.Result
}

// NewBase compiles the configured pattern. A nil summary starts a new one.
func NewBase(run *config.RunContext, st storage.Storage, summary *report.Summary) (*Base, error) {
	p, err := backup.NewParser(run.Config.Pattern)
	if err != nil {
		return nil, &errs.ConfigurationError{Field: "pattern", Reason: err.Error()}
	}
	if summary == nil {
		summary = report.NewSummary(run.ID, run.Now)
	}
	return &Base{
		Run:     run,
		Storage: st,
		Parser:  p,
		Summary: summary,
	}, nil
}

// LoadTiers lists and indexes the daily and monthly directories. Unparseable
// entries are recorded in the summary as skipped items.
func (b *Base) LoadTiers(ctx context.Context) (*Tiers, error) {
	daily, err := b.LoadDaily(ctx)
	if err != nil {
		return nil, err
	}

	cfg := b.Run.Config
	monthly, err := loader.Load(ctx, b.Storage, cfg.MonthlyDir, b.Parser, cfg.OnParseError)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly backups: %w", err)
	}
	b.recordSkipped(monthly)
	b.Summary.MonthlyRecords = monthly.Inventory.Count()

	return &Tiers{Daily: daily, Monthly: monthly}, nil
}

// LoadDaily lists and indexes the daily directory only. The monthly tier is
// not touched, so its problems cannot block daily work.
func (b *Base) LoadDaily(ctx context.Context) (*loader.Result, error) {
	cfg := b.Run.Config
	daily, err := loader.Load(ctx, b.Storage, cfg.DailyDir, b.Parser, cfg.OnParseError)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily backups: %w", err)
	}
	b.recordSkipped(daily)
	b.Summary.DailyRecords = daily.Inventory.Count()
	return daily, nil
}

func (b *Base) recordSkipped(res *loader.Result) {
	for _, sk := range res.Skipped {
		b.Summary.Add(report.Item{
			Op:     errs.OpList,
			Path:   storage.Join(sk.Dir, sk.Err.Filename),
			Status: report.StatusSkipped,
			Err:    sk.Err,
		})
	}
}

// ShowTiers prints the newest record of every name in both tiers.
func (b *Base) ShowTiers(t *Tiers) error {
	if err := report.RenderLatest("Daily:", t.Daily.Inventory, b.Run.Now); err != nil {
		return err
	}
	return report.RenderLatest("Monthly:", t.Monthly.Inventory, b.Run.Now)
}

// Outcome turns a storage outcome into a report item and logs it.
func (b *Base) Outcome(op errs.Op, name, p string, o storage.Outcome) report.Item {
	item := report.Item{Op: op, Name: name, Path: p, Output: o.Output, Status: report.StatusOK}
	if o.Output != "" {
		logger.Plain("%s", o.Output)
	}
	if !o.OK {
		item.Status = report.StatusFailed
		item.Err = o.Err
		logger.LogError("%v", o.Err)
	}
	b.Summary.Add(item)
	return item
}

// DryRun records that p would have been touched.
func (b *Base) DryRun(op errs.Op, name, p string) {
	b.Summary.Add(report.Item{Op: op, Name: name, Path: p, Status: report.StatusDryRun})
}
