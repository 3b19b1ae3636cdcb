package list

import (
	"context"

	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/core"
	"github.com/MrSnakeDoc/boxkeep/internal/report"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
)

// Lister reports the newest archive of every name in both tiers.
// It never changes remote storage.
type Lister struct {
	*core.Base
}

func New(run *config.RunContext, st storage.Storage, summary *report.Summary) (*Lister, error) {
	base, err := core.NewBase(run, st, summary)
	if err != nil {
		return nil, err
	}
	return &Lister{Base: base}, nil
}

func (l *Lister) Execute(ctx context.Context) error {
	tiers, err := l.LoadTiers(ctx)
	if err != nil {
		return err
	}
	return l.ShowTiers(tiers)
}
