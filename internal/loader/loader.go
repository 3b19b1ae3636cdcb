package loader

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/config"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/storage"
)

// Skipped is a listed entry that did not become a record.
type Skipped struct {
	Dir string
	Err *errs.ParseError
}

// Result is one tier's inventory plus what was left out of it.
type Result struct {
	Dir       string
	Inventory *backup.Inventory
	Skipped   []Skipped
}

// Load lists dir once and indexes every parseable entry. With the "skip"
// policy each bad entry is reported and left out; with "abort" the first
// bad entry fails the whole load.
func Load(ctx context.Context, st storage.Storage, dir string, p *backup.Parser, onParseError string) (*Result, error) {
	names, err := st.List(ctx, dir)
	if err != nil {
		return nil, err
	}

	res := &Result{Dir: dir, Inventory: backup.NewInventory()}
	for _, name := range names {
		rec, err := p.Parse(name)
		if err == nil {
			res.Inventory.Insert(rec)
			continue
		}

		var pe *errs.ParseError
		if !errors.As(err, &pe) {
			return nil, fmt.Errorf("parse %s: %w", storage.Join(dir, name), err)
		}
		if onParseError == config.ParseErrorAbort {
			return nil, fmt.Errorf("loading %s: %w", dir, pe)
		}

		logger.Warn("skipping %s: %v", storage.Join(dir, name), pe)
		res.Skipped = append(res.Skipped, Skipped{Dir: dir, Err: pe})
	}

	logger.Debug("loaded %s: %d names, %d records, %d skipped",
		dir, res.Inventory.Len(), res.Inventory.Count(), len(res.Skipped))
	return res, nil
}
