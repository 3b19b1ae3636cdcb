package report

import (
	"fmt"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/backup"
	"github.com/MrSnakeDoc/boxkeep/internal/errs"
	"github.com/MrSnakeDoc/boxkeep/internal/logger"
	"github.com/MrSnakeDoc/boxkeep/internal/printer"
)

type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusDryRun  Status = "dry-run"
	StatusSkipped Status = "skipped"
)

// Item is the outcome of one selected archive or one unparseable entry.
type Item struct {
	Op     errs.Op
	Name   string
	Path   string
	Status Status
	Output string
	Err    error
}

// Summary accumulates everything a run did, for the final report and metrics.
type Summary struct {
	RunID   string
	Started time.Time

	DailyRecords   int
	MonthlyRecords int
	Expired        int
	Promoted       int
	Skipped        int
	Failures       map[errs.Op]int

	Items []Item

	seenSkipped map[string]bool
}

func NewSummary(runID string, started time.Time) *Summary {
	return &Summary{
		RunID:    runID,
		Started:  started,
		Failures: make(map[errs.Op]int),

		seenSkipped: make(map[string]bool),
	}
}

// Add records item and updates the counters. Every operation of a run lists
// the tiers again, so a skipped entry is only recorded the first time.
func (s *Summary) Add(item Item) {
	if item.Status == StatusSkipped {
		if s.seenSkipped[item.Path] {
			return
		}
		s.seenSkipped[item.Path] = true
	}
	s.Items = append(s.Items, item)
	switch item.Status {
	case StatusFailed:
		s.Failures[item.Op]++
	case StatusSkipped:
		s.Skipped++
	case StatusOK:
		switch item.Op {
		case errs.OpRemove:
			s.Expired++
		case errs.OpCopy:
			s.Promoted++
		}
	}
}

// Failed counts every failed remote call of the run.
func (s *Summary) Failed() int {
	n := 0
	for _, c := range s.Failures {
		n += c
	}
	return n
}

// RenderLatest prints one row per logical name with its newest record.
func RenderLatest(title string, inv *backup.Inventory, now time.Time) error {
	logger.Heading("%s", title)

	table := logger.CreateTable([]string{"Name", "Latest", "Date", "Age"})
	for name := range inv.Names() {
		r, err := inv.LatestFor(name)
		if err != nil {
			return err
		}
		row := []string{r.Name, r.Filename, r.Date.Format(time.DateOnly), fmt.Sprintf("%dd", r.AgeDays(now))}
		if err := table.Append(row); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}

// RenderProblems prints the skipped and failed items of s, if any.
func RenderProblems(s *Summary) error {
	var rows [][]string
	p := printer.NewColorPrinter()
	for _, it := range s.Items {
		if it.Status != StatusFailed && it.Status != StatusSkipped {
			continue
		}
		reason := ""
		if it.Err != nil {
			reason = it.Err.Error()
		}
		status := p.Warning(string(it.Status))
		if it.Status == StatusFailed {
			status = p.Error(string(it.Status))
		}
		rows = append(rows, []string{string(it.Op), it.Path, status, reason})
	}
	if len(rows) == 0 {
		return nil
	}

	logger.Heading("Problems:")
	table := logger.CreateTable([]string{"Operation", "Path", "Status", "Reason"})
	for _, row := range rows {
		if err := table.Append(row); err != nil {
			return fmt.Errorf("an error occurred while appending to the table: %w", err)
		}
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("an error occurred while rendering the table: %w", err)
	}
	return nil
}
