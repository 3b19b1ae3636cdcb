package backup

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/MrSnakeDoc/boxkeep/internal/errs"
)

// DefaultPattern matches "<name>-<year>-<month>-<day>.tar.gz".
const DefaultPattern = `(?P<name>.+)-(?P<year>\d+)-(?P<month>\d+)-(?P<day>\d+)\.tar\.gz`

var requiredGroups = []string{"name", "year", "month", "day"}

// Parser turns raw filenames into records using a compiled pattern.
type Parser struct {
	re      *regexp.Regexp
	pattern string
	idx     map[string]int
}

// NewParser compiles pattern and checks that it declares every named group
// the parser relies on. Matching is anchored at the start of the filename
// only, so a pattern may describe a prefix and ignore the rest.
func NewParser(pattern string) (*Parser, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}

	idx := make(map[string]int, len(requiredGroups))
	for _, g := range requiredGroups {
		i := re.SubexpIndex(g)
		if i < 0 {
			return nil, fmt.Errorf("pattern %q lacks named group %q", pattern, g)
		}
		idx[g] = i
	}

	return &Parser{re: re, pattern: pattern, idx: idx}, nil
}

// MustParser is NewParser for patterns known at compile time.
func MustParser(pattern string) *Parser {
	p, err := NewParser(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Pattern returns the pattern as configured, without the anchor.
func (p *Parser) Pattern() string { return p.pattern }

// Parse extracts a Record from filename. It returns *errs.ParseError with
// kind NoMatch when the pattern does not apply and InvalidDate when the
// numeric fields do not form a real calendar date (e.g. February 30th).
func (p *Parser) Parse(filename string) (Record, error) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Record{}, &errs.ParseError{Kind: errs.NoMatch, Filename: filename, Pattern: p.pattern}
	}

	date, err := calendarDate(m[p.idx["year"]], m[p.idx["month"]], m[p.idx["day"]])
	if err != nil {
		return Record{}, &errs.ParseError{Kind: errs.InvalidDate, Filename: filename, Pattern: p.pattern, Err: err}
	}

	return Record{
		Filename: filename,
		Name:     m[p.idx["name"]],
		Date:     date,
	}, nil
}

func calendarDate(ys, ms, ds string) (time.Time, error) {
	year, err := strconv.Atoi(ys)
	if err != nil {
		return time.Time{}, fmt.Errorf("year %q: %w", ys, err)
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return time.Time{}, fmt.Errorf("month %q: %w", ms, err)
	}
	day, err := strconv.Atoi(ds)
	if err != nil {
		return time.Time{}, fmt.Errorf("day %q: %w", ds, err)
	}

	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range", year)
	}

	// time.Date normalizes overflow; a round-trip mismatch means the day does not exist.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, fmt.Errorf("day %d out of range for %04d-%02d", day, year, month)
	}
	return t, nil
}

// Format renders the default-pattern filename for a name and date.
func Format(name string, date time.Time) string {
	return fmt.Sprintf("%s-%s.tar.gz", name, date.Format(time.DateOnly))
}
