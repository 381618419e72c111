package domain

import (
	"fmt"
	"strings"
	"time"
)

const day = 24 * time.Hour

// Filter selects tasks started within a lookback window ending now
type Filter int

const (
	FilterAll Filter = iota
	FilterDay
	FilterWeek
	FilterMonth
	FilterQuarter
	FilterSemiAnnual
	FilterYear
)

var filterAliases = map[string]Filter{
	"all":        FilterAll,
	"d":          FilterDay,
	"day":        FilterDay,
	"w":          FilterWeek,
	"week":       FilterWeek,
	"m":          FilterMonth,
	"month":      FilterMonth,
	"q":          FilterQuarter,
	"quarter":    FilterQuarter,
	"s":          FilterSemiAnnual,
	"semi":       FilterSemiAnnual,
	"semiannual": FilterSemiAnnual,
	"y":          FilterYear,
	"year":       FilterYear,
}

// FilterAliases lists every accepted selector spelling in a stable order
func FilterAliases() []string {
	return []string{
		"d", "day",
		"w", "week",
		"m", "month",
		"q", "quarter",
		"s", "semi", "semiannual",
		"y", "year",
		"all",
	}
}

// ParseFilter maps a selector to a Filter, ignoring case and surrounding
// space. An empty selector means FilterAll
func ParseFilter(selector string) (Filter, error) {
	key := strings.ToLower(strings.TrimSpace(selector))
	if key == "" {
		return FilterAll, nil
	}
	if f, ok := filterAliases[key]; ok {
		return f, nil
	}
	return FilterAll, fmt.Errorf("unknown filter %q (valid: %s)", selector, strings.Join(FilterAliases(), ", "))
}

// Lookback returns the fixed window length; zero for FilterAll
func (f Filter) Lookback() time.Duration {
	switch f {
	case FilterDay:
		return day
	case FilterWeek:
		return 7 * day
	case FilterMonth:
		return 30 * day
	case FilterQuarter:
		return 13 * 7 * day
	case FilterSemiAnnual:
		return 26 * 7 * day
	case FilterYear:
		return 365 * day
	default:
		return 0
	}
}

// Cutoff returns the Unix time tasks must have started after. FilterAll
// returns 0, meaning no lower bound
func (f Filter) Cutoff(now time.Time) int64 {
	lookback := f.Lookback()
	if lookback == 0 {
		return 0
	}
	return now.Add(-lookback).Unix()
}

// String returns the long selector spelling
func (f Filter) String() string {
	switch f {
	case FilterDay:
		return "day"
	case FilterWeek:
		return "week"
	case FilterMonth:
		return "month"
	case FilterQuarter:
		return "quarter"
	case FilterSemiAnnual:
		return "semiannual"
	case FilterYear:
		return "year"
	default:
		return "all"
	}
}

// Label describes the window in words
func (f Filter) Label() string {
	switch f {
	case FilterDay:
		return "the last day"
	case FilterWeek:
		return "the last week"
	case FilterMonth:
		return "the last 30 days"
	case FilterQuarter:
		return "the last quarter (13 weeks)"
	case FilterSemiAnnual:
		return "the last 6 months (26 weeks)"
	case FilterYear:
		return "the last year (365 days)"
	default:
		return "all time"
	}
}

// FilterResolution is the outcome of resolving a selector at a given instant.
// Unrecognized selectors resolve to FilterAll with Recognized set to false
type FilterResolution struct {
	Selector   string `json:"selector"`
	Filter     Filter `json:"-"`
	Cutoff     int64  `json:"cutoff"`
	Recognized bool   `json:"recognized"`
}

// ResolveFilter turns a selector into an absolute cutoff. It never fails
func ResolveFilter(selector string, now time.Time) FilterResolution {
	f, err := ParseFilter(selector)
	return FilterResolution{
		Selector:   selector,
		Filter:     f,
		Cutoff:     f.Cutoff(now),
		Recognized: err == nil,
	}
}

// Notice returns the message a presentation layer may show for this
// resolution, or "" when no filter was requested
func (r FilterResolution) Notice() string {
	if !r.Recognized {
		return "Filter not recognized. No filter will be applied."
	}
	if r.Filter == FilterAll {
		return ""
	}
	return fmt.Sprintf("** Filtering events to those started in %s **", r.Filter.Label())
}
