package dashboard

import (
	"fmt"
	"sort"

	"github.com/limbo/waypoint/pkg/entity"
)

// SortHistory orders entries most-recent-first: entry date descending,
// creation time descending for same-day entries. This is the canonical
// ordering for the history list and for picking the latest entry.
func SortHistory(entries []entity.Entry) []entity.Entry {
	sorted := make([]entity.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].EntryDate.Equal(sorted[j].EntryDate) {
			return sorted[i].EntryDate.After(sorted[j].EntryDate)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}

// Latest returns the most recent entry per the history ordering, or nil
// when the goal has no entries yet.
func Latest(entries []entity.Entry) *entity.Entry {
	if len(entries) == 0 {
		return nil
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.EntryDate.After(latest.EntryDate) ||
			(e.EntryDate.Equal(latest.EntryDate) && e.CreatedAt.After(latest.CreatedAt)) {
			latest = e
		}
	}
	return &latest
}

// NumericSeries filters entries carrying a value and orders them oldest
// first (entry date ascending, creation time ascending on ties). Charts
// read left-to-right as time-forward, so this is the reverse of the
// history ordering.
func NumericSeries(entries []entity.Entry) []entity.Entry {
	series := make([]entity.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Value != nil {
			series = append(series, e)
		}
	}
	sort.SliceStable(series, func(i, j int) bool {
		if !series[i].EntryDate.Equal(series[j].EntryDate) {
			return series[i].EntryDate.Before(series[j].EntryDate)
		}
		return series[i].CreatedAt.Before(series[j].CreatedAt)
	})
	return series
}

// Summary renders the latest-entry line for a goal card. The result is
// display text only; it deterministically reflects the latest entry's
// date and done-state or value (with the goal's unit when set).
func Summary(goal entity.Goal, latest *entity.Entry) string {
	if latest == nil {
		return "no entries yet"
	}
	date := latest.EntryDate.Format("2006-01-02")
	switch {
	case latest.IsDone != nil:
		if *latest.IsDone {
			return fmt.Sprintf("%s: done", date)
		}
		return fmt.Sprintf("%s: not done", date)
	case latest.Value != nil:
		if goal.Unit != "" {
			return fmt.Sprintf("%s: %s %s", date, latest.Value.String(), goal.Unit)
		}
		return fmt.Sprintf("%s: %s", date, latest.Value.String())
	default:
		return date
	}
}
