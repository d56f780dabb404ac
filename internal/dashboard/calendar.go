package dashboard

import (
	"time"

	"github.com/limbo/waypoint/pkg/entity"
)

type CellKind int

const (
	CellBlank CellKind = iota
	CellPlain
	CellToday
	CellDone
)

// CalendarCell is one slot of the month grid. Day is zero for leading
// blank cells.
type CalendarCell struct {
	Day  int
	Kind CellKind
}

// CalendarModel is a Sunday-first month grid for a check-in goal: leading
// blanks up to the first day's weekday, then one cell per day of the
// reference month.
type CalendarModel struct {
	Year  int
	Month time.Month
	Cells []CalendarCell
}

// BuildCalendar marks done days of ref's month on a day grid. Returns nil
// when no entry of the set is checked off, so callers render nothing.
// Entries outside the reference month fall away by construction. The
// caller supplies ref; the renderer never reads a clock.
func BuildCalendar(entries []entity.Entry, ref time.Time) *CalendarModel {
	done := make(map[string]bool)
	for _, e := range entries {
		if e.IsDone != nil && *e.IsDone {
			done[dayKey(e.EntryDate)] = true
		}
	}
	if len(done) == 0 {
		return nil
	}

	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	refKey := dayKey(ref)

	cells := make([]CalendarCell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, CalendarCell{Kind: CellBlank})
	}
	for day := 1; day <= daysInMonth; day++ {
		key := dayKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		kind := CellPlain
		// Done styling wins over today.
		switch {
		case done[key]:
			kind = CellDone
		case key == refKey:
			kind = CellToday
		}
		cells = append(cells, CalendarCell{Day: day, Kind: kind})
	}
	return &CalendarModel{Year: year, Month: month, Cells: cells}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
