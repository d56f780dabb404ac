package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/limbo/waypoint/pkg/entity"
)

// GoalCard is everything a dashboard card needs. Calendar and Trend are
// populated only for pinned goals, and at most one of them, depending on
// the goal's tracker type.
type GoalCard struct {
	Goal     entity.Goal    `json:"goal"`
	Summary  string         `json:"summary"`
	Calendar *CalendarModel `json:"calendar,omitempty"`
	Trend    *TrendModel    `json:"trend,omitempty"`
}

type ViewModel struct {
	Pinned []GoalCard `json:"pinned"`
	Other  []GoalCard `json:"other"`
}

// GroupEntries buckets a batch-fetched entry set by owning goal.
func GroupEntries(entries []entity.Entry) map[uuid.UUID][]entity.Entry {
	byGoal := make(map[uuid.UUID][]entity.Entry, len(entries))
	for _, e := range entries {
		byGoal[e.GoalID] = append(byGoal[e.GoalID], e)
	}
	return byGoal
}

// Compose builds the dashboard view model. Goals keep their incoming
// order within each partition; the fetch layer already sorted them.
// Renderers cost O(entries) per goal, so visuals are computed for pinned
// goals only — unpinned cards carry just the summary line. Total over
// empty input: zero goals and zero entries yield an empty view model.
func Compose(goals []entity.Goal, entriesByGoal map[uuid.UUID][]entity.Entry, now time.Time) ViewModel {
	vm := ViewModel{
		Pinned: make([]GoalCard, 0, len(goals)),
		Other:  make([]GoalCard, 0, len(goals)),
	}
	for _, g := range goals {
		entries := entriesByGoal[g.ID]
		card := GoalCard{
			Goal:    g,
			Summary: Summary(g, Latest(entries)),
		}
		if g.IsPinned {
			switch g.TrackerType {
			case entity.TrackerCheckin:
				card.Calendar = BuildCalendar(entries, now)
			case entity.TrackerNumeric:
				card.Trend = BuildTrend(NumericSeries(entries), g.TargetValue, g.Unit)
			}
			vm.Pinned = append(vm.Pinned, card)
		} else {
			vm.Other = append(vm.Other, card)
		}
	}
	return vm
}

// GoalDetail is the single-goal page model: full history plus the same
// visuals as the dashboard card, except the trend omits the target
// overlay there.
type GoalDetail struct {
	Goal     entity.Goal    `json:"goal"`
	Summary  string         `json:"summary"`
	History  []entity.Entry `json:"history"`
	Calendar *CalendarModel `json:"calendar,omitempty"`
	Trend    *TrendModel    `json:"trend,omitempty"`
}

// ComposeDetail builds the goal-detail view for one goal.
func ComposeDetail(goal entity.Goal, entries []entity.Entry, now time.Time) GoalDetail {
	detail := GoalDetail{
		Goal:    goal,
		Summary: Summary(goal, Latest(entries)),
		History: SortHistory(entries),
	}
	switch goal.TrackerType {
	case entity.TrackerCheckin:
		detail.Calendar = BuildCalendar(entries, now)
	case entity.TrackerNumeric:
		detail.Trend = BuildTrend(NumericSeries(entries), nil, goal.Unit)
	}
	return detail
}
