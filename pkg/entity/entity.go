package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Goal types: long-term vision, measurable mid-term target, daily action.
// Descriptive only, aggregation ignores them.
const (
	GoalTypeNorthStar = "north_star"
	GoalTypeMidTerm   = "mid_term"
	GoalTypeHabit     = "habit"
)

// Tracker types govern which entry kind a goal accepts and which visual
// the dashboard attaches. Unset goals accumulate no entries.
const (
	TrackerUnset   = "unset"
	TrackerCheckin = "checkin"
	TrackerNumeric = "numeric"
)

type User struct {
	ID           uuid.UUID
	Name         string
	PasswordHash string
}

type Goal struct {
	ID          uuid.UUID        `json:"id"`
	UserID      uuid.UUID        `json:"uid"`
	Title       string           `json:"title"`
	Description string           `json:"desc"`
	GoalType    string           `json:"goal_type"`
	TrackerType string           `json:"tracker_type"`
	Unit        string           `json:"unit,omitempty"`
	TargetValue *decimal.Decimal `json:"target_value,omitempty"`
	TargetDate  *time.Time       `json:"target_date,omitempty"`
	IsPinned    bool             `json:"is_pinned"`
	IsHidden    bool             `json:"is_hidden"`
	SortOrder   int              `json:"sort_order"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Entry is one dated observation against a goal. Exactly one of IsDone and
// Value is populated, matching the goal's tracker type; the write paths
// enforce this. Several entries may share an EntryDate, CreatedAt breaks
// the tie.
type Entry struct {
	ID         uuid.UUID        `json:"id"`
	GoalID     uuid.UUID        `json:"goal_id"`
	EntryDate  time.Time        `json:"entry_date"`
	CreatedAt  time.Time        `json:"created_at"`
	IsDone     *bool            `json:"is_done,omitempty"`
	Value      *decimal.Decimal `json:"value,omitempty"`
	Reflection string           `json:"reflection,omitempty"`
}

type Memo struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"uid"`
	Topic     string    `json:"topic"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}
