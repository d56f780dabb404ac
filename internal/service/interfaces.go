package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/limbo/waypoint/internal/dashboard"
	"github.com/limbo/waypoint/pkg/entity"
)

type RegisterRequest struct {
	Name     string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password string `validate:"required,min=8,max=72"`
}

type CreateGoalRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	GoalType    string `validate:"required,oneof=north_star mid_term habit"`
	TrackerType string `validate:"omitempty,oneof=unset checkin numeric"`
	Unit        string `validate:"max=16"`
	TargetValue *decimal.Decimal
	TargetDate  *time.Time
	IsPinned    bool
	SortOrder   int
}

type UpdateGoalRequest struct {
	Title       string `validate:"required,min=1,max=200"`
	Description string `validate:"max=2000"`
	GoalType    string `validate:"required,oneof=north_star mid_term habit"`
	TrackerType string `validate:"omitempty,oneof=unset checkin numeric"`
	Unit        string `validate:"max=16"`
	TargetValue *decimal.Decimal
	TargetDate  *time.Time
	IsPinned    bool
	IsHidden    bool
	SortOrder   int
}

type LogEntryRequest struct {
	EntryDate  time.Time `validate:"required"`
	IsDone     *bool
	Value      *decimal.Decimal
	Reflection string `validate:"max=2000"`
}

type MemoRequest struct {
	Topic string `validate:"required,min=1,max=100"`
	Body  string `validate:"max=20000"`
}

type UserServiceI interface {
	// Validates user's credentials, creates new row in database. Returns user's data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.User, error)
	// Compares given credentials. If ok, give back user's data with ID.
	Login(ctx context.Context, name, password string) (*entity.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteAccount(ctx context.Context, id uuid.UUID, password string) error
}

type GoalsServiceI interface {
	CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error)
	GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error)
	ListGoals(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error)
	UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, req *UpdateGoalRequest) (*entity.Goal, error)
	SetPinned(ctx context.Context, goalID, userID uuid.UUID, pinned bool) error
	DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error
}

type EntriesServiceI interface {
	LogEntry(ctx context.Context, goalID, userID uuid.UUID, req *LogEntryRequest) (*entity.Entry, error)
	// ListEntries returns the goal's history, most recent first
	ListEntries(ctx context.Context, goalID, userID uuid.UUID) ([]entity.Entry, error)
	DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error
}

type MemosServiceI interface {
	SaveMemo(ctx context.Context, uid uuid.UUID, req *MemoRequest) error
	GetMemo(ctx context.Context, uid uuid.UUID, topic string) (*entity.Memo, error)
	ListMemos(ctx context.Context, uid uuid.UUID) ([]entity.Memo, error)
	DeleteMemo(ctx context.Context, uid uuid.UUID, topic string) error
}

type DashboardServiceI interface {
	// BuildDashboard always returns a usable view model; the error, when
	// non-nil, reports a degraded upstream read the caller may log.
	BuildDashboard(ctx context.Context, uid uuid.UUID) (dashboard.ViewModel, error)
	GoalDetail(ctx context.Context, goalID, userID uuid.UUID) (*dashboard.GoalDetail, error)
}
