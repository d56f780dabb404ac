package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/limbo/waypoint/internal/dashboard"
	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/repository"
	"github.com/limbo/waypoint/pkg/entity"
)

// DashboardService runs the read-only aggregation pipeline: one bulk
// goals read, one batch entries read, then pure in-memory composition.
// Nothing is cached between requests, every render recomputes.
type DashboardService struct {
	goalsRepo   repository.GoalsRepositoryI
	entriesRepo repository.EntriesRepositoryI
	now         func() time.Time
}

// NewDashboardService wires the repos and the clock. The clock is
// injected so the calendar's reference date stays testable; nil falls
// back to time.Now.
func NewDashboardService(goalsRepo repository.GoalsRepositoryI, entriesRepo repository.EntriesRepositoryI, now func() time.Time) *DashboardService {
	if goalsRepo == nil || entriesRepo == nil {
		log.Fatal("on dashboard service provided nil repos")
	}
	if now == nil {
		now = time.Now
	}
	return &DashboardService{
		goalsRepo:   goalsRepo,
		entriesRepo: entriesRepo,
		now:         now,
	}
}

// BuildDashboard composes the per-user view model. Upstream read
// failures degrade to empty input rather than failing the render: the
// returned view model is always usable and the error, when set, only
// reports what was skipped so the caller can log it.
func (serv *DashboardService) BuildDashboard(ctx context.Context, uid uuid.UUID) (dashboard.ViewModel, error) {
	goals, err := serv.goalsRepo.GetDashboardGoals(ctx, uid)
	if err != nil {
		return dashboard.Compose(nil, nil, serv.now()),
			errors.New("dashboard degraded, goals read failed: " + err.Error())
	}
	ids := make([]uuid.UUID, 0, len(goals))
	for _, g := range goals {
		ids = append(ids, g.ID)
	}
	entries, err := serv.entriesRepo.GetByGoalIDs(ctx, ids)
	if err != nil {
		return dashboard.Compose(goals, nil, serv.now()),
			errors.New("dashboard degraded, entries read failed: " + err.Error())
	}
	return dashboard.Compose(goals, dashboard.GroupEntries(entries), serv.now()), nil
}

// GoalDetail builds the single-goal page: full history plus the detail
// chart, which shares the dashboard's coordinate transform but drops the
// target overlay. Ownership errors are real errors; a failed entries
// read degrades to an empty history like the dashboard does.
func (serv *DashboardService) GoalDetail(ctx context.Context, goalID, userID uuid.UUID) (*dashboard.GoalDetail, error) {
	goal, err := serv.goalsRepo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	entries, err := serv.entriesRepo.GetByGoalID(ctx, goalID)
	if err != nil {
		entries = []entity.Entry{}
	}
	detail := dashboard.ComposeDetail(*goal, entries, serv.now())
	return &detail, nil
}
