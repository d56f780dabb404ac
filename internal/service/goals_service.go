package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/repository"
	"github.com/limbo/waypoint/pkg/entity"
)

type GoalsService struct {
	repo repository.GoalsRepositoryI
}

func NewGoalsService(goalsRepo repository.GoalsRepositoryI) *GoalsService {
	if goalsRepo == nil {
		log.Fatal("provided nil goalsRepo")
	}
	return &GoalsService{
		repo: goalsRepo,
	}
}

// checkTrackerFields rejects target/unit on non-numeric trackers. The
// target overlay and unit label only mean anything on a numeric chart.
func checkTrackerFields(trackerType, unit string, hasTarget bool) error {
	switch trackerType {
	case entity.TrackerUnset, entity.TrackerCheckin, entity.TrackerNumeric:
	default:
		return errorvalues.ErrInvalidTrackerType
	}
	if trackerType != entity.TrackerNumeric && (hasTarget || unit != "") {
		return errorvalues.ErrTargetNotNumeric
	}
	return nil
}

func (gs *GoalsService) CreateGoal(ctx context.Context, uid uuid.UUID, req *CreateGoalRequest) (*entity.Goal, error) {
	if err := validateStruct(*req); err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	trackerType := req.TrackerType
	if trackerType == "" {
		trackerType = entity.TrackerUnset
	}
	if err := checkTrackerFields(trackerType, req.Unit, req.TargetValue != nil); err != nil {
		return nil, err
	}
	g := entity.Goal{
		UserID:      uid,
		Title:       req.Title,
		Description: req.Description,
		GoalType:    req.GoalType,
		TrackerType: trackerType,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
		TargetDate:  req.TargetDate,
		IsPinned:    req.IsPinned,
		SortOrder:   req.SortOrder,
	}
	id, err := gs.repo.Create(ctx, &g)
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	goal, err := gs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goal, nil
}

func (gs *GoalsService) GetGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := gs.repo.GetByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	if goal.UserID != userID {
		return nil, errorvalues.ErrWrongOwner
	}
	return goal, nil
}

func (gs *GoalsService) ListGoals(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error) {
	goals, err := gs.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goals, nil
}

func (gs *GoalsService) UpdateGoal(ctx context.Context, goalID, userID uuid.UUID, req *UpdateGoalRequest) (*entity.Goal, error) {
	if err := validateStruct(*req); err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	trackerType := req.TrackerType
	if trackerType == "" {
		trackerType = entity.TrackerUnset
	}
	if err := checkTrackerFields(trackerType, req.Unit, req.TargetValue != nil); err != nil {
		return nil, err
	}
	goal, err := gs.GetGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	goal.Title = req.Title
	goal.Description = req.Description
	goal.GoalType = req.GoalType
	goal.TrackerType = trackerType
	goal.Unit = req.Unit
	goal.TargetValue = req.TargetValue
	goal.TargetDate = req.TargetDate
	goal.IsPinned = req.IsPinned
	goal.IsHidden = req.IsHidden
	goal.SortOrder = req.SortOrder
	err = gs.repo.Update(ctx, goal)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("goals repository error: " + err.Error())
	}
	return goal, nil
}

func (gs *GoalsService) SetPinned(ctx context.Context, goalID, userID uuid.UUID, pinned bool) error {
	_, err := gs.GetGoal(ctx, goalID, userID)
	if err != nil {
		return err
	}
	err = gs.repo.SetPinned(ctx, goalID, pinned)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}

func (gs *GoalsService) DeleteGoal(ctx context.Context, goalID, userID uuid.UUID) error {
	_, err := gs.GetGoal(ctx, goalID, userID)
	if err != nil {
		return err
	}
	err = gs.repo.Delete(ctx, goalID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return err
		}
		return errors.New("goals repository error: " + err.Error())
	}
	return nil
}
