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

type EntriesService struct {
	goalsRepo   repository.GoalsRepositoryI
	entriesRepo repository.EntriesRepositoryI
}

func NewEntriesService(goalsRepo repository.GoalsRepositoryI, entriesRepo repository.EntriesRepositoryI) *EntriesService {
	if goalsRepo == nil || entriesRepo == nil {
		log.Fatal("on entries service provided nil repos")
	}
	return &EntriesService{
		goalsRepo:   goalsRepo,
		entriesRepo: entriesRepo,
	}
}

func (serv *EntriesService) ownedGoal(ctx context.Context, goalID, userID uuid.UUID) (*entity.Goal, error) {
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
	return goal, nil
}

// LogEntry appends one observation to a goal. The goal's tracker decides
// the entry kind: check-in trackers take a done flag and no value,
// numeric trackers the other way around. Check-ins can't be dated in the
// future.
func (serv *EntriesService) LogEntry(ctx context.Context, goalID, userID uuid.UUID, req *LogEntryRequest) (*entity.Entry, error) {
	if err := validateStruct(*req); err != nil {
		return nil, errors.New("validation error: " + err.Error())
	}
	goal, err := serv.ownedGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	switch goal.TrackerType {
	case entity.TrackerCheckin:
		if req.IsDone == nil || req.Value != nil {
			return nil, errorvalues.ErrEntryKindMismatch
		}
		if req.EntryDate.After(time.Now()) {
			return nil, errorvalues.ErrEntryDateNotAllowed
		}
	case entity.TrackerNumeric:
		if req.Value == nil || req.IsDone != nil {
			return nil, errorvalues.ErrEntryKindMismatch
		}
	default:
		return nil, errorvalues.ErrTrackerUnset
	}
	entry := entity.Entry{
		GoalID:     goalID,
		EntryDate:  req.EntryDate,
		IsDone:     req.IsDone,
		Value:      req.Value,
		Reflection: req.Reflection,
	}
	id, err := serv.entriesRepo.Create(ctx, &entry)
	if err != nil {
		if errors.Is(err, errorvalues.ErrGoalNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	created, err := serv.entriesRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return nil, err
		}
		return nil, errors.New("repository error: " + err.Error())
	}
	return created, nil
}

func (serv *EntriesService) ListEntries(ctx context.Context, goalID, userID uuid.UUID) ([]entity.Entry, error) {
	_, err := serv.ownedGoal(ctx, goalID, userID)
	if err != nil {
		return nil, err
	}
	entries, err := serv.entriesRepo.GetByGoalID(ctx, goalID)
	if err != nil {
		return nil, errors.New("repository error: " + err.Error())
	}
	return dashboard.SortHistory(entries), nil
}

func (serv *EntriesService) DeleteEntry(ctx context.Context, entryID, userID uuid.UUID) error {
	entry, err := serv.entriesRepo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	_, err = serv.ownedGoal(ctx, entry.GoalID, userID)
	if err != nil {
		return err
	}
	err = serv.entriesRepo.Delete(ctx, entryID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrEntryNotFound) {
			return err
		}
		return errors.New("repository error: " + err.Error())
	}
	return nil
}
