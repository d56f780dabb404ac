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

// MemosService stores a user's free-form notes per topic. This is the
// server-side path for authenticated users; guests keep memos in local
// browser storage without touching the API.
type MemosService struct {
	repo repository.MemosRepositoryI
}

func NewMemosService(memosRepo repository.MemosRepositoryI) *MemosService {
	if memosRepo == nil {
		log.Fatal("provided nil memosRepo")
	}
	return &MemosService{
		repo: memosRepo,
	}
}

func (ms *MemosService) SaveMemo(ctx context.Context, uid uuid.UUID, req *MemoRequest) error {
	if err := validateStruct(*req); err != nil {
		return errors.New("validation error: " + err.Error())
	}
	err := ms.repo.Upsert(ctx, &entity.Memo{
		UserID: uid,
		Topic:  req.Topic,
		Body:   req.Body,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrOwnerNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("memos repository error: " + err.Error())
	}
	return nil
}

func (ms *MemosService) GetMemo(ctx context.Context, uid uuid.UUID, topic string) (*entity.Memo, error) {
	memo, err := ms.repo.GetByTopic(ctx, uid, topic)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMemoNotFound) {
			return nil, err
		}
		return nil, errors.New("memos repository error: " + err.Error())
	}
	return memo, nil
}

func (ms *MemosService) ListMemos(ctx context.Context, uid uuid.UUID) ([]entity.Memo, error) {
	memos, err := ms.repo.GetByUserID(ctx, uid)
	if err != nil {
		return nil, errors.New("memos repository error: " + err.Error())
	}
	return memos, nil
}

func (ms *MemosService) DeleteMemo(ctx context.Context, uid uuid.UUID, topic string) error {
	err := ms.repo.Delete(ctx, uid, topic)
	if err != nil {
		if errors.Is(err, errorvalues.ErrMemoNotFound) {
			return err
		}
		return errors.New("memos repository error: " + err.Error())
	}
	return nil
}
