package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/internal/repository"
	"github.com/limbo/waypoint/pkg/entity"
)

type UserService struct {
	repo repository.UsersRepositoryI
}

func NewUserService(usersRepo repository.UsersRepositoryI) *UserService {
	return &UserService{
		repo: usersRepo,
	}
}

func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (us *UserService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	err := validate.Struct(*req)
	if err != nil {
		if validationError, ok := err.(validator.ValidationErrors); ok {
			err = errors.New("validation error: ")
			for _, fieldErr := range validationError {
				err = errors.Join(err, fieldErr)
			}
			return nil, err
		}
		return nil, errors.New("validation unexpected error: " + err.Error())
	}
	passwordHash, err := Hash(req.Password)
	if err != nil {
		return nil, errors.New("hashing password error: " + err.Error())
	}
	err = us.repo.Create(ctx, &entity.User{
		Name:         req.Name,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserExists) {
			return nil, errorvalues.ErrUserExists
		}
		return nil, errors.New("repository creating error: " + err.Error())
	}
	user, err := us.repo.FindByName(ctx, req.Name)
	if err != nil {
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) Login(ctx context.Context, name, password string) (*entity.User, error) {
	user, err := us.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errorvalues.ErrWrongCredentials
	}
	return user, nil
}

func (us *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return nil, errorvalues.ErrUserNotFound
		}
		return nil, errors.New("repository searching error: " + err.Error())
	}
	return user, nil
}

func (us *UserService) DeleteAccount(ctx context.Context, id uuid.UUID, password string) error {
	user, err := us.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository searching error: " + err.Error())
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return errorvalues.ErrWrongCredentials
	}
	err = us.repo.Delete(ctx, user.ID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrUserNotFound) {
			return errorvalues.ErrUserNotFound
		}
		return errors.New("repository deletion error: " + err.Error())
	}
	return nil
}
