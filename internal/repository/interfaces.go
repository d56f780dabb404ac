package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/waypoint/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by name. Can be used for login
	FindByName(ctx context.Context, name string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type GoalsRepositoryI interface {
	// Creates a new goal, returns the generated id
	Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error)
	// Searches goal with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error)
	// Lists goals owned by uid in dashboard order: pinned first, then
	// manual sort key ascending. Hidden goals are excluded.
	GetDashboardGoals(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error)
	// Lists all goals owned by uid, hidden included
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error)
	// Updates goal by ID (ID in goal is necessary)
	Update(ctx context.Context, goal *entity.Goal) error
	// Flips the pinned flag
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	// Deletes goal with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type EntriesRepositoryI interface {
	// Creates a new entry, returns the generated id
	Create(ctx context.Context, entry *entity.Entry) (uuid.UUID, error)
	// Searches entry with given id
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error)
	// Provides all entries of one goal, unordered contract
	GetByGoalID(ctx context.Context, goalID uuid.UUID) ([]entity.Entry, error)
	// Batch read for the dashboard: all entries of the given goals in
	// one query, unordered contract
	GetByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) ([]entity.Entry, error)
	// Deletes entry with id
	Delete(ctx context.Context, id uuid.UUID) error
}

type MemosRepositoryI interface {
	// Inserts or replaces the memo body for (uid, topic)
	Upsert(ctx context.Context, memo *entity.Memo) error
	// Looks up the memo of uid on topic
	GetByTopic(ctx context.Context, uid uuid.UUID, topic string) (*entity.Memo, error)
	// Lists all memos of uid, most recently updated first
	GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.Memo, error)
	// Deletes the memo of uid on topic
	Delete(ctx context.Context, uid uuid.UUID, topic string) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
