package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/pkg/cleanup"
	"github.com/limbo/waypoint/pkg/entity"
)

const goalColumns = `id, user_id, title, description, goal_type, tracker_type, unit,
		target_value, target_date, is_pinned, is_hidden, sort_order, created_at, updated_at`

type GoalsRepository struct {
	conn PgConnection
}

func NewGoalsRepo(cfg DBConfig) *GoalsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for goalsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &GoalsRepository{
		conn: pool,
	}
}

func NewGoalsRepoWithConn(conn PgConnection) *GoalsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for goalsRepo: " + err.Error())
	}
	return &GoalsRepository{
		conn: conn,
	}
}

type scannable interface {
	Scan(dest ...any) error
}

func scanGoal(row scannable) (*entity.Goal, error) {
	var goal entity.Goal
	var target decimal.NullDecimal
	var targetDate *time.Time
	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&goal.Description,
		&goal.GoalType,
		&goal.TrackerType,
		&goal.Unit,
		&target,
		&targetDate,
		&goal.IsPinned,
		&goal.IsHidden,
		&goal.SortOrder,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if target.Valid {
		goal.TargetValue = &target.Decimal
	}
	goal.TargetDate = targetDate
	return &goal, nil
}

func (gr *GoalsRepository) Create(ctx context.Context, goal *entity.Goal) (uuid.UUID, error) {
	var id uuid.UUID
	row := gr.conn.QueryRow(ctx, `INSERT INTO goals
		(user_id, title, description, goal_type, tracker_type, unit, target_value, target_date, is_pinned, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id;`,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.GoalType,
		goal.TrackerType,
		goal.Unit,
		goal.TargetValue,
		goal.TargetDate,
		goal.IsPinned,
		goal.SortOrder,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrOwnerNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating goal db error: " + err.Error())
	}
	return id, nil
}

func (gr *GoalsRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Goal, error) {
	row := gr.conn.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1;`, id)
	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrGoalNotFound
		}
		return nil, errors.New("getting goal by id error: " + err.Error())
	}
	return goal, nil
}

func (gr *GoalsRepository) GetDashboardGoals(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error) {
	rows, err := gr.conn.Query(ctx, `SELECT `+goalColumns+` FROM goals
		WHERE user_id = $1 AND is_hidden = FALSE
		ORDER BY is_pinned DESC, sort_order ASC, created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting dashboard goals error: " + err.Error())
	}
	return collectGoals(rows)
}

func (gr *GoalsRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.Goal, error) {
	rows, err := gr.conn.Query(ctx, `SELECT `+goalColumns+` FROM goals
		WHERE user_id = $1 ORDER BY sort_order ASC, created_at ASC;`, uid)
	if err != nil {
		return nil, errors.New("getting goals by uid error: " + err.Error())
	}
	return collectGoals(rows)
}

func collectGoals(rows pgx.Rows) ([]entity.Goal, error) {
	defer rows.Close()
	goals := make([]entity.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, errors.New("goal row parsing error: " + err.Error())
		}
		goals = append(goals, *goal)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected goal rows error: " + rows.Err().Error())
	}
	return goals, nil
}

func (gr *GoalsRepository) Update(ctx context.Context, goal *entity.Goal) error {
	ct, err := gr.conn.Exec(ctx, `UPDATE goals SET title = $1, description = $2, goal_type = $3,
		tracker_type = $4, unit = $5, target_value = $6, target_date = $7, is_pinned = $8,
		is_hidden = $9, sort_order = $10, updated_at = NOW() WHERE id = $11;`,
		goal.Title,
		goal.Description,
		goal.GoalType,
		goal.TrackerType,
		goal.Unit,
		goal.TargetValue,
		goal.TargetDate,
		goal.IsPinned,
		goal.IsHidden,
		goal.SortOrder,
		goal.ID,
	)
	if err != nil {
		return errors.New("error updating goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

func (gr *GoalsRepository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	ct, err := gr.conn.Exec(ctx, `UPDATE goals SET is_pinned = $1, updated_at = NOW() WHERE id = $2;`, pinned, id)
	if err != nil {
		return errors.New("error pinning goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}

func (gr *GoalsRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := gr.conn.Exec(ctx, `DELETE FROM goals WHERE id = $1;`, id)
	if err != nil {
		return errors.New("error deleting goal: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrGoalNotFound
	}
	return nil
}
