package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/pkg/cleanup"
	"github.com/limbo/waypoint/pkg/entity"
)

const entryColumns = `id, goal_id, entry_date, created_at, is_done, value, reflection`

type EntriesRepository struct {
	conn PgConnection
}

func NewEntriesRepo(cfg DBConfig) *EntriesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for entriesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &EntriesRepository{
		conn: pool,
	}
}

func NewEntriesRepoWithConn(conn PgConnection) *EntriesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for entriesRepo: " + err.Error())
	}
	return &EntriesRepository{
		conn: conn,
	}
}

func scanEntry(row scannable) (*entity.Entry, error) {
	var entry entity.Entry
	var value decimal.NullDecimal
	err := row.Scan(
		&entry.ID,
		&entry.GoalID,
		&entry.EntryDate,
		&entry.CreatedAt,
		&entry.IsDone,
		&value,
		&entry.Reflection,
	)
	if err != nil {
		return nil, err
	}
	if value.Valid {
		entry.Value = &value.Decimal
	}
	return &entry, nil
}

func (er *EntriesRepository) Create(ctx context.Context, entry *entity.Entry) (uuid.UUID, error) {
	var id uuid.UUID
	row := er.conn.QueryRow(ctx, `INSERT INTO entries (goal_id, entry_date, is_done, value, reflection)
		VALUES ($1, $2, $3, $4, $5) RETURNING id;`,
		entry.GoalID,
		entry.EntryDate,
		entry.IsDone,
		entry.Value,
		entry.Reflection,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return uuid.UUID{}, errorvalues.ErrGoalNotFound
			}
		}
		return uuid.UUID{}, errors.New("creating entry db error: " + err.Error())
	}
	return id, nil
}

func (er *EntriesRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Entry, error) {
	row := er.conn.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1;`, id)
	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrEntryNotFound
		}
		return nil, errors.New("getting entry by id error: " + err.Error())
	}
	return entry, nil
}

func (er *EntriesRepository) GetByGoalID(ctx context.Context, goalID uuid.UUID) ([]entity.Entry, error) {
	rows, err := er.conn.Query(ctx, `SELECT `+entryColumns+` FROM entries WHERE goal_id = $1;`, goalID)
	if err != nil {
		return nil, errors.New("getting entries by goal error: " + err.Error())
	}
	return collectEntries(rows)
}

func (er *EntriesRepository) GetByGoalIDs(ctx context.Context, goalIDs []uuid.UUID) ([]entity.Entry, error) {
	if len(goalIDs) == 0 {
		return []entity.Entry{}, nil
	}
	rows, err := er.conn.Query(ctx, `SELECT `+entryColumns+` FROM entries WHERE goal_id = ANY($1);`, goalIDs)
	if err != nil {
		return nil, errors.New("getting entries batch error: " + err.Error())
	}
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]entity.Entry, error) {
	defer rows.Close()
	entries := make([]entity.Entry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, errors.New("entry row parsing error: " + err.Error())
		}
		entries = append(entries, *entry)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected entry rows error: " + rows.Err().Error())
	}
	return entries, nil
}

func (er *EntriesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := er.conn.Exec(ctx, `DELETE FROM entries WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting entry error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrEntryNotFound
	}
	return nil
}
