package repository

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	errorvalues "github.com/limbo/waypoint/internal/error_values"
	"github.com/limbo/waypoint/pkg/cleanup"
	"github.com/limbo/waypoint/pkg/entity"
)

type MemosRepository struct {
	conn PgConnection
}

func NewMemosRepo(cfg DBConfig) *MemosRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for memosRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for memosRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &MemosRepository{
		conn: pool,
	}
}

func NewMemosRepoWithConn(conn PgConnection) *MemosRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for memosRepo: " + err.Error())
	}
	return &MemosRepository{
		conn: conn,
	}
}

func (mr *MemosRepository) Upsert(ctx context.Context, memo *entity.Memo) error {
	_, err := mr.conn.Exec(ctx, `INSERT INTO memos (user_id, topic, body) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, topic) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW();`,
		memo.UserID,
		memo.Topic,
		memo.Body,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrOwnerNotFound
			}
		}
		return errors.New("upserting memo error: " + err.Error())
	}
	return nil
}

func (mr *MemosRepository) GetByTopic(ctx context.Context, uid uuid.UUID, topic string) (*entity.Memo, error) {
	var memo entity.Memo
	row := mr.conn.QueryRow(ctx, `SELECT id, user_id, topic, body, updated_at FROM memos
		WHERE user_id = $1 AND topic = $2;`, uid, topic)
	if err := row.Scan(&memo.ID, &memo.UserID, &memo.Topic, &memo.Body, &memo.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrMemoNotFound
		}
		return nil, errors.New("getting memo error: " + err.Error())
	}
	return &memo, nil
}

func (mr *MemosRepository) GetByUserID(ctx context.Context, uid uuid.UUID) ([]entity.Memo, error) {
	rows, err := mr.conn.Query(ctx, `SELECT id, user_id, topic, body, updated_at FROM memos
		WHERE user_id = $1 ORDER BY updated_at DESC;`, uid)
	if err != nil {
		return nil, errors.New("getting memos by uid error: " + err.Error())
	}
	defer rows.Close()
	memos := make([]entity.Memo, 0)
	for rows.Next() {
		var memo entity.Memo
		err = rows.Scan(&memo.ID, &memo.UserID, &memo.Topic, &memo.Body, &memo.UpdatedAt)
		if err != nil {
			return nil, errors.New("memo row parsing error: " + err.Error())
		}
		memos = append(memos, memo)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected memo rows error: " + rows.Err().Error())
	}
	return memos, nil
}

func (mr *MemosRepository) Delete(ctx context.Context, uid uuid.UUID, topic string) error {
	ct, err := mr.conn.Exec(ctx, `DELETE FROM memos WHERE user_id = $1 AND topic = $2;`, uid, topic)
	if err != nil {
		return errors.New("deleting memo error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrMemoNotFound
	}
	return nil
}
