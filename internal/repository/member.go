package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finalproject_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type member struct {
	MemberID  string    `db:"member_id"`
	Nickname  string    `db:"member_nickname"`
	Point     int64     `db:"member_point"`
	CreatedAt time.Time `db:"created_at"`
}

// CreateMember inserts the member unless the id is taken. Concurrent
// registrations of one id resolve in the database: exactly one insert lands
// and the others return ErrAlreadyExists.
func (r *Repository) CreateMember(ctx context.Context, m *model.Member) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}

	query, args, err := squirrel.
		Insert("members").
		SetMap(map[string]interface{}{
			"member_id":       m.MemberID,
			"member_nickname": m.Nickname,
			"member_point":    m.Point,
			"created_at":      m.CreatedAt,
		}).
		Suffix("ON CONFLICT (member_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build member insert query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrAlreadyExists
	}

	return nil
}

func (r *Repository) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	query, args, err := squirrel.
		Select("member_id", "member_nickname", "member_point", "created_at").
		From("members").
		Where(squirrel.Eq{"member_id": memberID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var m member
	err = r.db.GetContext(ctx, &m, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.Member{
		MemberID:  m.MemberID,
		Nickname:  m.Nickname,
		Point:     int(m.Point),
		CreatedAt: m.CreatedAt,
	}, nil
}

func (r *Repository) creditMemberPointWithTx(ctx context.Context, tx *sqlx.Tx, memberID string, points int, reason string) error {
	updateQuery, updateArgs, err := squirrel.
		Update("members").
		Set("member_point", squirrel.Expr("member_point + ?", points)).
		Where(squirrel.Eq{"member_id": memberID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build point update query: %w", err)
	}

	result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return fmt.Errorf("failed to credit member point: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	historyQuery, historyArgs, err := squirrel.
		Insert("point_history").
		Columns("member_id", "amount", "reason", "created_at").
		Values(memberID, points, reason, time.Now().UTC()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build point history insert query: %w", err)
	}

	_, err = tx.ExecContext(ctx, historyQuery, historyArgs...)
	if err != nil {
		return fmt.Errorf("failed to insert point history: %w", err)
	}

	return nil
}
