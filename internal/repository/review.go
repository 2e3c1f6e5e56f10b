package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"finalproject_backend/internal/model"

	"github.com/Masterminds/squirrel"
)

var reviewColumns = []string{
	"review_no",
	"login_id",
	"contents_id",
	"review_rating",
	"review_text",
	"review_spoiler",
	"created_at",
	"updated_at",
}

type review struct {
	ReviewNo   int64     `db:"review_no"`
	LoginID    string    `db:"login_id"`
	ContentsID int64     `db:"contents_id"`
	Rating     int64     `db:"review_rating"`
	Text       string    `db:"review_text"`
	Spoiler    bool      `db:"review_spoiler"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (rv review) toModel() *model.Review {
	return &model.Review{
		ReviewNo:   rv.ReviewNo,
		LoginID:    rv.LoginID,
		ContentsID: rv.ContentsID,
		Rating:     int(rv.Rating),
		Text:       rv.Text,
		Spoiler:    rv.Spoiler,
		CreatedAt:  rv.CreatedAt,
		UpdatedAt:  rv.UpdatedAt,
	}
}

// CreateReview inserts the review and fills in the store assigned number and
// timestamps.
func (r *Repository) CreateReview(ctx context.Context, rv *model.Review) error {
	now := time.Now().UTC()

	query, args, err := squirrel.
		Insert("reviews").
		SetMap(map[string]interface{}{
			"login_id":       rv.LoginID,
			"contents_id":    rv.ContentsID,
			"review_rating":  rv.Rating,
			"review_text":    rv.Text,
			"review_spoiler": rv.Spoiler,
			"created_at":     now,
			"updated_at":     now,
		}).
		Suffix("RETURNING review_no").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review insert query: %w", err)
	}

	var reviewNo int64
	err = r.db.QueryRowxContext(ctx, query, args...).Scan(&reviewNo)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}

	rv.ReviewNo = reviewNo
	rv.CreatedAt = now
	rv.UpdatedAt = now

	return nil
}

func (r *Repository) GetReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error) {
	query, args, err := squirrel.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"contents_id": contentsID}).
		OrderBy("review_no").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []review
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	reviews := make([]*model.Review, len(rows))
	for i, row := range rows {
		reviews[i] = row.toModel()
	}

	return reviews, nil
}

// GetReviewByUserAndContents returns the first review the user wrote for the
// contents. More than one is not expected and the rest are ignored.
func (r *Repository) GetReviewByUserAndContents(ctx context.Context, loginID string, contentsID int64) (*model.Review, error) {
	query, args, err := squirrel.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{
			"login_id":    loginID,
			"contents_id": contentsID,
		}).
		OrderBy("review_no").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.getReview(ctx, query, args)
}

func (r *Repository) GetReviewByNo(ctx context.Context, reviewNo int64) (*model.Review, error) {
	query, args, err := squirrel.
		Select(reviewColumns...).
		From("reviews").
		Where(squirrel.Eq{"review_no": reviewNo}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	return r.getReview(ctx, query, args)
}

func (r *Repository) getReview(ctx context.Context, query string, args []interface{}) (*model.Review, error) {
	var row review
	err := r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return row.toModel(), nil
}

// UpdateReview writes only the supplied fields. It returns ErrNotFound when the
// review no longer exists.
func (r *Repository) UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error {
	set := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if patch.Rating != nil {
		set["review_rating"] = *patch.Rating
	}
	if patch.Text != nil {
		set["review_text"] = *patch.Text
	}
	if patch.Spoiler != nil {
		set["review_spoiler"] = *patch.Spoiler
	}

	query, args, err := squirrel.
		Update("reviews").
		SetMap(set).
		Where(squirrel.Eq{"review_no": reviewNo}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review update query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args)
}

func (r *Repository) DeleteReview(ctx context.Context, reviewNo int64) error {
	query, args, err := squirrel.
		Delete("reviews").
		Where(squirrel.Eq{"review_no": reviewNo}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build review delete query: %w", err)
	}

	return r.execAffectingOne(ctx, query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}
