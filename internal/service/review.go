package service

import (
	"context"
	"errors"
	"fmt"

	"finalproject_backend/internal/model"
	"finalproject_backend/internal/repository"
)

type ReviewService struct {
	repo ReviewRepository
}

func NewReviewService(repo ReviewRepository) *ReviewService {
	return &ReviewService{
		repo: repo,
	}
}

func (s *ReviewService) CreateReview(ctx context.Context, review *model.Review) error {
	if err := s.repo.CreateReview(ctx, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (s *ReviewService) ListReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error) {
	reviews, err := s.repo.GetReviewsByContents(ctx, contentsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// GetMyReview returns nil without an error when the user has not reviewed the
// contents yet.
func (s *ReviewService) GetMyReview(ctx context.Context, loginID string, contentsID int64) (*model.Review, error) {
	review, err := s.repo.GetReviewByUserAndContents(ctx, loginID, contentsID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, reviewNo int64) (*model.Review, error) {
	review, err := s.repo.GetReviewByNo(ctx, reviewNo)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return review, nil
}

// UpdateReview applies the supplied fields. The review must exist before the
// update and must still exist when it is written.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error {
	if _, err := s.GetReview(ctx, reviewNo); err != nil {
		return err
	}

	if err := s.repo.UpdateReview(ctx, reviewNo, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to update review: %w", err)
	}
	return nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, reviewNo int64) error {
	if _, err := s.GetReview(ctx, reviewNo); err != nil {
		return err
	}

	if err := s.repo.DeleteReview(ctx, reviewNo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return nil
}
