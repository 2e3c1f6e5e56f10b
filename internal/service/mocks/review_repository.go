package mocks

import (
	"context"

	"finalproject_backend/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) CreateReview(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetReviewsByContents(ctx context.Context, contentsID int64) ([]*model.Review, error) {
	args := m.Called(ctx, contentsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Review), args.Error(1)
}

func (m *MockReviewRepository) GetReviewByUserAndContents(ctx context.Context, loginID string, contentsID int64) (*model.Review, error) {
	args := m.Called(ctx, loginID, contentsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) GetReviewByNo(ctx context.Context, reviewNo int64) (*model.Review, error) {
	args := m.Called(ctx, reviewNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) UpdateReview(ctx context.Context, reviewNo int64, patch model.ReviewPatch) error {
	args := m.Called(ctx, reviewNo, patch)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteReview(ctx context.Context, reviewNo int64) error {
	args := m.Called(ctx, reviewNo)
	return args.Error(0)
}
