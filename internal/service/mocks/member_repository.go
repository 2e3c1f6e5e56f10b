package mocks

import (
	"context"

	"finalproject_backend/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) CreateMember(ctx context.Context, member *model.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetMember(ctx context.Context, memberID string) (*model.Member, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Member), args.Error(1)
}
