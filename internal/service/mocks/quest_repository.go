package mocks

import (
	"context"

	"finalproject_backend/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockQuestRepository struct {
	mock.Mock
}

func (m *MockQuestRepository) GetDailyQuestProgress(ctx context.Context, userID string, day model.DayKey) ([]model.QuestProgress, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.QuestProgress), args.Error(1)
}

func (m *MockQuestRepository) IncreaseDailyQuestProgress(ctx context.Context, userID, questType string, day model.DayKey) error {
	args := m.Called(ctx, userID, questType, day)
	return args.Error(0)
}

func (m *MockQuestRepository) ClaimDailyQuestReward(ctx context.Context, claim model.QuestClaim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

type MockRewardNotifier struct {
	mock.Mock
}

func (m *MockRewardNotifier) NotifyReward(ctx context.Context, userID string, quest model.QuestDefinition) error {
	args := m.Called(ctx, userID, quest)
	return args.Error(0)
}
