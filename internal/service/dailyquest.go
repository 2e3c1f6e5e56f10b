package service

import (
	"context"
	"errors"
	"fmt"

	"finalproject_backend/internal/model"
	"finalproject_backend/internal/repository"
	"finalproject_backend/pkg/logger"

	"go.uber.org/zap"
)

type QuestService struct {
	repo     QuestRepository
	catalog  *QuestCatalog
	notifier RewardNotifier
}

// NewQuestService builds the daily quest service. notifier may be nil.
func NewQuestService(repo QuestRepository, catalog *QuestCatalog, notifier RewardNotifier) *QuestService {
	return &QuestService{
		repo:     repo,
		catalog:  catalog,
		notifier: notifier,
	}
}

// GetQuestList merges the catalog with the user's progress for day. The result
// follows catalog order; quests without a progress row report zero progress.
func (s *QuestService) GetQuestList(ctx context.Context, userID string, day model.DayKey) ([]model.QuestView, error) {
	rows, err := s.repo.GetDailyQuestProgress(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get quest progress: %w", err)
	}

	progressByType := make(map[string]model.QuestProgress, len(rows))
	for _, row := range rows {
		if _, dup := progressByType[row.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate %s rows for %s on %s", ErrConflictingState, row.Type, userID, day)
		}
		progressByType[row.Type] = row
	}

	definitions := s.catalog.List()
	views := make([]model.QuestView, len(definitions))
	for i, d := range definitions {
		progress, ok := progressByType[d.Type]
		if !ok {
			progress = model.QuestProgress{UserID: userID, Type: d.Type, Day: day}
		}

		views[i] = model.QuestView{
			Type:          d.Type,
			Title:         d.Title,
			Target:        d.Target,
			Reward:        d.Reward,
			CurrentCount:  progress.CurrentCount,
			IsDone:        progress.CurrentCount >= d.Target,
			RewardClaimed: progress.RewardClaimed,
		}
	}

	return views, nil
}

// IncreaseProgress records one performed action. Every call counts, so callers
// must invoke it at most once per action.
func (s *QuestService) IncreaseProgress(ctx context.Context, userID, questType string, day model.DayKey) error {
	if _, ok := s.catalog.Lookup(questType); !ok {
		return ErrUnknownQuestType
	}

	if err := s.repo.IncreaseDailyQuestProgress(ctx, userID, questType, day); err != nil {
		return fmt.Errorf("failed to increase quest progress: %w", err)
	}

	return nil
}

// ClaimReward marks the day's quest as claimed and credits its reward. Whether
// the quest was unfinished or already claimed is not distinguished.
func (s *QuestService) ClaimReward(ctx context.Context, userID, questType string, day model.DayKey) (int, error) {
	quest, ok := s.catalog.Lookup(questType)
	if !ok {
		return 0, ErrUnknownQuestType
	}

	err := s.repo.ClaimDailyQuestReward(ctx, model.QuestClaim{
		UserID: userID,
		Type:   quest.Type,
		Day:    day,
		Target: quest.Target,
		Reward: quest.Reward,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrQuestNotClaimable):
			return 0, ErrQuestNotCompletedOrAlreadyClaimed
		case errors.Is(err, repository.ErrNotFound):
			return 0, ErrMemberNotFound
		default:
			return 0, fmt.Errorf("failed to claim quest reward: %w", err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyReward(ctx, userID, quest); err != nil {
			logger.Logger().Warn("failed to notify quest reward",
				zap.Error(err),
				zap.String("member_id", userID),
				zap.String("quest_type", quest.Type))
		}
	}

	return quest.Reward, nil
}
