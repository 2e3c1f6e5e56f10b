package repository

import (
	"context"
	"fmt"
	"time"

	"finalproject_backend/internal/model"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const questRewardReason = "DAILY_QUEST:"

type dailyQuestProgress struct {
	UserID        string     `db:"user_id"`
	QuestType     string     `db:"quest_type"`
	QuestDate     string     `db:"quest_date"`
	CurrentCount  int64      `db:"current_count"`
	RewardClaimed bool       `db:"reward_claimed"`
	ClaimedAt     *time.Time `db:"claimed_at"`
}

func (p dailyQuestProgress) toModel() model.QuestProgress {
	return model.QuestProgress{
		UserID:        p.UserID,
		Type:          p.QuestType,
		Day:           model.DayKey(p.QuestDate),
		CurrentCount:  int(p.CurrentCount),
		RewardClaimed: p.RewardClaimed,
		ClaimedAt:     p.ClaimedAt,
	}
}

func (r *Repository) GetDailyQuestProgress(ctx context.Context, userID string, day model.DayKey) ([]model.QuestProgress, error) {
	query, args, err := squirrel.
		Select("user_id", "quest_type", "quest_date", "current_count", "reward_claimed", "claimed_at").
		From("daily_quest_progress").
		Where(squirrel.Eq{
			"user_id":    userID,
			"quest_date": day.String(),
		}).
		OrderBy("quest_type").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build progress select query: %w", err)
	}

	var rows []dailyQuestProgress
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get daily quest progress: %w", err)
	}

	progress := make([]model.QuestProgress, len(rows))
	for i, row := range rows {
		progress[i] = row.toModel()
	}

	return progress, nil
}

// IncreaseDailyQuestProgress creates the day's row with a count of one or bumps
// the existing count, in a single statement so concurrent actions never lose an
// increment.
func (r *Repository) IncreaseDailyQuestProgress(ctx context.Context, userID, questType string, day model.DayKey) error {
	query, args, err := squirrel.
		Insert("daily_quest_progress").
		Columns("user_id", "quest_type", "quest_date", "current_count", "reward_claimed", "updated_at").
		Values(userID, questType, day.String(), 1, false, time.Now().UTC()).
		Suffix("ON CONFLICT (user_id, quest_type, quest_date) DO UPDATE SET " +
			"current_count = daily_quest_progress.current_count + 1, " +
			"updated_at = excluded.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build progress upsert query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert daily quest progress: %w", err)
	}

	return nil
}

// ClaimDailyQuestReward flips reward_claimed with one conditional update and
// credits the member within the same transaction. A claim that matches no row
// returns ErrQuestNotClaimable; a missing member returns ErrNotFound and the
// claim flag is rolled back.
func (r *Repository) ClaimDailyQuestReward(ctx context.Context, claim model.QuestClaim) error {
	return r.Transaction(ctx, func(tx *sqlx.Tx) error {
		now := time.Now().UTC()

		updateQuery, args, err := squirrel.
			Update("daily_quest_progress").
			Set("reward_claimed", true).
			Set("claimed_at", now).
			Set("updated_at", now).
			Where(squirrel.And{
				squirrel.Eq{
					"user_id":        claim.UserID,
					"quest_type":     claim.Type,
					"quest_date":     claim.Day.String(),
					"reward_claimed": false,
				},
				squirrel.GtOrEq{"current_count": claim.Target},
			}).
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build claim update query: %w", err)
		}

		result, err := tx.ExecContext(ctx, updateQuery, args...)
		if err != nil {
			return fmt.Errorf("failed to update claim status: %w", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get affected rows: %w", err)
		}
		if rows == 0 {
			return ErrQuestNotClaimable
		}

		return r.creditMemberPointWithTx(ctx, tx, claim.UserID, claim.Reward, questRewardReason+claim.Type)
	})
}
