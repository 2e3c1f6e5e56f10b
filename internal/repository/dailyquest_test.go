package repository

import (
	"context"
	"sync/atomic"
	"testing"

	"finalproject_backend/internal/model"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDay = model.DayKey("20261019")

func seedMember(t *testing.T, repo *Repository, memberID string) {
	t.Helper()
	require.NoError(t, repo.CreateMember(context.Background(), &model.Member{
		MemberID: memberID,
		Nickname: memberID,
	}))
}

func TestRepository_IncreaseDailyQuestProgress(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	progress, err := repo.GetDailyQuestProgress(ctx, "u1", testDay)
	require.NoError(t, err)
	assert.Empty(t, progress)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, "u1", "REVIEW", testDay))
	}
	require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, "u1", "QUIZ", testDay))
	require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, "u1", "REVIEW", "20261018"))
	require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, "u2", "REVIEW", testDay))

	progress, err = repo.GetDailyQuestProgress(ctx, "u1", testDay)
	require.NoError(t, err)
	require.Len(t, progress, 2)

	assert.Equal(t, "QUIZ", progress[0].Type)
	assert.Equal(t, 1, progress[0].CurrentCount)
	assert.Equal(t, "REVIEW", progress[1].Type)
	assert.Equal(t, 3, progress[1].CurrentCount)
	assert.False(t, progress[1].RewardClaimed)
	assert.Nil(t, progress[1].ClaimedAt)
	assert.Equal(t, testDay, progress[1].Day)
	assert.Equal(t, "u1", progress[1].UserID)
}

func TestRepository_IncreaseDailyQuestProgress_Concurrent(t *testing.T) {
	repo := newConcurrentTestRepository(t)
	ctx := context.Background()

	const n = 20
	start := make(chan struct{})
	var wg conc.WaitGroup
	for i := 0; i < n; i++ {
		wg.Go(func() {
			<-start
			assert.NoError(t, repo.IncreaseDailyQuestProgress(ctx, "u1", "REVIEW", testDay))
		})
	}
	close(start)
	wg.Wait()

	progress, err := repo.GetDailyQuestProgress(ctx, "u1", testDay)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, n, progress[0].CurrentCount)
}

func TestRepository_ClaimDailyQuestReward(t *testing.T) {
	claim := model.QuestClaim{
		UserID: "u1",
		Type:   "REVIEW",
		Day:    testDay,
		Target: 2,
		Reward: 10,
	}

	tests := []struct {
		name        string
		increments  int
		seedMember  bool
		claimTwice  bool
		expectedErr error
		wantClaimed bool
		wantPoint   int
	}{
		{
			name:        "no progress row",
			seedMember:  true,
			expectedErr: ErrQuestNotClaimable,
		},
		{
			name:        "below target",
			increments:  1,
			seedMember:  true,
			expectedErr: ErrQuestNotClaimable,
		},
		{
			name:        "target reached",
			increments:  2,
			seedMember:  true,
			wantClaimed: true,
			wantPoint:   10,
		},
		{
			name:        "already claimed",
			increments:  3,
			seedMember:  true,
			claimTwice:  true,
			expectedErr: ErrQuestNotClaimable,
			wantClaimed: true,
			wantPoint:   10,
		},
		{
			name:        "member missing rolls back claim flag",
			increments:  2,
			expectedErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t)
			ctx := context.Background()

			if tt.seedMember {
				seedMember(t, repo, claim.UserID)
			}
			for i := 0; i < tt.increments; i++ {
				require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, claim.UserID, claim.Type, claim.Day))
			}

			err := repo.ClaimDailyQuestReward(ctx, claim)
			if tt.claimTwice {
				require.NoError(t, err)
				err = repo.ClaimDailyQuestReward(ctx, claim)
			}

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}

			progress, err := repo.GetDailyQuestProgress(ctx, claim.UserID, claim.Day)
			require.NoError(t, err)
			if tt.increments > 0 {
				require.Len(t, progress, 1)
				assert.Equal(t, tt.wantClaimed, progress[0].RewardClaimed)
				assert.Equal(t, tt.wantClaimed, progress[0].ClaimedAt != nil)
			}

			if tt.seedMember {
				m, err := repo.GetMember(ctx, claim.UserID)
				require.NoError(t, err)
				assert.Equal(t, tt.wantPoint, m.Point)
			}
		})
	}
}

func TestRepository_ClaimDailyQuestReward_ConcurrentClaims(t *testing.T) {
	repo := newConcurrentTestRepository(t)
	ctx := context.Background()
	seedMember(t, repo, "u1")

	claim := model.QuestClaim{UserID: "u1", Type: "REVIEW", Day: testDay, Target: 3, Reward: 10}
	for i := 0; i < claim.Target; i++ {
		require.NoError(t, repo.IncreaseDailyQuestProgress(ctx, claim.UserID, claim.Type, claim.Day))
	}

	const attempts = 8
	var succeeded, rejected atomic.Int32
	start := make(chan struct{})
	var wg conc.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Go(func() {
			<-start
			err := repo.ClaimDailyQuestReward(ctx, claim)
			switch {
			case err == nil:
				succeeded.Add(1)
			case assert.ErrorIs(t, err, ErrQuestNotClaimable):
				rejected.Add(1)
			}
		})
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(attempts-1), rejected.Load())

	m, err := repo.GetMember(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, m.Point)

	var history int
	require.NoError(t, repo.db.GetContext(ctx, &history, `SELECT COUNT(*) FROM point_history WHERE member_id = $1`, "u1"))
	assert.Equal(t, 1, history)
}
