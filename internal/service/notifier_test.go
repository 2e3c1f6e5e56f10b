package service

import (
	"context"
	"testing"

	"finalproject_backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, s.err
}

func TestTelegramRewardNotifier_NotifyReward(t *testing.T) {
	quest := model.QuestDefinition{Type: "REVIEW", Title: "Write a review", Target: 1, Reward: 10}

	t.Run("sends to the member chat", func(t *testing.T) {
		sender := &recordingSender{}
		notifier := NewTelegramRewardNotifierWithSender(sender)

		require.NoError(t, notifier.NotifyReward(context.Background(), "5060715466", quest))
		require.Len(t, sender.sent, 1)

		msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
		require.True(t, ok)
		assert.Equal(t, int64(5060715466), msg.ChatID)
		assert.Contains(t, msg.Text, "Write a review")
		assert.Contains(t, msg.Text, "10 points")
	})

	t.Run("non numeric member id", func(t *testing.T) {
		sender := &recordingSender{}
		notifier := NewTelegramRewardNotifierWithSender(sender)

		assert.Error(t, notifier.NotifyReward(context.Background(), "alice", quest))
		assert.Empty(t, sender.sent)
	})

	t.Run("send failure", func(t *testing.T) {
		sender := &recordingSender{err: assert.AnError}
		notifier := NewTelegramRewardNotifierWithSender(sender)

		assert.ErrorIs(t, notifier.NotifyReward(context.Background(), "42", quest), assert.AnError)
	})
}
