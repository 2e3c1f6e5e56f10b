package service

import (
	"context"
	"fmt"
	"strconv"

	"finalproject_backend/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type NotifierConfig struct {
	Enabled  bool
	BotToken string
	Debug    bool
}

// MessageSender is the part of *tgbotapi.BotAPI the notifier uses.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramRewardNotifier sends a chat message to the member whose reward was
// credited. Member ids are Telegram user ids, which double as private chat ids.
type TelegramRewardNotifier struct {
	bot MessageSender
}

func NewTelegramRewardNotifier(config NotifierConfig) (*TelegramRewardNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(config.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize bot: %w", err)
	}

	bot.Debug = config.Debug

	return NewTelegramRewardNotifierWithSender(bot), nil
}

func NewTelegramRewardNotifierWithSender(bot MessageSender) *TelegramRewardNotifier {
	return &TelegramRewardNotifier{
		bot: bot,
	}
}

func (n *TelegramRewardNotifier) NotifyReward(ctx context.Context, userID string, quest model.QuestDefinition) error {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return fmt.Errorf("member id %q is not a telegram chat id: %w", userID, err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, rewardMessage(quest))
	_, err = n.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send reward message: %w", err)
	}

	return nil
}

func rewardMessage(quest model.QuestDefinition) string {
	return fmt.Sprintf("Daily quest \"%s\" complete! %d points were added to your account.", quest.Title, quest.Reward)
}
