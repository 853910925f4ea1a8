package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"suilog/internal/contribution"
	"suilog/internal/models"
	"suilog/internal/wallet"
)

// TelegramService pushes task and project events to a configured chat.
// A nil *TelegramService is a no-op, so callers never need to guard.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramService returns nil (disabled) when no token is configured.
func NewTelegramService(token string, chatID int64) (*TelegramService, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	log.Printf("[tg] authorized as @%s", bot.Self.UserName)
	return &TelegramService{bot: bot, chatID: chatID}, nil
}

func (t *TelegramService) send(text string) {
	if t == nil || t.bot == nil {
		return
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}

func (t *TelegramService) NotifyTaskAssigned(task *models.Task) {
	if t == nil || task == nil || task.AssignedTo == nil {
		return
	}
	t.send(fmt.Sprintf("📌 <b>New task</b>\n%s\nAssigned to %s, due %s",
		task.Title, wallet.Truncate(*task.AssignedTo), task.DueDate.Format("2006-01-02")))
}

func (t *TelegramService) NotifyTaskCompleted(task *models.Task) {
	if t == nil || task == nil {
		return
	}
	actual := task.EstimatedTime
	if task.ActualTime != nil {
		actual = *task.ActualTime
	}
	t.send(fmt.Sprintf("✅ <b>Task completed</b>\n%s\nSpent %s (estimated %s)",
		task.Title, contribution.FormatMinutes(actual), contribution.FormatMinutes(task.EstimatedTime)))
}

func (t *TelegramService) NotifyProjectCompleted(name, digest string, summary contribution.Summary) {
	if t == nil {
		return
	}
	t.send(fmt.Sprintf("🏆 <b>Project completed</b>\n%s\nScore %.1f over %d tasks\nProof: %s",
		name, summary.ContributionScore, summary.CompletedTasks, digest))
}
