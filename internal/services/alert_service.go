package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// AlertService notifies the admin chat about server-side failures. It is an
// optional side channel: a nil service or a missing token is a no-op.
type AlertService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewAlertService(botToken string, adminChatID int64) *AlertService {
	if botToken == "" || adminChatID == 0 {
		return nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[alerts] telegram bot init failed, alerts disabled: %v", err)
		return nil
	}
	return &AlertService{bot: bot, chatID: adminChatID}
}

// NotifyServerError reports a 5xx response. Failures are logged, never
// propagated: alerting must not affect request handling.
func (s *AlertService) NotifyServerError(method, endpoint string, status int) {
	if s == nil {
		return
	}
	text := fmt.Sprintf("⚠️ %d on %s %s", status, method, endpoint)
	if _, err := s.bot.Send(tgbotapi.NewMessage(s.chatID, text)); err != nil {
		log.Printf("[alerts] send failed: %v", err)
	}
}
