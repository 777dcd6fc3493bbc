package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/sony/gobreaker/v2"

	"github.com/example/cashwave/internal/models"
)

// TelegramService pushes best-effort notifications to the admin chat so
// pending orders get noticed. The order pipeline never depends on these
// sends; failures are logged and the circuit breaker keeps a dead Bot
// API from being hammered on every checkout.
type TelegramService struct {
	botToken    string
	adminChatID string
	breaker     *gobreaker.CircuitBreaker[struct{}]
}

// NewTelegramService creates a new TelegramService.
func NewTelegramService(botToken, adminChatID string) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		breaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name: "telegram",
		}),
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to specified chat.
func (s *TelegramService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		log.Println("[Telegram] Bot token not configured")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, err = s.breaker.Execute(func() (struct{}, error) {
		resp, err := http.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			return struct{}{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return struct{}{}, fmt.Errorf("telegram returned status %d", resp.StatusCode)
		}
		return struct{}{}, nil
	})
	if err != nil {
		log.Printf("[Telegram] Failed to send message: %v", err)
	}
	return err
}

// SendToAdmin sends a message to the admin chat.
func (s *TelegramService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		log.Println("[Telegram] Admin chat ID not configured")
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// NotifyNewOrder tells the admin chat a pending order is waiting for
// payment confirmation.
func (s *TelegramService) NotifyNewOrder(order *models.Order) error {
	if s.adminChatID == "" {
		return nil
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   %d x $%.2f = $%.2f\n",
			i+1,
			item.Title,
			item.Quantity,
			item.UnitPrice,
			item.LineTotal,
		))
	}

	message := fmt.Sprintf(`<b>🛒 NEW ORDER</b>
<b>📋 Order:</b> %s
<b>👤 Customer:</b> %s
<b>📞 WhatsApp:</b> %s
<b>📦 Items:</b>
%s
<b>💰 Total:</b> $%.2f
<b>📍 Status:</b> awaiting payment confirmation
━━━━━━━━━━━━━━━━━━`,
		order.ID,
		order.UserName,
		order.UserWhatsApp,
		itemsList.String(),
		order.Total,
	)

	return s.SendToAdmin(strings.TrimSpace(message))
}
