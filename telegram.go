package main

import (
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramBot adapts Telegram long polling to the dispatcher: incoming bot
// commands become IncomingCommands, replies go back as text or photo with
// caption.
type TelegramBot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
}

func NewTelegramBot(token string, dispatcher *Dispatcher) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramBot{api: api, dispatcher: dispatcher}, nil
}

// Run consumes updates until the update channel closes. Each command is
// handled on the dispatcher's bounded worker pool, so a burst of users does
// not block polling.
func (b *TelegramBot) Run(pollTimeoutSeconds int) {
	log.Printf("telegram: logged in as @%s", b.api.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = pollTimeoutSeconds

	for update := range b.api.GetUpdatesChan(updateConfig) {
		message := update.Message
		if message == nil || message.From == nil || !message.IsCommand() {
			continue
		}

		cmd := IncomingCommand{
			UserID:  message.From.ID,
			ChatID:  message.Chat.ID,
			Command: message.Command(),
			Args:    splitArgs(message.CommandArguments()),
		}
		b.dispatcher.HandleAsync(cmd, b.send)
	}
}

func (b *TelegramBot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *TelegramBot) send(reply Reply) {
	if reply.Empty() {
		return
	}

	if reply.ImageURL != "" {
		photo := tgbotapi.NewPhoto(reply.ChatID, tgbotapi.FileURL(reply.ImageURL))
		photo.Caption = reply.Text
		if _, err := b.api.Send(photo); err == nil {
			return
		} else {
			log.Printf("telegram: photo send failed, falling back to text: %v", err)
		}
	}

	msg := tgbotapi.NewMessage(reply.ChatID, reply.Text)
	if len(reply.Buttons) > 0 {
		msg.ReplyMarkup = keyboardFor(reply.Buttons)
	}
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("telegram: send failed: %v", err)
	}
}

func keyboardFor(buttons [][]string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(buttons))
	for _, row := range buttons {
		keys := make([]tgbotapi.KeyboardButton, 0, len(row))
		for _, label := range row {
			keys = append(keys, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, keys)
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func splitArgs(raw string) []string {
	return strings.Fields(raw)
}
