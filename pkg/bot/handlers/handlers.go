// Package handlers wires the Telegram command surface: the default message
// handler that recognizes reminder requests, the /start and /help texts,
// and the /export download.
package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/bot/reminders"
	"github.com/dbrandt/homebot/pkg/logger"
)

const helpText = "I can set up reminders for you. Tell me what and when:\n" +
	"* Remind me <time> to <thing>\n" +
	"* Remind me tomorrow to do laundry\n" +
	"* Remind me in 3 days to take out trash\n" +
	"* Remind me on July 15 at 13:40 to call mom\n" +
	"* Remind me each Wednesday to water the plants\n" +
	"* Remind me every year on August 18 that it's my birthday\n\n" +
	"Commands:\n" +
	"* /help: show this message\n" +
	"* /export: download your reminders as CSV"

type Handlers struct {
	rh    *reminders.Handler
	store reminders.Store
}

func New(rh *reminders.Handler, store reminders.Store) *Handlers {
	return &Handlers{rh: rh, store: store}
}

// Default routes free text: reminder requests go to the engine, anything
// else gets the help text.
func (h *Handlers) Default(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("received invalid update in Default")
		return
	}

	if reminders.Matches(update.Message.Text) {
		h.rh.HandleMessage(ctx, b, update)
		return
	}

	h.sendHelp(ctx, b, update.Message.Chat.ID)
}

func (h *Handlers) Start(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("received invalid update in Start")
		return
	}
	h.sendHelp(ctx, b, update.Message.Chat.ID)
}

func (h *Handlers) Help(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.Chat.ID == 0 {
		logger.Error("received invalid update in Help")
		return
	}
	h.sendHelp(ctx, b, update.Message.Chat.ID)
}

func (h *Handlers) sendHelp(ctx context.Context, b *bot.Bot, chatID int64) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   helpText,
	})
	if err != nil {
		logger.Error("failed to send help message", "chat_id", chatID, "error", err)
	}
}
