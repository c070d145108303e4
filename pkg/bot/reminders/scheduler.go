package reminders

import (
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/logger"
	"github.com/dbrandt/homebot/pkg/recurrence"
	"github.com/dbrandt/homebot/pkg/ui"
)

// RunPeriodic delivers every reminder whose fire time has passed. One
// failing reminder does not block the others.
func (h *Handler) RunPeriodic(ctx context.Context, b *bot.Bot, now time.Time) {
	due, err := h.store.Due(now)
	if err != nil {
		logger.Error("failed to query due reminders", "error", err)
		return
	}

	for i := range due {
		h.deliverDue(ctx, b, &due[i])
	}
}

// deliverDue sends one due reminder and reschedules it. The record is only
// touched after a successful send, so a delivery failure is retried on the
// next tick.
func (h *Handler) deliverDue(ctx context.Context, b *bot.Bot, rem *db.Reminder) {
	recipient := rem.Owner
	if recipient == 0 {
		recipient = h.cfg.DefaultRecipient
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      recipient,
		Text:        reminderText(rem),
		ReplyMarkup: h.deliveryKeyboard(rem),
	})
	if err != nil {
		logger.Error("failed to deliver reminder, will retry next tick",
			"reminder_id", rem.ID, "recipient", recipient, "error", err)
		return
	}

	if rem.Periodic {
		rem.NextAt = recurrence.Advance(rem.NextAt, rem.CadenceUnit(), rem.Interval, 1)
	} else {
		rem.Active = false
	}
	if err := h.store.Save(rem); err != nil {
		logger.Error("failed to reschedule reminder", "reminder_id", rem.ID, "error", err)
	}
}

func (h *Handler) deliveryKeyboard(rem *db.Reminder) *models.InlineKeyboardMarkup {
	firstRow := []models.InlineKeyboardButton{
		{Text: "Got it!", CallbackData: mustCallback(ui.OpAck, rem.ID)},
	}
	if h.cards != nil && h.cards.CanCreateCards(rem.Owner) {
		firstRow = append(firstRow, models.InlineKeyboardButton{
			Text: "Create card", CallbackData: mustCallback(ui.OpCreateCard, rem.ID),
		})
	}

	rows := [][]models.InlineKeyboardButton{firstRow}
	if rem.Periodic {
		rows = append(rows, []models.InlineKeyboardButton{
			{Text: "Remove this reminder", CallbackData: mustCallback(ui.OpDeleteSeries, rem.ID)},
		})
	}

	snoozeRow := make([]models.InlineKeyboardButton, 0, len(snoozes))
	for _, s := range snoozes {
		snoozeRow = append(snoozeRow, models.InlineKeyboardButton{
			Text: s.label, CallbackData: mustCallback(s.op, rem.ID),
		})
	}
	rows = append(rows, snoozeRow)

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
