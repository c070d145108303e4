package reminders

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/logger"
	"github.com/dbrandt/homebot/pkg/ui"
)

// HandleCallback reacts to a button press on a reminder message. Every
// branch answers the callback query so the client stops its spinner.
func (h *Handler) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.CallbackQuery == nil {
		logger.Error("invalid update in HandleCallback")
		return
	}
	cb := update.CallbackQuery

	action, err := ui.ParseCallbackData(cb.Data)
	if err != nil {
		logger.Error("failed to parse callback data", "data", cb.Data, "error", err)
		answer(ctx, b, cb.ID, "Something went wrong.")
		return
	}

	var chatID int64
	var messageID int
	if cb.Message.Message != nil {
		chatID = cb.Message.Message.Chat.ID
		messageID = cb.Message.Message.ID
	}

	if action.Op == ui.OpDismiss {
		answer(ctx, b, cb.ID, "You will be reminded. It is inevitable.")
		deleteMessage(ctx, b, chatID, messageID)
		return
	}

	rem, err := h.store.Get(action.ReminderID)
	if err != nil {
		logger.Error("failed to load reminder for callback", "reminder_id", action.ReminderID, "error", err)
		answer(ctx, b, cb.ID, "Something went wrong.")
		return
	}

	// Only the owner may change or remove a reminder. Acknowledging is
	// harmless either way.
	mutating := action.Op == ui.OpDelete || action.Op == ui.OpDeleteSeries || ui.IsSnooze(action.Op)
	if mutating && rem.Owner != 0 && rem.Owner != cb.From.ID {
		answer(ctx, b, cb.ID, "Something went wrong.")
		return
	}

	switch {
	case action.Op == ui.OpAck:
		answer(ctx, b, cb.ID, ui.Affirmation())
		editMessage(ctx, b, chatID, messageID, reminderText(rem))

	case action.Op == ui.OpDelete:
		if err := h.store.Delete(rem.ID); err != nil {
			logger.Error("failed to delete reminder", "reminder_id", rem.ID, "error", err)
			answer(ctx, b, cb.ID, "Something went wrong.")
			return
		}
		answer(ctx, b, cb.ID, "Reminder deleted")
		deleteMessage(ctx, b, chatID, messageID)

	case action.Op == ui.OpDeleteSeries:
		if err := h.store.Delete(rem.ID); err != nil {
			logger.Error("failed to delete reminder", "reminder_id", rem.ID, "error", err)
			answer(ctx, b, cb.ID, "Something went wrong.")
			return
		}
		answer(ctx, b, cb.ID, "Reminder deleted")
		editMessage(ctx, b, chatID, messageID, reminderText(rem)+"\n\nThis periodic reminder was deleted.")

	case action.Op == ui.OpCreateCard:
		h.createCard(ctx, b, cb, rem, chatID, messageID)

	case ui.IsSnooze(action.Op):
		h.snooze(ctx, b, cb, rem, action.Op, chatID, messageID)

	default:
		answer(ctx, b, cb.ID, "Something went wrong.")
	}
}

// createCard materializes the reminder as a card for its owner, matching
// the keyboard gating in deliveryKeyboard.
func (h *Handler) createCard(ctx context.Context, b *bot.Bot, cb *models.CallbackQuery, rem *db.Reminder, chatID int64, messageID int) {
	if h.cards == nil || !h.cards.CanCreateCards(rem.Owner) {
		answer(ctx, b, cb.ID, "I'm afraid I can't do that")
		return
	}
	if _, err := h.cards.CreateCard(ctx, rem.Owner, rem.Subject); err != nil {
		logger.Error("failed to create card", "reminder_id", rem.ID, "error", err)
		answer(ctx, b, cb.ID, "I'm afraid I can't do that")
		return
	}
	answer(ctx, b, cb.ID, "Card created")
	editMessage(ctx, b, chatID, messageID, reminderText(rem))
}

// snooze pushes a reminder forward by a fixed delta, repeated until the
// result is in the future. A periodic reminder is never moved itself;
// instead an independent one-time copy is snoozed and the series keeps its
// schedule.
func (h *Handler) snooze(ctx context.Context, b *bot.Bot, cb *models.CallbackQuery, rem *db.Reminder, op ui.Op, chatID int64, messageID int) {
	opt, ok := snoozeByOp(op)
	if !ok {
		answer(ctx, b, cb.ID, "Something went wrong.")
		return
	}

	now := h.clock()
	target := rem
	if rem.Periodic {
		target = rewindToOneTime(rem)
	}
	for !target.NextAt.After(now) {
		target.NextAt = target.NextAt.Add(opt.delta)
	}
	target.Active = true

	var err error
	if target.ID == 0 {
		err = h.store.Create(target)
	} else {
		err = h.store.Save(target)
	}
	if err != nil {
		logger.Error("failed to snooze reminder", "reminder_id", rem.ID, "error", err)
		answer(ctx, b, cb.ID, "Something went wrong.")
		return
	}

	answer(ctx, b, cb.ID, fmt.Sprintf("Reminder snoozed for %s", opt.human))
	deleteMessage(ctx, b, chatID, messageID)
}

func answer(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
	if err != nil {
		logger.Error("failed to answer callback query", "error", err)
	}
}

func editMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int, text string) {
	if chatID == 0 || messageID == 0 {
		return
	}
	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	})
	if err != nil {
		logger.Error("failed to edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	if chatID == 0 || messageID == 0 {
		return
	}
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		logger.Error("failed to delete message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}
