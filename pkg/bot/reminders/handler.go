// Package reminders implements the assistant's reminder engine: turning
// "remind me ..." messages into persisted reminders, delivering them when
// due, and reacting to the buttons attached to a delivered reminder.
package reminders

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/logger"
	"github.com/dbrandt/homebot/pkg/timeparse"
	"github.com/dbrandt/homebot/pkg/ui"
)

var requestPattern = regexp.MustCompile(`(?i)^rem(?:ind|(?:em)?ber)(?:\s+me)?\s+(.+?)\s*(to|:|that|about)\s+(.+?)\s*$`)

const unspecifiedPrefix = "remind me to "

// Store is the persistence surface the engine needs. Every operation is
// atomic per record; the gorm-backed db.ReminderStore implements it.
type Store interface {
	Create(r *db.Reminder) error
	Save(r *db.Reminder) error
	Delete(id uint) error
	Get(id uint) (*db.Reminder, error)
	Due(now time.Time) ([]db.Reminder, error)
	ByOwner(owner int64) ([]db.Reminder, error)
}

// TimeParser extracts a concrete time from free text.
type TimeParser interface {
	Parse(text string, ref time.Time) (time.Time, timeparse.Specificity)
}

// CardService is the task-tracker used to materialize reminders as cards.
type CardService interface {
	CanCreateCards(owner int64) bool
	CreateCard(ctx context.Context, owner int64, title string) (string, error)
}

type Handler struct {
	cfg    config.RemindersConfig
	store  Store
	parser TimeParser
	cards  CardService
	clock  func() time.Time
}

func NewHandler(cfg config.RemindersConfig, store Store, parser TimeParser, cards CardService) *Handler {
	return &Handler{
		cfg:    cfg,
		store:  store,
		parser: parser,
		cards:  cards,
		clock:  time.Now,
	}
}

// Matches reports whether a message is a reminder request.
func Matches(text string) bool {
	return requestPattern.MatchString(text)
}

func (h *Handler) PollInterval() time.Duration {
	return time.Duration(h.cfg.PollSeconds) * time.Second
}

// HandleMessage creates a reminder from a matched request and confirms it.
func (h *Handler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in HandleMessage")
		return
	}

	text := update.Message.Text
	chatID := update.Message.Chat.ID
	owner := update.Message.From.ID
	now := h.clock()

	match := requestPattern.FindStringSubmatch(text)
	if match == nil {
		h.reply(ctx, b, chatID, "This wasn't supposed to happen.")
		return
	}
	timeString, separator, subject := match[1], match[2], match[3]
	if strings.EqualFold(separator, "about") {
		separator = ""
	}

	var rem *db.Reminder
	var err error
	switch {
	case containsCadenceKeyword(timeString):
		rem, err = h.createPeriodic(timeString, subject, separator, owner, now)
	case strings.HasPrefix(strings.ToLower(text), unspecifiedPrefix):
		rem = h.createUnspecified(text[len(unspecifiedPrefix):], "to", owner, now)
	default:
		rem, err = h.createOneTime(timeString, subject, separator, owner, now)
	}
	if err != nil {
		var userErr *UserError
		if errors.As(err, &userErr) {
			h.reply(ctx, b, chatID, userErr.Message)
			return
		}
		logger.Error("failed to create reminder", "user_id", owner, "error", err)
		h.reply(ctx, b, chatID, "Something went wrong. Please try again.")
		return
	}

	if err := h.store.Create(rem); err != nil {
		logger.Error("failed to save reminder", "user_id", owner, "error", err)
		h.reply(ctx, b, chatID, "Failed to save your reminder. Please try again.")
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        confirmation(rem),
		ReplyMarkup: confirmationKeyboard(rem),
	})
	if err != nil {
		logger.Error("failed to send reminder confirmation", "user_id", owner, "error", err)
	}
}

func containsCadenceKeyword(timeString string) bool {
	lower := strings.ToLower(timeString)
	return strings.Contains(lower, "every") || strings.Contains(lower, "each")
}

func confirmation(rem *db.Reminder) string {
	fire := formatFireTime(rem.NextAt)
	if !rem.Periodic {
		return fmt.Sprintf("I set up your reminder for %s", fire)
	}
	count := ""
	if rem.Interval > 1 {
		count = fmt.Sprintf("%d ", rem.Interval)
	}
	return fmt.Sprintf("I set up your reminder for every %s%s. The first one will happen on %s",
		count, rem.CadenceUnit().Readable(rem.Interval == 1), fire)
}

func confirmationKeyboard(rem *db.Reminder) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{{
			{Text: "Thanks!", CallbackData: mustCallback(ui.OpDismiss, 0)},
			{Text: "No wait", CallbackData: mustCallback(ui.OpDelete, rem.ID)},
		}},
	}
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		logger.Error("failed to send reply", "chat_id", chatID, "error", err)
	}
}

func mustCallback(op ui.Op, reminderID uint) string {
	data, err := ui.BuildCallback(op, reminderID)
	if err != nil {
		logger.Error("failed to build callback data", "op", op, "error", err)
		return ui.CallbackPrefix + string(op)
	}
	return data
}
