package handlers

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/logger"
)

// Export sends the user's reminders as a CSV document.
func (h *Handlers) Export(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update == nil || update.Message == nil || update.Message.From == nil || update.Message.Chat.ID == 0 {
		logger.Error("invalid update in Export")
		return
	}
	if update.Message.Chat.Type != models.ChatTypePrivate {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "The /export command works only in private chat.",
		})
		return
	}

	all, err := h.store.ByOwner(update.Message.From.ID)
	if err != nil {
		logger.Error("failed to fetch reminders for export", "user_id", update.Message.From.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to export your reminders. Please try again later.",
		})
		return
	}
	if len(all) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "You have no reminders to export.",
		})
		return
	}

	data, err := buildExportCSV(all)
	if err != nil {
		logger.Error("failed to build export CSV", "user_id", update.Message.From.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to export your reminders. Please try again later.",
		})
		return
	}

	filename := exportFilename(time.Now())
	caption := fmt.Sprintf("Your reminders export (%d reminders).", len(all))
	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: update.Message.Chat.ID,
		Document: &models.InputFileUpload{
			Filename: filename,
			Data:     bytes.NewReader(data),
		},
		Caption: caption,
	})
	if err != nil {
		logger.Error("failed to send export document", "user_id", update.Message.From.ID, "error", err)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Failed to export your reminders. Please try again later.",
		})
	}
}

func buildExportCSV(all []db.Reminder) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"subject", "next_at", "active", "periodic", "interval", "unit"}); err != nil {
		return nil, err
	}
	for _, rem := range all {
		record := []string{
			rem.Subject,
			rem.NextAt.Format(time.RFC3339),
			strconv.FormatBool(rem.Active),
			strconv.FormatBool(rem.Periodic),
			strconv.Itoa(rem.Interval),
			rem.Unit,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportFilename(now time.Time) string {
	return fmt.Sprintf("reminders-%s.csv", now.Format("2006-01-02"))
}
