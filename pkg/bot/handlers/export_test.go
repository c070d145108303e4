package handlers

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/dbrandt/homebot/pkg/db"
)

func TestExportSendsCSV(t *testing.T) {
	h, store := newTestHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	rem := &db.Reminder{
		Owner:    42,
		Subject:  "water the plants",
		NextAt:   time.Date(2024, 3, 13, 6, 0, 0, 0, time.UTC),
		Active:   true,
		Periodic: true,
		Interval: 1,
		Unit:     "week",
	}
	if err := store.Create(rem); err != nil {
		t.Fatalf("failed to create reminder: %v", err)
	}

	h.Export(context.Background(), b, newTestUpdate("/export", 42))

	data, filename := client.lastMultipartField(t, "document")
	if !strings.HasPrefix(filename, "reminders-") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("unexpected export filename %q", filename)
	}

	records, err := csv.NewReader(strings.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse exported CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus one record, got %d rows", len(records))
	}
	row := records[1]
	if row[0] != "water the plants" || row[3] != "true" || row[5] != "week" {
		t.Errorf("unexpected export row: %v", row)
	}
}

func TestExportWithNoReminders(t *testing.T) {
	h, _ := newTestHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.Export(context.Background(), b, newTestUpdate("/export", 42))

	if got := client.lastMessageText(t); !strings.Contains(got, "no reminders to export") {
		t.Errorf("expected empty-export notice, got %q", got)
	}
}
