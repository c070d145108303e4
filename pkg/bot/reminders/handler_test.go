package reminders

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/dbrandt/homebot/pkg/internal/testutil"
	"github.com/dbrandt/homebot/pkg/timeparse"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"Remind me tomorrow to do laundry", true},
		{"remind me in 3 days to take out trash", true},
		{"Remember each Wednesday to water the plants", true},
		{"Rember me tomorrow to do laundry", true},
		{"remind me to do laundry", true},
		{"what's the weather", false},
		{"reminding you of nothing", false},
	}

	for _, tt := range tests {
		if got := Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestHandleMessageCreatesOneTime(t *testing.T) {
	store := testutil.SetupTestDB(t)
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	h := newTestHandler(t, store, timeparse.New(), now)

	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleMessage(context.Background(), b, newTestUpdate("Remind me tomorrow to do laundry", 42))

	all, err := store.ByOwner(42)
	if err != nil {
		t.Fatalf("failed to list reminders: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one reminder, got %d", len(all))
	}
	rem := all[0]
	if rem.Subject != "do laundry" || rem.Separator != "to" {
		t.Errorf("unexpected reminder content: %+v", rem)
	}
	want := time.Date(2024, 3, 11, 6, 0, 0, 0, time.Local)
	if !rem.NextAt.Equal(want) {
		t.Errorf("expected fire time %v, got %v", want, rem.NextAt)
	}

	if got := client.lastMessageText(t); !strings.Contains(got, "I set up your reminder for") {
		t.Errorf("unexpected confirmation: %q", got)
	}
}

func TestHandleMessageCreatesPeriodic(t *testing.T) {
	store := testutil.SetupTestDB(t)
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	h := newTestHandler(t, store, timeparse.New(), now)

	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleMessage(context.Background(), b, newTestUpdate("Remind me every 3 weeks to stretch", 42))

	all, err := store.ByOwner(42)
	if err != nil {
		t.Fatalf("failed to list reminders: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one reminder, got %d", len(all))
	}
	rem := all[0]
	if !rem.Periodic || rem.Interval != 3 || rem.Unit != "week" {
		t.Errorf("unexpected cadence: %+v", rem)
	}

	if got := client.lastMessageText(t); !strings.Contains(got, "every 3 weeks") {
		t.Errorf("confirmation should spell out the cadence, got %q", got)
	}
}

func TestHandleMessageUnparseableTimeReportsError(t *testing.T) {
	store := testutil.SetupTestDB(t)
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	h := newTestHandler(t, store, timeparse.New(), now)

	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleMessage(context.Background(), b, newTestUpdate("Remind me blorp florp to do a thing", 42))

	all, err := store.ByOwner(42)
	if err != nil {
		t.Fatalf("failed to list reminders: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("no reminder should be stored, got %d", len(all))
	}
	if got := client.lastMessageText(t); !strings.Contains(got, "blorp florp") {
		t.Errorf("error reply should quote the input, got %q", got)
	}
}

func TestHandleMessageUnspecifiedTime(t *testing.T) {
	store := testutil.SetupTestDB(t)
	now := time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)
	h := newTestHandler(t, store, timeparse.New(), now)

	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.HandleMessage(context.Background(), b, newTestUpdate("remind me to water the plants", 42))

	all, err := store.ByOwner(42)
	if err != nil {
		t.Fatalf("failed to list reminders: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one reminder, got %d", len(all))
	}
	want := time.Date(2024, 3, 10, 19, 0, 0, 0, time.Local)
	if !all[0].NextAt.Equal(want) {
		t.Errorf("expected evening anchor %v, got %v", want, all[0].NextAt)
	}
	if all[0].Subject != "water the plants" {
		t.Errorf("unexpected subject %q", all[0].Subject)
	}
}
