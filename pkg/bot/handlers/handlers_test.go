package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/dbrandt/homebot/pkg/bot/reminders"
	"github.com/dbrandt/homebot/pkg/config"
	"github.com/dbrandt/homebot/pkg/internal/testutil"
	"github.com/dbrandt/homebot/pkg/timeparse"
)

type noCards struct{}

func (noCards) CanCreateCards(int64) bool { return false }
func (noCards) CreateCard(_ context.Context, _ int64, _ string) (string, error) {
	return "", nil
}

func newTestHandlers(t *testing.T) (*Handlers, reminders.Store) {
	t.Helper()
	store := testutil.SetupTestDB(t)
	rh := reminders.NewHandler(config.DefaultReminders(), store, timeparse.New(), noCards{})
	return New(rh, store), store
}

func TestDefaultSendsHelpForUnknownText(t *testing.T) {
	h, _ := newTestHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.Default(context.Background(), b, newTestUpdate("what's the weather", 42))

	if got := client.lastMessageText(t); !strings.Contains(got, "Remind me <time> to <thing>") {
		t.Errorf("expected help text, got %q", got)
	}
}

func TestDefaultRoutesReminderRequests(t *testing.T) {
	h, store := newTestHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.Default(context.Background(), b, newTestUpdate("Remind me in 3 days to take out trash", 42))

	all, err := store.ByOwner(42)
	if err != nil {
		t.Fatalf("failed to list reminders: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one reminder, got %d", len(all))
	}
	if all[0].Subject != "take out trash" {
		t.Errorf("unexpected subject %q", all[0].Subject)
	}
	if got := client.lastMessageText(t); !strings.Contains(got, "I set up your reminder") {
		t.Errorf("expected confirmation, got %q", got)
	}
}

func TestStartAndHelpSendHelpText(t *testing.T) {
	h, _ := newTestHandlers(t)
	client := newMockClient()
	b := newTestTelegramBot(t, client)

	h.Start(context.Background(), b, newTestUpdate("/start", 42))
	if got := client.lastMessageText(t); !strings.Contains(got, "/export") {
		t.Errorf("expected command list in start reply, got %q", got)
	}

	h.Help(context.Background(), b, newTestUpdate("/help", 42))
	if got := client.lastMessageText(t); !strings.Contains(got, "each Wednesday") {
		t.Errorf("expected usage examples in help reply, got %q", got)
	}
}
