package ui

import (
	"strings"
	"testing"
)

func TestBuildAndParseRoundTrip(t *testing.T) {
	ops := []Op{OpAck, OpDelete, OpDeleteSeries, OpCreateCard, OpDismiss,
		OpSnoozeHour, OpSnoozeSixHours, OpSnoozeDay, OpSnoozeWeek}

	for _, op := range ops {
		data, err := BuildCallback(op, 123)
		if err != nil {
			t.Fatalf("BuildCallback(%q) returned error: %v", op, err)
		}
		if !strings.HasPrefix(data, CallbackPrefix) {
			t.Errorf("BuildCallback(%q) = %q, missing prefix", op, data)
		}
		if len(data) > MaxCallbackDataLen {
			t.Errorf("BuildCallback(%q) = %q exceeds max length", op, data)
		}

		action, err := ParseCallbackData(data)
		if err != nil {
			t.Fatalf("ParseCallbackData(%q) returned error: %v", data, err)
		}
		if action.Op != op || action.ReminderID != 123 {
			t.Errorf("round trip of %q = %+v", op, action)
		}
	}
}

func TestBuildCallbackRejectsUnknownOp(t *testing.T) {
	if _, err := BuildCallback(Op("boom"), 1); err == nil {
		t.Error("expected an error for an unknown op")
	}
}

func TestParseCallbackDataRejectsMalformed(t *testing.T) {
	cases := []string{
		"",
		"s:ack:1",
		"r:ack",
		"r:ack:1:extra",
		"r:unknown:1",
		"r:ack:abc",
		"r:ack:-5",
		"r:ack:" + strings.Repeat("9", 80),
	}
	for _, data := range cases {
		if _, err := ParseCallbackData(data); err == nil {
			t.Errorf("ParseCallbackData(%q) should fail", data)
		}
	}
}

func TestIsSnooze(t *testing.T) {
	for _, op := range []Op{OpSnoozeHour, OpSnoozeSixHours, OpSnoozeDay, OpSnoozeWeek} {
		if !IsSnooze(op) {
			t.Errorf("IsSnooze(%q) = false, want true", op)
		}
	}
	for _, op := range []Op{OpAck, OpDelete, OpDismiss} {
		if IsSnooze(op) {
			t.Errorf("IsSnooze(%q) = true, want false", op)
		}
	}
}

func TestAffirmationNonEmpty(t *testing.T) {
	for i := 0; i < 20; i++ {
		if Affirmation() == "" {
			t.Fatal("Affirmation returned an empty string")
		}
	}
}
