package reminders

import (
	"fmt"
	"time"

	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/ui"
)

// reminderText renders the message a due reminder is delivered with.
// Single-character separators (":") attach directly; word separators get a
// space.
func reminderText(rem *db.Reminder) string {
	sep := rem.Separator
	if len(sep) > 1 {
		sep = " " + sep
	}
	return fmt.Sprintf("Remember%s %s", sep, rem.Subject)
}

// formatFireTime renders "Monday, January 2 2006 at 6:04". Go has no
// unpadded 24-hour verb, so the clock part is formatted by hand.
func formatFireTime(t time.Time) string {
	return fmt.Sprintf("%s at %d:%02d", t.Format("Monday, January 2 2006"), t.Hour(), t.Minute())
}

type snoozeOption struct {
	op    ui.Op
	label string
	human string
	delta time.Duration
}

var snoozes = []snoozeOption{
	{ui.OpSnoozeHour, "+1h", "1 hour", time.Hour},
	{ui.OpSnoozeSixHours, "+6h", "6 hours", 6 * time.Hour},
	{ui.OpSnoozeDay, "+1d", "1 day", 24 * time.Hour},
	{ui.OpSnoozeWeek, "+1w", "1 week", 7 * 24 * time.Hour},
}

func snoozeByOp(op ui.Op) (snoozeOption, bool) {
	for _, s := range snoozes {
		if s.op == op {
			return s, true
		}
	}
	return snoozeOption{}, false
}
