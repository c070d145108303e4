package reminders

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dbrandt/homebot/pkg/db"
	"github.com/dbrandt/homebot/pkg/recurrence"
	"github.com/dbrandt/homebot/pkg/timeparse"
)

// UserError is a parse or validation failure worth explaining to the user
// verbatim. Anything else is an internal error.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

func userErrorf(format string, args ...any) *UserError {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

var nonDigits = regexp.MustCompile(`\D`)

// createOneTime builds a reminder from an explicit time expression. A date
// without a time fires at the morning anchor; a time without a date fires
// the next time that clock time comes around.
func (h *Handler) createOneTime(timeString, subject, separator string, owner int64, now time.Time) (*db.Reminder, error) {
	parsed, spec := h.parser.Parse(timeString, now)
	switch spec {
	case timeparse.None:
		return nil, userErrorf("Sorry, I don't understand what you mean by \"%s\".", timeString)
	case timeparse.DateOnly:
		parsed = h.atMorning(parsed)
	case timeparse.TimeOnly:
		if now.After(parsed) {
			parsed = parsed.Add(24 * time.Hour)
		}
	}

	return &db.Reminder{
		Owner:     owner,
		Subject:   subject,
		Separator: separator,
		NextAt:    parsed,
		Active:    true,
	}, nil
}

// createUnspecified handles a bare "remind me to X": the reminder fires at
// the next daily anchor (morning or evening) strictly after now.
func (h *Handler) createUnspecified(subject, separator string, owner int64, now time.Time) *db.Reminder {
	next := h.atMorning(now)
	if now.After(next) {
		next = h.atHour(now, h.cfg.EveningHour)
		if now.After(next) {
			next = h.atMorning(now).Add(24 * time.Hour)
		}
	}

	return &db.Reminder{
		Owner:     owner,
		Subject:   subject,
		Separator: separator,
		NextAt:    next,
		Active:    true,
	}
}

// createPeriodic parses a cadence expression ("every 3 weeks", "each month
// on the 15th") and seeds the first occurrence, catching it up so the
// stored fire time is strictly in the future.
func (h *Handler) createPeriodic(timeString, subject, separator string, owner int64, now time.Time) (*db.Reminder, error) {
	before, after := splitCadence(timeString)
	parts := strings.Fields(after)

	interval := 0
	var unit recurrence.Unit
	rest := ""
	for i, part := range parts {
		if unit != "" {
			break
		}
		if n, err := strconv.Atoi(part); err == nil {
			interval = n
		}
		if strings.EqualFold(part, "other") {
			interval = 2
		}
		if u, ok := recurrence.ParseUnit(part); ok {
			unit = u
			rest = strings.Join(parts[i+1:], " ")
		}
	}
	if unit == "" {
		// No unit word; assume weekly and treat the whole remainder as the
		// anchor ("every Wednesday").
		unit = recurrence.Week
		rest = strings.Join(parts, " ")
	}
	if interval <= 0 {
		interval = 1
	}

	anchorText := strings.TrimSpace(rest)
	if anchorText == "" {
		anchorText = strings.TrimSpace(before)
	}

	var next time.Time
	if anchorText != "" {
		anchored, err := h.anchorFromText(anchorText, unit, now)
		if err != nil {
			return nil, err
		}
		next = anchored
	} else {
		next = h.defaultAnchor(unit, now)
	}

	next = recurrence.CatchUp(next, unit, interval, now)

	return &db.Reminder{
		Owner:     owner,
		Subject:   subject,
		Separator: separator,
		NextAt:    next,
		Active:    true,
		Periodic:  true,
		Interval:  interval,
		Unit:      string(unit),
	}, nil
}

// splitCadence cuts the time expression at the first "every" or "each".
func splitCadence(timeString string) (before, after string) {
	lower := strings.ToLower(timeString)
	for _, keyword := range []string{"every", "each"} {
		if i := strings.Index(lower, keyword); i >= 0 {
			return timeString[:i], timeString[i+len(keyword):]
		}
	}
	return "", timeString
}

func (h *Handler) anchorFromText(anchorText string, unit recurrence.Unit, now time.Time) (time.Time, error) {
	parsed, spec := h.parser.Parse(anchorText, now)
	switch spec {
	case timeparse.DateOnly:
		return h.atMorning(parsed), nil
	case timeparse.TimeOnly:
		// A bare clock time only makes sense for cadences measured in
		// hours or days.
		if unit != recurrence.Day && unit != recurrence.Hour {
			return time.Time{}, userErrorf("Oh no, I couldn't understand what you mean by \"%s\". "+
				"Note that you can only set a time (without a weekday or date) if your reminder "+
				"is every X days or hours", anchorText)
		}
		return parsed, nil
	case timeparse.Full:
		return parsed, nil
	}

	// Nothing parsed. For monthly cadences a bare day-of-month number is
	// still accepted, within the range every month has.
	if unit == recurrence.Month {
		digits := nonDigits.ReplaceAllString(anchorText, "")
		day, err := strconv.Atoi(digits)
		if err == nil && day >= 1 && day <= 28 {
			return time.Date(now.Year(), now.Month(), day, h.cfg.MorningHour, 0, 0, 0, now.Location()), nil
		}
		return time.Time{}, userErrorf("Oh no, I couldn't understand what you mean by \"%s\". "+
			"Note that you can only use dates (days of month) between 1 and 28, unfortunately.", anchorText)
	}
	return time.Time{}, userErrorf("Oh no, I couldn't understand what you mean by \"%s\".", anchorText)
}

// defaultAnchor seeds a cadence with no anchor text at all from now.
func (h *Handler) defaultAnchor(unit recurrence.Unit, now time.Time) time.Time {
	year, month, day := now.Date()
	switch unit {
	case recurrence.Minute:
		return time.Date(year, month, day, now.Hour(), now.Minute(), 0, 0, now.Location())
	case recurrence.Hour:
		return time.Date(year, month, day, now.Hour(), 0, 0, 0, now.Location())
	case recurrence.Month:
		return time.Date(year, month, 1, h.cfg.MorningHour, 0, 0, 0, now.Location())
	case recurrence.Year:
		return time.Date(year+1, time.January, 1, h.cfg.MorningHour, 0, 0, 0, now.Location())
	default: // day, week
		return h.atMorning(now)
	}
}

// rewindToOneTime copies a periodic reminder into an independent one-time
// reminder whose fire time sits one cadence step earlier. Snoozing operates
// on the copy; the series itself continues unchanged.
func rewindToOneTime(rem *db.Reminder) *db.Reminder {
	return &db.Reminder{
		Owner:     rem.Owner,
		Subject:   rem.Subject,
		Separator: rem.Separator,
		NextAt:    recurrence.Advance(rem.NextAt, rem.CadenceUnit(), rem.Interval, -1),
		Active:    rem.Active,
	}
}

func (h *Handler) atMorning(t time.Time) time.Time {
	return h.atHour(t, h.cfg.MorningHour)
}

func (h *Handler) atHour(t time.Time, hour int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, hour, 0, 0, 0, t.Location())
}
