// Package timeparse turns natural-language time expressions into a concrete
// time plus a specificity describing how much of it the user actually said.
// The reminder factory uses the specificity to fill in anchor defaults.
package timeparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"

	"github.com/dbrandt/homebot/pkg/recurrence"
)

type Specificity int

const (
	// None means nothing usable was found in the text.
	None Specificity = iota
	// DateOnly means a calendar date without a time of day ("tomorrow").
	DateOnly
	// TimeOnly means a clock time without a date ("at 16:00").
	TimeOnly
	// Full means both were given ("tomorrow at 9:00", "in 2 hours").
	Full
)

// Parser wraps the when parser with the specificity classification and two
// small conveniences: a bare "at 9" is read as "at 9:00", and a bare
// day-of-month ("on the 31st") anchors in the reference month.
type Parser struct {
	w *when.Parser
}

func New() *Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &Parser{w: w}
}

var (
	bareHourRe   = regexp.MustCompile(`(?i)^at ([1-9]|1[0-2])$`)
	ordinalDayRe = regexp.MustCompile(`(?i)^(?:on\s+)?(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)$`)

	clockRe        = regexp.MustCompile(`(?i)\d{1,2}:\d{2}|\d{1,2}\s*(?:am|pm)\b|\b(?:noon|midnight|tonight|morning|afternoon|evening|night)\b`)
	dateWordRe     = regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday|mon(?:day)?|tue(?:s|sday)?|wed(?:nesday)?|thu(?:r|rs|rsday)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?|jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?|next|week|month|year)\b|\b\d{1,2}(?:st|nd|rd|th)\b`)
	deadlineTimeRe = regexp.MustCompile(`(?i)\bin\s+\S+\s*(?:hour|hr|minute|min)`)
	deadlineDateRe = regexp.MustCompile(`(?i)\bin\s+\S+\s*(?:day|week|month|year)`)
)

// Parse extracts a time from text relative to ref. The returned specificity
// is None when nothing was understood; the time is only meaningful for the
// other three values.
func (p *Parser) Parse(text string, ref time.Time) (time.Time, Specificity) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, None
	}
	if m := bareHourRe.FindStringSubmatch(text); m != nil {
		text = text + ":00"
	}

	if m := ordinalDayRe.FindStringSubmatch(text); m != nil {
		day, err := strconv.Atoi(m[1])
		if err == nil && day >= 1 && day <= 31 {
			day = recurrence.ClampDay(day, ref.Month())
			anchored := time.Date(ref.Year(), ref.Month(), day,
				ref.Hour(), ref.Minute(), 0, 0, ref.Location())
			return anchored, DateOnly
		}
	}

	result, err := p.w.Parse(text, ref)
	if err != nil || result == nil {
		return time.Time{}, None
	}

	return result.Time, classify(result.Text)
}

func classify(matched string) Specificity {
	if deadlineTimeRe.MatchString(matched) {
		return Full
	}

	hasTime := clockRe.MatchString(matched)
	hasDate := dateWordRe.MatchString(matched) || deadlineDateRe.MatchString(matched)

	switch {
	case hasDate && hasTime:
		return Full
	case hasDate:
		return DateOnly
	case hasTime:
		return TimeOnly
	default:
		// Matched but unclassifiable wording; trust the parsed value as-is.
		return Full
	}
}
