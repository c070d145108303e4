package timeparse

import (
	"testing"
	"time"
)

var ref = time.Date(2024, 3, 10, 14, 0, 0, 0, time.Local)

func TestParseUnintelligible(t *testing.T) {
	p := New()
	for _, text := range []string{"", "qwerty asdf", "the frobnicator"} {
		if _, spec := p.Parse(text, ref); spec != None {
			t.Errorf("Parse(%q) specificity = %v, want None", text, spec)
		}
	}
}

func TestParseDateOnly(t *testing.T) {
	p := New()
	got, spec := p.Parse("tomorrow", ref)
	if spec != DateOnly {
		t.Fatalf("Parse(tomorrow) specificity = %v, want DateOnly", spec)
	}
	y, m, d := got.Date()
	if y != 2024 || m != time.March || d != 11 {
		t.Errorf("Parse(tomorrow) date = %04d-%02d-%02d, want 2024-03-11", y, m, d)
	}
}

func TestParseTimeOnly(t *testing.T) {
	p := New()
	got, spec := p.Parse("at 16:00", ref)
	if spec != TimeOnly {
		t.Fatalf("Parse(at 16:00) specificity = %v, want TimeOnly", spec)
	}
	if got.Hour() != 16 || got.Minute() != 0 {
		t.Errorf("Parse(at 16:00) clock = %02d:%02d, want 16:00", got.Hour(), got.Minute())
	}
}

func TestParseBareHourNormalized(t *testing.T) {
	p := New()
	got, spec := p.Parse("at 9", ref)
	if spec != TimeOnly {
		t.Fatalf("Parse(at 9) specificity = %v, want TimeOnly", spec)
	}
	if got.Hour() != 9 || got.Minute() != 0 {
		t.Errorf("Parse(at 9) clock = %02d:%02d, want 09:00", got.Hour(), got.Minute())
	}
}

func TestParseFull(t *testing.T) {
	p := New()
	got, spec := p.Parse("tomorrow at 16:00", ref)
	if spec != Full {
		t.Fatalf("Parse(tomorrow at 16:00) specificity = %v, want Full", spec)
	}
	y, m, d := got.Date()
	if y != 2024 || m != time.March || d != 11 || got.Hour() != 16 {
		t.Errorf("Parse(tomorrow at 16:00) = %v, want 2024-03-11 16:00", got)
	}
}

func TestParseOrdinalDayOfMonth(t *testing.T) {
	p := New()
	got, spec := p.Parse("on the 15th", ref)
	if spec != DateOnly {
		t.Fatalf("Parse(on the 15th) specificity = %v, want DateOnly", spec)
	}
	if got.Day() != 15 || got.Month() != time.March || got.Year() != 2024 {
		t.Errorf("Parse(on the 15th) = %v, want day 15 in March 2024", got)
	}
}

func TestParseOrdinalDayClampsToMonth(t *testing.T) {
	p := New()
	aprilRef := time.Date(2024, 4, 10, 14, 0, 0, 0, time.Local)
	got, spec := p.Parse("on the 31st", aprilRef)
	if spec != DateOnly {
		t.Fatalf("Parse(on the 31st) specificity = %v, want DateOnly", spec)
	}
	if got.Day() != 30 || got.Month() != time.April {
		t.Errorf("Parse(on the 31st) in April = %v, want clamped to April 30", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		matched string
		want    Specificity
	}{
		{matched: "tomorrow", want: DateOnly},
		{matched: "next wednesday", want: DateOnly},
		{matched: "16:00", want: TimeOnly},
		{matched: "5 pm", want: TimeOnly},
		{matched: "tomorrow at 9:00", want: Full},
		{matched: "in 2 hours", want: Full},
		{matched: "in 30 minutes", want: Full},
		{matched: "in 3 days", want: DateOnly},
		{matched: "in 2 weeks", want: DateOnly},
	}
	for _, tc := range cases {
		if got := classify(tc.matched); got != tc.want {
			t.Errorf("classify(%q) = %v, want %v", tc.matched, got, tc.want)
		}
	}
}
