package helpers

import (
	"testing"
	"time"
)

func TestParseWeekday(t *testing.T) {
	cases := []struct {
		input string
		want  time.Weekday
	}{
		{"mon", time.Monday},
		{"Monday", time.Monday},
		{"WED", time.Wednesday},
		{" sunday ", time.Sunday},
		{"thursday", time.Thursday},
	}
	for _, c := range cases {
		day, err := ParseWeekday(c.input)
		if err != nil {
			t.Errorf("ParseWeekday(%q) failed: %v", c.input, err)
			continue
		}
		if day != c.want {
			t.Errorf("ParseWeekday(%q) = %v, want %v", c.input, day, c.want)
		}
	}

	if _, err := ParseWeekday("noday"); err == nil {
		t.Error("ParseWeekday accepted an unknown day")
	}
}

func TestWeekdayCodeRoundTrip(t *testing.T) {
	for code, day := range map[string]time.Weekday{
		"mon": time.Monday,
		"sun": time.Sunday,
		"sat": time.Saturday,
	} {
		if got := WeekdayCode(day); got != code {
			t.Errorf("WeekdayCode(%v) = %q, want %q", day, got, code)
		}
	}

	if got := WeekdayName("wed"); got != "Wednesday" {
		t.Errorf("WeekdayName(\"wed\") = %q", got)
	}
	if got := WeekdayName("bogus"); got != "bogus" {
		t.Errorf("WeekdayName(\"bogus\") = %q, want input echoed back", got)
	}
}

func TestParseScheduleTimeLayouts(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseScheduleTime("2026-09-04 20:30", now)
	if err != nil {
		t.Fatalf("ParseScheduleTime() failed: %v", err)
	}
	want := time.Date(2026, 9, 4, 20, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Fatalf("parsed %v, want %v", parsed, want)
	}

	parsed, err = ParseScheduleTime("04.09.2026 20:30", now)
	if err != nil {
		t.Fatalf("ParseScheduleTime() failed: %v", err)
	}
	if !parsed.Equal(want) {
		t.Fatalf("parsed %v, want %v", parsed, want)
	}

	parsed, err = ParseScheduleTime("2026-09-04", now)
	if err != nil {
		t.Fatalf("ParseScheduleTime() failed: %v", err)
	}
	if parsed.Year() != 2026 || parsed.Month() != time.September || parsed.Day() != 4 {
		t.Fatalf("parsed %v, want 2026-09-04", parsed)
	}
}

func TestParseScheduleTimeNaturalLanguage(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	parsed, err := ParseScheduleTime("tomorrow at 8pm", now)
	if err != nil {
		t.Fatalf("ParseScheduleTime() failed: %v", err)
	}
	if parsed.Day() != 2 || parsed.Hour() != 20 {
		t.Fatalf("parsed %v, want Sep 2 20:00", parsed)
	}

	if _, err = ParseScheduleTime("qwertyuiop", now); err == nil {
		t.Fatal("ParseScheduleTime accepted gibberish")
	}
}

func TestNextOccurrence(t *testing.T) {
	// a Tuesday at noon
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	next := NextOccurrence(now, time.Friday, 20, 0)
	want := time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("NextOccurrence = %v, want %v", next, want)
	}

	// same day but the slot already passed, rolls over a week
	next = NextOccurrence(now, time.Tuesday, 11, 0)
	want = time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("NextOccurrence = %v, want %v", next, want)
	}

	// same day, slot still ahead
	next = NextOccurrence(now, time.Tuesday, 20, 0)
	want = time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("NextOccurrence = %v, want %v", next, want)
	}
}
