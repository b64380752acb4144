package helpers

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/pkg/errors"
)

// weekday codes as stored in server configs
var weekdayCodes = map[string]time.Weekday{
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
	"sun": time.Sunday,
}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
	time.Sunday:    "Sunday",
}

// ParseWeekday resolves a day name or three letter code to a weekday
func ParseWeekday(input string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if len(normalized) > 3 {
		normalized = normalized[:3]
	}

	day, ok := weekdayCodes[normalized]
	if !ok {
		return time.Sunday, errors.Errorf("unknown weekday %q", input)
	}

	return day, nil
}

// WeekdayCode returns the three letter code stored in configs
func WeekdayCode(day time.Weekday) string {
	return strings.ToLower(weekdayNames[day][:3])
}

// WeekdayName returns the spelled out english day name
func WeekdayName(code string) string {
	day, err := ParseWeekday(code)
	if err != nil {
		return code
	}

	return weekdayNames[day]
}

var scheduleLayouts = []string{
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"02.01.2006 15:04",
	"2006-01-02",
}

var whenParser *when.Parser

func init() {
	whenParser = when.New(nil)
	whenParser.Add(en.All...)
	whenParser.Add(common.All...)
}

// ParseScheduleTime turns user input into a timestamp. Fixed layouts
// are tried first, everything else goes through natural language
// parsing ("next friday 8pm").
func ParseScheduleTime(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)

	for _, layout := range scheduleLayouts {
		parsed, err := time.ParseInLocation(layout, input, now.Location())
		if err == nil {
			return parsed, nil
		}
	}

	result, err := whenParser.Parse(input, now)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "parsing schedule time")
	}
	if result == nil {
		return time.Time{}, errors.Errorf("could not understand %q as a date", input)
	}

	return result.Time, nil
}

// NextOccurrence finds the next wall-clock instant of the weekly slot
// after $now
func NextOccurrence(now time.Time, day time.Weekday, hour int, minute int) time.Time {
	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())

	daysAhead := (int(day) - int(now.Weekday()) + 7) % 7
	candidate = candidate.AddDate(0, 0, daysAhead)

	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}

	return candidate
}
