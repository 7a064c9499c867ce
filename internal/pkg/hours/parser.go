package hours

import (
	"regexp"
	"strconv"
	"strings"
)

// Interval is one (day, open, close) triple from a weekly schedule string.
// Times keep their "HH:MM" wall-clock form; comparisons sort lexically.
type Interval struct {
	DayOfWeek string
	OpenTime  string
	CloseTime string
}

// weekdayAliases maps accepted day spellings to canonical 3-letter codes.
var weekdayAliases = map[string]string{
	"Mon": "Mon", "Monday": "Mon",
	"Tue": "Tue", "Tues": "Tue", "Tuesday": "Tue",
	"Wed": "Wed", "Wednesday": "Wed",
	"Thu": "Thu", "Thur": "Thu", "Thursday": "Thu",
	"Fri": "Fri", "Friday": "Fri",
	"Sat": "Sat", "Saturday": "Sat",
	"Sun": "Sun", "Sunday": "Sun",
}

var segmentRe = regexp.MustCompile(`^(.*?)\s+(\d{2}:\d{2})\s*-\s*(\d{2}:\d{2})$`)

// NormalizeDay resolves a day spelling to its canonical code. Unrecognized
// tokens pass through unchanged.
func NormalizeDay(day string) string {
	if canonical, ok := weekdayAliases[day]; ok {
		return canonical
	}
	return day
}

// ParseClock validates an "HH:MM" wall-clock string and returns it in
// canonical zero-padded form.
func ParseClock(s string) (string, bool) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return "", false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	return s, true
}

// ParseSchedule turns a compact weekly schedule string such as
// "Mon, Wed 08:00 - 12:00 / Tue 14:00 - 18:00" into intervals in
// segment-then-day order. Segments that do not match the expected shape are
// skipped rather than rejected; the second return value counts how many were
// dropped so callers can log it.
func ParseSchedule(raw string) ([]Interval, int) {
	var intervals []Interval
	skipped := 0

	for _, part := range strings.Split(raw, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			skipped++
			continue
		}

		match := segmentRe.FindStringSubmatch(part)
		if match == nil {
			skipped++
			continue
		}

		openTime, okOpen := ParseClock(match[2])
		closeTime, okClose := ParseClock(match[3])
		if !okOpen || !okClose {
			skipped++
			continue
		}

		for _, day := range strings.Split(match[1], ",") {
			intervals = append(intervals, Interval{
				DayOfWeek: NormalizeDay(strings.TrimSpace(day)),
				OpenTime:  openTime,
				CloseTime: closeTime,
			})
		}
	}

	return intervals, skipped
}
