package chat

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ===============================
// Date rules
// ===============================

type dateRule func(text string, today time.Time) (string, bool)

// dateRules run in order; the first rule producing a real calendar date wins.
var dateRules = []dateRule{
	absoluteDate,
	monthDayDate,
	relativeDate,
	slashDate,
}

var (
	absoluteDateRe = regexp.MustCompile(`(?:^|\D)(\d{4})\s*[-/.年]\s*(\d{1,2})\s*[-/.月]\s*(\d{1,2})(?:$|\D)`)
	monthDayRe     = regexp.MustCompile(`(?:^|\D)(\d{1,2})\s*月\s*(\d{1,2})\s*[日號]`)
	slashDateRe    = regexp.MustCompile(`(?:^|[^\d/])(\d{1,2})/(\d{1,2})(?:$|[^\d/])`)
)

var relativeDays = []struct {
	word string
	days int
}{
	{"大後天", 3},
	{"後天", 2},
	{"明天", 1},
	{"明日", 1},
}

func extractDate(text string, today time.Time) (string, bool) {
	for _, rule := range dateRules {
		if d, ok := rule(text, today); ok {
			return d, true
		}
	}
	return "", false
}

func absoluteDate(text string, _ time.Time) (string, bool) {
	for _, m := range absoluteDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := calendarDate(atoi(m[1]), atoi(m[2]), atoi(m[3])); ok {
			return d, true
		}
	}
	return "", false
}

func monthDayDate(text string, today time.Time) (string, bool) {
	for _, m := range monthDayRe.FindAllStringSubmatch(text, -1) {
		if d, ok := calendarDate(today.Year(), atoi(m[1]), atoi(m[2])); ok {
			return d, true
		}
	}
	return "", false
}

func relativeDate(text string, today time.Time) (string, bool) {
	for _, rel := range relativeDays {
		if strings.Contains(text, rel.word) {
			return today.AddDate(0, 0, rel.days).Format("2006-01-02"), true
		}
	}
	return "", false
}

func slashDate(text string, today time.Time) (string, bool) {
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		if d, ok := calendarDate(today.Year(), atoi(m[1]), atoi(m[2])); ok {
			return d, true
		}
	}
	return "", false
}

// calendarDate rejects dates that time.Date would silently normalize, such
// as February 30.
func calendarDate(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

// ===============================
// Time rules
// ===============================

type timeRule func(text string) (string, bool)

var timeRules = []timeRule{
	explicitTime,
	clockTime,
	hourTime,
}

var (
	explicitTimeRe = regexp.MustCompile(`時間\s*[:：]?\s*(\d{1,2})\s*[:：]\s*(\d{2})`)
	clockTimeRe    = regexp.MustCompile(`(?:(上午|早上|中午|下午|晚上)|^|\D)\s*(\d{1,2})\s*[:：]\s*(\d{2})(?:$|\D)`)
	hourTimeRe     = regexp.MustCompile(`(上午|早上|中午|下午|晚上)?\s*(\d{1,2})\s*點\s*(?:(半)|(\d{1,2})\s*分)?`)
)

func extractTime(text string) (string, bool) {
	for _, rule := range timeRules {
		if t, ok := rule(text); ok {
			return t, true
		}
	}
	return "", false
}

func explicitTime(text string) (string, bool) {
	for _, m := range explicitTimeRe.FindAllStringSubmatch(text, -1) {
		if t, ok := clock(atoi(m[1]), atoi(m[2])); ok {
			return t, true
		}
	}
	return "", false
}

func clockTime(text string) (string, bool) {
	for _, m := range clockTimeRe.FindAllStringSubmatch(text, -1) {
		if t, ok := clock(withMeridiem(atoi(m[2]), m[1]), atoi(m[3])); ok {
			return t, true
		}
	}
	return "", false
}

func hourTime(text string) (string, bool) {
	for _, m := range hourTimeRe.FindAllStringSubmatch(text, -1) {
		hour := atoi(m[2])
		minute := 0
		switch {
		case m[3] != "":
			minute = 30
		case m[4] != "":
			minute = atoi(m[4])
		}

		if t, ok := clock(withMeridiem(hour, m[1]), minute); ok {
			return t, true
		}
	}
	return "", false
}

// withMeridiem moves afternoon and evening hours onto the 24-hour clock.
func withMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "下午", "晚上":
		if hour < 12 {
			return hour + 12
		}
	case "中午":
		if hour < 11 {
			return hour + 12
		}
	}
	return hour
}

func clock(hour, minute int) (string, bool) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return -1
	}
	return n
}
