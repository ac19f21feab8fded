package main

import (
	"fmt"
	"strings"
	"time"
)

// calendarDelta is a field-decomposed difference between two Moments.
// Field values are never negative; neg records direction.
type calendarDelta struct {
	neg                     bool
	years, months, days     int
	hours, minutes, seconds int
}

func (cd calendarDelta) String() string {
	sign := byte('+')
	if cd.neg {
		sign = '-'
	}
	return fmt.Sprintf("%c%04d-%02d-%02d %02d:%02d:%02d",
		sign, cd.years, cd.months, cd.days, cd.hours, cd.minutes, cd.seconds)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// diffMoments computes a minus b as a calendar delta. The magnitude is
// always later minus earlier; the sign is negative when b is the later
// operand. Borrowing runs low field to high: seconds from minutes, minutes
// from hours, hours from days, days from months, months from years. Days
// borrow from the month preceding `to`, stepping back a further month if
// one borrow is not enough (at most two are ever needed).
func diffMoments(a, b time.Time) calendarDelta {
	var cd calendarDelta
	from, to := a, b
	if b.Before(a) {
		from, to = b, a
	} else {
		cd.neg = a.Before(b)
	}

	years := to.Year() - from.Year()
	months := int(to.Month()) - int(from.Month())
	days := to.Day() - from.Day()
	hours := to.Hour() - from.Hour()
	minutes := to.Minute() - from.Minute()
	seconds := to.Second() - from.Second()

	if seconds < 0 {
		seconds += 60
		minutes--
	}
	if minutes < 0 {
		minutes += 60
		hours--
	}
	if hours < 0 {
		hours += 24
		days--
	}
	for y, m := to.Year(), to.Month(); days < 0; {
		m--
		if m < time.January {
			m = time.December
			y--
		}
		days += daysInMonth(y, m)
		months--
	}
	if months < 0 {
		months += 12
		years--
	}

	cd.years, cd.months, cd.days = years, months, days
	cd.hours, cd.minutes, cd.seconds = hours, minutes, seconds
	return cd
}

// applyDelta adds a calendar delta to a Moment: years, then months, then
// days, then the time-of-day fields, each negated first when the delta is
// negative. Month and day overflow rolls over per time.AddDate.
func applyDelta(t time.Time, cd calendarDelta) time.Time {
	sign := 1
	if cd.neg {
		sign = -1
	}
	t = t.AddDate(sign*cd.years, 0, 0)
	t = t.AddDate(0, sign*cd.months, 0)
	t = t.AddDate(0, 0, sign*cd.days)
	clock := time.Duration(cd.hours)*time.Hour +
		time.Duration(cd.minutes)*time.Minute +
		time.Duration(cd.seconds)*time.Second
	return t.Add(time.Duration(sign) * clock)
}

// addDays offsets a Moment by a (possibly fractional) count of 24-hour days.
func addDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour))).Truncate(time.Second)
}

var momentLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-1-2",
	"2006/01/02",
	"2006/1/2",
}

// parseMoment recognizes the fixed timestamp literal layouts. Anything
// else, a bare year included, is not a Moment literal.
func parseMoment(token string) (time.Time, bool) {
	for _, layout := range momentLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func formatMoment(t time.Time) string {
	if h, m, s := t.Clock(); h == 0 && m == 0 && s == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}

// parseDurationLiteral recognizes T + h:mm[:ss] duration literals.
func parseDurationLiteral(token string) (time.Duration, bool) {
	if len(token) < 2 || (token[0] != 'T' && token[0] != 't') {
		return 0, false
	}
	parts := strings.Split(token[1:], ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	var fields [3]int
	for i, part := range parts {
		if part == "" || len(part) > 2 && i > 0 {
			return 0, false
		}
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, false
			}
			fields[i] = fields[i]*10 + int(c-'0')
		}
	}
	if len(parts) >= 2 && fields[1] > 59 || len(parts) == 3 && fields[2] > 59 {
		return 0, false
	}
	return time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second, true
}

func formatDuration(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%sT%d:%02d:%02d", sign, h, m, s)
}
