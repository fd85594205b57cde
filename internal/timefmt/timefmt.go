// Package timefmt maps timestamps to the display strings used by the
// conversation list and the message thread. All functions take the current
// time explicitly and render in that time's zone.
package timefmt

import "time"

// MessageTime renders a conversation-row timestamp: clock time for today,
// "Yesterday", a short date within the current year, a full date otherwise.
func MessageTime(t time.Time, now time.Time) string {
	t = t.In(now.Location())
	if sameDay(t, now) {
		return t.Format("15:04")
	}
	if sameDay(t, now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	if t.Year() == now.Year() {
		return t.Format("Jan 2")
	}
	return t.Format("02/01/2006")
}

// Clock renders a 24-hour clock time, as used in message bubbles and the
// "last seen at" status label.
func Clock(t time.Time) string {
	return t.Local().Format("15:04")
}

// DateHeader labels a message group's calendar day.
func DateHeader(t time.Time, now time.Time) string {
	t = t.In(now.Location())
	if sameDay(t, now) {
		return "Today"
	}
	if t.Year() == now.Year() {
		return t.Format("Monday, January 2")
	}
	return t.Format("Monday, January 2, 2006")
}

func sameDay(a time.Time, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
