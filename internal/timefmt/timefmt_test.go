package timefmt

import (
	"testing"
	"time"
)

var now = time.Date(2026, time.March, 15, 10, 30, 0, 0, time.Local) // a Sunday

func TestMessageTime(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"today", time.Date(2026, time.March, 15, 9, 4, 0, 0, time.Local), "09:04"},
		{"yesterday", time.Date(2026, time.March, 14, 23, 59, 0, 0, time.Local), "Yesterday"},
		{"same year", time.Date(2026, time.January, 2, 8, 0, 0, 0, time.Local), "Jan 2"},
		{"older year", time.Date(2023, time.June, 9, 8, 0, 0, 0, time.Local), "09/06/2023"},
	}
	for _, c := range cases {
		if got := MessageTime(c.in, now); got != c.want {
			t.Fatalf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}

func TestClock(t *testing.T) {
	in := time.Date(2026, time.March, 15, 7, 5, 9, 0, time.Local)
	if got := Clock(in); got != "07:05" {
		t.Fatalf("got %q want 07:05", got)
	}
}

func TestDateHeader(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want string
	}{
		{"today", time.Date(2026, time.March, 15, 1, 0, 0, 0, time.Local), "Today"},
		{"same year", time.Date(2026, time.March, 14, 1, 0, 0, 0, time.Local), "Saturday, March 14"},
		{"older year", time.Date(2023, time.June, 9, 1, 0, 0, 0, time.Local), "Friday, June 9, 2023"},
	}
	for _, c := range cases {
		if got := DateHeader(c.in, now); got != c.want {
			t.Fatalf("%s: got %q want %q", c.name, got, c.want)
		}
	}
}
