package budget

import (
	"strings"
	"time"
)

// Period names a reporting window.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// ParsePeriod accepts "weekly" or "monthly", case-insensitively.
func ParsePeriod(s string) (Period, bool) {
	switch Period(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeekly:
		return PeriodWeekly, true
	case PeriodMonthly:
		return PeriodMonthly, true
	}
	return "", false
}

// Window is a closed time interval: both Start and End are included.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Empty reports whether the window contains no instant.
func (w Window) Empty() bool { return w.End.Before(w.Start) }

// UTC returns the window with both bounds converted to UTC.
func (w Window) UTC() Window { return Window{Start: w.Start.UTC(), End: w.End.UTC()} }

// MonthToDate spans from midnight on the first day of now's month, in now's
// location, through now.
func MonthToDate(now time.Time) Window {
	return Window{Start: monthStart(now), End: now}
}

// LastSevenDays spans the 7×24h ending at now.
func LastSevenDays(now time.Time) Window {
	return Window{Start: now.Add(-7 * 24 * time.Hour), End: now}
}

// WindowFor returns the window of a period ending at now.
func WindowFor(p Period, now time.Time) Window {
	if p == PeriodWeekly {
		return LastSevenDays(now)
	}
	return MonthToDate(now)
}

// Buckets splits a period into chart buckets. Weekly yields one bucket per
// calendar day for the seven days ending today, the first one stretched back
// to the start of LastSevenDays; monthly yields four buckets
// of seven days starting on the first of the month, the last one running to
// now. Every bucket end is capped at now, so future buckets are empty.
func Buckets(p Period, now time.Time) []Window {
	if p == PeriodWeekly {
		today := dayStart(now)
		out := make([]Window, 7)
		for i := range out {
			start := today.AddDate(0, 0, i-6)
			out[i] = capped(Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}, now)
		}
		out[0].Start = LastSevenDays(now).Start
		return out
	}

	first := monthStart(now)
	out := make([]Window, 4)
	for i := range out {
		start := first.AddDate(0, 0, 7*i)
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)
		if i == len(out)-1 {
			end = now
		}
		out[i] = capped(Window{Start: start, End: end}, now)
	}
	return out
}

func capped(w Window, now time.Time) Window {
	if w.End.After(now) {
		w.End = now
	}
	return w
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
