package reports

import (
	"time"

	"khata-backend/models"
)

// Period is a named date window for report filtering.
type Period string

const (
	PeriodAll    Period = "all"
	PeriodToday  Period = "today"
	PeriodWeek   Period = "week"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// ParsePeriod maps a query value to a Period, defaulting to "all".
func ParsePeriod(s string) Period {
	switch Period(s) {
	case PeriodToday, PeriodWeek, PeriodMonth, PeriodYear, PeriodCustom:
		return Period(s)
	default:
		return PeriodAll
	}
}

// Range resolves the period to a [start, end] window relative to now.
// Week/month/year are rolling windows back from now with a midnight-aligned
// start; custom uses the provided bounds with end pushed to the last instant
// of its day. ok is false when no filtering applies.
func (p Period) Range(now, customStart, customEnd time.Time) (start, end time.Time, ok bool) {
	end = endOfDay(now)
	switch p {
	case PeriodToday:
		start = startOfDay(now)
	case PeriodWeek:
		start = startOfDay(now.AddDate(0, 0, -7))
	case PeriodMonth:
		start = startOfDay(now.AddDate(0, -1, 0))
	case PeriodYear:
		start = startOfDay(now.AddDate(-1, 0, 0))
	case PeriodCustom:
		if customStart.IsZero() || customEnd.IsZero() {
			return time.Time{}, time.Time{}, false
		}
		start = startOfDay(customStart)
		end = endOfDay(customEnd)
	default:
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// FilterByPeriod keeps transactions whose date falls inside the period window.
func FilterByPeriod(txs []models.Transaction, p Period, customStart, customEnd, now time.Time) []models.Transaction {
	start, end, ok := p.Range(now, customStart, customEnd)
	if !ok {
		return txs
	}
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
