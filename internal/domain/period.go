package domain

import (
	"fmt"
	"strings"
)

// Period is a relative date-range selector for the graph query.
type Period string

const (
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodYear  Period = "YEAR"
)

// ParsePeriod parses a period value case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(s)) {
	case PeriodWeek:
		return PeriodWeek, nil
	case PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// LowerBound returns now minus one week, month or year.
func (p Period) LowerBound(now Date) Date {
	switch p {
	case PeriodWeek:
		return now.AddDate(0, 0, -7)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(-1, 0, 0)
	}
}
