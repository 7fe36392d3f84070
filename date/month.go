package date

import (
	"fmt"
	"time"
)

// Month is a calendar month.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month, so that NewMonth(2025, 13) is January 2026.
func NewMonth(year int, month time.Month) Month {
	d := New(year, month, 1)
	return Month{d.y, d.m}
}

// MonthOf returns the month containing d.
func MonthOf(d Date) Month { return Month{d.y, d.m} }

func (m Month) Year() int            { return m.y }
func (m Month) Month() time.Month    { return m.m }
func (m Month) Add(n int) Month      { return NewMonth(m.y, m.m+time.Month(n)) }
func (m Month) First() Date          { return New(m.y, m.m, 1) }
func (m Month) Last() Date           { return New(m.y, m.m+1, 0) }
func (m Month) Contains(d Date) bool { return MonthOf(d) == m }

// Short returns the three letter name of the month, e.g. "Oct".
func (m Month) Short() string { return m.m.String()[:3] }

// String formats the month as "2006-01".
func (m Month) String() string { return fmt.Sprintf("%04d-%02d", m.y, int(m.m)) }

// LastMonths returns the n months ending with end, oldest first.
func LastMonths(end Month, n int) []Month {
	if n <= 0 {
		return nil
	}
	months := make([]Month, n)
	for i := range months {
		months[i] = end.Add(i - n + 1)
	}
	return months
}
