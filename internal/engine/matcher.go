// Package engine implements the recurring rule and salary allocation engine.
package engine

import (
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

// Matches reports whether rule fires on date. It is a pure decision: it
// does not protect against generating the same transaction twice, it only
// answers whether the recurrence pattern hits this calendar day.
//
// Dates before the start of rule.StartDate's calendar day never match, nor
// do dates after the end of rule.EndDate's day when an end date is set.
// Monthly rules clamp their day to the candidate month's length, so a
// day-31 rule fires on the 28th/29th/30th of shorter months. Weekly rules
// use the fixed numbering 1=Sunday .. 7=Saturday.
func Matches(rule model.RecurringRule, date time.Time) bool {
	if date.Before(dayStart(rule.StartDate)) {
		return false
	}
	if rule.EndDate != nil && date.After(dayEnd(*rule.EndDate)) {
		return false
	}

	switch rule.Recurrence.Kind {
	case model.RecurMonthly:
		clamped := rule.Recurrence.MonthDay
		if last := lastDayOfMonth(date); clamped > last {
			clamped = last
		}
		return date.Day() == clamped
	case model.RecurWeekly:
		return int(date.Weekday())+1 == rule.Recurrence.Weekday
	}
	return false
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func lastDayOfMonth(t time.Time) int {
	// Day zero of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
