package model

import (
	"fmt"
	"time"
)

// RecurrenceKind discriminates the recurrence variants.
type RecurrenceKind string

const (
	// RecurMonthly fires once per month on a given day of month.
	RecurMonthly RecurrenceKind = "monthly"
	// RecurWeekly fires once per week on a given weekday.
	RecurWeekly RecurrenceKind = "weekly"
)

// Recurrence describes when a recurring rule fires.
//
// Monthly rules carry MonthDay in 1..31; days past the end of a short month
// clamp to its last day, so day 31 fires on Feb 28/29. Weekly rules carry
// Weekday in 1..7 with 1=Sunday and 7=Saturday, a fixed locale-independent
// numbering.
type Recurrence struct {
	Kind     RecurrenceKind
	MonthDay int
	Weekday  int
}

// Monthly builds a monthly recurrence for the given day of month.
func Monthly(day int) Recurrence {
	return Recurrence{Kind: RecurMonthly, MonthDay: day}
}

// Weekly builds a weekly recurrence for the given weekday (1=Sunday).
func Weekly(weekday int) Recurrence {
	return Recurrence{Kind: RecurWeekly, Weekday: weekday}
}

// Validate checks the recurrence payload ranges.
func (r Recurrence) Validate() error {
	switch r.Kind {
	case RecurMonthly:
		if r.MonthDay < 1 || r.MonthDay > 31 {
			return fmt.Errorf("monthly day must be in 1..31, got %d", r.MonthDay)
		}
	case RecurWeekly:
		if r.Weekday < 1 || r.Weekday > 7 {
			return fmt.Errorf("weekday must be in 1..7, got %d", r.Weekday)
		}
	default:
		return fmt.Errorf("unknown recurrence kind %q", r.Kind)
	}
	return nil
}

// String renders the recurrence for display, e.g. "monthly on day 15".
func (r Recurrence) String() string {
	switch r.Kind {
	case RecurMonthly:
		return fmt.Sprintf("monthly on day %d", r.MonthDay)
	case RecurWeekly:
		return fmt.Sprintf("weekly on %s", time.Weekday(r.Weekday-1))
	}
	return string(r.Kind)
}

// TransactionTemplate holds the transaction fields a recurring rule stamps
// out. Date and cleared state are supplied by the runner, never stored here.
type TransactionTemplate struct {
	Kind                  TransactionKind
	Amount                Money
	AccountID             string
	CounterpartyAccountID string
	CategoryID            string
	Note                  string
}

// RecurringRule generates a transaction from its template whenever its
// recurrence matches a candidate date within [StartDate, EndDate].
type RecurringRule struct {
	StartDate  time.Time
	EndDate    *time.Time
	ID         string
	Name       string
	Template   TransactionTemplate
	Recurrence Recurrence
}

// Validate checks the rule's structural invariants.
func (r *RecurringRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("rule missing id")
	}
	if r.Name == "" {
		return fmt.Errorf("rule missing name")
	}
	if err := r.Recurrence.Validate(); err != nil {
		return fmt.Errorf("rule %q: %w", r.Name, err)
	}
	if !ValidTransactionKind(r.Template.Kind) {
		return fmt.Errorf("rule %q: invalid template kind %q", r.Name, r.Template.Kind)
	}
	if r.Template.AccountID == "" {
		return fmt.Errorf("rule %q: template missing account id", r.Name)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("rule %q: missing start date", r.Name)
	}
	if r.EndDate != nil && r.EndDate.Before(r.StartDate) {
		return fmt.Errorf("rule %q: end date before start date", r.Name)
	}
	return nil
}
