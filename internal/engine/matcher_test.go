package engine

import (
	"testing"
	"time"

	"github.com/ehtishamkhalid92/flowledger/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func monthlyRule(day int, start time.Time, end *time.Time) model.RecurringRule {
	return model.RecurringRule{
		ID:         "rule-1",
		Name:       "rent",
		Recurrence: model.Monthly(day),
		StartDate:  start,
		EndDate:    end,
	}
}

func TestMatches_MonthlyFiresOncePerMonth(t *testing.T) {
	start := date(2020, time.January, 1)

	months := []struct {
		month time.Month
		year  int
		days  int
	}{
		{time.January, 2024, 31},
		{time.February, 2024, 29}, // leap year
		{time.February, 2023, 28},
		{time.April, 2024, 30},
		{time.December, 2024, 31},
	}

	for day := 1; day <= 31; day++ {
		rule := monthlyRule(day, start, nil)
		for _, m := range months {
			matched := 0
			matchedOn := 0
			for d := 1; d <= m.days; d++ {
				if Matches(rule, date(m.year, m.month, d)) {
					matched++
					matchedOn = d
				}
			}
			if matched != 1 {
				t.Fatalf("monthly(%d) matched %d times in %v %d, want exactly 1", day, matched, m.month, m.year)
			}
			want := day
			if want > m.days {
				want = m.days
			}
			if matchedOn != want {
				t.Errorf("monthly(%d) fired on day %d of %v %d, want %d (clamped)", day, matchedOn, m.month, m.year, want)
			}
		}
	}
}

func TestMatches_MonthlyClampsDay31(t *testing.T) {
	rule := monthlyRule(31, date(2020, time.January, 1), nil)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"fires on Feb 29 in a leap year", date(2024, time.February, 29), true},
		{"does not fire on Feb 28 in a leap year", date(2024, time.February, 28), false},
		{"fires on Feb 28 in a common year", date(2023, time.February, 28), true},
		{"fires on Apr 30", date(2024, time.April, 30), true},
		{"fires on Jan 31", date(2024, time.January, 31), true},
		{"does not fire on Jan 30", date(2024, time.January, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(rule, tt.date); got != tt.want {
				t.Errorf("Matches(monthly(31), %v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestMatches_Weekly(t *testing.T) {
	start := date(2020, time.January, 1)

	// 2024-06-02 is a Sunday; walk one full week per weekday value.
	sunday := date(2024, time.June, 2)
	for weekday := 1; weekday <= 7; weekday++ {
		rule := model.RecurringRule{
			ID:         "rule-w",
			Name:       "groceries",
			Recurrence: model.Weekly(weekday),
			StartDate:  start,
		}
		for offset := 0; offset < 7; offset++ {
			d := sunday.AddDate(0, 0, offset)
			want := offset == weekday-1
			if got := Matches(rule, d); got != want {
				t.Errorf("Matches(weekly(%d), %v [%v]) = %v, want %v", weekday, d.Format("2006-01-02"), d.Weekday(), got, want)
			}
		}
	}
}

func TestMatches_Bounds(t *testing.T) {
	end := date(2024, time.June, 15)

	tests := []struct {
		name string
		rule model.RecurringRule
		date time.Time
		want bool
	}{
		{
			name: "before start day never matches",
			rule: monthlyRule(10, date(2024, time.June, 10), nil),
			date: date(2024, time.May, 10),
			want: false,
		},
		{
			name: "matches on the start day itself",
			rule: monthlyRule(10, date(2024, time.June, 10), nil),
			date: date(2024, time.June, 10),
			want: true,
		},
		{
			name: "start bound compares against day start, not clock time",
			rule: monthlyRule(10, time.Date(2024, time.June, 10, 23, 0, 0, 0, time.UTC), nil),
			date: time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC),
			want: true,
		},
		{
			name: "matches on the end day itself",
			rule: monthlyRule(15, date(2024, time.January, 1), &end),
			date: date(2024, time.June, 15),
			want: true,
		},
		{
			name: "end bound is end-of-day inclusive",
			rule: monthlyRule(15, date(2024, time.January, 1), &end),
			date: time.Date(2024, time.June, 15, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "after end day never matches",
			rule: monthlyRule(15, date(2024, time.January, 1), &end),
			date: date(2024, time.July, 15),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.rule, tt.date); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatches_IsDeterministic(t *testing.T) {
	rule := monthlyRule(15, date(2024, time.January, 1), nil)
	d := date(2024, time.March, 15)

	first := Matches(rule, d)
	for i := 0; i < 100; i++ {
		if Matches(rule, d) != first {
			t.Fatal("Matches gave different results for the same (rule, date) pair")
		}
	}
}
