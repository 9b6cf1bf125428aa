// Package schedule implements the scheduling core: date-interval arithmetic,
// Current/Next/Future classification anchored on the soonest recurring Bill,
// and the projected net balance.
package schedule

import (
	"fmt"
	"time"

	"github.com/dcyoung23/balance-web/internal/apperr"
	"github.com/dcyoung23/balance-web/internal/models"
)

// Well-known reference data values. Classification keys on the Bill type by
// label, not by row id.
const (
	TypeBill    = "Bill"
	TypeDeposit = "Deposit"

	FrequencyOneTime = "One Time"
	FrequencyWeekly  = "Weekly"

	PmtSourceChecking = "CHK"
)

// Interval returns the advancement step for an item: repeat*N units of the
// frequency's modifier.
func Interval(repeat int, f models.Frequency) (count int, modifier string, err error) {
	if repeat < 1 {
		return 0, "", fmt.Errorf("%w: repeat must be at least 1, got %d", apperr.ErrInvalidSchedule, repeat)
	}
	if f.N < 0 {
		return 0, "", fmt.Errorf("%w: frequency %q has negative n %d", apperr.ErrInvalidSchedule, f.Frequency, f.N)
	}
	switch f.Modifier {
	case "days", "weeks", "months", "years":
	default:
		return 0, "", fmt.Errorf("%w: unknown modifier %q", apperr.ErrInvalidSchedule, f.Modifier)
	}
	return repeat * f.N, f.Modifier, nil
}

// AddInterval advances t by count units of modifier.
func AddInterval(t time.Time, count int, modifier string) (time.Time, error) {
	switch modifier {
	case "days":
		return t.AddDate(0, 0, count), nil
	case "weeks":
		return t.AddDate(0, 0, count*7), nil
	case "months":
		return t.AddDate(0, count, 0), nil
	case "years":
		return t.AddDate(count, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("%w: unknown modifier %q", apperr.ErrInvalidSchedule, modifier)
}

// NextDue returns the date the item's CurrentDt would move to when posted.
// The snoozed date never feeds advancement.
func NextDue(item models.ScheduleItem) (time.Time, error) {
	count, modifier, err := Interval(item.Repeat, item.Frequency)
	if err != nil {
		return time.Time{}, err
	}
	return AddInterval(item.CurrentDt, count, modifier)
}

// EffectiveDue is the snoozed date when set, else the current due date.
func EffectiveDue(item models.ScheduleItem) time.Time {
	if item.SnoozedDt != nil {
		return *item.SnoozedDt
	}
	return item.CurrentDt
}

// DisplayFrequency renders the recurrence for presentation. Weekly items show
// week counts rather than the day-unit step they advance by.
func DisplayFrequency(item models.ScheduleItem) string {
	f := item.Frequency
	if item.Repeat == 1 || f.Frequency == FrequencyOneTime {
		return f.Frequency
	}
	if f.Frequency == FrequencyWeekly {
		return fmt.Sprintf("Every %d Weeks", item.Repeat)
	}
	return fmt.Sprintf("Every %d %s", item.Repeat*f.N, f.Modifier)
}
