// Package billing maps schedule dates onto billing months and accumulates
// extracted rows into a dense month/cycle matrix.
package billing

import (
	"fmt"
	"time"
)

// Thresholds for the billing-month heuristic. Billing cycles do not line up
// with calendar months: a date early in the month combined with a high cycle
// number means the data belongs to the previous billing month, and a date
// late in the month combined with a low cycle number means the next one.
const (
	earlyDayLimit  = 10
	lateCycleLimit = 10
	earlyCycleMax  = 10
)

// ResolveMonth computes the billing month for a schedule date and read cycle.
// It is a pure function of its inputs. The result is NOT wrapped at year
// boundaries: January data from a late cycle yields month 0 and December data
// from an early cycle yields month 13. Callers must keep those values
// observable for diagnosis rather than clamping them.
func ResolveMonth(scheduleDay, scheduleMonth, readCycle, cyclesPerBillingMonth int) int {
	if scheduleDay < earlyDayLimit && readCycle > lateCycleLimit {
		return scheduleMonth - 1
	}

	if scheduleDay > cyclesPerBillingMonth-1 && readCycle < earlyCycleMax {
		return scheduleMonth + 1
	}

	return scheduleMonth
}

// InCalendarRange reports whether month is a real calendar month.
func InCalendarRange(month int) bool {
	return month >= 1 && month <= 12
}

// MonthName returns the full English month name, or a plain numeric label for
// the out-of-range months the resolver can produce at year boundaries.
func MonthName(month int) string {
	if !InCalendarRange(month) {
		return fmt.Sprintf("Month %d", month)
	}

	return time.Month(month).String()
}
