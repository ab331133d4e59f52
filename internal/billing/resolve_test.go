package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meterops/mrrweave/internal/billing"
)

const cyclesPerBillingMonth = 21

func TestResolveMonth_Heuristics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		day   int
		month int
		cycle int
		want  int
	}{
		{name: "early day high cycle belongs to prior month", day: 5, month: 6, cycle: 15, want: 5},
		{name: "late day low cycle belongs to next month", day: 28, month: 6, cycle: 3, want: 7},
		{name: "aligned date and cycle stay in calendar month", day: 15, month: 6, cycle: 14, want: 6},
		{name: "early day low cycle stays put", day: 5, month: 6, cycle: 5, want: 6},
		{name: "late day high cycle stays put", day: 28, month: 6, cycle: 19, want: 6},
		{name: "january late cycle yields month zero", day: 2, month: 1, cycle: 20, want: 0},
		{name: "december early cycle yields month thirteen", day: 30, month: 12, cycle: 2, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := billing.ResolveMonth(tt.day, tt.month, tt.cycle, cyclesPerBillingMonth)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveMonth_IsPure(t *testing.T) {
	t.Parallel()

	first := billing.ResolveMonth(5, 6, 15, cyclesPerBillingMonth)
	second := billing.ResolveMonth(5, 6, 15, cyclesPerBillingMonth)

	assert.Equal(t, first, second)
}

func TestInCalendarRange(t *testing.T) {
	t.Parallel()

	assert.True(t, billing.InCalendarRange(1))
	assert.True(t, billing.InCalendarRange(12))
	assert.False(t, billing.InCalendarRange(0))
	assert.False(t, billing.InCalendarRange(13))
}

func TestMonthName_OutOfRangeStaysObservable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "May", billing.MonthName(5))
	assert.Equal(t, "Month 0", billing.MonthName(0))
	assert.Equal(t, "Month 13", billing.MonthName(13))
}
