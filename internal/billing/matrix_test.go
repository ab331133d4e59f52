package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterops/mrrweave/internal/billing"
	"github.com/meterops/mrrweave/internal/scan"
)

func fields(values ...int) []scan.FieldValue {
	result := make([]scan.FieldValue, 0, len(values))
	for _, v := range values {
		result = append(result, scan.FieldValue{Value: v, Present: true})
	}

	return result
}

func TestNewMatrix_PreSeedsEmptyCells(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(3, cyclesPerBillingMonth)

	for month := 1; month <= 12; month++ {
		for cycle := 1; cycle <= cyclesPerBillingMonth; cycle++ {
			cell := m.Cell(month, cycle)
			assert.False(t, cell.HasData)
			assert.Equal(t, cycle, cell.Cycle)
		}
	}

	assert.Empty(t, m.MonthsWithData())
	assert.Zero(t, m.PopulatedCells())
}

func TestPut_StoresFieldsAndMarksData(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(2, cyclesPerBillingMonth)

	collided := m.Put(5, 15, fields(10, 20))
	assert.False(t, collided)

	cell := m.Cell(5, 15)
	require.True(t, cell.HasData)
	assert.Equal(t, 15, cell.Cycle)
	assert.Equal(t, fields(10, 20), cell.Fields)
	assert.Equal(t, 1, m.PopulatedCells())
}

func TestPut_CollisionReportsAndLastWriteWins(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	require.False(t, m.Put(3, 9, fields(1)))

	collided := m.Put(3, 9, fields(2))
	assert.True(t, collided)
	assert.Equal(t, fields(2), m.Cell(3, 9).Fields)
}

func TestPut_SameTupleIsIdempotent(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	m.Put(4, 2, fields(7))
	m.Put(4, 2, fields(7))

	assert.Equal(t, fields(7), m.Cell(4, 2).Fields)
	assert.Equal(t, 1, m.PopulatedCells())
	assert.Equal(t, []int{4}, m.MonthsWithData())
}

func TestMonthsWithData_FirstSeenOrder(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	m.Put(9, 1, fields(1))
	m.Put(2, 1, fields(2))
	m.Put(9, 3, fields(3))

	assert.Equal(t, []int{9, 2}, m.MonthsWithData())
}

func TestPut_OutOfRangeKeysAccepted(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	m.Put(0, 20, fields(5))
	m.Put(13, 2, fields(6))

	assert.True(t, m.Cell(0, 20).HasData)
	assert.True(t, m.Cell(13, 2).HasData)
	assert.Equal(t, []int{0, 13}, m.MonthsWithData())
}

func TestPut_HighCycleDoesNotCollideAcrossMonths(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	// Under a flat month*100+cycle index these two would share a slot.
	require.False(t, m.Put(5, 105, fields(1)))
	require.False(t, m.Put(6, 5, fields(2)))

	assert.Equal(t, fields(1), m.Cell(5, 105).Fields)
	assert.Equal(t, fields(2), m.Cell(6, 5).Fields)
}

func TestCycleInRange(t *testing.T) {
	t.Parallel()

	m := billing.NewMatrix(1, cyclesPerBillingMonth)

	assert.True(t, m.CycleInRange(1))
	assert.True(t, m.CycleInRange(cyclesPerBillingMonth))
	assert.False(t, m.CycleInRange(0))
	assert.False(t, m.CycleInRange(cyclesPerBillingMonth+1))
}
