package billing

import (
	"github.com/meterops/mrrweave/internal/scan"
)

// CellKey addresses one cell of the matrix. A composite key rules out the
// collisions a flat month*100+cycle index would suffer if a read cycle ever
// reached 100.
type CellKey struct {
	Month int
	Cycle int
}

// Cell holds the extracted fields for one (billing month, read cycle) pair.
type Cell struct {
	Cycle   int
	Fields  []scan.FieldValue
	HasData bool
}

// Matrix is the dense result grid. It is pre-seeded with empty cells for all
// twelve calendar months and every cycle in a billing month, so out-of-order
// or missing input files still produce a correctly ordered, gap-aware output.
// Keys outside that range are accepted and stored; the caller decides how
// loudly to report them.
type Matrix struct {
	fieldCount     int
	cyclesPerMonth int
	cells          map[CellKey]Cell
	monthSeen      map[int]bool
	monthOrder     []int
}

const calendarMonths = 12

// NewMatrix creates the pre-seeded matrix for fieldCount columns and
// cyclesPerMonth cycles per billing month.
func NewMatrix(fieldCount, cyclesPerMonth int) *Matrix {
	m := &Matrix{
		fieldCount:     fieldCount,
		cyclesPerMonth: cyclesPerMonth,
		cells:          make(map[CellKey]Cell, calendarMonths*cyclesPerMonth),
		monthSeen:      make(map[int]bool),
	}

	for month := 1; month <= calendarMonths; month++ {
		for cycle := 1; cycle <= cyclesPerMonth; cycle++ {
			m.cells[CellKey{Month: month, Cycle: cycle}] = Cell{Cycle: cycle}
		}
	}

	return m
}

// Put stores fields at (month, cycle), overwriting whatever was there, and
// reports whether it overwrote a cell that already carried data. Last write
// wins on collision; the caller is expected to surface the collision to the
// operator. Re-applying the same tuple is idempotent.
func (m *Matrix) Put(month, cycle int, fields []scan.FieldValue) (collided bool) {
	key := CellKey{Month: month, Cycle: cycle}
	collided = m.cells[key].HasData

	m.cells[key] = Cell{
		Cycle:   cycle,
		Fields:  append([]scan.FieldValue(nil), fields...),
		HasData: true,
	}

	if !m.monthSeen[month] {
		m.monthSeen[month] = true
		m.monthOrder = append(m.monthOrder, month)
	}

	return collided
}

// Cell returns the cell at (month, cycle). Unseeded out-of-range keys that
// were never written return an empty cell carrying the requested cycle.
func (m *Matrix) Cell(month, cycle int) Cell {
	cell, ok := m.cells[CellKey{Month: month, Cycle: cycle}]
	if !ok {
		return Cell{Cycle: cycle}
	}

	return cell
}

// MonthsWithData returns the billing months that received at least one cell,
// in the order they were first written. That order depends on the input file
// order and is not necessarily calendar order.
func (m *Matrix) MonthsWithData() []int {
	return append([]int(nil), m.monthOrder...)
}

// PopulatedCells counts the cells that carry data.
func (m *Matrix) PopulatedCells() int {
	n := 0

	for _, cell := range m.cells {
		if cell.HasData {
			n++
		}
	}

	return n
}

// CyclesPerMonth returns the configured cycles per billing month.
func (m *Matrix) CyclesPerMonth() int {
	return m.cyclesPerMonth
}

// FieldCount returns the number of data columns per cell.
func (m *Matrix) FieldCount() int {
	return m.fieldCount
}

// CycleInRange reports whether cycle falls inside the billing month grid the
// output iterates over. Cells outside the range are stored but never emitted,
// which is why callers warn about them.
func (m *Matrix) CycleInRange(cycle int) bool {
	return cycle >= 1 && cycle <= m.cyclesPerMonth
}
