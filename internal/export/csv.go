// Package export renders the consolidated matrix as the month-sectioned CSV
// and the optional run manifest.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
)

// ErrOutputUnwritable indicates the output CSV could not be created or
// written. The run halts without leaving a partial file behind.
var ErrOutputUnwritable = errors.New("unable to open or create output file")

// Builder walks the matrix in billing-month order and emits the CSV the
// consuming spreadsheet expects: deliberately not a flat table but a sequence
// of month sections, each a fixed-width table with a title row, a headings
// row, one row per cycle, and a blank separator row.
type Builder struct {
	Anchors anchor.Spec
}

// Write renders the matrix to w. Placeholder rows carry only the cycle
// number, showing that a cycle was expected but no data arrived for it.
func (b *Builder) Write(w io.Writer, m *billing.Matrix) error {
	writer := csv.NewWriter(w)
	headings := b.Anchors.Headings()

	for _, month := range m.MonthsWithData() {
		writeErr := b.writeMonth(writer, m, month, headings)
		if writeErr != nil {
			return fmt.Errorf("%w: %w", ErrOutputUnwritable, writeErr)
		}
	}

	writer.Flush()

	flushErr := writer.Error()
	if flushErr != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnwritable, flushErr)
	}

	return nil
}

func (b *Builder) writeMonth(writer *csv.Writer, m *billing.Matrix, month int, headings []string) error {
	titleErr := writer.Write([]string{billing.MonthName(month)})
	if titleErr != nil {
		return titleErr
	}

	headErr := writer.Write(headings)
	if headErr != nil {
		return headErr
	}

	for cycle := 1; cycle <= m.CyclesPerMonth(); cycle++ {
		rowErr := writer.Write(b.row(m.Cell(month, cycle), cycle, m.FieldCount()))
		if rowErr != nil {
			return rowErr
		}
	}

	return writer.Write([]string{""})
}

func (b *Builder) row(cell billing.Cell, cycle, fieldCount int) []string {
	row := make([]string, 0, fieldCount+1)
	row = append(row, strconv.Itoa(cycle))

	if !cell.HasData {
		for range fieldCount {
			row = append(row, "")
		}

		return row
	}

	for _, field := range cell.Fields {
		row = append(row, field.String())
	}

	return row
}
