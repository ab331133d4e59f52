package plot_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
	"github.com/meterops/mrrweave/internal/plot"
	"github.com/meterops/mrrweave/internal/scan"
)

func testAnchors() anchor.Spec {
	return anchor.Spec{
		{Phrase: "Total widgets requested", Heading: "Requested"},
		{Phrase: "Total widgets provided", Heading: "Provided"},
	}
}

func filledMatrix(t *testing.T) *billing.Matrix {
	t.Helper()

	m := billing.NewMatrix(2, 3)
	m.Put(5, 2, []scan.FieldValue{{Value: 10, Present: true}, {Value: 20, Present: true}})
	m.Put(7, 1, []scan.FieldValue{{Value: 4, Present: true}, {}})

	return m
}

func TestWriteChart_RendersOneChartPerMonth(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteChart(&buf, filledMatrix(t), testAnchors(), 0))

	html := buf.String()
	assert.Contains(t, html, "May")
	assert.Contains(t, html, "July")
	assert.Contains(t, html, "Requested")
}

func TestWriteChart_SecondColumn_UsesItsHeading(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteChart(&buf, filledMatrix(t), testAnchors(), 1))

	assert.Contains(t, buf.String(), "Provided")
}

func TestWriteChart_ColumnOutOfRange_ReturnsError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := plot.WriteChart(&buf, filledMatrix(t), testAnchors(), 2)
	assert.ErrorIs(t, err, plot.ErrColumnOutOfRange)

	err = plot.WriteChart(&buf, filledMatrix(t), testAnchors(), -1)
	assert.ErrorIs(t, err, plot.ErrColumnOutOfRange)
}

func TestWriteChart_EmptyMatrix_RendersEmptyPage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, plot.WriteChart(&buf, billing.NewMatrix(2, 3), testAnchors(), 0))

	assert.NotEmpty(t, buf.String())
}
