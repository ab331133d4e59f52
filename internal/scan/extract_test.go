package scan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/scan"
)

func TestExtract_MatchedLines_RecoverTrailingIntegers(t *testing.T) {
	t.Parallel()

	anchors := anchor.Default()
	lines := make([]string, len(anchors))
	for i, a := range anchors {
		lines[i] = anchorLine(a.Phrase, "  1234")
	}

	fields, err := scan.Extract(anchors, lines)
	require.NoError(t, err)
	require.Len(t, fields, len(anchors))

	for _, field := range fields {
		assert.False(t, field.Missing())
		assert.Equal(t, 1234, field.Value)
	}
}

func TestExtract_UnmatchedAnchor_YieldsMissingMarker(t *testing.T) {
	t.Parallel()

	anchors := anchor.Default()
	lines := make([]string, len(anchors))
	lines[0] = anchorLine(anchors[0].Phrase, "7")

	fields, err := scan.Extract(anchors, lines)
	require.NoError(t, err)

	assert.False(t, fields[0].Missing())
	assert.Equal(t, 7, fields[0].Value)

	for _, field := range fields[1:] {
		assert.True(t, field.Missing())
		assert.Equal(t, scan.MissingLabel, field.String())
	}
}

func TestExtract_NonNumericRemainder_ReturnsFieldParseError(t *testing.T) {
	t.Parallel()

	anchors := anchor.Default()
	lines := make([]string, len(anchors))
	lines[0] = anchorLine(anchors[0].Phrase, "N/A")

	_, err := scan.Extract(anchors, lines)

	require.ErrorIs(t, err, scan.ErrFieldParse)
	assert.Contains(t, err.Error(), anchors[0].Phrase)
}

func TestExtract_TruncatedLine_ReturnsFieldParseError(t *testing.T) {
	t.Parallel()

	anchors := anchor.Default()
	lines := make([]string, len(anchors))
	lines[0] = anchors[0].Phrase // shorter than the value offset

	_, err := scan.Extract(anchors, lines)

	require.ErrorIs(t, err, scan.ErrFieldParse)
}

func TestFieldValue_String_RendersValueOrMissing(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", scan.FieldValue{Value: 42, Present: true}.String())
	assert.Equal(t, "Missing", scan.FieldValue{}.String())
}
