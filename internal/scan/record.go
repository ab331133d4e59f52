package scan

import "strconv"

// MissingLabel is what an absent field renders as in the output, so a human
// reviewer can see exactly which field was missing from which report.
const MissingLabel = "Missing"

// FieldValue is one extracted data field: either an integer or an explicit
// missing marker for an anchor phrase that never appeared in the file.
type FieldValue struct {
	Value   int
	Present bool
}

// Missing reports whether the anchor phrase was absent from the file.
func (f FieldValue) Missing() bool {
	return !f.Present
}

// String renders the value for output rows.
func (f FieldValue) String() string {
	if f.Missing() {
		return MissingLabel
	}

	return strconv.Itoa(f.Value)
}

// RawReport is the result of one forward scan over a single report file.
// It lives only long enough to be extracted and merged into the matrix.
type RawReport struct {
	ReadCycle      int
	ReadCycleFound bool

	ScheduleDay   int
	ScheduleMonth int
	ScheduleYear  int
	ScheduleFound bool

	// AnchorLines holds, per anchor in list order, the first line containing
	// the phrase, or "" when the phrase never appeared.
	AnchorLines []string
}

// HasSchedule reports whether the file carries billable schedule data. Files
// without a resolvable schedule day contribute nothing to the matrix; that is
// the normal shape for reports with no read schedule, not an error.
func (r *RawReport) HasSchedule() bool {
	return r.ScheduleFound && r.ScheduleDay > 0
}
