package scan

// Marker phrases that identify metadata lines. Like the anchor phrases, these
// are matched as substrings because nothing else in the line is trustworthy.
const (
	readCycleMarker = "Read Cycle {"
	scheduleMarker  = "Schedule Dates"
)

// Fixed character offsets into matching lines. The phrase position wanders
// with the surrounding noise, but the label width after the start of the line
// is consistent across reports, so extraction slices the line at these
// columns. Format drift is expected to break exactly here: keep the offsets
// in this one table and update them together when the report layout changes.
const (
	readCycleStart = 39
	readCycleEnd   = 41

	scheduleDayStart   = 46
	scheduleDayEnd     = 48
	scheduleMonthStart = 49
	scheduleMonthEnd   = 52
	scheduleYearStart  = 53
	scheduleYearEnd    = 55

	fieldValueStart = 73
)

// scheduleCenturyBase anchors the two-digit report year. The reports carry no
// century, so anything outside the 2000s is not representable.
const scheduleCenturyBase = 2000
