// Package scan locates anchor phrases inside noisy report text and converts
// the matching lines into typed field values.
package scan

import (
	"strconv"
	"strings"

	"github.com/meterops/mrrweave/internal/anchor"
)

// Scanner performs a single forward pass over one report's lines, recovering
// the read cycle, the schedule date, and the first matching line per anchor
// phrase. It never fails: anything it cannot recover is reported as absent on
// the RawReport and judged by the caller.
type Scanner struct {
	Anchors anchor.Spec

	// MonthTokens are the twelve three-letter abbreviations the reports use in
	// schedule dates, in calendar order.
	MonthTokens []string
}

// Scan walks the lines once and collects raw matches.
func (s *Scanner) Scan(lines []string) RawReport {
	raw := RawReport{
		AnchorLines: make([]string, len(s.Anchors)),
	}

	for _, line := range lines {
		if strings.Contains(line, readCycleMarker) && !raw.ReadCycleFound {
			raw.ReadCycle, raw.ReadCycleFound = parseOffsetInt(line, readCycleStart, readCycleEnd)
		}

		if strings.Contains(line, scheduleMarker) && !raw.ScheduleFound {
			s.parseSchedule(line, &raw)
		}

		for i, a := range s.Anchors {
			if raw.AnchorLines[i] == "" && strings.Contains(line, a.Phrase) {
				raw.AnchorLines[i] = line
			}
		}
	}

	return raw
}

func (s *Scanner) parseSchedule(line string, raw *RawReport) {
	day, dayOK := parseOffsetInt(line, scheduleDayStart, scheduleDayEnd)
	if !dayOK {
		return
	}

	month, monthOK := s.monthFromToken(sliceAt(line, scheduleMonthStart, scheduleMonthEnd))
	if !monthOK {
		return
	}

	year, yearOK := parseOffsetInt(line, scheduleYearStart, scheduleYearEnd)
	if !yearOK {
		return
	}

	raw.ScheduleDay = day
	raw.ScheduleMonth = month
	raw.ScheduleYear = scheduleCenturyBase + year
	raw.ScheduleFound = true
}

func (s *Scanner) monthFromToken(token string) (int, bool) {
	for i, t := range s.MonthTokens {
		if t == token {
			return i + 1, true
		}
	}

	return 0, false
}

// parseOffsetInt slices [start:end) out of line and parses it as an integer.
// A line shorter than end columns is treated the same as a non-numeric slice:
// the value is reported absent rather than sliced out of range.
func parseOffsetInt(line string, start, end int) (int, bool) {
	slice := sliceAt(line, start, end)
	if slice == "" {
		return 0, false
	}

	value, err := strconv.Atoi(strings.TrimSpace(slice))
	if err != nil {
		return 0, false
	}

	return value, true
}

func sliceAt(line string, start, end int) string {
	if len(line) < end {
		return ""
	}

	return line[start:end]
}
