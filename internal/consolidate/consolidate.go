// Package consolidate drives the full run: list the drop folder, scan and
// extract every report, resolve billing months, and merge everything into
// the result matrix. Fully sequential, one file at a time; a malformed file
// is either skipped (no schedule data) or aborts the run (value parse
// failure), with no partial-success middle ground.
package consolidate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
	"github.com/meterops/mrrweave/internal/scan"
)

var (
	// ErrDirectoryUnreadable indicates the reports folder could not be listed.
	ErrDirectoryUnreadable = errors.New("unable to read reports directory")
	// ErrFileUnreadable indicates a report file could not be opened or read.
	ErrFileUnreadable = errors.New("unable to read report file")
)

// Options configures a consolidation run.
type Options struct {
	ReportsDir            string
	Anchors               anchor.Spec
	MonthTokens           []string
	CyclesPerBillingMonth int
}

// FileResult records what one input file contributed.
type FileResult struct {
	Name          string
	Size          int64
	ReadCycle     int
	ScheduleDay   int
	ScheduleMonth int
	ScheduleYear  int
	BillingMonth  int
	Contributed   bool
	Note          string
}

// Run is the outcome of a completed consolidation.
type Run struct {
	Matrix   *billing.Matrix
	Files    []FileResult
	Warnings []string
}

// Contributed counts the files that landed data in the matrix.
func (r *Run) Contributed() int {
	n := 0

	for _, f := range r.Files {
		if f.Contributed {
			n++
		}
	}

	return n
}

// FileNames returns the names of every file the run consumed.
func (r *Run) FileNames() []string {
	names := make([]string, 0, len(r.Files))

	for _, f := range r.Files {
		names = append(names, f.Name)
	}

	return names
}

// Consolidator runs the scan-extract-resolve-merge sequence over a folder.
// Logf and Warnf, when set, receive human-readable progress and warning
// lines; warnings are additionally collected on the Run.
type Consolidator struct {
	Logf  func(format string, args ...any)
	Warnf func(format string, args ...any)

	opts    Options
	scanner scan.Scanner
}

// New creates a Consolidator for the given options.
func New(opts Options) *Consolidator {
	return &Consolidator{
		opts: opts,
		scanner: scan.Scanner{
			Anchors:     opts.Anchors,
			MonthTokens: opts.MonthTokens,
		},
	}
}

// Execute processes every file in the reports folder and returns the filled
// matrix. Fatal conditions (unreadable directory or file, field parse
// failure) abort immediately with the offending file named in the error.
func (c *Consolidator) Execute() (*Run, error) {
	entries, err := os.ReadDir(c.opts.ReportsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryUnreadable, c.opts.ReportsDir)
	}

	run := &Run{
		Matrix: billing.NewMatrix(len(c.opts.Anchors), c.opts.CyclesPerBillingMonth),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileErr := c.processFile(run, entry.Name())
		if fileErr != nil {
			return nil, fileErr
		}
	}

	return run, nil
}

func (c *Consolidator) processFile(run *Run, name string) error {
	path := filepath.Join(c.opts.ReportsDir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrFileUnreadable, path)
	}

	result := FileResult{Name: name, Size: int64(len(data))}
	raw := c.scanner.Scan(strings.Split(string(data), "\n"))

	if !raw.ReadCycleFound {
		c.warn(run, "%s appears to not have a read cycle. If this report file has no read schedule, this is normal.", name)
	}

	fields, extractErr := scan.Extract(c.opts.Anchors, raw.AnchorLines)
	if extractErr != nil {
		return fmt.Errorf("%s: %w", name, extractErr)
	}

	if !raw.HasSchedule() {
		c.warn(run, "%s appears to not have a schedule date. If this report file has no read schedule, this is normal.", name)

		result.Note = "no schedule data"
		run.Files = append(run.Files, result)

		return nil
	}

	c.merge(run, &result, raw, fields)
	run.Files = append(run.Files, result)

	return nil
}

func (c *Consolidator) merge(run *Run, result *FileResult, raw scan.RawReport, fields []scan.FieldValue) {
	month := billing.ResolveMonth(raw.ScheduleDay, raw.ScheduleMonth, raw.ReadCycle, c.opts.CyclesPerBillingMonth)

	result.ReadCycle = raw.ReadCycle
	result.ScheduleDay = raw.ScheduleDay
	result.ScheduleMonth = raw.ScheduleMonth
	result.ScheduleYear = raw.ScheduleYear
	result.BillingMonth = month
	result.Contributed = true

	c.log("Data in %s found for %s %d, %d, cycle %d. Report interpreted for %s billing month.",
		result.Name, billing.MonthName(raw.ScheduleMonth), raw.ScheduleDay, raw.ScheduleYear,
		raw.ReadCycle, billing.MonthName(month))

	if !billing.InCalendarRange(month) {
		c.warn(run, "%s resolved to billing month %d, outside the calendar year; check the schedule date and cycle.",
			result.Name, month)
	}

	if !run.Matrix.CycleInRange(raw.ReadCycle) {
		c.warn(run, "%s carries read cycle %d, outside cycles 1..%d; its row will not appear in the output.",
			result.Name, raw.ReadCycle, c.opts.CyclesPerBillingMonth)
	}

	collided := run.Matrix.Put(month, raw.ReadCycle, fields)
	if collided {
		c.warn(run, "%s overwrote existing data for %s cycle %d.",
			result.Name, billing.MonthName(month), raw.ReadCycle)
	}
}

func (c *Consolidator) log(format string, args ...any) {
	if c.Logf != nil {
		c.Logf(format, args...)
	}
}

func (c *Consolidator) warn(run *Run, format string, args ...any) {
	run.Warnings = append(run.Warnings, fmt.Sprintf(format, args...))

	if c.Warnf != nil {
		c.Warnf(format, args...)
	}
}
