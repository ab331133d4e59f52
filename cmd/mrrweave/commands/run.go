// Package commands implements CLI command handlers for mrrweave.
package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
	"github.com/meterops/mrrweave/internal/cleanup"
	"github.com/meterops/mrrweave/internal/config"
	"github.com/meterops/mrrweave/internal/consolidate"
	"github.com/meterops/mrrweave/internal/export"
	"github.com/meterops/mrrweave/internal/plot"
	"github.com/meterops/mrrweave/internal/store"
)

var (
	// ErrDBURLMissing is returned when --db is set without a database URL.
	ErrDBURLMissing = errors.New("database URL missing; set MRRWEAVE_DB_URL or DATABASE_URL")
	// ErrPurgeKeepConflict indicates both purge flags were set at once.
	ErrPurgeKeepConflict = errors.New("--purge and --keep are mutually exclusive")
)

// defaultPlotColumn is the anchor column charted by --plot: the count of PODs
// with no readings provided at all, the column the operators triage first.
const defaultPlotColumn = 4

type saveRunFunc func(store.Config, store.RunStats, *billing.Matrix, anchor.Spec) (string, error)

// RunCommand holds configuration and dependencies for the run command.
type RunCommand struct {
	configPath   string
	reportsDir   string
	output       string
	manifestPath string
	plotPath     string
	plotColumn   int
	dbEnabled    bool
	dbSchema     string
	dbTag        string
	purge        bool
	keep         bool
	silent       bool
	noColor      bool

	confirmer cleanup.Confirmer
	saveRun   saveRunFunc
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	return newRunCommandWithDeps(nil, store.SaveRun)
}

func newRunCommandWithDeps(confirmer cleanup.Confirmer, saveRun saveRunFunc) *cobra.Command {
	rc := &RunCommand{
		confirmer: confirmer,
		saveRun:   saveRun,
	}

	cmd := &cobra.Command{
		Use:   "run [reports-dir]",
		Short: "Consolidate a reports folder into one CSV",
		Long: "Scan every file in the reports folder, extract the fields that survive\n" +
			"the encoding damage, and write one CSV ordered by billing month and cycle.",
		Args: cobra.MaximumNArgs(1),
		RunE: rc.run,
	}

	cmd.Flags().StringVar(&rc.configPath, "config", "", "Explicit config file path")
	cmd.Flags().StringVarP(&rc.reportsDir, "reports", "p", "", "Reports drop folder (default from config)")
	cmd.Flags().StringVarP(&rc.output, "output", "o", "", "Output CSV path (default from config)")
	cmd.Flags().StringVar(&rc.manifestPath, "manifest", "", "Optional YAML run manifest path")
	cmd.Flags().StringVar(&rc.plotPath, "plot", "", "Optional HTML chart path")
	cmd.Flags().IntVar(&rc.plotColumn, "plot-column", defaultPlotColumn, "Anchor column index to chart")
	cmd.Flags().BoolVar(&rc.dbEnabled, "db", false, "Store the run in Postgres (requires MRRWEAVE_DB_URL or DATABASE_URL)")
	cmd.Flags().StringVar(&rc.dbSchema, "db-schema", "mrrweave", "Postgres schema for run tables")
	cmd.Flags().StringVar(&rc.dbTag, "db-tag", "", "Optional label for this run")
	cmd.Flags().BoolVar(&rc.purge, "purge", false, "Empty the reports folder without prompting")
	cmd.Flags().BoolVar(&rc.keep, "keep", false, "Keep the reports folder without prompting")
	cmd.Flags().BoolVar(&rc.silent, "silent", false, "Disable progress output")
	cmd.Flags().BoolVar(&rc.noColor, "no-color", false, "Disable colored output")

	return cmd
}

func (rc *RunCommand) run(cmd *cobra.Command, args []string) error {
	if rc.purge && rc.keep {
		return ErrPurgeKeepConflict
	}

	if rc.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := rc.loadConfig(cmd, args)
	if err != nil {
		return err
	}

	silent := rc.isSilent(cmd)
	out := cmd.OutOrStdout()
	progressWriter := cmd.ErrOrStderr()

	run, err := rc.consolidate(cfg, silent, progressWriter)
	if err != nil {
		return err
	}

	if len(run.Files) == 0 {
		fmt.Fprintln(out, "No reports found.")

		return nil
	}

	rc.reportScan(out, run)

	writeErr := rc.writeOutputs(out, cfg, run)
	if writeErr != nil {
		return writeErr
	}

	if rc.dbEnabled {
		dbErr := rc.persistRun(out, cfg, run)
		if dbErr != nil {
			return dbErr
		}
	}

	color.New(color.FgGreen).Fprintf(out, "%s created successfully.\n", cfg.Output)

	purgeErr := rc.handlePurge(cmd, cfg, run)
	if purgeErr != nil {
		return purgeErr
	}

	fmt.Fprintln(out, "All done!")

	return nil
}

func (rc *RunCommand) loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg, err := config.LoadConfig(rc.configPath)
	if err != nil {
		return nil, err
	}

	// Flags win over config; the positional argument wins over both.
	if cmd.Flags().Changed("reports") {
		cfg.ReportsDir = rc.reportsDir
	}

	if len(args) > 0 {
		cfg.ReportsDir = args[0]
	}

	if cmd.Flags().Changed("output") {
		cfg.Output = rc.output
	}

	return cfg, nil
}

func (rc *RunCommand) consolidate(cfg *config.Config, silent bool, progressWriter io.Writer) (*consolidate.Run, error) {
	consolidator := consolidate.New(consolidate.Options{
		ReportsDir:            cfg.ReportsDir,
		Anchors:               cfg.AnchorSpec(),
		MonthTokens:           cfg.MonthTokens,
		CyclesPerBillingMonth: cfg.CyclesPerBillingMonth,
	})

	if !silent {
		consolidator.Logf = func(format string, args ...any) {
			fmt.Fprintf(progressWriter, format+"\n", args...)
		}
	}

	consolidator.Warnf = func(format string, args ...any) {
		color.New(color.FgYellow).Fprintf(progressWriter, format+"\n", args...)
	}

	return consolidator.Execute()
}

func (rc *RunCommand) reportScan(out io.Writer, run *consolidate.Run) {
	var totalBytes int64

	for _, f := range run.Files {
		totalBytes += f.Size
	}

	noun := "reports"
	if len(run.Files) == 1 {
		noun = "report"
	}

	fmt.Fprintf(out, "%d %s found (%s).\n", len(run.Files), noun, humanize.Bytes(uint64(totalBytes)))

	rc.renderSummary(out, run)
}

func (rc *RunCommand) renderSummary(out io.Writer, run *consolidate.Run) {
	months := run.Matrix.MonthsWithData()
	if len(months) == 0 {
		color.New(color.FgYellow).Fprintln(out, "No billable schedule data found in any report.")

		return
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(out)
	writer.AppendHeader(table.Row{"Billing Month", "Cycles With Data", "Missing Fields"})

	totalCells, totalMissing := 0, 0

	for _, month := range months {
		cells, missing := monthCounts(run.Matrix, month)
		totalCells += cells
		totalMissing += missing

		writer.AppendRow(table.Row{billing.MonthName(month), cells, missing})
	}

	writer.AppendFooter(table.Row{"Total", totalCells, totalMissing})
	writer.Render()
}

func monthCounts(m *billing.Matrix, month int) (cells, missing int) {
	for cycle := 1; cycle <= m.CyclesPerMonth(); cycle++ {
		cell := m.Cell(month, cycle)
		if !cell.HasData {
			continue
		}

		cells++

		for _, field := range cell.Fields {
			if field.Missing() {
				missing++
			}
		}
	}

	return cells, missing
}

func (rc *RunCommand) writeOutputs(out io.Writer, cfg *config.Config, run *consolidate.Run) error {
	csvErr := rc.writeCSV(cfg, run)
	if csvErr != nil {
		return csvErr
	}

	if rc.manifestPath != "" {
		manifestErr := export.WriteManifest(rc.manifestPath, buildManifest(cfg, run))
		if manifestErr != nil {
			return manifestErr
		}

		fmt.Fprintf(out, "Run manifest saved to %s\n", rc.manifestPath)
	}

	if rc.plotPath != "" {
		plotErr := rc.writePlot(cfg, run)
		if plotErr != nil {
			return plotErr
		}

		fmt.Fprintf(out, "Chart saved to %s\n", rc.plotPath)
	}

	return nil
}

func (rc *RunCommand) writeCSV(cfg *config.Config, run *consolidate.Run) error {
	file, err := os.Create(cfg.Output)
	if err != nil {
		return fmt.Errorf("%w: %s", export.ErrOutputUnwritable, cfg.Output)
	}

	builder := export.Builder{Anchors: cfg.AnchorSpec()}

	writeErr := builder.Write(file, run.Matrix)
	if writeErr != nil {
		_ = file.Close()

		return writeErr
	}

	closeErr := file.Close()
	if closeErr != nil {
		return fmt.Errorf("%w: %s", export.ErrOutputUnwritable, cfg.Output)
	}

	return nil
}

func (rc *RunCommand) writePlot(cfg *config.Config, run *consolidate.Run) error {
	file, err := os.Create(rc.plotPath)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", rc.plotPath, err)
	}

	plotErr := plot.WriteChart(file, run.Matrix, cfg.AnchorSpec(), rc.plotColumn)
	if plotErr != nil {
		_ = file.Close()

		return plotErr
	}

	return file.Close()
}

func (rc *RunCommand) persistRun(out io.Writer, cfg *config.Config, run *consolidate.Run) error {
	url := dbURLFromEnv()
	if url == "" {
		return ErrDBURLMissing
	}

	stats := store.RunStats{
		ReportsDir:            cfg.ReportsDir,
		CyclesPerBillingMonth: cfg.CyclesPerBillingMonth,
		FilesFound:            len(run.Files),
		FilesContributed:      run.Contributed(),
		PopulatedCells:        run.Matrix.PopulatedCells(),
		Warnings:              run.Warnings,
	}

	runID, err := rc.saveRun(store.Config{URL: url, Schema: rc.dbSchema, Tag: rc.dbTag}, stats, run.Matrix, cfg.AnchorSpec())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Stored run in Postgres (run_id=%s)\n", runID)

	return nil
}

func (rc *RunCommand) handlePurge(cmd *cobra.Command, cfg *config.Config, run *consolidate.Run) error {
	out := cmd.OutOrStdout()

	if rc.keep {
		fmt.Fprintf(out, "%s folder not emptied.\n", cfg.ReportsDir)

		return nil
	}

	confirmed := rc.purge

	if !confirmed {
		confirmer := rc.confirmer
		if confirmer == nil {
			confirmer = &cleanup.TerminalConfirmer{In: cmd.InOrStdin(), Out: out}
		}

		answer, err := confirmer.Confirm(fmt.Sprintf("Would you like to empty the %s folder? [Y/N]: ", cfg.ReportsDir))
		if err != nil {
			return err
		}

		confirmed = answer
	}

	if !confirmed {
		fmt.Fprintf(out, "%s folder not emptied.\n", cfg.ReportsDir)

		return nil
	}

	purgeErr := cleanup.Purge(cfg.ReportsDir, run.FileNames())
	if purgeErr != nil {
		return purgeErr
	}

	color.New(color.FgGreen).Fprintf(out, "%s folder cleared out successfully.\n", cfg.ReportsDir)

	return nil
}

func (rc *RunCommand) isSilent(cmd *cobra.Command) bool {
	if rc.silent {
		return true
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}

func buildManifest(cfg *config.Config, run *consolidate.Run) export.Manifest {
	files := make([]export.FileDisposition, 0, len(run.Files))

	for _, f := range run.Files {
		files = append(files, export.FileDisposition{
			Name:         f.Name,
			SizeBytes:    f.Size,
			BillingMonth: f.BillingMonth,
			ReadCycle:    f.ReadCycle,
			Contributed:  f.Contributed,
			Note:         f.Note,
		})
	}

	return export.Manifest{
		GeneratedAt:           timeNow(),
		ReportsDir:            cfg.ReportsDir,
		Output:                cfg.Output,
		CyclesPerBillingMonth: cfg.CyclesPerBillingMonth,
		Files:                 files,
		MonthsWithData:        run.Matrix.MonthsWithData(),
		PopulatedCells:        run.Matrix.PopulatedCells(),
		Warnings:              run.Warnings,
	}
}

// timeNow is a seam so manifest timestamps are fixable in tests.
var timeNow = time.Now

func dbURLFromEnv() string {
	if value := strings.TrimSpace(os.Getenv("MRRWEAVE_DB_URL")); value != "" {
		return value
	}

	return strings.TrimSpace(os.Getenv("DATABASE_URL"))
}
