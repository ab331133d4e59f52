// Package store persists consolidation runs to Postgres so the run history
// stays queryable after the CSVs have been handed off.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/meterops/mrrweave/internal/anchor"
	"github.com/meterops/mrrweave/internal/billing"
)

// Config carries the connection settings for one save.
type Config struct {
	URL    string
	Schema string
	Tag    string
}

// RunStats summarizes a completed run for the run row.
type RunStats struct {
	ReportsDir            string
	CyclesPerBillingMonth int
	FilesFound            int
	FilesContributed      int
	PopulatedCells        int
	Warnings              []string
}

// ErrSchemaRequired indicates an empty schema name.
var ErrSchemaRequired = errors.New("db schema is required")

const connectTimeout = 12 * time.Second

var validSchemaName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func sanitizeSchema(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrSchemaRequired
	}

	if !validSchemaName.MatchString(value) {
		return "", fmt.Errorf("invalid schema name: %s", value)
	}

	return value, nil
}

// SaveRun stores the run row, every populated cell, and the collected
// warnings in a single transaction, bootstrapping the schema on first use.
// It returns the run id.
func SaveRun(cfg Config, stats RunStats, m *billing.Matrix, anchors anchor.Spec) (string, error) {
	schema, err := sanitizeSchema(cfg.Schema)
	if err != nil {
		return "", err
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return "", err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pingErr := db.PingContext(ctx)
	if pingErr != nil {
		return "", pingErr
	}

	schemaErr := ensureSchema(ctx, db, schema)
	if schemaErr != nil {
		return "", schemaErr
	}

	return saveRunTx(ctx, db, schema, cfg.Tag, stats, m, anchors)
}

func saveRunTx(
	ctx context.Context,
	db *sql.DB,
	schema string,
	tag string,
	stats RunStats,
	m *billing.Matrix,
	anchors anchor.Spec,
) (string, error) {
	runID := uuid.New()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s.consolidation_runs (
			id, reports_dir, cycles_per_billing_month, files_found,
			files_contributed, populated_cells, warning_count, run_tag
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`, schema),
		runID,
		stats.ReportsDir,
		stats.CyclesPerBillingMonth,
		stats.FilesFound,
		stats.FilesContributed,
		stats.PopulatedCells,
		len(stats.Warnings),
		nullString(tag),
	)
	if err != nil {
		_ = tx.Rollback()

		return "", err
	}

	cellErr := insertCells(ctx, tx, schema, runID, m, anchors)
	if cellErr != nil {
		_ = tx.Rollback()

		return "", cellErr
	}

	warnErr := insertWarnings(ctx, tx, schema, runID, stats.Warnings)
	if warnErr != nil {
		_ = tx.Rollback()

		return "", warnErr
	}

	commitErr := tx.Commit()
	if commitErr != nil {
		return "", commitErr
	}

	return runID.String(), nil
}

func insertCells(
	ctx context.Context,
	tx *sql.Tx,
	schema string,
	runID uuid.UUID,
	m *billing.Matrix,
	anchors anchor.Spec,
) error {
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s.consolidation_cells (
			id, run_id, billing_month, read_cycle, column_heading, value
		) VALUES ($1,$2,$3,$4,$5,$6)`, schema)

	for _, month := range m.MonthsWithData() {
		for cycle := 1; cycle <= m.CyclesPerMonth(); cycle++ {
			cell := m.Cell(month, cycle)
			if !cell.HasData {
				continue
			}

			for i, field := range cell.Fields {
				_, err := tx.ExecContext(ctx, insertSQL,
					uuid.New(),
					runID,
					month,
					cycle,
					anchors[i].Heading,
					nullInt(field.Value, field.Present),
				)
				if err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func insertWarnings(ctx context.Context, tx *sql.Tx, schema string, runID uuid.UUID, warnings []string) error {
	insertSQL := fmt.Sprintf(`
		INSERT INTO %s.consolidation_warnings (
			id, run_id, message
		) VALUES ($1,$2,$3)`, schema)

	for _, message := range warnings {
		_, err := tx.ExecContext(ctx, insertSQL, uuid.New(), runID, message)
		if err != nil {
			return err
		}
	}

	return nil
}

func ensureSchema(ctx context.Context, db *sql.DB, schema string) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.consolidation_runs (
			id uuid PRIMARY KEY,
			reports_dir text NOT NULL,
			cycles_per_billing_month integer NOT NULL,
			files_found integer NOT NULL,
			files_contributed integer NOT NULL,
			populated_cells integer NOT NULL,
			warning_count integer NOT NULL,
			run_tag text,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.consolidation_cells (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.consolidation_runs(id) ON DELETE CASCADE,
			billing_month integer NOT NULL,
			read_cycle integer NOT NULL,
			column_heading text NOT NULL,
			value integer,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.consolidation_warnings (
			id uuid PRIMARY KEY,
			run_id uuid NOT NULL REFERENCES %s.consolidation_runs(id) ON DELETE CASCADE,
			message text NOT NULL,
			created_at timestamptz NOT NULL DEFAULT now()
		)`, schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_consolidation_cells_run_idx ON %s.consolidation_cells (run_id)`,
		schema, schema))
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS %s_consolidation_warnings_run_idx ON %s.consolidation_warnings (run_id)`,
		schema, schema))

	return err
}

func nullString(value string) sql.NullString {
	if strings.TrimSpace(value) == "" {
		return sql.NullString{}
	}

	return sql.NullString{String: value, Valid: true}
}

func nullInt(value int, present bool) sql.NullInt64 {
	if !present {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: int64(value), Valid: true}
}
