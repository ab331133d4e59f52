// Package config loads and validates mrrweave settings from file, env vars,
// and compiled-in defaults.
package config

import (
	"errors"
	"fmt"

	"github.com/meterops/mrrweave/internal/anchor"
)

// Config is the top-level configuration struct for mrrweave.
// Field tags use mapstructure for viper unmarshalling.
type Config struct {
	ReportsDir            string         `mapstructure:"reports_dir"`
	Output                string         `mapstructure:"output"`
	CyclesPerBillingMonth int            `mapstructure:"cycles_per_billing_month"`
	MonthTokens           []string       `mapstructure:"month_tokens"`
	Anchors               []AnchorConfig `mapstructure:"anchors"`
}

// AnchorConfig is one configurable anchor: the phrase searched for in the
// reports and the CSV heading of the column it feeds.
type AnchorConfig struct {
	Phrase  string `mapstructure:"phrase"`
	Heading string `mapstructure:"heading"`
}

// Cycle numbers share the cell key space with months; the grid assumes they
// stay below 100.
const maxCyclesPerBillingMonth = 99

const (
	calendarMonths = 12
	monthTokenLen  = 3
)

// Sentinel errors for configuration validation.
var (
	// ErrReportsDirRequired indicates an empty reports directory.
	ErrReportsDirRequired = errors.New("reports_dir must not be empty")
	// ErrOutputRequired indicates an empty output path.
	ErrOutputRequired = errors.New("output must not be empty")
	// ErrInvalidCycles indicates cycles_per_billing_month is out of range.
	ErrInvalidCycles = errors.New("cycles_per_billing_month must be between 1 and 99")
	// ErrInvalidMonthTokens indicates the month token list is malformed.
	ErrInvalidMonthTokens = errors.New("month_tokens must hold twelve three-letter abbreviations")
	// ErrInvalidAnchor indicates an anchor entry with an empty phrase or heading.
	ErrInvalidAnchor = errors.New("anchors entries must have a phrase and a heading")
)

// Validate checks Config invariants and returns the first error found.
func (c *Config) Validate() error {
	if c.ReportsDir == "" {
		return ErrReportsDirRequired
	}

	if c.Output == "" {
		return ErrOutputRequired
	}

	if c.CyclesPerBillingMonth < 1 || c.CyclesPerBillingMonth > maxCyclesPerBillingMonth {
		return ErrInvalidCycles
	}

	monthErr := c.validateMonthTokens()
	if monthErr != nil {
		return monthErr
	}

	return c.validateAnchors()
}

func (c *Config) validateMonthTokens() error {
	if len(c.MonthTokens) != calendarMonths {
		return ErrInvalidMonthTokens
	}

	for _, token := range c.MonthTokens {
		if len(token) != monthTokenLen {
			return fmt.Errorf("%w: got %q", ErrInvalidMonthTokens, token)
		}
	}

	return nil
}

func (c *Config) validateAnchors() error {
	for _, a := range c.Anchors {
		if a.Phrase == "" || a.Heading == "" {
			return ErrInvalidAnchor
		}
	}

	return nil
}

// AnchorSpec converts the configured anchors into the spec the scanner and
// exporter share. Config order is preserved; it defines the column order.
func (c *Config) AnchorSpec() anchor.Spec {
	spec := make(anchor.Spec, 0, len(c.Anchors))

	for _, a := range c.Anchors {
		spec = append(spec, anchor.Anchor{Phrase: a.Phrase, Heading: a.Heading})
	}

	return spec
}
