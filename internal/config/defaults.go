package config

// Default values applied when neither the config file nor the environment
// overrides them.
const (
	// DefaultReportsDir is the drop folder scanned for report files.
	DefaultReportsDir = "reports"
	// DefaultOutput is the consolidated CSV file name.
	DefaultOutput = "output.csv"
	// DefaultCyclesPerBillingMonth is how many read cycles make up one
	// billing month.
	DefaultCyclesPerBillingMonth = 21
)

// DefaultMonthTokens returns the three-letter month abbreviations the reports
// use in their schedule dates. If reports from a particular month stop
// showing up in the CSV, check whether the reports changed their date format
// before suspecting anything else.
func DefaultMonthTokens() []string {
	return []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
}
