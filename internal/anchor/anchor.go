// Package anchor defines the anchor phrases used to locate data lines inside
// the Missing Register Readings reports, paired with the CSV headings for the
// columns they feed.
package anchor

// Anchor pairs a search phrase with the heading of the CSV column its value
// lands in. Phrases are matched as plain substrings: the surrounding text is
// unpredictable (encoding corruption, embedded mail headers), so substring
// search is the only matching strategy that reliably survives.
type Anchor struct {
	Phrase  string
	Heading string
}

// Spec is the ordered anchor list. Position defines both the scan order and
// the left-to-right column order of the output CSV; the order is fixed for
// the duration of a run.
type Spec []Anchor

// cycleHeading is the leading column of every data row.
const cycleHeading = "Cycle"

// Headings returns the CSV heading row: the cycle column followed by one
// heading per anchor, in spec order.
func (s Spec) Headings() []string {
	headings := make([]string, 0, len(s)+1)
	headings = append(headings, cycleHeading)

	for _, a := range s {
		headings = append(headings, a.Heading)
	}

	return headings
}

// Default returns the production anchor list. Each phrase is known to survive
// the text encoding damage in the reports; if a field stops showing up in the
// CSV, check whether the reports changed these strings before anything else.
func Default() Spec {
	return Spec{
		{
			Phrase:  "Total number of PODs requested - On Cycle",
			Heading: "Total Number of PODs Requested on Cycle",
		},
		{
			Phrase:  "Number of PODs OC with readings provided for entire configuration",
			Heading: "Number of PODs with Readings - Entire Config (On Cycle)",
		},
		{
			Phrase:  "Total number of PODs requested - Exceptions",
			Heading: "Total Number of PODs Requested - Exceptions",
		},
		{
			Phrase:  "Number of PODs EXC with readings provided for entire configuration",
			Heading: "Number of PODs EXC with Readings Provided for Entire Configuration",
		},
		{
			Phrase:  "Number of PODs EXC with no readings provided at all",
			Heading: "No Readings Provided at All (Exceptions)",
		},
		{
			Phrase:  "Number of PODs EXC with actual readings provided",
			Heading: "Actual Readings Provided - Exceptions",
		},
		{
			Phrase:  "Number of PODs EXC with estimated readings provided",
			Heading: "Estimated Readings Provided - Exceptions",
		},
	}
}
