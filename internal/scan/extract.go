package scan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/meterops/mrrweave/internal/anchor"
)

// ErrFieldParse indicates the text after an anchor label did not parse as an
// integer. This means the report layout has drifted in a way that invalidates
// the positional assumptions, so the whole run must halt rather than emit
// silently wrong data.
var ErrFieldParse = errors.New("invalid data, report format may have changed")

// Extract converts the matched anchor lines of one report into typed field
// values. An anchor that never matched yields a missing marker, which is not
// an error; a matched line whose value slice is non-numeric is fatal.
func Extract(anchors anchor.Spec, anchorLines []string) ([]FieldValue, error) {
	fields := make([]FieldValue, len(anchorLines))

	for i, line := range anchorLines {
		if line == "" {
			continue
		}

		remainder := sliceFrom(line, fieldValueStart)

		value, err := strconv.Atoi(strings.TrimSpace(remainder))
		if err != nil {
			return nil, fmt.Errorf("%w: field %q", ErrFieldParse, anchors[i].Phrase)
		}

		fields[i] = FieldValue{Value: value, Present: true}
	}

	return fields, nil
}

func sliceFrom(line string, start int) string {
	if len(line) <= start {
		return ""
	}

	return line[start:]
}
