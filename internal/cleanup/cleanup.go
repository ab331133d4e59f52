// Package cleanup handles the post-run offer to empty the reports folder.
// It is a side effect of a successful export and is never reachable from the
// extraction logic.
package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// TerminalConfirmer reads answers from In, re-prompting until it sees an
// accepted token: y, yes, n, or no, case-insensitive.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

// Confirm writes the prompt and loops until the operator answers.
func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	reader := bufio.NewScanner(c.In)

	for {
		fmt.Fprint(c.Out, prompt)

		if !reader.Scan() {
			scanErr := reader.Err()
			if scanErr != nil {
				return false, fmt.Errorf("read answer: %w", scanErr)
			}

			return false, io.ErrUnexpectedEOF
		}

		switch strings.ToLower(strings.TrimSpace(reader.Text())) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Purge removes the named files from dir. Names come from the completed run,
// so only the files that were actually consumed get deleted.
func Purge(dir string, names []string) error {
	for _, name := range names {
		removeErr := os.Remove(filepath.Join(dir, name))
		if removeErr != nil {
			return fmt.Errorf("remove %s: %w", name, removeErr)
		}
	}

	return nil
}
