package suite

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Case is a single labeled invocation of an external tool.
//
// A case is created at suite-definition time and never mutated afterwards.
// The label is printed immediately before the command executes; the command
// and argument vector are passed to the tool verbatim, in order.
type Case struct {
	// Label identifies the case in output, filters and the journal.
	Label string `yaml:"label"`

	// Command is the external tool to invoke. A bare name resolves via
	// PATH; a path (absolute or relative) is used as-is.
	Command string `yaml:"command"`

	// Args is the ordered argument vector for the command.
	Args []string `yaml:"args,omitempty"`
}

// CommandLine renders the case as a single shell-style line.
// Used for plan listings and dry-run echo output.
func (c Case) CommandLine() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return c.Command + " " + strings.Join(c.Args, " ")
}

// Suite is an ordered, immutable list of cases.
//
// Order is execution order. Cases never run concurrently, and a failing
// case never halts or skips the cases after it.
type Suite struct {
	// Name identifies the suite in summaries and journal rows.
	Name string `yaml:"name"`

	// Description explains what the suite checks.
	Description string `yaml:"description,omitempty"`

	// Cases lists the invocations in execution order.
	Cases []Case `yaml:"cases"`
}

// Len returns the number of cases in the suite.
func (s Suite) Len() int { return len(s.Cases) }

// Filter returns a copy of the suite containing only the cases whose label
// matches the glob pattern (filepath.Match semantics). Declaration order is
// preserved. An empty pattern matches everything.
func (s Suite) Filter(pattern string) (Suite, error) {
	if pattern == "" {
		return s, nil
	}

	out := Suite{Name: s.Name, Description: s.Description}
	for _, c := range s.Cases {
		matched, err := filepath.Match(pattern, c.Label)
		if err != nil {
			return Suite{}, fmt.Errorf("invalid filter pattern %q: %w", pattern, err)
		}
		if matched {
			out.Cases = append(out.Cases, c)
		}
	}
	return out, nil
}

// Validate checks that the suite is structurally sound: a non-empty name,
// at least one case, and per-case label/command. Duplicate labels are
// rejected because labels key journal rows and filter matching.
func (s Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]int, len(s.Cases))
	for i, c := range s.Cases {
		if c.Label == "" {
			return fmt.Errorf("cases[%d]: label is required", i)
		}
		if c.Command == "" {
			return fmt.Errorf("cases[%d]: command is required", i)
		}
		if prev, dup := seen[c.Label]; dup {
			return fmt.Errorf("cases[%d]: duplicate label %q (first used by cases[%d])", i, c.Label, prev)
		}
		seen[c.Label] = i
	}
	return nil
}

// normalize NFC-normalizes every label in place.
// Applied once, at the construction boundary, so downstream comparisons
// (filters, journal keys) never see mixed Unicode compositions.
func (s *Suite) normalize() {
	for i := range s.Cases {
		s.Cases[i].Label = norm.NFC.String(s.Cases[i].Label)
	}
}
