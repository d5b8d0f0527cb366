package cli

import (
	"fmt"

	"github.com/mlkit/smoke/internal/suite"
)

// suiteSource is one suite selected for a run or listing, tagged with the
// file it came from. Path is empty for the built-in toolkit suite.
type suiteSource struct {
	Path  string
	Suite suite.Suite
}

// resolveSuites turns the positional arguments of run/list into loaded
// suites. No arguments selects the built-in toolkit suite, parameterized
// by paths; otherwise every argument is a suite file, loaded and kept in
// argument order.
func resolveSuites(args []string, paths suite.Paths) ([]suiteSource, error) {
	if len(args) == 0 {
		return []suiteSource{{Suite: suite.Builtin(paths)}}, nil
	}

	sources := make([]suiteSource, 0, len(args))
	for _, path := range args {
		s, err := suite.Load(path)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: failed to load suite", ErrCodeSuiteRead), err)
		}
		sources = append(sources, suiteSource{Path: path, Suite: *s})
	}
	return sources, nil
}

// filterSuites applies the label glob to every suite, preserving suite
// order. A suite whose cases all drop out stays listed with zero cases.
func filterSuites(sources []suiteSource, pattern string) ([]suiteSource, error) {
	if pattern == "" {
		return sources, nil
	}

	for i := range sources {
		filtered, err := sources[i].Suite.Filter(pattern)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: invalid --filter pattern", ErrCodeFilter), err)
		}
		sources[i].Suite = filtered
	}
	return sources, nil
}
