// Package suite defines the smoke-test suite model: an ordered list of
// labeled external-command invocations.
//
// A suite is the unit of execution for the runner. Its cases run strictly
// in declaration order, and the declared order is part of the suite's
// contract: reordering cases changes the suite.
//
// # Suite Format
//
// Suites are defined in YAML files with the following structure:
//
//	name: toolkit-extras
//	description: "extra discretiser checks"
//	cases:
//	  - label: UEW wide bins
//	    command: discretise
//	    args: ["-a", "UEW", "-f", "data/weather.csv", "-A", "0", "-o", "16"]
//
// Unknown fields are rejected at load time so typos surface immediately
// instead of silently dropping cases. Labels must be unique within a suite;
// they key journal rows and --filter matching.
//
// The built-in toolkit suite (Builtin) carries the canonical sanity checks
// for the classification toolkit's three tools: classify, discretise and
// featureselect. It is constructed fresh on every call and never read from
// disk, so the default smoke run needs no external configuration.
//
// # Label Normalization
//
// Labels are NFC-normalized at the construction boundary (both Builtin and
// Load). Two suites whose labels differ only in Unicode composition produce
// identical filter behavior and identical journal keys.
package suite
