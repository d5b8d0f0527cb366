package testutil

// FixedIDGenerator returns the same run identifier every time.
//
// This enables deterministic test execution and golden snapshot comparison:
// the same suite run with the same FixedIDGenerator produces byte-identical
// reports and journal rows.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a generator pinned to the given identifier.
// An empty id defaults to "test-run-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed run identifier.
//
// Implements runner.IDGenerator.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}
