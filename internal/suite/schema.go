package suite

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
)

//go:embed schema.cue
var schemaSource []byte

// ValidateSchema checks raw suite YAML against the embedded CUE schema.
// Uses CUE SDK's Go API directly (not CLI subprocess). Schema errors carry
// file positions, so typos point at the offending line.
//
// The schema covers structure only (required fields, types, no unknown
// fields). Semantic rules the schema cannot express, like duplicate labels,
// are enforced by Validate.
func ValidateSchema(filename string, data []byte) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling suite schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Suite"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("looking up #Suite definition: %w", err)
	}

	file, err := cueyaml.Extract(filename, data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	doc := ctx.BuildFile(file)
	if err := doc.Err(); err != nil {
		return fmt.Errorf("building YAML document: %w", err)
	}

	if err := def.Unify(doc).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("suite does not match schema: %w", err)
	}
	return nil
}
