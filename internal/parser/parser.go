// Package parser implements the dialect parsers for CAS documents. All
// four dialects share one extraction engine parameterized by a
// per-dialect pattern profile; see engine.go.
package parser

import (
	"fmt"

	"github.com/advisorkit/cas-parser/internal/models"
)

// Parser is the common extraction contract for one issuer dialect.
type Parser interface {
	// Parse takes normalized statement text and returns whatever it
	// could extract; partial results are expected, not errors.
	Parse(text string) (*models.RawStatement, error)
	// DialectName returns the human-readable dialect name.
	DialectName() string
}

// New returns the parser for the given dialect.
func New(d models.Dialect) (Parser, error) {
	switch d {
	case models.DialectCDSL:
		return NewCDSL(), nil
	case models.DialectNSDL:
		return NewNSDL(), nil
	case models.DialectCAMS:
		return NewCAMS(), nil
	case models.DialectKFintech:
		return NewKFintech(), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %q", d)
	}
}
