package parser

import "github.com/advisorkit/cas-parser/internal/models"

// CAMSParser handles CAMS registrar statements at reduced capability:
// investor identity, non-demat mutual fund folios and the statement
// period. CAMS statements carry no demat accounts.
type CAMSParser struct {
	engine
}

// NewCAMS builds a CAMS parser.
func NewCAMS() *CAMSParser {
	return &CAMSParser{engine{p: camsProfile()}}
}

func camsProfile() profile {
	return profile{
		dialect:  models.DialectCAMS,
		investor: sharedInvestorPatterns(),

		// Registrar statements are one big mutual fund section.
		mfStart: nil,
		mfEnd:   nil,
	}
}
