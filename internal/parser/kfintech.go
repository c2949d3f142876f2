package parser

import "github.com/advisorkit/cas-parser/internal/models"

// KFintechParser handles KFintech (formerly Karvy) registrar statements
// at the same reduced capability as CAMS: investor identity, folios and
// statement period only.
type KFintechParser struct {
	engine
}

// NewKFintech builds a KFintech parser.
func NewKFintech() *KFintechParser {
	return &KFintechParser{engine{p: kfintechProfile()}}
}

func kfintechProfile() profile {
	return profile{
		dialect:  models.DialectKFintech,
		investor: sharedInvestorPatterns(),

		mfStart: nil,
		mfEnd:   nil,
	}
}
