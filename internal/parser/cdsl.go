package parser

import (
	"regexp"
	"strings"

	"github.com/advisorkit/cas-parser/internal/models"
)

// CDSLParser handles CDSL consolidated account statements.
//
// CDSL layout: one "DP Name:" block per demat account carrying DP ID and
// Client ID, holdings tables keyed by the 16-digit BO ID, then an
// optional "Mutual Fund Units Held" section and insurance details.
type CDSLParser struct {
	engine
}

// NewCDSL builds a CDSL parser. Each call returns an independent
// instance; parsers hold no state across invocations.
func NewCDSL() *CDSLParser {
	return &CDSLParser{engine{p: cdslProfile()}}
}

var (
	cdslSectionStart = regexp.MustCompile(`(?i)DP\s*Name\s*:?`)
	cdslMFBoundary   = regexp.MustCompile(`(?i)(?:MF\s*Folios|Mutual\s*Fund\s*(?:Units\s*Held|Folios))`)
	cdslBOIDPattern  = regexp.MustCompile(`\b[0-9]{16}\b`)

	// Transaction-history blocks also print "DP Name" headers; they are
	// noise, not account sections.
	cdslTransactionNoise = regexp.MustCompile(`(?i)transaction\s+statement|statement\s+of\s+transactions`)
)

func cdslProfile() profile {
	return profile{
		dialect:    models.DialectCDSL,
		depository: "cdsl",
		investor:   sharedInvestorPatterns(),

		sections:    cdslSections,
		boIDPattern: cdslBOIDPattern,

		dpID:      sharedDPIDPatterns,
		dpName:    sharedDPNamePatterns,
		clientID:  sharedClientIDPatterns,
		status:    sharedStatusPatterns,
		bsda:      sharedBSDAPatterns,
		nominee:   sharedNomineePatterns,
		subStatus: sharedSubStatusPatterns,
		acctEmail: sharedEmailPatterns,

		noHoldings: sharedNoHoldingsMarkers,

		mfStart: []string{"mutual fund units held", "mf folios", "mutual fund folios"},
		mfEnd:   sharedMFEndMarkers,

		insuranceStart: []string{"life insurance", "insurance policies", "insurance details"},
		insuranceEnd:   sharedInsuranceEndMarkers,
	}
}

// cdslSections splits the text at each "DP Name:" marker, bounded by the
// next marker, the mutual fund section, or end of text. Sections must
// carry both a DP ID and a Client ID; near-empty matches and
// transaction-history noise are dropped.
func cdslSections(text string) []accountSection {
	starts := cdslSectionStart.FindAllStringIndex(text, -1)
	var secs []accountSection
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		sec := text[loc[0]:end]
		if mfLoc := cdslMFBoundary.FindStringIndex(sec); mfLoc != nil {
			sec = sec[:mfLoc[0]]
		}

		lower := strings.ToLower(sec)
		if !strings.Contains(lower, "dp id") || !strings.Contains(lower, "client id") {
			continue
		}
		if len(strings.TrimSpace(sec)) < 60 {
			continue
		}
		head := sec
		if len(head) > 300 {
			head = head[:300]
		}
		if cdslTransactionNoise.MatchString(head) {
			continue
		}
		secs = append(secs, accountSection{text: sec, start: loc[0]})
	}
	return secs
}
