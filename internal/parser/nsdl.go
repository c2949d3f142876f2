package parser

import (
	"regexp"

	"github.com/advisorkit/cas-parser/internal/models"
)

// NSDLParser handles NSDL consolidated account statements.
//
// NSDL accounts are keyed by a 16-character account number ("IN" + DP ID
// digits + client ID), which doubles as the BO ID; the DP and client IDs
// are embedded in the number itself rather than printed as labels.
type NSDLParser struct {
	engine
}

// NewNSDL builds an NSDL parser.
func NewNSDL() *NSDLParser {
	return &NSDLParser{engine{p: nsdlProfile()}}
}

var nsdlAccountPattern = regexp.MustCompile(`\bIN[0-9]{14}\b`)

func nsdlProfile() profile {
	return profile{
		dialect:    models.DialectNSDL,
		depository: "nsdl",
		investor:   sharedInvestorPatterns(),

		sections:  nsdlSections,
		deriveIDs: nsdlDeriveIDs,
		// BO IDs come straight from the account number; no positional scan.
		boIDPattern: nil,

		dpID:      sharedDPIDPatterns,
		dpName:    sharedDPNamePatterns,
		clientID:  sharedClientIDPatterns,
		status:    sharedStatusPatterns,
		bsda:      sharedBSDAPatterns,
		nominee:   sharedNomineePatterns,
		subStatus: sharedSubStatusPatterns,
		acctEmail: sharedEmailPatterns,

		noHoldings: sharedNoHoldingsMarkers,

		mfStart: []string{"mutual fund folios", "mutual fund units held", "mf folios"},
		mfEnd:   sharedMFEndMarkers,

		insuranceStart: []string{"life insurance", "insurance policies", "insurance details"},
		insuranceEnd:   sharedInsuranceEndMarkers,
	}
}

// nsdlSections splits the text at each distinct account number, in
// appearance order, bounded by the next distinct account number.
func nsdlSections(text string) []accountSection {
	locs := nsdlAccountPattern.FindAllStringIndex(text, -1)
	seen := map[string]bool{}
	var uniq [][]int
	for _, loc := range locs {
		id := text[loc[0]:loc[1]]
		if seen[id] {
			continue
		}
		seen[id] = true
		uniq = append(uniq, loc)
	}

	var secs []accountSection
	for i, loc := range uniq {
		end := len(text)
		if i+1 < len(uniq) {
			end = uniq[i+1][0]
		}
		secs = append(secs, accountSection{text: text[loc[0]:end], start: loc[0]})
	}
	return secs
}

// nsdlDeriveIDs unpacks the leading account number: the full 16 chars
// are the BO ID, the first 8 ("IN" + 6 digits) the DP ID, the last 8 the
// client ID.
func nsdlDeriveIDs(sectionText string, acc *models.RawDematAccount) {
	m := nsdlAccountPattern.FindString(sectionText)
	if m == "" {
		return
	}
	acc.BOID = m
	acc.DPID = m[:8]
	acc.ClientID = m[8:]
}
