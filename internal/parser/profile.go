package parser

import (
	"regexp"

	"github.com/advisorkit/cas-parser/internal/models"
)

// accountSection is one account-scoped slice of the document.
type accountSection struct {
	text  string
	start int // offset in the full text
}

// investorPatterns holds the ordered regex alternatives per investor
// field. The first alternative whose capture passes the field's validity
// check wins; unmatched fields stay empty.
type investorPatterns struct {
	name    []*regexp.Regexp
	pan     []*regexp.Regexp
	address []*regexp.Regexp
	email   []*regexp.Regexp
	mobile  []*regexp.Regexp
	casID   []*regexp.Regexp
	pincode []*regexp.Regexp
}

// profile parameterizes the shared extraction engine with one dialect's
// regex vocabulary and section boundaries. The algorithmic shape
// (sectioning → field extraction → BO correlation → holdings scan →
// categorization) is identical across dialects.
type profile struct {
	dialect    models.Dialect
	depository string // "cdsl" / "nsdl"; "" for registrar dialects

	investor investorPatterns

	// sections splits the text into account-scoped substrings. nil for
	// registrar dialects, which carry no demat accounts.
	sections func(text string) []accountSection

	// deriveIDs fills account identifiers that are part of the section
	// marker itself (NSDL account numbers embed DP and client IDs).
	deriveIDs func(sectionText string, acc *models.RawDematAccount)

	// boIDPattern drives the document-wide positional BO-ID scan. nil
	// when the dialect derives BO IDs directly.
	boIDPattern *regexp.Regexp

	dpID      []*regexp.Regexp
	dpName    []*regexp.Regexp
	clientID  []*regexp.Regexp
	status    []*regexp.Regexp
	bsda      []*regexp.Regexp
	nominee   []*regexp.Regexp
	subStatus []*regexp.Regexp
	acctEmail []*regexp.Regexp

	noHoldings []string

	mfStart []string
	mfEnd   []string

	insuranceStart []string
	insuranceEnd   []string
}

// Investor field vocabulary shared by all dialects. Dialect profiles
// prepend their own label variants where the layout differs.
var (
	sharedNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*(?:investor|holder|account holder|first holder)?\s*name\s*:\s*(?:mr\.?|mrs\.?|ms\.?|shri|smt\.?)?\s*([^\n]+)$`),
		regexp.MustCompile(`(?im)^\s*(?:mr|mrs|ms|shri|smt)\.?\s+([A-Za-z][A-Za-z .']{2,60})\s*$`),
	}
	sharedPANPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bPAN\s*(?:no\.?|number)?\s*:?\s*([A-Za-z]{5}[0-9]{4}[A-Za-z])\b`),
		regexp.MustCompile(`\b([A-Z]{5}[0-9]{4}[A-Z])\b`),
	}
	sharedAddressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^\s*address\s*:?\s*([^\n]{5,200})$`),
	}
	sharedEmailPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bemail(?:\s*id)?\s*:?\s*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})`),
		regexp.MustCompile(`\b([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})\b`),
	}
	sharedMobilePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:mobile|phone|tel|contact)\s*(?:no\.?|number)?\s*:?\s*(\+?[0-9Xx* \-]{8,16})`),
	}
	sharedCASIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bCAS\s*ID\s*:?\s*([A-Z0-9/\-]+)`),
		regexp.MustCompile(`(?i)\bstatement\s*(?:id|no\.?)\s*:?\s*([A-Z0-9/\-]+)`),
	}
	sharedPincodePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpin\s*(?:code)?\s*[:\-]?\s*([1-9][0-9]{5})\b`),
	}
)

func sharedInvestorPatterns() investorPatterns {
	return investorPatterns{
		name:    sharedNamePatterns,
		pan:     sharedPANPatterns,
		address: sharedAddressPatterns,
		email:   sharedEmailPatterns,
		mobile:  sharedMobilePatterns,
		casID:   sharedCASIDPatterns,
		pincode: sharedPincodePatterns,
	}
}

// Per-account field vocabulary shared between the depository dialects.
var (
	sharedDPIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bDP\s*ID\s*:?\s*(IN[0-9]{6}|[0-9]{8})\b`),
	}
	// The DP name often shares a line with the DP/Client ID labels; the
	// capture stops at the first of those.
	sharedDPNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)\bDP\s*Name\s*:?\s*(.+?)\s*(?:DP\s*ID|Client\s*ID|BO\s*ID|$)`),
	}
	sharedClientIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bClient\s*ID\s*:?\s*([0-9]{8})\b`),
	}
	// (?:^|\s) keeps "Sub-Status:" lines from feeding the status field.
	sharedStatusPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:^|\s)status\s*:?\s*([A-Za-z][A-Za-z ]{1,30})$`),
	}
	sharedBSDAPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bBSDA\s*:?\s*([A-Za-z]+)`),
	}
	sharedNomineePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bnominee\s*(?:name)?\s*:?\s*([^\n]+)`),
	}
	sharedSubStatusPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bsub[- ]?status\s*:?\s*([^\n]+)`),
	}
)

var sharedNoHoldingsMarkers = []string{
	"no holdings", "no securities held", "nil holdings", "no balances",
}

var sharedMFEndMarkers = []string{
	"insurance", "notes:", "glossary", "disclaimer",
}

var sharedInsuranceEndMarkers = []string{
	"notes:", "glossary", "disclaimer",
}
