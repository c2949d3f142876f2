package parser

import (
	"regexp"
	"strings"

	"github.com/advisorkit/cas-parser/internal/models"
)

var (
	// AMC headers: "HDFC Mutual Fund", "AXIS MUTUAL FUND" etc.
	amcPattern = regexp.MustCompile(`(?i)\b([A-Z][A-Za-z0-9 .&'\-]{1,60}mutual fund)\b`)

	folioPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfolio\s*(?:no\.?|number)?\s*:?\s*([A-Z0-9][A-Z0-9/\-]*[A-Z0-9])`),
	}
	registrarPattern = regexp.MustCompile(`(?i)\b(CAMS|KFINTECH|KFIN|KARVY)\b`)

	// Transaction history rows: "01-Jan-2024 Purchase 5,000.00 123.456"
	mfTxnPattern = regexp.MustCompile(
		`(?m)^\s*(\d{1,2}[-/][A-Za-z0-9]{2,3}[-/]\d{2,4})\s+` +
			`([A-Za-z][A-Za-z ()/.&\-]*?)\s+` +
			`(-?[\d,]+(?:\.\d+)?)\s+(-?[\d,]+(?:\.\d+)?)\s*$`)
)

// extractMutualFunds locates the non-demat mutual fund section, splits
// it into per-AMC blocks, and yields one folio per block with its
// ISIN-anchored scheme rows. Registrar statements (CAMS/KFintech) scope
// the whole document.
func (e *engine) extractMutualFunds(text string) []models.RawFolio {
	scope := sectionScope(text, e.p.mfStart, e.p.mfEnd)
	if scope == "" {
		return nil
	}

	blocks := splitAMCBlocks(scope)
	var folios []models.RawFolio
	for _, b := range blocks {
		folio := models.RawFolio{
			AMC:         b.amc,
			FolioNumber: firstMatch(b.text, folioPatterns, nil),
		}
		if m := registrarPattern.FindStringSubmatch(b.text); m != nil {
			folio.Registrar = strings.ToUpper(m[1])
		}
		folio.Schemes = extractSchemes(b.text)
		if folio.FolioNumber == "" && len(folio.Schemes) == 0 {
			continue
		}
		folios = append(folios, folio)
	}
	return folios
}

type amcBlock struct {
	amc  string
	text string
}

// splitAMCBlocks cuts the MF scope at each AMC header line. A scope with
// no AMC header becomes a single anonymous block so scheme rows are
// never dropped.
func splitAMCBlocks(scope string) []amcBlock {
	locs := amcPattern.FindAllStringSubmatchIndex(scope, -1)
	if len(locs) == 0 {
		return []amcBlock{{amc: "", text: scope}}
	}
	var blocks []amcBlock
	for i, loc := range locs {
		end := len(scope)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, amcBlock{
			amc:  strings.TrimSpace(scope[loc[2]:loc[3]]),
			text: scope[loc[0]:end],
		})
	}
	return blocks
}

// extractSchemes scans a block for ISIN-anchored scheme rows and binds
// the transaction rows that follow each scheme line to that scheme.
func extractSchemes(block string) []models.RawScheme {
	lines := strings.Split(block, "\n")
	var schemes []models.RawScheme
	seen := map[string]bool{}

	for _, line := range lines {
		loc := isinAny.FindStringIndex(line)
		if loc == nil {
			// Transaction rows belong to the most recent scheme.
			if len(schemes) > 0 {
				if m := mfTxnPattern.FindStringSubmatch(line); m != nil {
					last := &schemes[len(schemes)-1]
					last.Transactions = append(last.Transactions, models.RawTransaction{
						Date:        m[1],
						Description: strings.TrimSpace(m[2]),
						Amount:      m[3],
						Units:       m[4],
					})
				}
			}
			continue
		}
		row, ok := parseHoldingRow(line[loc[0]:])
		if !ok || seen[row.ISIN] {
			continue
		}
		seen[row.ISIN] = true
		schemes = append(schemes, models.RawScheme{
			Name:           row.Name,
			ISIN:           row.ISIN,
			Units:          row.Units,
			NAV:            row.Price,
			Value:          row.Value,
			ClosingBalance: row.Units,
			SchemeType:     SchemeType(row.Name),
		})
	}
	return schemes
}

var (
	policyNumberPattern = regexp.MustCompile(`(?i)\bpolicy\s*(?:no\.?|number)\s*:?\s*([A-Z0-9][A-Z0-9/\-]*)`)

	policyNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:plan|policy)\s*name\s*:?\s*([^\n]+)`),
	}
	policyProviderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\binsurer\s*:?\s*([^\n]+)`),
		regexp.MustCompile(`(?i)\b([A-Z][A-Za-z ]+(?:life|general|health) insurance(?: co\.?| company)?(?: ltd\.?| limited)?)`),
	}
	sumAssuredPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bsum\s*(?:assured|insured)\s*:?\s*(?:rs\.?|inr|₹)?\s*([\d,]+(?:\.\d+)?)`),
	}
	premiumPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bpremium\s*(?:amount)?\s*:?\s*(?:rs\.?|inr|₹)?\s*([\d,]+(?:\.\d+)?)`),
	}
	policyStatusPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:^|\s)status\s*:?\s*([A-Za-z][A-Za-z ]{1,30})$`),
	}
	policyStartPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:commencement|start|issue)\s*date\s*:?\s*([0-9][0-9A-Za-z/\- ]{5,12}[0-9])`),
	}
	policyMaturityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bmaturity\s*date\s*:?\s*([0-9][0-9A-Za-z/\- ]{5,12}[0-9])`),
	}
)

// extractInsurance pulls best-effort policy blocks out of the insurance
// section. Statements without the section yield nothing.
func (e *engine) extractInsurance(text string) []models.RawPolicy {
	if len(e.p.insuranceStart) == 0 {
		return nil
	}
	scope := sectionScope(text, e.p.insuranceStart, e.p.insuranceEnd)
	if scope == "" {
		return nil
	}

	locs := policyNumberPattern.FindAllStringSubmatchIndex(scope, -1)
	var policies []models.RawPolicy
	for i, loc := range locs {
		end := len(scope)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		block := scope[loc[0]:end]
		policies = append(policies, models.RawPolicy{
			PolicyNumber: strings.TrimSpace(scope[loc[2]:loc[3]]),
			Name:         firstMatch(block, policyNamePatterns, nil),
			Provider:     firstMatch(block, policyProviderPatterns, nil),
			SumAssured:   firstMatch(block, sumAssuredPatterns, nil),
			Premium:      firstMatch(block, premiumPatterns, nil),
			Status:       firstMatch(block, policyStatusPatterns, nil),
			StartDate:    firstMatch(block, policyStartPatterns, nil),
			MaturityDate: firstMatch(block, policyMaturityPatterns, nil),
		})
	}
	return policies
}
