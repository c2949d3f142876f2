package parser

import (
	"regexp"
	"strings"
	"unicode"
)

// Shared field patterns used across all dialects.
var (
	isinToken = regexp.MustCompile(`^IN[A-Z0-9]{10}$`)
	isinAny   = regexp.MustCompile(`\bIN[A-Z0-9]{10}\b`)

	panShape   = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	emailShape = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)

	numericToken = regexp.MustCompile(`^-?[\d,]+(?:\.\d+)?$`)

	// "Period: 01-Apr-2023 to 30-Jun-2023" and the slash/space variants.
	periodPattern = regexp.MustCompile(
		`(?i)period\s*(?:from)?\s*:?\s*` +
			`(\d{1,2}[-/ ](?:[A-Za-z]{3,9}|\d{1,2})[-/ ]\d{2,4})` +
			`\s*(?:to|till|through|[-–])\s*` +
			`(\d{1,2}[-/ ](?:[A-Za-z]{3,9}|\d{1,2})[-/ ]\d{2,4})`)
)

// placeholderTokens are the empty-cell markers statements print inside
// numeric columns.
var placeholderTokens = map[string]bool{
	"--": true, "-": true, "–": true,
	"NA": true, "N.A.": true, "N/A": true, "NIL": true,
}

func isNumericToken(s string) bool {
	return numericToken.MatchString(s) && strings.ContainsAny(s, "0123456789")
}

func isPlaceholderToken(s string) bool {
	return placeholderTokens[strings.ToUpper(s)]
}

// firstMatch runs ordered regex alternatives against text and returns the
// first captured group that passes the validity check. It is total: no
// match, or no valid match, yields "".
func firstMatch(text string, pats []*regexp.Regexp, valid func(string) bool) string {
	for _, pat := range pats {
		for _, m := range pat.FindAllStringSubmatch(text, 8) {
			if len(m) < 2 {
				continue
			}
			candidate := strings.TrimSpace(m[1])
			if candidate == "" {
				continue
			}
			if valid == nil || valid(candidate) {
				return candidate
			}
		}
	}
	return ""
}

// Field validity checks. An invalid candidate is skipped, not an error.

func validPAN(s string) bool {
	return panShape.MatchString(strings.ToUpper(s))
}

func validEmail(s string) bool {
	return emailShape.MatchString(s)
}

// validMobile requires at least 10 digits and rejects masked numbers
// ("98XXXXXX21" style redactions are common in CAS documents).
func validMobile(s string) bool {
	if strings.ContainsAny(s, "Xx*") {
		return false
	}
	return digitCount(s) >= 10
}

func validName(s string) bool {
	if len(s) < 3 || len(s) > 80 {
		return false
	}
	letters := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if letters < 3 {
		return false
	}
	lower := strings.ToLower(s)
	for _, noise := range []string{"statement", "account", "holding", "depository", "address"} {
		if strings.Contains(lower, noise) {
			return false
		}
	}
	return true
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// holdingRow is one ISIN-anchored table row before coercion.
type holdingRow struct {
	ISIN  string
	Name  string
	Units string
	Price string
	Value string
}

// parseHoldingRow splits an ISIN-anchored row into name, quantity and the
// numeric column tail. Column layouts differ between dialects and even
// between tables in one document, so the only stable assumptions are:
// the ISIN comes first, the quantity is the first numeric column, the
// market value is the last, and the price sits just before it.
func parseHoldingRow(line string) (holdingRow, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !isinToken.MatchString(fields[0]) {
		return holdingRow{}, false
	}

	// Walk back over the trailing run of numeric/placeholder columns.
	i := len(fields)
	for i > 1 && (isNumericToken(fields[i-1]) || isPlaceholderToken(fields[i-1])) {
		i--
	}
	run := fields[i:]
	nameFields := fields[1:i]
	if len(nameFields) == 0 || len(run) < 2 {
		return holdingRow{}, false
	}

	row := holdingRow{
		ISIN: fields[0],
		Name: strings.Join(nameFields, " "),
	}
	if isNumericToken(run[0]) {
		row.Units = run[0]
	}

	var numerics []string
	for _, tok := range run[1:] {
		if isNumericToken(tok) {
			numerics = append(numerics, tok)
		}
	}
	if len(numerics) > 0 {
		row.Value = numerics[len(numerics)-1]
	}
	if len(numerics) > 1 {
		row.Price = numerics[len(numerics)-2]
	}
	if row.Units == "" && row.Value == "" {
		return holdingRow{}, false
	}
	return row, true
}

// indexOfAny returns the earliest index of any marker in lower, or -1.
// Callers pass pre-lowercased text; markers must be lowercase.
func indexOfAny(lower string, markers []string) int {
	best := -1
	for _, m := range markers {
		if idx := strings.Index(lower, m); idx >= 0 && (best < 0 || idx < best) {
			best = idx
		}
	}
	return best
}

// sectionScope cuts the substring between the first start marker and the
// first end marker after it. Empty startMarkers means the whole text is
// in scope (registrar statements are one big MF section).
func sectionScope(text string, startMarkers, endMarkers []string) string {
	if len(startMarkers) == 0 {
		return text
	}
	lower := strings.ToLower(text)
	start := indexOfAny(lower, startMarkers)
	if start < 0 {
		return ""
	}
	rest := text[start:]
	if len(endMarkers) > 0 {
		if end := indexOfAny(strings.ToLower(rest[1:]), endMarkers); end >= 0 {
			rest = rest[:end+1]
		}
	}
	return rest
}

// extractPeriod is a best-effort single-regex scan. Absence yields empty
// strings, never an error.
func extractPeriod(text string) (from, to string) {
	m := periodPattern.FindStringSubmatch(text)
	if m == nil {
		return "", ""
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
}

func containsAny(lower string, markers []string) bool {
	return indexOfAny(lower, markers) >= 0
}
