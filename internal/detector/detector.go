// Package detector classifies normalized CAS text into an issuer dialect
// using weighted keyword scoring with a fixed priority decision rule.
package detector

import (
	"strings"

	"github.com/advisorkit/cas-parser/internal/models"
)

// Marker sets per dialect, matched case-insensitively as substrings.
var (
	cdslMarkers = []string{
		"cdsl",
		"central depository services",
		"dp name",
		"dp id",
		"bo id",
	}
	nsdlMarkers = []string{
		"nsdl",
		"national securities depository",
		"nsdl consolidated account statement",
	}
	camsMarkers = []string{
		"cams",
		"computer age management services",
		"camsonline",
	}
	kfintechMarkers = []string{
		"kfintech",
		"karvy",
	}
)

// Scores is the per-dialect marker hit count, used for diagnostics only.
type Scores map[models.Dialect]int

// Detect classifies text into a dialect. It is a pure function: the same
// text always yields the same tag. DialectUnknown is a valid output the
// caller must turn into a user-actionable error.
func Detect(text string) models.Dialect {
	d, _ := DetectWithScores(text)
	return d
}

// DetectWithScores is Detect plus the raw marker scores for logging.
//
// The decision rule is priority-ordered, not highest-score: CDSL needs
// two of its five markers because "dp id"/"bo id" style labels also show
// up in NSDL text; the remaining dialects match on a single marker.
func DetectWithScores(text string) (models.Dialect, Scores) {
	lower := strings.ToLower(text)

	scores := Scores{
		models.DialectCDSL:     countMarkers(lower, cdslMarkers),
		models.DialectNSDL:     countMarkers(lower, nsdlMarkers),
		models.DialectCAMS:     countMarkers(lower, camsMarkers),
		models.DialectKFintech: countMarkers(lower, kfintechMarkers),
	}

	switch {
	case scores[models.DialectCDSL] >= 2:
		return models.DialectCDSL, scores
	case scores[models.DialectNSDL] >= 1:
		return models.DialectNSDL, scores
	case scores[models.DialectCAMS] >= 1:
		return models.DialectCAMS, scores
	case scores[models.DialectKFintech] >= 1:
		return models.DialectKFintech, scores
	}

	// Last-resort fallback: generic demat statements without issuer
	// branding are overwhelmingly CDSL in practice.
	if strings.Contains(lower, "demat") && strings.Contains(lower, "account") {
		return models.DialectCDSL, scores
	}

	return models.DialectUnknown, scores
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if strings.Contains(lower, m) {
			n++
		}
	}
	return n
}
