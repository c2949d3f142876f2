package parser

import (
	"strings"

	"github.com/advisorkit/cas-parser/internal/models"
)

// Keyword fallbacks for when the ISIN prefix is ambiguous. Checked in
// this order; the first hit wins.
var (
	govKeywords  = []string{"government", "govt", "gilt", "g-sec", "gsec", "sovereign", "treasury", "state development loan", "sdl"}
	aifKeywords  = []string{"aif", "alternative investment"}
	bondKeywords = []string{"bond", "ncd", "debenture", "secured redeemable", "perpetual debt"}
	fundKeywords = []string{"fund", "etf", "bees"}
)

// Categorize assigns a holding to exactly one of the five instrument
// buckets. This is a best-effort heuristic over ISIN prefixes and name
// keywords, not a security-master lookup: INF-prefixed ISINs are mutual
// fund units, IN followed by a digit marks government issues, everything
// else falls through the name keywords and defaults to equities.
func Categorize(isin, name string) models.HoldingCategory {
	isin = strings.ToUpper(strings.TrimSpace(isin))
	lower := strings.ToLower(name)

	if strings.HasPrefix(isin, "INF") {
		return models.CategoryDematMF
	}
	if len(isin) >= 3 && strings.HasPrefix(isin, "IN") && isin[2] >= '0' && isin[2] <= '9' {
		return models.CategoryGovSecurity
	}

	if containsAny(lower, govKeywords) {
		return models.CategoryGovSecurity
	}
	if containsAny(lower, aifKeywords) {
		return models.CategoryAIF
	}
	if containsAny(lower, bondKeywords) {
		return models.CategoryCorpBond
	}
	if containsAny(lower, fundKeywords) {
		return models.CategoryDematMF
	}

	return models.CategoryEquity
}

// Scheme type keyword sets. Debt is checked before hybrid because names
// like "Corporate Bond Fund" must not land in hybrid via "advantage"
// style marketing suffixes.
var (
	debtSchemeKeywords = []string{
		"liquid", "debt", "gilt", "bond", "overnight", "money market",
		"ultra short", "low duration", "banking & psu", "credit risk",
		"floater", "treasury",
	}
	hybridSchemeKeywords = []string{
		"hybrid", "balanced", "advantage", "multi asset", "arbitrage",
		"equity & debt", "equity and debt",
	}
)

// SchemeType tags a mutual fund scheme as equity, debt or hybrid from
// its name. Unrecognized names default to equity.
func SchemeType(name string) string {
	lower := strings.ToLower(name)
	if containsAny(lower, debtSchemeKeywords) {
		return "debt"
	}
	if containsAny(lower, hybridSchemeKeywords) {
		return "hybrid"
	}
	return "equity"
}
