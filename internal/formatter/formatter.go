// Package formatter normalizes raw parse output into the stable
// Statement schema. Every leaf coercion here is total: malformed input
// degrades to the documented default ("", 0, empty date) and never
// produces an error.
package formatter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/advisorkit/cas-parser/internal/models"
)

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	// Currency markers are stripped first: the dot in "Rs." would
	// otherwise survive as a decimal point.
	currencyPrefix = regexp.MustCompile(`(?i)^\s*(?:rs\.?|inr|₹)\s*`)
	// Everything except digits, sign and decimal point.
	nonNumeric = regexp.MustCompile(`[^0-9.\-+]`)
)

// CleanString trims and collapses internal whitespace.
func CleanString(s string) string {
	return innerWhitespace.ReplaceAllString(strings.TrimSpace(s), " ")
}

// ParseNumber coerces statement-formatted numbers ("1,23,456.78",
// "₹ 2,500.00") to a float rounded to two decimals. Anything
// non-coercible yields 0.
func ParseNumber(s string) float64 {
	s = currencyPrefix.ReplaceAllString(strings.TrimSpace(s), "")
	cleaned := nonNumeric.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "-" || cleaned == "+" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	f, _ := d.Round(2).Float64()
	return f
}

// dateLayouts cover the formats CAS issuers print.
var dateLayouts = []string{
	"02-Jan-2006", "02-Jan-06",
	"2-Jan-2006", "2-Jan-06",
	"02/01/2006", "2/1/2006", "02/01/06",
	"02-01-2006", "2-1-2006",
	"02 Jan 2006", "2 Jan 2006",
	"02 January 2006", "2 January 2006",
	"2006-01-02",
}

// ParseDate coerces a date string to ISO YYYY-MM-DD, or "" when the
// input matches no known layout.
func ParseDate(s string) string {
	s = CleanString(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// Format walks the raw structure depth-first, coerces every leaf,
// replaces absent substructures with their empty shapes, and recomputes
// all aggregate values from the normalized leaves. Printed totals from
// the statement text are never trusted.
func Format(raw *models.RawStatement, meta models.Meta) *models.Statement {
	st := &models.Statement{
		DematAccounts: []models.DematAccount{},
		MutualFunds:   []models.MutualFundFolio{},
		Insurance:     models.Insurance{Policies: []models.Policy{}},
		Meta:          meta,
	}
	if raw == nil {
		raw = &models.RawStatement{}
	}

	st.Investor = models.Investor{
		Name:    CleanString(raw.Investor.Name),
		PAN:     strings.ToUpper(CleanString(raw.Investor.PAN)),
		Address: CleanString(raw.Investor.Address),
		Email:   strings.ToLower(CleanString(raw.Investor.Email)),
		Mobile:  CleanString(raw.Investor.Mobile),
		CASID:   CleanString(raw.Investor.CASID),
		Pincode: CleanString(raw.Investor.Pincode),
	}

	for _, acc := range raw.DematAccounts {
		st.DematAccounts = append(st.DematAccounts, formatAccount(acc))
	}
	for _, folio := range raw.MutualFunds {
		st.MutualFunds = append(st.MutualFunds, formatFolio(folio))
	}
	for _, pol := range raw.Insurance {
		st.Insurance.Policies = append(st.Insurance.Policies, formatPolicy(pol))
	}

	st.Meta.StatementPeriod = models.Period{
		From: ParseDate(raw.PeriodFrom),
		To:   ParseDate(raw.PeriodTo),
	}

	st.Summary = calculateSummary(st)
	return st
}

func formatAccount(raw models.RawDematAccount) models.DematAccount {
	acc := models.DematAccount{
		DPID:           CleanString(raw.DPID),
		DPName:         CleanString(raw.DPName),
		BOID:           CleanString(raw.BOID),
		ClientID:       CleanString(raw.ClientID),
		DepositoryType: CleanString(raw.DepositoryType),
		Holdings: models.Holdings{
			Equities:             []models.Holding{},
			DematMutualFunds:     []models.Holding{},
			CorporateBonds:       []models.Holding{},
			GovernmentSecurities: []models.Holding{},
			AIFs:                 []models.Holding{},
		},
		AdditionalInfo: models.AdditionalInfo{
			Status:    CleanString(raw.Status),
			BSDA:      CleanString(raw.BSDA),
			Nominee:   CleanString(raw.Nominee),
			SubStatus: CleanString(raw.SubStatus),
			Email:     strings.ToLower(CleanString(raw.Email)),
		},
	}

	total := decimal.Zero
	for _, rh := range raw.Holdings {
		h := models.Holding{
			ISIN:  strings.ToUpper(CleanString(rh.ISIN)),
			Name:  CleanString(rh.Name),
			Units: ParseNumber(rh.Units),
			Price: ParseNumber(rh.Price),
			Value: ParseNumber(rh.Value),
		}
		total = total.Add(decimal.NewFromFloat(h.Value))

		switch rh.Category {
		case models.CategoryDematMF:
			acc.Holdings.DematMutualFunds = append(acc.Holdings.DematMutualFunds, h)
		case models.CategoryCorpBond:
			acc.Holdings.CorporateBonds = append(acc.Holdings.CorporateBonds, h)
		case models.CategoryGovSecurity:
			acc.Holdings.GovernmentSecurities = append(acc.Holdings.GovernmentSecurities, h)
		case models.CategoryAIF:
			acc.Holdings.AIFs = append(acc.Holdings.AIFs, h)
		default:
			acc.Holdings.Equities = append(acc.Holdings.Equities, h)
		}
	}

	// Account value is always the recomputed sum of its holdings.
	acc.Value = round2(total)
	return acc
}

func formatFolio(raw models.RawFolio) models.MutualFundFolio {
	folio := models.MutualFundFolio{
		AMC:         CleanString(raw.AMC),
		FolioNumber: CleanString(raw.FolioNumber),
		Registrar:   strings.ToUpper(CleanString(raw.Registrar)),
		Schemes:     []models.Scheme{},
	}

	total := decimal.Zero
	for _, rs := range raw.Schemes {
		s := models.Scheme{
			Name:           CleanString(rs.Name),
			ISIN:           strings.ToUpper(CleanString(rs.ISIN)),
			Units:          ParseNumber(rs.Units),
			NAV:            ParseNumber(rs.NAV),
			Value:          ParseNumber(rs.Value),
			ClosingBalance: ParseNumber(rs.ClosingBalance),
			SchemeType:     CleanString(rs.SchemeType),
			Transactions:   []models.Transaction{},
		}
		if s.SchemeType == "" {
			s.SchemeType = "equity"
		}
		for _, rt := range rs.Transactions {
			s.Transactions = append(s.Transactions, models.Transaction{
				Date:        ParseDate(rt.Date),
				Description: CleanString(rt.Description),
				Amount:      ParseNumber(rt.Amount),
				Units:       ParseNumber(rt.Units),
			})
		}
		total = total.Add(decimal.NewFromFloat(s.Value))
		folio.Schemes = append(folio.Schemes, s)
	}

	folio.Value = round2(total)
	return folio
}

func formatPolicy(raw models.RawPolicy) models.Policy {
	return models.Policy{
		PolicyNumber: CleanString(raw.PolicyNumber),
		Name:         CleanString(raw.Name),
		Provider:     CleanString(raw.Provider),
		SumAssured:   ParseNumber(raw.SumAssured),
		Premium:      ParseNumber(raw.Premium),
		Status:       CleanString(raw.Status),
		StartDate:    ParseDate(raw.StartDate),
		MaturityDate: ParseDate(raw.MaturityDate),
	}
}

// calculateSummary recomputes every aggregate strictly from the
// normalized leaves.
func calculateSummary(st *models.Statement) models.Summary {
	dematTotal := decimal.Zero
	for _, acc := range st.DematAccounts {
		dematTotal = dematTotal.Add(decimal.NewFromFloat(acc.Value))
	}
	mfTotal := decimal.Zero
	for _, folio := range st.MutualFunds {
		mfTotal = mfTotal.Add(decimal.NewFromFloat(folio.Value))
	}
	insTotal := decimal.Zero
	for _, pol := range st.Insurance.Policies {
		insTotal = insTotal.Add(decimal.NewFromFloat(pol.SumAssured))
	}

	return models.Summary{
		Accounts: models.AccountsSummary{
			Demat: models.ClassSummary{
				Count:      len(st.DematAccounts),
				TotalValue: round2(dematTotal),
			},
			MutualFunds: models.ClassSummary{
				Count:      len(st.MutualFunds),
				TotalValue: round2(mfTotal),
			},
			Insurance: models.ClassSummary{
				Count:      len(st.Insurance.Policies),
				TotalValue: round2(insTotal),
			},
		},
		TotalValue: round2(dematTotal.Add(mfTotal).Add(insTotal)),
	}
}

// Validate is a defensive structural check used for diagnostics, not a
// user-facing gate. Total coercions should make these impossible.
func Validate(st *models.Statement) []string {
	var warnings []string
	if st == nil {
		return []string{"statement is nil"}
	}
	if st.DematAccounts == nil {
		warnings = append(warnings, "demat_accounts is nil, want empty slice")
	}
	if st.MutualFunds == nil {
		warnings = append(warnings, "mutual_funds is nil, want empty slice")
	}
	if st.Insurance.Policies == nil {
		warnings = append(warnings, "insurance.policies is nil, want empty slice")
	}
	for i, acc := range st.DematAccounts {
		h := acc.Holdings
		if h.Equities == nil || h.DematMutualFunds == nil || h.CorporateBonds == nil ||
			h.GovernmentSecurities == nil || h.AIFs == nil {
			warnings = append(warnings, "demat account holdings bucket is nil at index "+strconv.Itoa(i))
		}
	}
	return warnings
}
