package parser

import (
	"regexp"
	"strings"

	"github.com/advisorkit/cas-parser/internal/models"
)

// engine is the shared extraction state machine. Dialects differ only in
// the profile's regex vocabulary and section markers; the control flow
// here is identical for all of them.
type engine struct {
	p profile
}

func (e *engine) DialectName() string {
	return strings.ToUpper(string(e.p.dialect))
}

// Parse never fails on partial extraction: it returns whatever was
// found, with empty defaults elsewhere. Only unusable input (handled
// upstream by the extractor) aborts a parse.
func (e *engine) Parse(text string) (*models.RawStatement, error) {
	raw := &models.RawStatement{Dialect: e.p.dialect}

	raw.Investor = e.extractInvestor(text)

	if e.p.sections != nil {
		secs := e.p.sections(text)
		accounts := make([]models.RawDematAccount, 0, len(secs))
		for _, sec := range secs {
			accounts = append(accounts, e.extractAccount(sec))
		}
		if e.p.boIDPattern != nil {
			correlateBOIDs(accounts, findBOIDs(text, e.p.boIDPattern))
		}
		e.attachHoldings(text, accounts, secs)
		raw.DematAccounts = accounts
	}

	raw.MutualFunds = e.extractMutualFunds(text)
	raw.Insurance = e.extractInsurance(text)
	raw.PeriodFrom, raw.PeriodTo = extractPeriod(text)

	return raw, nil
}

func (e *engine) extractInvestor(text string) models.RawInvestor {
	inv := models.RawInvestor{}
	inv.Name = firstMatch(text, e.p.investor.name, validName)
	inv.PAN = strings.ToUpper(firstMatch(text, e.p.investor.pan, validPAN))
	inv.Address = firstMatch(text, e.p.investor.address, nil)
	inv.Email = strings.ToLower(firstMatch(text, e.p.investor.email, validEmail))
	inv.Mobile = firstMatch(text, e.p.investor.mobile, validMobile)
	inv.CASID = firstMatch(text, e.p.investor.casID, nil)
	inv.Pincode = firstMatch(text, e.p.investor.pincode, nil)
	return inv
}

func (e *engine) extractAccount(sec accountSection) models.RawDematAccount {
	acc := models.RawDematAccount{DepositoryType: e.p.depository}

	if e.p.deriveIDs != nil {
		e.p.deriveIDs(sec.text, &acc)
	}
	if acc.DPID == "" {
		acc.DPID = firstMatch(sec.text, e.p.dpID, nil)
	}
	if acc.ClientID == "" {
		acc.ClientID = firstMatch(sec.text, e.p.clientID, nil)
	}
	acc.DPName = firstMatch(sec.text, e.p.dpName, nil)

	acc.Status = firstMatch(sec.text, e.p.status, nil)
	acc.BSDA = firstMatch(sec.text, e.p.bsda, nil)
	acc.Nominee = firstMatch(sec.text, e.p.nominee, nil)
	acc.SubStatus = firstMatch(sec.text, e.p.subStatus, nil)
	acc.Email = strings.ToLower(firstMatch(sec.text, e.p.acctEmail, validEmail))

	return acc
}

// attachHoldings binds each account to its holdings sub-section: the
// slice of the document between that account's BO-ID occurrence and the
// next one. Accounts whose BO ID was synthesized (never printed in the
// text) fall back to their own section.
func (e *engine) attachHoldings(text string, accounts []models.RawDematAccount, secs []accountSection) {
	lower := strings.ToLower(text)
	mfBoundary := indexOfAny(lower, e.p.mfStart)

	// First occurrence offset per account BO ID, -1 when absent.
	starts := make([]int, len(accounts))
	for i := range accounts {
		starts[i] = -1
		if accounts[i].BOID != "" {
			starts[i] = strings.Index(text, accounts[i].BOID)
		}
	}

	for i := range accounts {
		scope := secs[i].text
		if starts[i] >= 0 {
			end := len(text)
			for j := i + 1; j < len(accounts); j++ {
				if starts[j] > starts[i] {
					end = starts[j]
					break
				}
			}
			if mfBoundary > starts[i] && mfBoundary < end {
				end = mfBoundary
			}
			scope = text[starts[i]:end]
		}
		accounts[i].Holdings = e.extractHoldings(scope)
	}
}

// extractHoldings runs the ISIN-anchored row scan over one account's
// holdings scope. An explicit "no holdings" marker short-circuits to an
// empty result. Each ISIN is kept once per account.
func (e *engine) extractHoldings(scope string) []models.RawHolding {
	if containsAny(strings.ToLower(scope), e.p.noHoldings) {
		return nil
	}

	var holdings []models.RawHolding
	seen := map[string]bool{}
	for _, line := range strings.Split(scope, "\n") {
		loc := isinAny.FindStringIndex(line)
		if loc == nil {
			continue
		}
		row, ok := parseHoldingRow(line[loc[0]:])
		if !ok || seen[row.ISIN] {
			continue
		}
		seen[row.ISIN] = true
		holdings = append(holdings, models.RawHolding{
			ISIN:     row.ISIN,
			Name:     row.Name,
			Units:    row.Units,
			Price:    row.Price,
			Value:    row.Value,
			Category: Categorize(row.ISIN, row.Name),
		})
	}
	return holdings
}

// boOccurrence is one BO-ID hit in document order.
type boOccurrence struct {
	id    string
	start int
}

// findBOIDs scans the whole document for BO-ID-shaped tokens, keeping
// unique IDs in first-appearance order.
func findBOIDs(text string, pat *regexp.Regexp) []boOccurrence {
	var out []boOccurrence
	seen := map[string]bool{}
	for _, loc := range pat.FindAllStringIndex(text, -1) {
		id := text[loc[0]:loc[1]]
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, boOccurrence{id: id, start: loc[0]})
	}
	return out
}

// correlateBOIDs maps the Nth BO-ID occurrence to the Nth account
// section, synthesizing dp_id+client_id when the scan found nothing for
// an account.
//
// This positional mapping is brittle by construction: a document whose
// account sections and BO-ID occurrences are ordered differently will
// mis-attribute holdings. Known limitation, kept deliberately.
func correlateBOIDs(accounts []models.RawDematAccount, boIDs []boOccurrence) {
	for i := range accounts {
		if i < len(boIDs) {
			accounts[i].BOID = boIDs[i].id
			continue
		}
		if accounts[i].DPID != "" || accounts[i].ClientID != "" {
			accounts[i].BOID = accounts[i].DPID + accounts[i].ClientID
		}
	}
}
