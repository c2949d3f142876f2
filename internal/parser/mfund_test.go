package parser

import (
	"testing"
)

func TestExtractMutualFundsWithTransactions(t *testing.T) {
	text := `Mutual Fund Units Held
Axis Mutual Fund
Folio No : 910111213
INF846K01EW2 Axis Bluechip Fund Direct Growth 500.250 52.10 26063.03
01-Apr-2024 Purchase 5,000.00 96.153
15-May-2024 Redemption -2,000.00 -38.461

Notes:
end of statement`

	e := &engine{p: cdslProfile()}
	folios := e.extractMutualFunds(text)
	if len(folios) != 1 {
		t.Fatalf("got %d folios, want 1", len(folios))
	}
	folio := folios[0]
	if folio.AMC != "Axis Mutual Fund" {
		t.Errorf("amc = %q", folio.AMC)
	}
	if folio.FolioNumber != "910111213" {
		t.Errorf("folio number = %q", folio.FolioNumber)
	}
	if len(folio.Schemes) != 1 {
		t.Fatalf("got %d schemes, want 1", len(folio.Schemes))
	}

	scheme := folio.Schemes[0]
	if len(scheme.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2: %+v", len(scheme.Transactions), scheme.Transactions)
	}
	buy := scheme.Transactions[0]
	if buy.Date != "01-Apr-2024" || buy.Description != "Purchase" || buy.Amount != "5,000.00" || buy.Units != "96.153" {
		t.Errorf("purchase row = %+v", buy)
	}
	sell := scheme.Transactions[1]
	if sell.Description != "Redemption" || sell.Amount != "-2,000.00" {
		t.Errorf("redemption row = %+v", sell)
	}
}

// An MF section with scheme rows but no AMC header still yields a folio.
func TestExtractMutualFundsAnonymousBlock(t *testing.T) {
	text := `MF Folios
Folio No : 445566
INF109K01BL4 ICICI Prudential Liquid Fund 12.500 310.00 3875.00`

	e := &engine{p: cdslProfile()}
	folios := e.extractMutualFunds(text)
	if len(folios) != 1 {
		t.Fatalf("got %d folios, want 1", len(folios))
	}
	if folios[0].AMC != "" {
		t.Errorf("amc = %q, want empty for anonymous block", folios[0].AMC)
	}
	if len(folios[0].Schemes) != 1 {
		t.Fatalf("schemes = %+v", folios[0].Schemes)
	}
	if folios[0].Schemes[0].SchemeType != "debt" {
		t.Errorf("scheme type = %q, want debt for a liquid fund", folios[0].Schemes[0].SchemeType)
	}
}

// AMC blocks that carry neither a folio number nor scheme rows are noise.
func TestExtractMutualFundsSkipsEmptyBlocks(t *testing.T) {
	text := `Mutual Fund Units Held
HDFC Mutual Fund
marketing text without any scheme rows
Axis Mutual Fund
Folio No : 12345
INF846K01EW2 Axis Bluechip Fund 10 52.10 521.00`

	e := &engine{p: cdslProfile()}
	folios := e.extractMutualFunds(text)
	if len(folios) != 1 {
		t.Fatalf("got %d folios, want 1: %+v", len(folios), folios)
	}
	if folios[0].AMC != "Axis Mutual Fund" {
		t.Errorf("amc = %q", folios[0].AMC)
	}
}

func TestExtractMutualFundsNoSection(t *testing.T) {
	e := &engine{p: cdslProfile()}
	if folios := e.extractMutualFunds("a demat-only statement body"); folios != nil {
		t.Errorf("got %+v, want nil without an MF section", folios)
	}
}

func TestExtractInsuranceMultiplePolicies(t *testing.T) {
	text := `Insurance Details
Policy No : POL-001
Plan Name : Smart Shield
Insurer : HDFC Life Insurance Company Limited
Sum Assured : 10,00,000
Premium : 12,500
Policy No : POL-002
Plan Name : Health Protect
Sum Assured : 3,00,000

Glossary
terms follow`

	e := &engine{p: cdslProfile()}
	policies := e.extractInsurance(text)
	if len(policies) != 2 {
		t.Fatalf("got %d policies, want 2: %+v", len(policies), policies)
	}
	if policies[0].PolicyNumber != "POL-001" || policies[0].Name != "Smart Shield" {
		t.Errorf("policy 0 = %+v", policies[0])
	}
	if policies[0].SumAssured != "10,00,000" || policies[0].Premium != "12,500" {
		t.Errorf("policy 0 amounts = %+v", policies[0])
	}
	if policies[1].PolicyNumber != "POL-002" || policies[1].SumAssured != "3,00,000" {
		t.Errorf("policy 1 = %+v", policies[1])
	}
	if policies[1].Premium != "" {
		t.Errorf("policy 1 premium = %q, want empty", policies[1].Premium)
	}
}

func TestExtractInsuranceNoSection(t *testing.T) {
	e := &engine{p: cdslProfile()}
	if got := e.extractInsurance("statement without any policy blocks"); got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}

func TestSplitAMCBlocks(t *testing.T) {
	scope := "intro line\nHDFC Mutual Fund\nblock one\nSBI Mutual Fund\nblock two"
	blocks := splitAMCBlocks(scope)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].amc != "HDFC Mutual Fund" || blocks[1].amc != "SBI Mutual Fund" {
		t.Errorf("amc names = %q, %q", blocks[0].amc, blocks[1].amc)
	}
	if blocks[0].text == "" || blocks[1].text == "" {
		t.Error("block text missing")
	}
}
