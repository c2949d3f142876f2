package parser

import (
	"testing"

	"github.com/advisorkit/cas-parser/internal/models"
)

const nsdlSample = `NSDL Consolidated Account Statement
National Securities Depository Limited
Statement Period : 01-Apr-2024 to 30-Jun-2024

Name : Ms. Anita Desai
PAN : FGHIJ5678K
Email : anita.desai@example.com

IN30012310000001 HDFC Securities Limited
Status : Active
INE009A01021 Infosys Ltd 25 1500.00 37500.00
INE040A01034 HDFC Bank Ltd 40 1600.00 64000.00

IN30045620000002 ICICI Direct
INE123456789 Sovereign Gold Bond Series 8 6000.00 48000.00`

func TestNSDLParseHappyPath(t *testing.T) {
	raw, err := NewNSDL().Parse(nsdlSample)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if raw.Dialect != models.DialectNSDL {
		t.Errorf("dialect = %q, want nsdl", raw.Dialect)
	}
	if raw.Investor.Name != "Anita Desai" {
		t.Errorf("investor name = %q", raw.Investor.Name)
	}
	if raw.Investor.PAN != "FGHIJ5678K" {
		t.Errorf("investor PAN = %q", raw.Investor.PAN)
	}

	if len(raw.DematAccounts) != 2 {
		t.Fatalf("got %d accounts, want 2", len(raw.DematAccounts))
	}

	first := raw.DematAccounts[0]
	if first.BOID != "IN30012310000001" {
		t.Errorf("bo id = %q", first.BOID)
	}
	if first.DPID != "IN300123" {
		t.Errorf("dp id = %q, want the first 8 chars of the account number", first.DPID)
	}
	if first.ClientID != "10000001" {
		t.Errorf("client id = %q, want the last 8 chars of the account number", first.ClientID)
	}
	if first.DepositoryType != "nsdl" {
		t.Errorf("depository type = %q", first.DepositoryType)
	}
	if len(first.Holdings) != 2 {
		t.Fatalf("account 0 has %d holdings, want 2: %+v", len(first.Holdings), first.Holdings)
	}
	if first.Holdings[0].ISIN != "INE009A01021" || first.Holdings[1].ISIN != "INE040A01034" {
		t.Errorf("account 0 holdings = %+v", first.Holdings)
	}

	second := raw.DematAccounts[1]
	if second.BOID != "IN30045620000002" {
		t.Errorf("second bo id = %q", second.BOID)
	}
	if len(second.Holdings) != 1 || second.Holdings[0].ISIN != "INE123456789" {
		t.Errorf("account 1 holdings = %+v", second.Holdings)
	}

	if raw.PeriodFrom != "01-Apr-2024" || raw.PeriodTo != "30-Jun-2024" {
		t.Errorf("period = %q to %q", raw.PeriodFrom, raw.PeriodTo)
	}
}

// The same account number printed on several pages is one account.
func TestNSDLRepeatedAccountNumber(t *testing.T) {
	text := `NSDL statement
IN30012310000001 HDFC Securities page one
INE009A01021 Infosys Ltd 25 1500.00 37500.00
continued for IN30012310000001 on page two
INE040A01034 HDFC Bank Ltd 40 1600.00 64000.00`

	raw, err := NewNSDL().Parse(text)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(raw.DematAccounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(raw.DematAccounts))
	}
	if len(raw.DematAccounts[0].Holdings) != 2 {
		t.Errorf("holdings = %+v, want both rows under the one account", raw.DematAccounts[0].Holdings)
	}
}

func TestNSDLDeriveIDs(t *testing.T) {
	var acc models.RawDematAccount
	nsdlDeriveIDs("header IN30098765432109 rest of the section", &acc)
	if acc.BOID != "IN30098765432109" {
		t.Errorf("bo id = %q", acc.BOID)
	}
	if acc.DPID != "IN300987" {
		t.Errorf("dp id = %q", acc.DPID)
	}
	if acc.ClientID != "65432109" {
		t.Errorf("client id = %q", acc.ClientID)
	}
}

func TestNSDLDeriveIDsNoMatch(t *testing.T) {
	var acc models.RawDematAccount
	nsdlDeriveIDs("no account number here", &acc)
	if acc.BOID != "" || acc.DPID != "" || acc.ClientID != "" {
		t.Errorf("derived IDs from nothing: %+v", acc)
	}
}

func TestNSDLTextWithoutAccounts(t *testing.T) {
	raw, err := NewNSDL().Parse("NSDL Consolidated Account Statement with no account blocks")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(raw.DematAccounts) != 0 {
		t.Errorf("got %d accounts, want 0", len(raw.DematAccounts))
	}
}
