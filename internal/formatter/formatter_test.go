package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advisorkit/cas-parser/internal/models"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Rahul   Sharma  ", "Rahul Sharma"},
		{"Zerodha\tBroking\nLimited", "Zerodha Broking Limited"},
		{"", ""},
		{"   ", ""},
		{"already clean", "already clean"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanString(tt.input), "CleanString(%q)", tt.input)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"25000.00", 25000},
		{"1,23,456.78", 123456.78},
		{"₹ 2,500.00", 2500},
		{"Rs. 1,000", 1000},
		{"-2,000.00", -2000},
		{"150.505", 150.51},
		{"--", 0},
		{"NA", 0},
		{"", 0},
		{"abc", 0},
		{"-", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseNumber(tt.input), "ParseNumber(%q)", tt.input)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"01-Apr-2024", "2024-04-01"},
		{"1-Apr-24", "2024-04-01"},
		{"30/06/2024", "2024-06-30"},
		{"30-06-2024", "2024-06-30"},
		{"02 January 2024", "2024-01-02"},
		{"2024-06-30", "2024-06-30"},
		{"  01-Apr-2024  ", "2024-04-01"},
		{"not a date", ""},
		{"", ""},
		{"32-Apr-2024", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDate(tt.input), "ParseDate(%q)", tt.input)
	}
}

func TestFormatNilRawYieldsEmptyShapes(t *testing.T) {
	st := Format(nil, models.Meta{Format: models.DialectCDSL})
	require.NotNil(t, st)

	assert.NotNil(t, st.DematAccounts)
	assert.Empty(t, st.DematAccounts)
	assert.NotNil(t, st.MutualFunds)
	assert.NotNil(t, st.Insurance.Policies)
	assert.Zero(t, st.Summary.TotalValue)
	assert.Empty(t, Validate(st))
}

func TestFormatCoercesLeaves(t *testing.T) {
	raw := &models.RawStatement{
		Dialect: models.DialectCDSL,
		Investor: models.RawInvestor{
			Name:  "  Rahul   Sharma ",
			PAN:   "abcde1234f",
			Email: "Rahul.Sharma@Example.COM",
		},
		DematAccounts: []models.RawDematAccount{
			{
				DPID:           "12345678",
				DPName:         " Zerodha  Broking Limited ",
				BOID:           "1234567800012345",
				ClientID:       "00012345",
				DepositoryType: "cdsl",
				Holdings: []models.RawHolding{
					{ISIN: "ine002a01018", Name: "Reliance Industries", Units: "10", Price: "2,500.00", Value: "25,000.00", Category: models.CategoryEquity},
					{ISIN: "INF204K01XI3", Name: "Nippon ETF", Units: "100", Price: "45.50", Value: "4,550.00", Category: models.CategoryDematMF},
				},
			},
		},
		PeriodFrom: "01-Apr-2024",
		PeriodTo:   "30-Jun-2024",
	}

	st := Format(raw, models.Meta{Format: models.DialectCDSL, ParserVersion: "2.1.0"})

	assert.Equal(t, "Rahul Sharma", st.Investor.Name)
	assert.Equal(t, "ABCDE1234F", st.Investor.PAN)
	assert.Equal(t, "rahul.sharma@example.com", st.Investor.Email)

	require.Len(t, st.DematAccounts, 1)
	acc := st.DematAccounts[0]
	assert.Equal(t, "Zerodha Broking Limited", acc.DPName)

	require.Len(t, acc.Holdings.Equities, 1)
	eq := acc.Holdings.Equities[0]
	assert.Equal(t, "INE002A01018", eq.ISIN)
	assert.Equal(t, 10.0, eq.Units)
	assert.Equal(t, 2500.0, eq.Price)
	assert.Equal(t, 25000.0, eq.Value)

	require.Len(t, acc.Holdings.DematMutualFunds, 1)
	assert.NotNil(t, acc.Holdings.CorporateBonds)
	assert.NotNil(t, acc.Holdings.GovernmentSecurities)
	assert.NotNil(t, acc.Holdings.AIFs)

	// Account value is the recomputed holding sum.
	assert.Equal(t, 29550.0, acc.Value)

	assert.Equal(t, "2024-04-01", st.Meta.StatementPeriod.From)
	assert.Equal(t, "2024-06-30", st.Meta.StatementPeriod.To)

	assert.Empty(t, Validate(st))
}

func TestFormatMalformedLeavesDegrade(t *testing.T) {
	raw := &models.RawStatement{
		DematAccounts: []models.RawDematAccount{
			{
				Holdings: []models.RawHolding{
					{ISIN: "INE002A01018", Name: "Odd Row", Units: "??", Price: "--", Value: "garbage"},
				},
			},
		},
		PeriodFrom: "someday",
	}

	st := Format(raw, models.Meta{})
	require.Len(t, st.DematAccounts, 1)
	h := st.DematAccounts[0].Holdings.Equities[0]
	assert.Zero(t, h.Units)
	assert.Zero(t, h.Price)
	assert.Zero(t, h.Value)
	assert.Equal(t, "", st.Meta.StatementPeriod.From)
}

func TestFormatSchemeDefaultsAndFolioValue(t *testing.T) {
	raw := &models.RawStatement{
		MutualFunds: []models.RawFolio{
			{
				AMC:         "HDFC Mutual Fund",
				FolioNumber: "12345678/90",
				Registrar:   "cams",
				Schemes: []models.RawScheme{
					{Name: "HDFC Flexi Cap", ISIN: "INF179K01YV8", Units: "150.500", NAV: "1200.00", Value: "180600.00"},
					{Name: "HDFC Liquid", ISIN: "INF179K01AB1", Units: "10", NAV: "100.00", Value: "1000.00", SchemeType: "debt",
						Transactions: []models.RawTransaction{
							{Date: "01-Apr-2024", Description: " Purchase ", Amount: "5,000.00", Units: "96.153"},
						}},
				},
			},
		},
	}

	st := Format(raw, models.Meta{})
	require.Len(t, st.MutualFunds, 1)
	folio := st.MutualFunds[0]
	assert.Equal(t, "CAMS", folio.Registrar)
	assert.Equal(t, 181600.0, folio.Value)

	require.Len(t, folio.Schemes, 2)
	assert.Equal(t, "equity", folio.Schemes[0].SchemeType, "missing scheme type defaults to equity")
	assert.Equal(t, "debt", folio.Schemes[1].SchemeType)
	assert.NotNil(t, folio.Schemes[0].Transactions)

	require.Len(t, folio.Schemes[1].Transactions, 1)
	txn := folio.Schemes[1].Transactions[0]
	assert.Equal(t, "2024-04-01", txn.Date)
	assert.Equal(t, "Purchase", txn.Description)
	assert.Equal(t, 5000.0, txn.Amount)
}

// total_value must equal the sum of every demat holding, every scheme
// and every policy sum assured; printed totals never enter the math.
func TestSummaryConsistency(t *testing.T) {
	raw := &models.RawStatement{
		DematAccounts: []models.RawDematAccount{
			{Holdings: []models.RawHolding{
				{ISIN: "INE002A01018", Name: "A", Units: "1", Value: "25000.00", Category: models.CategoryEquity},
				{ISIN: "IN0020220011", Name: "B", Units: "1", Value: "2040.00", Category: models.CategoryGovSecurity},
			}},
			{Holdings: []models.RawHolding{
				{ISIN: "INE009A01021", Name: "C", Units: "1", Value: "7500.00", Category: models.CategoryEquity},
			}},
		},
		MutualFunds: []models.RawFolio{
			{FolioNumber: "1", Schemes: []models.RawScheme{{ISIN: "INF1", Name: "S", Value: "4550.00"}}},
		},
		Insurance: []models.RawPolicy{
			{PolicyNumber: "POL-1", SumAssured: "5,00,000"},
		},
	}

	st := Format(raw, models.Meta{})

	assert.Equal(t, 2, st.Summary.Accounts.Demat.Count)
	assert.Equal(t, 34540.0, st.Summary.Accounts.Demat.TotalValue)
	assert.Equal(t, 1, st.Summary.Accounts.MutualFunds.Count)
	assert.Equal(t, 4550.0, st.Summary.Accounts.MutualFunds.TotalValue)
	assert.Equal(t, 1, st.Summary.Accounts.Insurance.Count)
	assert.Equal(t, 500000.0, st.Summary.Accounts.Insurance.TotalValue)

	assert.Equal(t, 34540.0+4550.0+500000.0, st.Summary.TotalValue)
}

func TestValidateFlagsNilSlices(t *testing.T) {
	warnings := Validate(&models.Statement{})
	assert.NotEmpty(t, warnings)

	assert.Equal(t, []string{"statement is nil"}, Validate(nil))
}
