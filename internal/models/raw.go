package models

// Raw* types are what the dialect parsers emit: leaf values stay as the
// strings captured from the statement text. The formatter owns all
// coercion to typed values, so parsers never fail on a malformed number
// or date — they just pass the text along.

// RawStatement is the pre-normalization parse result.
type RawStatement struct {
	Dialect       Dialect
	Investor      RawInvestor
	DematAccounts []RawDematAccount
	MutualFunds   []RawFolio
	Insurance     []RawPolicy
	PeriodFrom    string
	PeriodTo      string
}

// RawInvestor mirrors Investor with uncoerced fields.
type RawInvestor struct {
	Name    string
	PAN     string
	Address string
	Email   string
	Mobile  string
	CASID   string
	Pincode string
}

// RawDematAccount is one account section as the parser saw it. Holdings
// arrive pre-categorized but uncoerced.
type RawDematAccount struct {
	DPID           string
	DPName         string
	BOID           string
	ClientID       string
	DepositoryType string
	Holdings       []RawHolding
	Status         string
	BSDA           string
	Nominee        string
	SubStatus      string
	Email          string
}

// RawHolding is one matched holdings row.
type RawHolding struct {
	ISIN     string
	Name     string
	Units    string
	Price    string
	Value    string
	Category HoldingCategory
}

// RawFolio is one non-demat mutual fund folio.
type RawFolio struct {
	AMC         string
	FolioNumber string
	Registrar   string
	Schemes     []RawScheme
}

// RawScheme is one scheme row inside a folio.
type RawScheme struct {
	Name           string
	ISIN           string
	Units          string
	NAV            string
	Value          string
	ClosingBalance string
	SchemeType     string
	Transactions   []RawTransaction
}

// RawTransaction is one folio transaction history row.
type RawTransaction struct {
	Date        string
	Description string
	Amount      string
	Units       string
}

// RawPolicy is one insurance policy block.
type RawPolicy struct {
	PolicyNumber string
	Name         string
	Provider     string
	SumAssured   string
	Premium      string
	Status       string
	StartDate    string
	MaturityDate string
}
