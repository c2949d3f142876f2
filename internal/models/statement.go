package models

// Dialect identifies the issuer format of a CAS document.
type Dialect string

const (
	DialectCDSL     Dialect = "cdsl"
	DialectNSDL     Dialect = "nsdl"
	DialectCAMS     Dialect = "cams"
	DialectKFintech Dialect = "kfintech"
	DialectUnknown  Dialect = "unknown"
)

// HoldingCategory is the instrument class a demat holding belongs to.
// Categorization is a total function: every holding lands in exactly one bucket.
type HoldingCategory string

const (
	CategoryEquity       HoldingCategory = "equities"
	CategoryDematMF      HoldingCategory = "demat_mutual_funds"
	CategoryCorpBond     HoldingCategory = "corporate_bonds"
	CategoryGovSecurity  HoldingCategory = "government_securities"
	CategoryAIF          HoldingCategory = "aifs"
)

// Statement is the final normalized output of one parse invocation.
// The top-level keys and field shapes are a stable contract read by
// downstream systems (client records, plan snapshots); do not rename.
type Statement struct {
	Investor      Investor          `json:"investor"`
	DematAccounts []DematAccount    `json:"demat_accounts"`
	MutualFunds   []MutualFundFolio `json:"mutual_funds"`
	Insurance     Insurance         `json:"insurance"`
	Summary       Summary           `json:"summary"`
	Meta          Meta              `json:"meta"`
}

// Investor holds the identity block. All fields default to "" — absence
// is informational, not an error.
type Investor struct {
	Name    string `json:"name"`
	PAN     string `json:"pan"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	CASID   string `json:"cas_id"`
	Pincode string `json:"pincode"`
}

// DematAccount is one depository account. Value is always recomputed from
// the contained holdings at formatting time, never stored independently.
type DematAccount struct {
	DPID           string         `json:"dp_id"`
	DPName         string         `json:"dp_name"`
	BOID           string         `json:"bo_id"`
	ClientID       string         `json:"client_id"`
	DepositoryType string         `json:"depository_type"` // "cdsl" or "nsdl"
	Holdings       Holdings       `json:"holdings"`
	AdditionalInfo AdditionalInfo `json:"additional_info"`
	Value          float64        `json:"value"`
}

// Holdings splits an account's securities into the five instrument buckets.
type Holdings struct {
	Equities             []Holding `json:"equities"`
	DematMutualFunds     []Holding `json:"demat_mutual_funds"`
	CorporateBonds       []Holding `json:"corporate_bonds"`
	GovernmentSecurities []Holding `json:"government_securities"`
	AIFs                 []Holding `json:"aifs"`
}

// Holding is a single security position.
type Holding struct {
	ISIN  string  `json:"isin"`
	Name  string  `json:"name"`
	Units float64 `json:"units"`
	Price float64 `json:"price"`
	Value float64 `json:"value"`
}

// AdditionalInfo carries the secondary per-account attributes.
type AdditionalInfo struct {
	Status    string `json:"status"`
	BSDA      string `json:"bsda"`
	Nominee   string `json:"nominee"`
	SubStatus string `json:"sub_status"`
	Email     string `json:"email"`
}

// MutualFundFolio is a non-demat folio held directly with an AMC.
type MutualFundFolio struct {
	AMC         string   `json:"amc"`
	FolioNumber string   `json:"folio_number"`
	Registrar   string   `json:"registrar"`
	Schemes     []Scheme `json:"schemes"`
	Value       float64  `json:"value"`
}

// Scheme is one mutual fund scheme inside a folio.
type Scheme struct {
	Name           string        `json:"name"`
	ISIN           string        `json:"isin"`
	Units          float64       `json:"units"`
	NAV            float64       `json:"nav"`
	Value          float64       `json:"value"`
	ClosingBalance float64       `json:"closing_balance"`
	SchemeType     string        `json:"scheme_type"` // equity, debt or hybrid
	Transactions   []Transaction `json:"transactions"`
}

// Transaction is one folio transaction history row.
type Transaction struct {
	Date        string  `json:"date"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Units       float64 `json:"units"`
}

// Insurance groups the policy records found in the statement.
type Insurance struct {
	Policies []Policy `json:"policies"`
}

// Policy is a life/health insurance policy record.
type Policy struct {
	PolicyNumber string  `json:"policy_number"`
	Name         string  `json:"name"`
	Provider     string  `json:"provider"`
	SumAssured   float64 `json:"sum_assured"`
	Premium      float64 `json:"premium"`
	Status       string  `json:"status"`
	StartDate    string  `json:"start_date"`
	MaturityDate string  `json:"maturity_date"`
}

// Summary holds recomputed aggregates. Printed totals in the statement
// text are untrusted and never read.
type Summary struct {
	Accounts   AccountsSummary `json:"accounts"`
	TotalValue float64         `json:"total_value"`
}

// AccountsSummary breaks the aggregates down per account class.
type AccountsSummary struct {
	Demat       ClassSummary `json:"demat"`
	MutualFunds ClassSummary `json:"mutual_funds"`
	Insurance   ClassSummary `json:"insurance"`
}

// ClassSummary is a count plus value total for one account class.
type ClassSummary struct {
	Count      int     `json:"count"`
	TotalValue float64 `json:"total_value"`
}

// Period is the statement coverage window, ISO dates or "".
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Meta carries diagnostics-oriented metadata. TrackingID correlates log
// events across pipeline stages and has no effect on parsing output.
type Meta struct {
	Format          Dialect `json:"format"`
	GeneratedAt     string  `json:"generated_at"`
	StatementPeriod Period  `json:"statement_period"`
	ParserVersion   string  `json:"parser_version"`
	TrackingID      string  `json:"tracking_id"`
}
