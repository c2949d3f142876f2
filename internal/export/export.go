// Package export serializes parsed statements for downstream tooling:
// the canonical JSON document and a flat holdings CSV for
// spreadsheet-bound workflows.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/advisorkit/cas-parser/internal/diag"
	"github.com/advisorkit/cas-parser/internal/models"
)

// WriteJSON writes the statement as JSON.
func WriteJSON(out io.Writer, st *models.Statement, pretty bool) error {
	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(st)
}

// WriteJSONFile writes the statement JSON to a file.
func WriteJSONFile(path string, st *models.Statement, pretty bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(f, st, pretty)
}

// CSVWriter flattens demat holdings and mutual fund schemes into rows.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the holdings CSV to a file at the given path.
func (w *CSVWriter) WriteToFile(path string, st *models.Statement) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()
	return w.Write(f, st)
}

// Write writes the holdings CSV to the given writer. One row per
// holding/scheme; the PAN in the metadata header is masked.
func (w *CSVWriter) Write(out io.Writer, st *models.Statement) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		if st.Investor.Name != "" {
			writer.Write([]string{"# Investor", st.Investor.Name})
		}
		if st.Investor.PAN != "" {
			writer.Write([]string{"# PAN", diag.MaskPAN(st.Investor.PAN)})
		}
		if st.Meta.StatementPeriod.From != "" || st.Meta.StatementPeriod.To != "" {
			writer.Write([]string{"# Period", st.Meta.StatementPeriod.From + " to " + st.Meta.StatementPeriod.To})
		}
		writer.Write([]string{"# Format", string(st.Meta.Format)})
	}

	header := []string{"Account", "DP Name", "Category", "ISIN", "Name", "Units", "Price", "Value"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	writeBucket := func(acc models.DematAccount, category models.HoldingCategory, holdings []models.Holding) error {
		for _, h := range holdings {
			row := []string{
				acc.BOID,
				acc.DPName,
				string(category),
				h.ISIN,
				h.Name,
				formatAmount(h.Units),
				formatAmount(h.Price),
				formatAmount(h.Value),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
		return nil
	}

	for _, acc := range st.DematAccounts {
		buckets := []struct {
			category models.HoldingCategory
			holdings []models.Holding
		}{
			{models.CategoryEquity, acc.Holdings.Equities},
			{models.CategoryDematMF, acc.Holdings.DematMutualFunds},
			{models.CategoryCorpBond, acc.Holdings.CorporateBonds},
			{models.CategoryGovSecurity, acc.Holdings.GovernmentSecurities},
			{models.CategoryAIF, acc.Holdings.AIFs},
		}
		for _, b := range buckets {
			if err := writeBucket(acc, b.category, b.holdings); err != nil {
				return err
			}
		}
	}

	for _, folio := range st.MutualFunds {
		for _, s := range folio.Schemes {
			row := []string{
				folio.FolioNumber,
				folio.AMC,
				"mutual_fund_" + s.SchemeType,
				s.ISIN,
				s.Name,
				formatAmount(s.Units),
				formatAmount(s.NAV),
				formatAmount(s.Value),
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	return nil
}

func formatAmount(amount float64) string {
	if amount == 0 {
		return ""
	}
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
