// Package casparser wires the pipeline together: extraction, dialect
// detection, parsing and formatting, with typed fatal errors and
// structured diagnostics along the way.
package casparser

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advisorkit/cas-parser/internal/detector"
	"github.com/advisorkit/cas-parser/internal/diag"
	"github.com/advisorkit/cas-parser/internal/extractor"
	"github.com/advisorkit/cas-parser/internal/formatter"
	"github.com/advisorkit/cas-parser/internal/models"
	"github.com/advisorkit/cas-parser/internal/parser"
)

// ParserVersion is stamped into meta.parser_version.
const ParserVersion = "2.1.0"

// MaxFileSize caps the input at 50MB.
const MaxFileSize = 50 << 20

// SupportedDialects names the dialects with full extraction support;
// surfaced in user-facing error messages.
var SupportedDialects = []string{"CDSL", "NSDL"}

// UnknownFormatError is returned when the detector cannot classify the
// document. The message is user-actionable and names the supported set.
type UnknownFormatError struct{}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf(
		"unknown CAS format: unable to identify the depository or registrar that issued this statement (currently supported: %s)",
		strings.Join(SupportedDialects, ", "))
}

// Service runs the parse pipeline. Each invocation owns all of its
// intermediate state, so one Service may serve concurrent callers.
type Service struct {
	collector diag.Collector

	// extract is swappable in tests; defaults to extractor.Extract.
	extract func(data []byte, password string) (string, error)
}

// New builds a Service reporting diagnostics to the given collector.
// A nil collector discards all events.
func New(collector diag.Collector) *Service {
	if collector == nil {
		collector = diag.Discard{}
	}
	return &Service{
		collector: collector,
		extract:   extractor.Extract,
	}
}

// ParseFile reads and parses a CAS PDF from disk.
func (s *Service) ParseFile(path, password string) (*models.Statement, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, extractor.NewError(extractor.ReasonNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if info.Size() == 0 {
		return nil, extractor.NewError(extractor.ReasonEmpty, nil)
	}
	if info.Size() > MaxFileSize {
		return nil, extractor.NewError(extractor.ReasonTooLarge, nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return s.Parse(data, password)
}

// Parse runs the full pipeline over raw PDF bytes. Fatal conditions
// (unreadable input, wrong password, unknown dialect) return typed
// errors; everything else degrades to empty fields in the result.
func (s *Service) Parse(data []byte, password string) (*models.Statement, error) {
	if len(data) == 0 {
		return nil, extractor.NewError(extractor.ReasonEmpty, nil)
	}
	if len(data) > MaxFileSize {
		return nil, extractor.NewError(extractor.ReasonTooLarge, nil)
	}

	// The tracking ID is derived from the content so that repeated
	// parses of the same document correlate to the same ID.
	trackingID := uuid.NewSHA1(uuid.NameSpaceOID, data).String()
	started := time.Now()

	text, err := s.extract(data, password)
	if err != nil {
		s.collector.Record("extract.failed", map[string]any{
			"tracking_id": trackingID,
			"error":       err.Error(),
		})
		return nil, err
	}
	s.collector.Record("extract.done", map[string]any{
		"tracking_id": trackingID,
		"chars":       len(text),
		"duration_ms": time.Since(started).Milliseconds(),
	})

	dialect, scores := detector.DetectWithScores(text)
	s.collector.Record("detect.done", map[string]any{
		"tracking_id": trackingID,
		"dialect":     string(dialect),
		"scores":      scores,
	})
	if dialect == models.DialectUnknown {
		return nil, &UnknownFormatError{}
	}

	p, err := parser.New(dialect)
	if err != nil {
		return nil, err
	}

	parseStarted := time.Now()
	raw, err := p.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%s parse failed: %w", p.DialectName(), err)
	}
	s.collector.Record("parse.done", map[string]any{
		"tracking_id":    trackingID,
		"dialect":        string(dialect),
		"demat_accounts": len(raw.DematAccounts),
		"mutual_funds":   len(raw.MutualFunds),
		"pan":            diag.MaskPAN(raw.Investor.PAN),
		"duration_ms":    time.Since(parseStarted).Milliseconds(),
	})

	st := formatter.Format(raw, models.Meta{
		Format:        dialect,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		ParserVersion: ParserVersion,
		TrackingID:    trackingID,
	})

	for _, warning := range formatter.Validate(st) {
		s.collector.Record("structure_warning", map[string]any{
			"tracking_id": trackingID,
			"warning":     warning,
		})
	}

	// A structurally complete but empty result is still returned; the
	// warning tells the caller manual review is warranted.
	if st.Investor.Name == "" && st.Investor.PAN == "" && len(st.DematAccounts) == 0 {
		s.collector.Record("minimal_data", map[string]any{
			"tracking_id": trackingID,
			"dialect":     string(dialect),
		})
	}

	s.collector.Record("pipeline.done", map[string]any{
		"tracking_id": trackingID,
		"total_value": st.Summary.TotalValue,
		"duration_ms": time.Since(started).Milliseconds(),
	})

	return st, nil
}
