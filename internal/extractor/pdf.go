package extractor

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// minTextLength is the semantic floor applied after normalization: a
// decode that "succeeded" but produced less text than this is treated
// as a failed extraction (likely a non-CAS or scanned document).
const minTextLength = 100

// Extract reads a possibly encrypted CAS PDF and returns normalized text.
//
// Password handling: the supplied password is tried as-is, then trimmed,
// uppercased and lowercased (users often enter PAN-derived passwords in
// inconsistent case), then an empty password for unprotected files. The
// first variant that decrypts the document wins.
//
// Extraction tries the structured library first and falls back to the
// external pdftotext command when the library cannot decode the fonts.
func Extract(data []byte, password string) (string, error) {
	if len(data) == 0 {
		return "", NewError(ReasonEmpty, nil)
	}

	text, libErr := extractWithLibrary(data, password)
	if libErr == nil && isReadableText(text) {
		return finalize(text)
	}

	// A password failure is definitive — retrying another method with the
	// same passwords cannot succeed.
	if extErr, ok := libErr.(*ExtractionError); ok &&
		(extErr.Reason == ReasonWrongPassword || extErr.Reason == ReasonPasswordRequired) {
		return "", extErr
	}

	popplerText, popplerErr := extractWithPdftotext(data, password)
	if popplerErr == nil && isReadableText(popplerText) {
		return finalize(popplerText)
	}

	if libErr != nil {
		return "", NewError(ReasonCorrupted, libErr)
	}
	return "", NewError(ReasonTooShort, nil)
}

// passwordVariants returns the ordered decryption attempts for a supplied
// password, deduplicated, always ending with "" for unprotected files.
func passwordVariants(password string) []string {
	var variants []string
	seen := map[string]bool{}
	add := func(v string) {
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	if password != "" {
		add(password)
		add(strings.TrimSpace(password))
		add(strings.ToUpper(strings.TrimSpace(password)))
		add(strings.ToLower(strings.TrimSpace(password)))
	}
	add("")
	return variants
}

// extractWithLibrary opens the document via ledongthuc/pdf and walks the
// extraction method cascade. The library panics on malformed files, so
// everything is wrapped in a recover.
func extractWithLibrary(data []byte, password string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewError(ReasonCorrupted, fmt.Errorf("pdf library crashed: %v", r))
		}
	}()

	variants := passwordVariants(password)
	idx := 0
	pw := func() string {
		// Called repeatedly by the reader until a variant decrypts the
		// file; returning "" after the last variant stops the attempts.
		if idx < len(variants) {
			v := variants[idx]
			idx++
			return v
		}
		return ""
	}

	r, openErr := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), pw)
	if openErr != nil {
		lower := strings.ToLower(openErr.Error())
		if strings.Contains(lower, "password") || strings.Contains(lower, "encrypt") {
			if password == "" {
				return "", NewError(ReasonPasswordRequired, openErr)
			}
			return "", NewError(ReasonWrongPassword, openErr)
		}
		return "", NewError(ReasonCorrupted, openErr)
	}

	numPages := r.NumPage()
	if numPages == 0 {
		return "", NewError(ReasonCorrupted, fmt.Errorf("pdf has no pages"))
	}

	// Method 1: row-based extraction (best layout preservation)
	pages := extractByRow(r, numPages)
	if isReadableText(joinPages(pages)) {
		return joinPages(pages), nil
	}

	// Method 2: coordinate-based row reconstruction from raw content
	pages = extractByContent(r, numPages)
	if isReadableText(joinPages(pages)) {
		return joinPages(pages), nil
	}

	// Method 3: per-page plain text with font maps
	pages = extractByPagePlainText(r, numPages)
	if isReadableText(joinPages(pages)) {
		return joinPages(pages), nil
	}

	// Method 4: whole-document plain text
	plain := extractByReaderPlainText(r)
	return plain, nil
}

// finalize normalizes the raw text and applies the minimum-length gate.
func finalize(text string) (string, error) {
	normalized := Normalize(text)
	if len(normalized) < minTextLength {
		return "", NewError(ReasonTooShort, nil)
	}
	return normalized, nil
}

func joinPages(pages []string) string {
	return strings.Join(pages, "\n")
}

// textQuality returns the ratio of readable ASCII characters to total.
// A strict ASCII check: identity-encoded fonts produce accented garbage
// that unicode.IsLetter would wrongly accept.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"%&@#!?+=*₹", r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// commonWords that appear in virtually all CAS documents. If the decoded
// text contains none of these, it is likely garbage.
var commonWords = []string{
	"account", "statement", "holding", "demat", "depository",
	"isin", "folio", "portfolio", "mutual fund", "securities",
	"balance", "value", "investor", "period",
}

func containsCommonWords(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// isReadableText checks that text is long enough, mostly readable ASCII,
// and contains at least one word a CAS would carry.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	return containsCommonWords(text)
}

// extractWithPdftotext shells out to poppler's pdftotext as a last
// resort. Its -upw flag takes the user password, so the same variant
// order is replayed here.
func extractWithPdftotext(data []byte, password string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	tmp, err := os.CreateTemp("", "cas-*.pdf")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", err
	}
	tmp.Close()

	var lastErr error
	for _, variant := range passwordVariants(password) {
		args := []string{"-layout"}
		if variant != "" {
			args = append(args, "-upw", variant)
		}
		args = append(args, tmp.Name(), "-")
		out, err := exec.Command("pdftotext", args...).Output()
		if err != nil {
			lastErr = err
			continue
		}
		text := strings.TrimSpace(string(out))
		if text != "" {
			return text, nil
		}
		lastErr = fmt.Errorf("pdftotext produced no output")
	}
	return "", lastErr
}

// Method 1: GetTextByRow — best for well-structured PDFs.
func extractByRow(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// Method 2: Page.Content() — groups text pieces by Y coordinate to
// reconstruct rows, then sorts each row by X.
func extractByContent(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		if len(content.Text) == 0 {
			continue
		}

		type textItem struct {
			x float64
			s string
		}
		rowMap := make(map[int][]textItem)
		for _, t := range content.Text {
			if strings.TrimSpace(t.S) == "" {
				continue
			}
			yKey := int(math.Round(t.Y))
			rowMap[yKey] = append(rowMap[yKey], textItem{x: t.X, s: t.S})
		}

		yKeys := make([]int, 0, len(rowMap))
		for y := range rowMap {
			yKeys = append(yKeys, y)
		}
		// PDF Y goes bottom-to-top
		sort.Sort(sort.Reverse(sort.IntSlice(yKeys)))

		var lines []string
		for _, y := range yKeys {
			items := rowMap[y]
			sort.Slice(items, func(a, b int) bool {
				return items[a].x < items[b].x
			})
			var parts []string
			var prevX float64
			for j, item := range items {
				if j > 0 && item.x-prevX > 15 {
					// large gap — column separator
					parts = append(parts, "  ")
				}
				parts = append(parts, item.s)
				prevX = item.x
			}
			line := strings.TrimSpace(strings.Join(parts, ""))
			if line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages
}

// Method 3: per-page plain text with font maps.
func extractByPagePlainText(r *pdf.Reader, numPages int) []string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		fontNames := page.Fonts()
		fonts := make(map[string]*pdf.Font)
		for _, name := range fontNames {
			f := page.Font(name)
			fonts[name] = &f
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			pages = append(pages, text)
		}
	}
	return pages
}

// Method 4: Reader.GetPlainText — whole-document extraction.
func extractByReaderPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
