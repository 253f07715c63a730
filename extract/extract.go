// Package extract locates JSON object literals embedded in rendered page
// text. Product objects are anchored by a known leading key, so the scanner
// looks for that marker and walks forward counting braces until the object
// closes.
package extract

import (
	"encoding/json"
	"strings"

	"blinkwatch/models"
)

// DefaultMarker anchors real product objects inside the page script noise.
const DefaultMarker = `{"landingPageUrl":`

// Spans returns the brace-balanced substrings of text starting at each
// non-overlapping occurrence of marker, in page order. A candidate whose
// braces never close before the text ends is dropped rather than truncated;
// the scan still resumes after its marker, so later candidates are found.
func Spans(text, marker string) []string {
	if marker == "" {
		return nil
	}

	var spans []string
	for from := 0; from < len(text); {
		rel := strings.Index(text[from:], marker)
		if rel < 0 {
			break
		}
		start := from + rel
		if span, ok := balancedSpan(text, start); ok {
			spans = append(spans, span)
		}
		from = start + len(marker)
	}
	return spans
}

// balancedSpan scans forward from start, tracking brace depth, and returns
// the substring ending one past the character where depth returns to zero.
// Braces inside string values are not special-cased; a span broken by one
// simply fails to decode downstream.
func balancedSpan(text string, start int) (string, bool) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
		}
		if depth == 0 {
			return text[start : i+1], true
		}
	}
	return "", false
}

// DecodeRecords parses candidate spans into product records, keeping page
// order. Spans that are not valid JSON are expected noise (truncated scripts,
// unrelated literals) and are skipped silently, as are records without a
// usable product id.
func DecodeRecords(spans []string) []models.ProductRecord {
	records := make([]models.ProductRecord, 0, len(spans))
	for _, span := range spans {
		var rec models.ProductRecord
		if err := json.Unmarshal([]byte(span), &rec); err != nil {
			continue
		}
		if !rec.HasProductID() {
			continue
		}
		records = append(records, rec)
	}
	return records
}
