package extract

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSpansNoMarker(t *testing.T) {
	texts := []string{
		"",
		"plain page text without any embedded objects",
		`{"someOtherKey": {"nested": 1}}`,
	}
	for _, text := range texts {
		if spans := Spans(text, DefaultMarker); len(spans) != 0 {
			t.Errorf("Spans(%q) = %v, want empty", text, spans)
		}
	}
}

func TestSpansRoundTrip(t *testing.T) {
	embedded := `{"landingPageUrl":"kalyan/coin/101/buy","productId":101,"productName":"Gold Coin","couponData":{"couponDiscount":50,"couponDescription":{"couponCode":"X5","bestPrice":1000}}}`
	text := "window.__myx = {\"searchData\":{\"results\":[" + embedded + "]}};"

	spans := Spans(text, DefaultMarker)
	if len(spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(spans))
	}

	var got, want map[string]interface{}
	if err := json.Unmarshal([]byte(spans[0]), &got); err != nil {
		t.Fatalf("extracted span is not valid JSON: %v", err)
	}
	if err := json.Unmarshal([]byte(embedded), &want); err != nil {
		t.Fatalf("embedded object is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round-trip mismatch:\ngot  %v\nwant %v", got, want)
	}
}

func TestSpansMultipleOccurrences(t *testing.T) {
	text := `noise {"landingPageUrl":"a","productId":1} more {"landingPageUrl":"b","productId":2} tail`
	spans := Spans(text, DefaultMarker)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0] != `{"landingPageUrl":"a","productId":1}` {
		t.Errorf("first span = %q", spans[0])
	}
	if spans[1] != `{"landingPageUrl":"b","productId":2}` {
		t.Errorf("second span = %q", spans[1])
	}
}

func TestSpansNestedMarker(t *testing.T) {
	// A marker nested inside an outer span produces its own span as well;
	// the scan resumes right after each marker, not after each span.
	text := `{"landingPageUrl":"outer","child":{"landingPageUrl":"inner"}}`
	spans := Spans(text, DefaultMarker)
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0] != text {
		t.Errorf("outer span = %q, want full text", spans[0])
	}
	if spans[1] != `{"landingPageUrl":"inner"}` {
		t.Errorf("inner span = %q", spans[1])
	}
}

func TestSpansUnbalancedSkipped(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "truncated at end of text",
			text: `{"landingPageUrl":"a","productId":1`,
			want: 0,
		},
		{
			// The first candidate never closes, but the scan resumes after
			// its marker, so the balanced second candidate is still found.
			name: "truncated candidate does not hide later candidate",
			text: `{"landingPageUrl":"broken","nested":{ {"landingPageUrl":"ok","productId":2}`,
			want: 1,
		},
		{
			// An opening brace inside a string value inflates the depth
			// count, so the candidate never balances before the text ends.
			name: "brace inside string value defeats the depth counter",
			text: `prefix {"landingPageUrl":"a{","productId":1} suffix`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spans := Spans(tt.text, DefaultMarker)
			if len(spans) != tt.want {
				t.Errorf("spans = %v, want %d entries", spans, tt.want)
			}
		})
	}
}

func TestDecodeRecordsProductIDGate(t *testing.T) {
	tests := []struct {
		name string
		span string
		kept bool
	}{
		{name: "numeric id", span: `{"landingPageUrl":"a","productId":101}`, kept: true},
		{name: "string id", span: `{"landingPageUrl":"a","productId":"abc"}`, kept: true},
		{name: "missing id", span: `{"landingPageUrl":"a"}`, kept: false},
		{name: "null id", span: `{"landingPageUrl":"a","productId":null}`, kept: false},
		{name: "empty string id", span: `{"landingPageUrl":"a","productId":""}`, kept: false},
		{name: "zero id", span: `{"landingPageUrl":"a","productId":0}`, kept: false},
		{name: "zero float id", span: `{"landingPageUrl":"a","productId":0.0}`, kept: false},
		{name: "negative zero id", span: `{"landingPageUrl":"a","productId":-0}`, kept: false},
		{name: "exponent zero id", span: `{"landingPageUrl":"a","productId":0e0}`, kept: false},
		{name: "quoted zero id", span: `{"landingPageUrl":"a","productId":"0"}`, kept: true},
		{name: "not json", span: `{"landingPageUrl": truncated`, kept: false},
		{name: "brace inside string value is still valid json", span: `{"landingPageUrl":"a{","productId":1}`, kept: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := DecodeRecords([]string{tt.span})
			if kept := len(records) == 1; kept != tt.kept {
				t.Errorf("DecodeRecords(%q) kept=%v, want %v", tt.span, kept, tt.kept)
			}
		})
	}
}

func TestDecodeRecordsPreservesOrder(t *testing.T) {
	spans := []string{
		`{"landingPageUrl":"first","productId":1}`,
		`not json at all`,
		`{"landingPageUrl":"second","productId":2}`,
	}
	records := DecodeRecords(spans)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0].LandingPageURL != "first" || records[1].LandingPageURL != "second" {
		t.Errorf("order not preserved: %q, %q", records[0].LandingPageURL, records[1].LandingPageURL)
	}
}
