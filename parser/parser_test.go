package parser

import (
	"encoding/json"
	"testing"

	"blinkwatch/models"
)

func record(name string) models.ProductRecord {
	return models.ProductRecord{
		ProductID:      json.RawMessage(`1`),
		ProductName:    name,
		LandingPageURL: "kalyan/" + name,
	}
}

func TestSummarizeDrops22KVariants(t *testing.T) {
	tests := []struct {
		name    string
		product string
		dropped bool
	}{
		{name: "lowercase", product: "22k Gold Coin", dropped: true},
		{name: "uppercase", product: "22K-GOLD", dropped: true},
		{name: "embedded", product: "Coin (22K) 5g", dropped: true},
		{name: "24k kept", product: "24K Gold Coin", dropped: false},
		{name: "no karat", product: "Gold Coin 5g", dropped: false},
		{name: "empty name", product: "", dropped: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summaries := Summarize([]models.ProductRecord{record(tt.product)})
			if dropped := len(summaries) == 0; dropped != tt.dropped {
				t.Errorf("Summarize(%q) dropped=%v, want %v", tt.product, dropped, tt.dropped)
			}
		})
	}
}

func TestSummarizePreservesOrder(t *testing.T) {
	records := []models.ProductRecord{
		record("first coin"),
		record("22k filtered"),
		record("second coin"),
	}
	summaries := Summarize(records)
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}
	if summaries[0].ProductName != "first coin" || summaries[1].ProductName != "second coin" {
		t.Errorf("order not preserved: %q, %q", summaries[0].ProductName, summaries[1].ProductName)
	}
}

func TestSummarizeProjectsFieldsVerbatim(t *testing.T) {
	rec := record("Gold Coin")
	rec.Brand = json.RawMessage(`"Kalyan Jewellers"`)
	rec.Sizes = json.RawMessage(`"2g, 5g"`)
	rec.Price = json.RawMessage(`15000`)
	rec.MRP = json.RawMessage(`17000`)
	rec.Discount = json.RawMessage(`{"label":"(12% OFF)"}`)
	rec.Rating = json.RawMessage(`4.5`)
	rec.RatingCount = json.RawMessage(`132`)

	summaries := Summarize([]models.ProductRecord{rec})
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}

	got := summaries[0]
	if string(got.Brand) != `"Kalyan Jewellers"` {
		t.Errorf("brand = %s", got.Brand)
	}
	if string(got.Price) != `15000` || string(got.MRP) != `17000` {
		t.Errorf("price/mrp = %s/%s", got.Price, got.MRP)
	}
	if string(got.Discount) != `{"label":"(12% OFF)"}` {
		t.Errorf("discount = %s", got.Discount)
	}
	if got.LandingPageURL != rec.LandingPageURL {
		t.Errorf("landing url = %q, want %q", got.LandingPageURL, rec.LandingPageURL)
	}
}

func TestSummarizeCoupon(t *testing.T) {
	tests := []struct {
		name   string
		coupon *models.CouponData
		want   *models.Coupon
	}{
		{
			name:   "absent coupon data",
			coupon: nil,
			want:   nil,
		},
		{
			name:   "zero discount",
			coupon: &models.CouponData{CouponDiscount: 0},
			want:   nil,
		},
		{
			name: "applicable coupon",
			coupon: &models.CouponData{
				CouponDiscount: 50,
				CouponDescription: models.CouponDescription{
					CouponCode: "X5",
					BestPrice:  1000,
				},
			},
			want: &models.Coupon{Code: "X5", Discount: 50, BestPrice: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record("Gold Coin")
			rec.CouponData = tt.coupon
			summaries := Summarize([]models.ProductRecord{rec})
			if len(summaries) != 1 {
				t.Fatalf("summaries = %d, want 1", len(summaries))
			}

			got := summaries[0].Coupon
			if tt.want == nil {
				if got != nil {
					t.Fatalf("coupon = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("coupon = nil, want %+v", tt.want)
			}
			if *got != *tt.want {
				t.Errorf("coupon = %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestSummaryCouponMarshalsAsNull(t *testing.T) {
	summaries := Summarize([]models.ProductRecord{record("Gold Coin")})
	data, err := json.Marshal(summaries[0])
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	coupon, ok := decoded["coupon"]
	if !ok {
		t.Fatal("coupon field missing from summary JSON")
	}
	if string(coupon) != "null" {
		t.Errorf("coupon = %s, want null", coupon)
	}
}
