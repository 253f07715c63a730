// Package models defines data structures for the watcher.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ProductRecord is a product object decoded from a candidate span found in
// the listing page text. Only productId, productName and landingPageUrl are
// inspected; the remaining fields pass through untouched, so they stay raw.
type ProductRecord struct {
	ProductID      json.RawMessage `json:"productId"`
	ProductName    string          `json:"productName"`
	Brand          json.RawMessage `json:"brand"`
	Sizes          json.RawMessage `json:"sizes"`
	Price          json.RawMessage `json:"price"`
	MRP            json.RawMessage `json:"mrp"`
	Discount       json.RawMessage `json:"discount"`
	Rating         json.RawMessage `json:"rating"`
	RatingCount    json.RawMessage `json:"ratingCount"`
	LandingPageURL string          `json:"landingPageUrl"`
	CouponData     *CouponData     `json:"couponData"`
}

// HasProductID reports whether the record carries a usable product id.
// Absent, null, empty-string and zero ids all disqualify the record.
func (r *ProductRecord) HasProductID() bool {
	raw := strings.TrimSpace(string(r.ProductID))
	switch raw {
	case "", "null", `""`, "false":
		return false
	}
	// JSON spells numeric zero several ways (0, 0.0, -0, 0e0); all of them
	// disqualify. A quoted "0" is a non-empty string and stays usable.
	if f, err := strconv.ParseFloat(raw, 64); err == nil && f == 0 {
		return false
	}
	return true
}

// CouponData is the optional nested coupon structure on a ProductRecord.
type CouponData struct {
	CouponDiscount    float64           `json:"couponDiscount"`
	CouponDescription CouponDescription `json:"couponDescription"`
}

// CouponDescription holds the coupon details nested inside CouponData.
type CouponDescription struct {
	CouponCode string  `json:"couponCode"`
	BestPrice  float64 `json:"bestPrice"`
}

// Coupon is the normalized coupon attached to a ProductSummary.
type Coupon struct {
	Code      string  `json:"code"`
	Discount  float64 `json:"discount"`
	BestPrice float64 `json:"bestPrice"`
}

// ProductSummary is the minimal projection of a ProductRecord. Coupon is nil
// (JSON null) when the record has no applicable coupon.
type ProductSummary struct {
	ProductID      json.RawMessage `json:"productId"`
	ProductName    string          `json:"productName"`
	Brand          json.RawMessage `json:"brand,omitempty"`
	Sizes          json.RawMessage `json:"sizes,omitempty"`
	Price          json.RawMessage `json:"price,omitempty"`
	MRP            json.RawMessage `json:"mrp,omitempty"`
	Discount       json.RawMessage `json:"discount,omitempty"`
	Rating         json.RawMessage `json:"rating,omitempty"`
	RatingCount    json.RawMessage `json:"ratingCount,omitempty"`
	LandingPageURL string          `json:"landingPageUrl"`
	Coupon         *Coupon         `json:"coupon"`
}

// ScanResult holds the outcome of one watch cycle's fetch-and-extract pass.
// ExtractionOK is false iff zero product records were decoded from the
// listing page, regardless of how many survived summarization.
type ScanResult struct {
	SignalFound  bool
	ExtractionOK bool
	Products     []ProductSummary
}
