// Package parser normalizes extracted product records into summaries.
package parser

import (
	"strings"

	"blinkwatch/models"
)

// Summarize projects records into summaries, preserving order. Records whose
// name contains "22k" in any casing are dropped entirely.
func Summarize(records []models.ProductRecord) []models.ProductSummary {
	summaries := make([]models.ProductSummary, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.ProductName), "22k") {
			continue
		}
		summaries = append(summaries, models.ProductSummary{
			ProductID:      rec.ProductID,
			ProductName:    rec.ProductName,
			Brand:          rec.Brand,
			Sizes:          rec.Sizes,
			Price:          rec.Price,
			MRP:            rec.MRP,
			Discount:       rec.Discount,
			Rating:         rec.Rating,
			RatingCount:    rec.RatingCount,
			LandingPageURL: rec.LandingPageURL,
			Coupon:         normalizeCoupon(rec.CouponData),
		})
	}
	return summaries
}

// normalizeCoupon flattens the nested coupon structure. A missing structure
// or a zero couponDiscount means no coupon.
func normalizeCoupon(data *models.CouponData) *models.Coupon {
	if data == nil || data.CouponDiscount == 0 {
		return nil
	}
	return &models.Coupon{
		Code:      data.CouponDescription.CouponCode,
		Discount:  data.CouponDiscount,
		BestPrice: data.CouponDescription.BestPrice,
	}
}
