package services

import (
	"time"

	"hotel-reservation-backend/models"
)

// Quote is a computed price breakdown. All amounts are in the smallest
// currency unit.
type Quote struct {
	Nights   int   `json:"nights"`
	Subtotal int64 `json:"subtotal"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// NightsBetween counts calendar nights in the half-open interval
// [checkIn, checkOut), minimum 1 for any positive span.
func NightsBetween(checkIn, checkOut time.Time) int {
	in := truncateToDate(checkIn)
	out := truncateToDate(checkOut)
	n := int(out.Sub(in).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ComputeQuote prices a stay. The coupon is assumed already validated; pass nil
// for no discount. Percent discounts round half-up, applied once on the
// subtotal. The discount is clamped so the total never goes negative.
func ComputeQuote(nightlyRate int64, checkIn, checkOut time.Time, coupon *models.Coupon) (Quote, error) {
	if !truncateToDate(checkOut).After(truncateToDate(checkIn)) {
		return Quote{}, ErrInvalidDateRange
	}

	nights := NightsBetween(checkIn, checkOut)
	subtotal := nightlyRate * int64(nights)

	var discount int64
	if coupon != nil {
		switch coupon.DiscountType {
		case models.DiscountTypePercent:
			discount = roundHalfUpPercent(subtotal, coupon.DiscountValue)
		case models.DiscountTypeFixed:
			discount = coupon.DiscountValue
		}
		if discount > subtotal {
			discount = subtotal
		}
		if discount < 0 {
			discount = 0
		}
	}

	return Quote{
		Nights:   nights,
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal - discount,
	}, nil
}

// roundHalfUpPercent computes amount*percent/100 rounded half-up in integer
// arithmetic, so repeated quoting never drifts.
func roundHalfUpPercent(amount, percent int64) int64 {
	return (amount*percent + 50) / 100
}
