package services

import (
	"testing"
	"time"

	"hotel-reservation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeQuoteNoCoupon(t *testing.T) {
	quote, err := ComputeQuote(500000, date(2026, 1, 1), date(2026, 1, 4), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(1500000), quote.Subtotal)
	assert.Equal(t, int64(0), quote.Discount)
	assert.Equal(t, int64(1500000), quote.Total)
}

func TestComputeQuotePercentCoupon(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountTypePercent, DiscountValue: 10}

	quote, err := ComputeQuote(500000, date(2026, 1, 1), date(2026, 1, 4), coupon)
	require.NoError(t, err)

	assert.Equal(t, int64(1500000), quote.Subtotal)
	assert.Equal(t, int64(150000), quote.Discount)
	assert.Equal(t, int64(1350000), quote.Total)
}

func TestComputeQuoteFixedCoupon(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountTypeFixed, DiscountValue: 200000}

	quote, err := ComputeQuote(500000, date(2026, 1, 1), date(2026, 1, 4), coupon)
	require.NoError(t, err)

	assert.Equal(t, int64(200000), quote.Discount)
	assert.Equal(t, int64(1300000), quote.Total)
}

func TestComputeQuoteFixedCouponClampsToZero(t *testing.T) {
	coupon := &models.Coupon{DiscountType: models.DiscountTypeFixed, DiscountValue: 9000000}

	quote, err := ComputeQuote(500000, date(2026, 1, 1), date(2026, 1, 4), coupon)
	require.NoError(t, err)

	assert.Equal(t, quote.Subtotal, quote.Discount)
	assert.Equal(t, int64(0), quote.Total)
}

func TestComputeQuotePercentRoundsHalfUp(t *testing.T) {
	// 1 night x 333: 10% = 33.3 -> 33, 15% = 49.95 -> 50
	ten := &models.Coupon{DiscountType: models.DiscountTypePercent, DiscountValue: 10}
	quote, err := ComputeQuote(333, date(2026, 1, 1), date(2026, 1, 2), ten)
	require.NoError(t, err)
	assert.Equal(t, int64(33), quote.Discount)

	fifteen := &models.Coupon{DiscountType: models.DiscountTypePercent, DiscountValue: 15}
	quote, err = ComputeQuote(333, date(2026, 1, 1), date(2026, 1, 2), fifteen)
	require.NoError(t, err)
	assert.Equal(t, int64(50), quote.Discount)
}

func TestComputeQuoteInvalidRange(t *testing.T) {
	_, err := ComputeQuote(500000, date(2026, 1, 4), date(2026, 1, 4), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = ComputeQuote(500000, date(2026, 1, 4), date(2026, 1, 1), nil)
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestNightsBetween(t *testing.T) {
	assert.Equal(t, 1, NightsBetween(date(2026, 1, 1), date(2026, 1, 2)))
	assert.Equal(t, 3, NightsBetween(date(2026, 1, 1), date(2026, 1, 4)))

	// intra-day times collapse to dates, never below 1 night
	in := time.Date(2026, 1, 1, 15, 0, 0, 0, time.UTC)
	out := time.Date(2026, 1, 2, 11, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, NightsBetween(in, out))
}
