package services

import "errors"

// Sentinel errors for the booking core. Callers branch with errors.Is and the
// controllers map each one to a client-facing status.
var (
	ErrRoomNotFound    = errors.New("room_not_found")
	ErrRoomUnavailable = errors.New("room_unavailable")

	ErrBookingNotFound     = errors.New("booking_not_found")
	ErrInvalidDateRange    = errors.New("invalid_date_range")
	ErrForbiddenTransition = errors.New("forbidden_transition")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrPriceMismatch       = errors.New("total_price_mismatch")

	ErrCouponNotFound      = errors.New("coupon_not_found")
	ErrCouponInactive      = errors.New("coupon_inactive")
	ErrCouponNotYetStarted = errors.New("coupon_not_started")
	ErrCouponExpired       = errors.New("coupon_expired")
	ErrCouponMinimumNotMet = errors.New("coupon_minimum_not_met")
	ErrCouponExhausted     = errors.New("coupon_exhausted")

	ErrSignatureMismatch = errors.New("signature_mismatch")
)
