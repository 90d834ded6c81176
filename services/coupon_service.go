package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-reservation-backend/models"

	"gorm.io/gorm"
)

type CouponService struct {
	DB *gorm.DB
}

func NewCouponService(db *gorm.DB) *CouponService {
	return &CouponService{DB: db}
}

// Validate checks a coupon against order amount and clock without consuming a
// use. Checks run in a fixed order and stop at the first failure so the caller
// can surface the precise reason.
func (s *CouponService) Validate(code string, orderAmount int64, now time.Time) (*models.Coupon, error) {
	return ValidateCouponTx(s.DB, code, orderAmount, now)
}

func ValidateCouponTx(tx *gorm.DB, code string, orderAmount int64, now time.Time) (*models.Coupon, error) {
	// Codes are stored uppercase; normalize the same way here so lookups do
	// not depend on the column collation.
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCouponNotFound
	}

	var coupon models.Coupon
	if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("db error loading coupon %s: %w", code, err)
	}

	if !coupon.Active {
		return nil, ErrCouponInactive
	}
	if coupon.StartAt != nil && now.Before(*coupon.StartAt) {
		return nil, ErrCouponNotYetStarted
	}
	if coupon.EndAt != nil && now.After(*coupon.EndAt) {
		return nil, ErrCouponExpired
	}
	if coupon.MinAmount != nil && orderAmount < *coupon.MinAmount {
		return nil, ErrCouponMinimumNotMet
	}
	if coupon.MaxUses != nil && coupon.UsedCount >= *coupon.MaxUses {
		return nil, ErrCouponExhausted
	}

	return &coupon, nil
}

// ValidateAndRedeem validates, then consumes one use. The cap check and the
// increment are a single conditional UPDATE so two concurrent redemptions can
// never jointly exceed max_uses.
func (s *CouponService) ValidateAndRedeem(code string, orderAmount int64, now time.Time) (*models.Coupon, error) {
	return RedeemCouponTx(s.DB, code, orderAmount, now)
}

func RedeemCouponTx(tx *gorm.DB, code string, orderAmount int64, now time.Time) (*models.Coupon, error) {
	coupon, err := ValidateCouponTx(tx, code, orderAmount, now)
	if err != nil {
		return nil, err
	}

	// increment iff still below cap
	q := tx.Model(&models.Coupon{}).Where("id = ?", coupon.ID)
	if coupon.MaxUses != nil {
		q = q.Where("used_count < ?", *coupon.MaxUses)
	}
	res := q.Update("used_count", gorm.Expr("used_count + ?", 1))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to redeem coupon %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		// somebody else took the last use between the read and the update
		return nil, ErrCouponExhausted
	}

	coupon.UsedCount++
	return coupon, nil
}
