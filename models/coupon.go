package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	DiscountTypePercent = "percent"
	DiscountTypeFixed   = "fixed"
)

type Coupon struct {
	gorm.Model

	Code string `gorm:"column:code;size:64;uniqueIndex" json:"code"`

	// DiscountType is percent or fixed. For percent, DiscountValue is the
	// percentage (0-100); for fixed it is an amount in the smallest currency unit.
	DiscountType  string `gorm:"column:discount_type;size:16" json:"discount_type"`
	DiscountValue int64  `gorm:"column:discount_value" json:"discount_value"`

	StartAt *time.Time `gorm:"column:start_at" json:"start_at,omitempty"`
	EndAt   *time.Time `gorm:"column:end_at" json:"end_at,omitempty"`

	// MinAmount: order subtotal required before the coupon applies. Nil = no floor.
	MinAmount *int64 `gorm:"column:min_amount" json:"min_amount,omitempty"`

	// MaxUses caps redemptions. Nil = unlimited. Invariant: used_count <= max_uses.
	MaxUses   *int `gorm:"column:max_uses" json:"max_uses,omitempty"`
	UsedCount int  `gorm:"column:used_count;default:0" json:"used_count"`

	// No default tag: GORM skips zero-value fields of defaulted columns on
	// insert, which would persist Active=false as true.
	Active bool `gorm:"column:active" json:"active"`
}
