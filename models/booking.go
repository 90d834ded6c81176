package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. cancelled and completed are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	PaymentMethodCash    = "cash"
	PaymentMethodWallet  = "wallet"
	PaymentMethodGateway = "gateway"
)

func IsTerminalStatus(status string) bool {
	return status == BookingStatusCancelled || status == BookingStatusCompleted
}

func IsValidBookingStatus(status string) bool {
	switch status {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomID     uint `gorm:"index;column:room_id" json:"room_id"`
	CustomerID uint `gorm:"index;column:customer_id" json:"customer_id"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`

	// Half-open stay interval: [check_in, check_out). Adjoining stays do not overlap.
	CheckIn  time.Time `gorm:"column:check_in" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out" json:"check_out"`

	Adults   int `gorm:"column:adults;default:1" json:"adults"`
	Children int `gorm:"column:children;default:0" json:"children"`
	Nights   int `gorm:"column:nights" json:"nights"`

	// Money fields are in the smallest currency unit.
	Subtotal   int64 `gorm:"column:subtotal" json:"subtotal"`
	Discount   int64 `gorm:"column:discount" json:"discount"`
	TotalPrice int64 `gorm:"column:total_price" json:"total_price"`

	CouponCode *string `gorm:"column:coupon_code;size:64" json:"coupon_code,omitempty"`

	PaymentMethod string     `gorm:"column:payment_method;size:32" json:"payment_method"`
	Status        string     `gorm:"column:status;size:32;index" json:"status"`
	PaymentStatus string     `gorm:"column:payment_status;size:32" json:"payment_status"`
	PaidAt        *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	// Draft list of accompanying guests as supplied at booking time.
	GuestList datatypes.JSON `gorm:"column:guest_list" json:"guest_list,omitempty"`

	Room     Room     `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}
