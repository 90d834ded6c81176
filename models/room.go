package models

import (
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Name       string `json:"name" gorm:"type:varchar(100)"`
	RoomNumber string `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(50)"`
	Type       string `json:"type"`
	Floor      string `json:"floor" gorm:"type:varchar(10)"`

	// NightlyRate is in the smallest currency unit (satang, cents, ...).
	NightlyRate int64 `json:"nightlyRate" gorm:"column:nightly_rate"`

	// Quantity = how many identical physical rooms this record covers. Must be >= 1.
	Quantity     int    `json:"quantity" gorm:"column:quantity;default:1"`
	MaxOccupancy int    `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string `json:"description" gorm:"type:text"`
}
