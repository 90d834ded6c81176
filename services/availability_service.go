package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-reservation-backend/models"

	"gorm.io/gorm"
)

type Availability struct {
	Available     bool `json:"available"`
	CapacityUsed  int  `json:"capacity_used"`
	CapacityTotal int  `json:"capacity_total"`
}

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// CheckAvailability counts pending/confirmed bookings whose half-open
// [check_in, check_out) interval overlaps the requested one and compares the
// count against the room's quantity. Run it on a transaction handle when the
// result feeds a write; a standalone read is only good for display.
func (s *AvailabilityService) CheckAvailability(roomID uint, checkIn, checkOut time.Time) (Availability, error) {
	return CheckAvailabilityTx(s.DB, roomID, checkIn, checkOut)
}

func CheckAvailabilityTx(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (Availability, error) {
	var room models.Room
	if err := tx.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Availability{}, ErrRoomNotFound
		}
		return Availability{}, fmt.Errorf("db error checking room %d: %w", roomID, err)
	}

	used, err := overlapCount(tx, roomID, checkIn, checkOut)
	if err != nil {
		return Availability{}, err
	}

	return Availability{
		Available:     used < room.Quantity,
		CapacityUsed:  used,
		CapacityTotal: room.Quantity,
	}, nil
}

// overlapCount: existing.check_in < requested.check_out AND
// existing.check_out > requested.check_in. Adjoining stays (one check-out on
// another's check-in) do not overlap.
func overlapCount(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (int, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", []string{models.BookingStatusPending, models.BookingStatusConfirmed}).
		Where("check_in < ? AND check_out > ?", checkOut, checkIn).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return int(count), nil
}
