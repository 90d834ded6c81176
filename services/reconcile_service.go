// services/reconcile_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"hotel-reservation-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApplyResult reports what a callback delivery did to the booking.
type ApplyResult struct {
	BookingID uint   `json:"booking_id"`
	Applied   bool   `json:"applied"`
	Status    string `json:"status"`
	// AlreadyReconciled is true when the booking was paid before this delivery.
	// The gateway may redeliver notifications, so this is a success, not an error.
	AlreadyReconciled bool `json:"already_reconciled"`
}

// ReconcileService applies verified gateway outcomes to bookings exactly once
// regardless of how many times the gateway delivers them.
type ReconcileService struct {
	DB *gorm.DB
}

func NewReconcileService(db *gorm.DB) *ReconcileService {
	return &ReconcileService{DB: db}
}

// ApplyOutcome mutates the booking for a verified callback. Idempotency comes
// from the conditional UPDATE guarded on payment_status: the first successful
// delivery flips unpaid->paid and pending->confirmed, every later one matches
// zero rows and reads back as a no-op. A failed outcome leaves the booking
// pending/unpaid so the guest can retry. Every delivery is audited.
func (s *ReconcileService) ApplyOutcome(out *CallbackOutcome, channel string) (*ApplyResult, error) {
	var booking models.Booking
	if err := s.DB.First(&booking, out.BookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("reconcile: callback for unknown booking %d (txn_ref=%s channel=%s)", out.BookingID, out.TxnRef, channel)
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("db error loading booking %d: %w", out.BookingID, err)
	}

	result := &ApplyResult{BookingID: booking.ID, Status: booking.Status}

	if out.Success {
		now := time.Now().UTC()
		res := s.DB.Model(&models.Booking{}).
			Where("id = ?", booking.ID).
			Where("payment_status <> ?", models.PaymentStatusPaid).
			Where("status NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusCompleted}).
			Updates(map[string]interface{}{
				"payment_status": models.PaymentStatusPaid,
				"payment_method": models.PaymentMethodGateway,
				"status":         models.BookingStatusConfirmed,
				"paid_at":        now,
			})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to apply payment outcome: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			result.Applied = true
			result.Status = models.BookingStatusConfirmed
		} else {
			// Either a redelivery of an already-applied success or a callback
			// against a terminal booking. Both are acked as no-op success;
			// terminal state is never left.
			result.AlreadyReconciled = true
		}
	}

	if err := s.recordCallback(out, channel, result.Applied); err != nil {
		log.Printf("reconcile: failed to audit callback for booking %d: %v", booking.ID, err)
	}

	return result, nil
}

func (s *ReconcileService) recordCallback(out *CallbackOutcome, channel string, applied bool) error {
	raw, _ := json.Marshal(out.Params)
	rec := models.PaymentCallback{
		BookingID:    out.BookingID,
		TxnRef:       out.TxnRef,
		ResponseCode: out.ResponseCode,
		TxnStatus:    out.TxnStatus,
		Channel:      channel,
		Success:      out.Success,
		Applied:      applied,
		RawParams:    datatypes.JSON(raw),
	}
	return s.DB.Create(&rec).Error
}
