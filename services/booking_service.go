// services/booking_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-reservation-backend/models"
	"hotel-reservation-backend/utils"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingService wraps *gorm.DB and owns the booking lifecycle: creation,
// status transitions and cancellation. Reconciliation of gateway callbacks
// lives in ReconcileService.
type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

// CreateBookingInput is everything the lifecycle needs to admit a booking.
// ExpectedTotal is an optional client-side preview figure; when set it must
// match the server-computed total or the request is rejected. The server
// never trusts it as the price.
type CreateBookingInput struct {
	RoomID        uint
	CustomerID    uint
	CheckIn       time.Time
	CheckOut      time.Time
	Adults        int
	Children      int
	CouponCode    string
	PaymentMethod string
	ExpectedTotal *int64
	GuestList     []map[string]interface{}
}

// CreateBooking admits a booking in one transaction: lock the room row, count
// overlapping stays, redeem the coupon, price the stay, insert. Any failure
// rolls the whole thing back, so a failed booking never consumes a coupon use
// and never holds capacity.
func (s *BookingService) CreateBooking(in CreateBookingInput) (*models.Booking, error) {
	ci := truncateToDate(in.CheckIn)
	co := truncateToDate(in.CheckOut)
	if !co.After(ci) {
		return nil, ErrInvalidDateRange
	}

	if in.Adults <= 0 {
		in.Adults = 1
	}
	if in.Children < 0 {
		in.Children = 0
	}

	method := strings.ToLower(strings.TrimSpace(in.PaymentMethod))
	switch method {
	case models.PaymentMethodCash, models.PaymentMethodWallet, models.PaymentMethodGateway:
	case "":
		method = models.PaymentMethodGateway
	default:
		return nil, fmt.Errorf("validation: unknown payment method %q", in.PaymentMethod)
	}

	guestJSON, _ := json.Marshal(normalizeGuestList(in.GuestList)) // best-effort draft

	var booking models.Booking

	// retry on reference-code collision only
	const maxRetries = 5
	var txErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		txErr = s.DB.Transaction(func(tx *gorm.DB) error {
			var room models.Room
			if err := lockForUpdate(tx).First(&room, in.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoomNotFound
				}
				return fmt.Errorf("db error loading room %d: %w", in.RoomID, err)
			}

			used, err := overlapCount(tx, room.ID, ci, co)
			if err != nil {
				return err
			}
			if used >= room.Quantity {
				return ErrRoomUnavailable
			}

			nights := NightsBetween(ci, co)
			subtotal := room.NightlyRate * int64(nights)

			var coupon *models.Coupon
			var couponCode *string
			if strings.TrimSpace(in.CouponCode) != "" {
				coupon, err = RedeemCouponTx(tx, in.CouponCode, subtotal, time.Now().UTC())
				if err != nil {
					return err
				}
				couponCode = &coupon.Code
			}

			quote, err := ComputeQuote(room.NightlyRate, ci, co, coupon)
			if err != nil {
				return err
			}
			if in.ExpectedTotal != nil && *in.ExpectedTotal != quote.Total {
				return ErrPriceMismatch
			}

			ref, err := utils.GenerateBookingReference()
			if err != nil {
				return fmt.Errorf("failed to generate reference code: %w", err)
			}

			status := models.BookingStatusPending
			payStatus := models.PaymentStatusUnpaid
			var paidAt *time.Time
			if method == models.PaymentMethodCash {
				// cash settles at the desk
				status = models.BookingStatusConfirmed
				payStatus = models.PaymentStatusPaid
				now := time.Now().UTC()
				paidAt = &now
			}

			booking = models.Booking{
				RoomID:        room.ID,
				CustomerID:    in.CustomerID,
				ReferenceCode: ref,
				CheckIn:       ci,
				CheckOut:      co,
				Adults:        in.Adults,
				Children:      in.Children,
				Nights:        quote.Nights,
				Subtotal:      quote.Subtotal,
				Discount:      quote.Discount,
				TotalPrice:    quote.Total,
				CouponCode:    couponCode,
				PaymentMethod: method,
				Status:        status,
				PaymentStatus: payStatus,
				PaidAt:        paidAt,
				GuestList:     datatypes.JSON(guestJSON),
			}

			if err := tx.Create(&booking).Error; err != nil {
				return fmt.Errorf("failed to create booking: %w", err)
			}
			return nil
		})

		if txErr == nil {
			break
		}
		if isDuplicateKeyErr(txErr) {
			log.Printf("booking reference collision (attempt %d) - retrying", attempt+1)
			booking = models.Booking{}
			continue
		}
		return nil, txErr
	}
	if txErr != nil {
		return nil, fmt.Errorf("failed to create booking after retries: %w", txErr)
	}

	if err := s.DB.Preload("Room").Preload("Customer").First(&booking, booking.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", booking.ID, err)
	}
	return &booking, nil
}

// SetStatus is the administrative override: any transition from a non-terminal
// state is allowed, terminal states cannot be left. The gateway-driven
// transition goes through ReconcileService instead.
func (s *BookingService) SetStatus(bookingID uint, newStatus string) (*models.Booking, error) {
	newStatus = strings.ToLower(strings.TrimSpace(newStatus))
	if !models.IsValidBookingStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if models.IsTerminalStatus(booking.Status) {
			return ErrForbiddenTransition
		}
		if err := tx.Model(&booking).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		booking.Status = newStatus
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// CancelBooking is the guest-facing cancellation: pending/confirmed -> cancelled.
// Non-admin callers can only cancel their own bookings; a foreign booking id
// reads as not found so the endpoint does not leak existence.
func (s *BookingService) CancelBooking(bookingID uint, customerID uint, isAdmin bool) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if !isAdmin && booking.CustomerID != customerID {
			return ErrBookingNotFound
		}
		if models.IsTerminalStatus(booking.Status) {
			return ErrForbiddenTransition
		}
		if err := tx.Model(&booking).Update("status", models.BookingStatusCancelled).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		booking.Status = models.BookingStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetBookingDetails
func (s *BookingService) GetBookingDetails(bookingID uint) (*models.Booking, error) {
	var bk models.Booking
	if err := s.DB.Preload("Room").Preload("Customer").First(&bk, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to retrieve booking details: %w", err)
	}
	return &bk, nil
}

// GetAllWithRelations
func (s *BookingService) GetAllWithRelations() ([]models.Booking, error) {
	var list []models.Booking
	if err := s.DB.
		Preload("Room").
		Preload("Customer").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	return list, nil
}

// lockForUpdate adds a FOR UPDATE row lock on dialects that support it. The
// sqlite test database has no row locks and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func isDuplicateKeyErr(err error) bool {
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func getStringFromMap(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			if s, ok2 := v.(string); ok2 {
				return strings.TrimSpace(s)
			}
			return strings.TrimSpace(fmt.Sprintf("%v", v))
		}
	}
	return ""
}

// normalizeGuestList keeps only the fields we store from the accompanying
// guest draft the frontend sends along with a booking.
func normalizeGuestList(guestList []map[string]interface{}) []map[string]interface{} {
	if len(guestList) == 0 {
		return []map[string]interface{}{}
	}
	out := make([]map[string]interface{}, 0, len(guestList))
	for _, g := range guestList {
		name := getStringFromMap(g, "name", "fullName", "full_name")
		typ := getStringFromMap(g, "type", "guestType", "guest_type")
		if name == "" {
			continue
		}
		if typ == "" {
			typ = "Adult"
		}
		out = append(out, map[string]interface{}{
			"fullName": name,
			"type":     typ,
		})
	}
	return out
}
