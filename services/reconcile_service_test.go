package services

import (
	"testing"

	"hotel-reservation-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func pendingBooking(t *testing.T, db *gorm.DB) *models.Booking {
	t.Helper()
	room := createRoom(t, db, 500000, 2)
	cust := createCustomer(t, db)
	booking, err := NewBookingService(db).CreateBooking(CreateBookingInput{
		RoomID: room.ID, CustomerID: cust.ID,
		CheckIn: date(2026, 4, 1), CheckOut: date(2026, 4, 4),
		PaymentMethod: models.PaymentMethodGateway,
	})
	require.NoError(t, err)
	return booking
}

func successOutcome(bookingID uint) *CallbackOutcome {
	return &CallbackOutcome{
		BookingID:    bookingID,
		TxnRef:       "1",
		ResponseCode: GatewaySuccessCode,
		TxnStatus:    GatewaySuccessCode,
		Success:      true,
		Params:       map[string]string{"gw_txn_ref": "1"},
	}
}

func TestApplyOutcomeConfirmsPendingBooking(t *testing.T) {
	db := newTestDB(t)
	booking := pendingBooking(t, db)
	svc := NewReconcileService(db)

	result, err := svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelNotify)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.False(t, result.AlreadyReconciled)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, models.PaymentMethodGateway, stored.PaymentMethod)
	assert.NotNil(t, stored.PaidAt)
}

func TestApplyOutcomeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	booking := pendingBooking(t, db)
	svc := NewReconcileService(db)

	first, err := svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelReturn)
	require.NoError(t, err)
	require.True(t, first.Applied)

	var afterFirst models.Booking
	require.NoError(t, db.First(&afterFirst, booking.ID).Error)

	// redelivery over the other channel: no-op success, nothing moves
	second, err := svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelNotify)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.True(t, second.AlreadyReconciled)

	var afterSecond models.Booking
	require.NoError(t, db.First(&afterSecond, booking.ID).Error)
	assert.Equal(t, afterFirst.Status, afterSecond.Status)
	assert.Equal(t, afterFirst.PaymentStatus, afterSecond.PaymentStatus)
	require.NotNil(t, afterSecond.PaidAt)
	assert.Equal(t, afterFirst.PaidAt.Unix(), afterSecond.PaidAt.Unix())
}

func TestApplyOutcomeFailureLeavesBookingRetryable(t *testing.T) {
	db := newTestDB(t)
	booking := pendingBooking(t, db)
	svc := NewReconcileService(db)

	failed := successOutcome(booking.ID)
	failed.ResponseCode = "24"
	failed.Success = false

	result, err := svc.ApplyOutcome(failed, models.CallbackChannelNotify)
	require.NoError(t, err)
	assert.False(t, result.Applied)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingStatusPending, stored.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, stored.PaymentStatus)

	// a later success on the same booking still lands
	result, err = svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelNotify)
	require.NoError(t, err)
	assert.True(t, result.Applied)
}

func TestApplyOutcomeUnknownBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewReconcileService(db)

	_, err := svc.ApplyOutcome(successOutcome(4242), models.CallbackChannelNotify)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestApplyOutcomeNeverLeavesTerminalState(t *testing.T) {
	db := newTestDB(t)
	booking := pendingBooking(t, db)
	svc := NewReconcileService(db)

	_, err := NewBookingService(db).SetStatus(booking.ID, models.BookingStatusCancelled)
	require.NoError(t, err)

	result, err := svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelNotify)
	require.NoError(t, err)
	assert.False(t, result.Applied)
	assert.True(t, result.AlreadyReconciled)

	var stored models.Booking
	require.NoError(t, db.First(&stored, booking.ID).Error)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)
	assert.Equal(t, models.PaymentStatusUnpaid, stored.PaymentStatus)
}

func TestApplyOutcomeWritesAuditTrail(t *testing.T) {
	db := newTestDB(t)
	booking := pendingBooking(t, db)
	svc := NewReconcileService(db)

	_, err := svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelReturn)
	require.NoError(t, err)
	_, err = svc.ApplyOutcome(successOutcome(booking.ID), models.CallbackChannelNotify)
	require.NoError(t, err)

	var callbacks []models.PaymentCallback
	require.NoError(t, db.Where("booking_id = ?", booking.ID).Order("id ASC").Find(&callbacks).Error)
	require.Len(t, callbacks, 2)
	assert.True(t, callbacks[0].Applied)
	assert.Equal(t, models.CallbackChannelReturn, callbacks[0].Channel)
	assert.False(t, callbacks[1].Applied)
	assert.Equal(t, models.CallbackChannelNotify, callbacks[1].Channel)
}
