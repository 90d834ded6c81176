// controllers/booking_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation-backend/middleware"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	RoomID     uint   `json:"room_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	CouponCode string `json:"coupon_code"`

	// cash | wallet | gateway (default gateway)
	PaymentMethod string `json:"payment_method"`

	// ExpectedTotal is the client's preview figure in the smallest currency
	// unit. Optional; when present it must match the server-computed total.
	ExpectedTotal *int64 `json:"expected_total"`

	GuestList []map[string]interface{} `json:"guest_list,omitempty"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
}

func NewBookingController(svc *services.BookingService, avail *services.AvailabilityService) *BookingController {
	return &BookingController{BookingSvc: svc, AvailabilitySvc: avail}
}

// parseDate accepts "2006-01-02" or RFC3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// respondServiceError maps the core's sentinel errors to client-facing
// statuses: not-found -> 404, conflict/validation -> 400, forbidden -> 403.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable),
		errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrPriceMismatch),
		errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrCouponInactive),
		errors.Is(err, services.ErrCouponNotYetStarted),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponMinimumNotMet),
		errors.Is(err, services.ErrCouponExhausted):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrForbiddenTransition):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

// CreateBooking POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: "+err.Error())
		return
	}

	checkIn, err := parseDate(req.CheckIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in format")
		return
	}
	checkOut, err := parseDate(req.CheckOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out format")
		return
	}

	identity, _ := middleware.GetIdentity(c)

	booking, err := ctrl.BookingSvc.CreateBooking(services.CreateBookingInput{
		RoomID:        req.RoomID,
		CustomerID:    identity.CustomerID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Adults:        req.Adults,
		Children:      req.Children,
		CouponCode:    req.CouponCode,
		PaymentMethod: req.PaymentMethod,
		ExpectedTotal: req.ExpectedTotal,
		GuestList:     req.GuestList,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GetBookings GET /api/bookings (admin)
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	list, err := ctrl.BookingSvc.GetAllWithRelations()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

// GetBookingDetails GET /api/bookings/:id (owner or admin)
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := ctrl.BookingSvc.GetBookingDetails(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	identity, _ := middleware.GetIdentity(c)
	if !identity.IsAdmin() && booking.CustomerID != identity.CustomerID {
		utils.JSONError(c, http.StatusNotFound, services.ErrBookingNotFound.Error())
		return
	}

	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CancelBooking POST /api/bookings/:id/cancel (owner or admin)
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	identity, _ := middleware.GetIdentity(c)
	booking, err := ctrl.BookingSvc.CancelBooking(uint(id), identity.CustomerID, identity.IsAdmin())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// SetStatus PATCH /api/bookings/:id/status (admin)
func (ctrl *BookingController) SetStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload: status is required")
		return
	}

	booking, err := ctrl.BookingSvc.SetStatus(uint(id), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// CheckAvailability GET /api/rooms/:id/availability?check_in=&check_out=
func (ctrl *BookingController) CheckAvailability(c *gin.Context) {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	checkIn, err := parseDate(c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_in format")
		return
	}
	checkOut, err := parseDate(c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid check_out format")
		return
	}
	if !checkOut.After(checkIn) {
		utils.JSONError(c, http.StatusBadRequest, services.ErrInvalidDateRange.Error())
		return
	}

	avail, err := ctrl.AvailabilitySvc.CheckAvailability(uint(roomID), checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, avail)
}
