// controllers/payment_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-reservation-backend/middleware"
	"hotel-reservation-backend/models"
	"hotel-reservation-backend/services"
	"hotel-reservation-backend/utils"

	"github.com/gin-gonic/gin"
)

// Gateway acknowledgment codes for the notify channel. The gateway keeps
// redelivering until it sees ackOK, so every durably-processed callback must
// answer ackOK — including duplicates and unknown bookings.
const (
	ackOK            = "00"
	ackBadSignature  = "97"
	ackUnknownDenied = "99"
)

type PaymentController struct {
	BookingSvc   *services.BookingService
	GatewaySvc   *services.GatewayService
	ReconcileSvc *services.ReconcileService
}

func NewPaymentController(b *services.BookingService, g *services.GatewayService, r *services.ReconcileService) *PaymentController {
	return &PaymentController{BookingSvc: b, GatewaySvc: g, ReconcileSvc: r}
}

// BuildPaymentURL POST /api/payments/:id/url (owner or admin)
func (ctrl *PaymentController) BuildPaymentURL(c *gin.Context) {
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

	if booking.PaymentStatus == models.PaymentStatusPaid {
		utils.JSONError(c, http.StatusBadRequest, "booking already paid")
		return
	}
	if models.IsTerminalStatus(booking.Status) {
		utils.JSONError(c, http.StatusBadRequest, "booking is "+booking.Status)
		return
	}

	orderInfo := "Booking " + booking.ReferenceCode
	url := ctrl.GatewaySvc.BuildPaymentURL(booking.ID, booking.TotalPrice, orderInfo, c.ClientIP(), time.Now())
	utils.JSONSuccess(c, http.StatusOK, gin.H{"payment_url": url})
}

// queryParams flattens the request query for signature verification.
func queryParams(c *gin.Context) map[string]string {
	out := make(map[string]string)
	for k, vs := range c.Request.URL.Query() {
		if len(vs) > 0 {
			out[k] = vs[0]
		}
	}
	return out
}

// HandleReturn GET /api/payments/return — the browser redirect leg. Same
// verify-then-reconcile path as the notification, human-facing response.
func (ctrl *PaymentController) HandleReturn(c *gin.Context) {
	outcome, err := ctrl.GatewaySvc.VerifyCallback(queryParams(c))
	if err != nil {
		if errors.Is(err, services.ErrSignatureMismatch) {
			log.Printf("payment return: signature mismatch from %s", c.ClientIP())
		}
		utils.JSONError(c, http.StatusBadRequest, "invalid payment callback")
		return
	}

	result, err := ctrl.ReconcileSvc.ApplyOutcome(outcome, models.CallbackChannelReturn)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"paid":    outcome.Success,
		"booking": result.BookingID,
		"status":  result.Status,
	})
}

// HandleNotify GET /api/payments/notify — the server-to-server leg. Responds
// with the gateway's own ack envelope, not our error taxonomy.
func (ctrl *PaymentController) HandleNotify(c *gin.Context) {
	outcome, err := ctrl.GatewaySvc.VerifyCallback(queryParams(c))
	if err != nil {
		log.Printf("payment notify: rejected callback from %s: %v", c.ClientIP(), err)
		c.JSON(http.StatusOK, gin.H{"rsp_code": ackBadSignature, "message": "invalid signature"})
		return
	}

	result, err := ctrl.ReconcileSvc.ApplyOutcome(outcome, models.CallbackChannelNotify)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			// ack success so the gateway stops redelivering for a booking we
			// will never know about
			c.JSON(http.StatusOK, gin.H{"rsp_code": ackOK, "message": "order not found, acknowledged"})
			return
		}
		log.Printf("payment notify: failed to apply outcome for booking %d: %v", outcome.BookingID, err)
		c.JSON(http.StatusOK, gin.H{"rsp_code": ackUnknownDenied, "message": "processing error"})
		return
	}

	msg := "confirm success"
	if result.AlreadyReconciled {
		msg = "already confirmed"
	}
	c.JSON(http.StatusOK, gin.H{"rsp_code": ackOK, "message": msg})
}
