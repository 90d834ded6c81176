package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter(
	bc *controllers.BookingController,
	pc *controllers.PaymentController,
	rc *controllers.RoomController,
	cc *controllers.CouponController,
	jwtSecret string,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.GET("/:id/availability", bc.CheckAvailability)
		}

		// gateway callbacks carry their own signature, no bearer token
		payments := api.Group("/payments")
		{
			payments.GET("/return", pc.HandleReturn)
			payments.GET("/notify", pc.HandleNotify)
		}

		authed := api.Group("")
		authed.Use(middleware.RequireIdentity(jwtSecret))
		{
			bookings := authed.Group("/bookings")
			{
				bookings.POST("", bc.CreateBooking)
				bookings.GET("/:id", bc.GetBookingDetails)
				bookings.POST("/:id/cancel", bc.CancelBooking)
			}
			authed.POST("/payments/:id/url", pc.BuildPaymentURL)
		}

		admin := api.Group("")
		admin.Use(middleware.RequireIdentity(jwtSecret), middleware.RequireAdmin())
		{
			admin.GET("/bookings", bc.GetBookings)
			admin.PATCH("/bookings/:id/status", bc.SetStatus)

			admin.POST("/rooms", rc.CreateRoom)
			admin.PUT("/rooms/:id", rc.UpdateRoom)
			admin.PATCH("/rooms/:id", rc.UpdateRoom)
			admin.DELETE("/rooms/:id", rc.DeleteRoom)

			admin.GET("/coupons", cc.GetCoupons)
			admin.POST("/coupons", cc.CreateCoupon)
			admin.DELETE("/coupons/:code", cc.DeleteCoupon)
		}

		api.GET("/coupons/:code/preview", cc.PreviewCoupon)
	}

	return r
}
