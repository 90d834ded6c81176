package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-reservation-backend/config"
	"hotel-reservation-backend/controllers"
	"hotel-reservation-backend/routes"
	"hotel-reservation-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	gatewayCfg := config.LoadGatewayConfig()
	if gatewayCfg.Secret == "" {
		log.Fatal("ERROR: GATEWAY_SECRET environment variable is not set. Cannot sign payment requests.")
	}
	jwtSecret := config.JWTSecret()
	if jwtSecret == "" {
		log.Fatal("ERROR: JWT_SECRET environment variable is not set. Cannot verify identities.")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	log.Println("Database connection established and migrations applied.")

	// Initialize services
	bookingService := services.NewBookingService(db)
	availabilityService := services.NewAvailabilityService(db)
	roomService := services.NewRoomService(db)
	couponService := services.NewCouponService(db)
	gatewayService := services.NewGatewayService(gatewayCfg)
	reconcileService := services.NewReconcileService(db)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingService, availabilityService)
	paymentController := controllers.NewPaymentController(bookingService, gatewayService, reconcileService)
	roomController := controllers.NewRoomController(roomService)
	couponController := controllers.NewCouponController(db, couponService)

	router := routes.SetupRouter(bookingController, paymentController, roomController, couponController, jwtSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
