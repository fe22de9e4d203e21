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
	"github.com/redis/go-redis/v9"

	"hotel-booking-backend/config"
	"hotel-booking-backend/controllers"
	"hotel-booking-backend/routes"
	"hotel-booking-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Payment provider (keep behavior: fatal if misconfigured)
	payments, err := services.NewStripeProvider()
	if err != nil {
		log.Fatalf("❌ ERROR: %v. Cannot initialize payment provider.", err)
	}
	log.Println("✅ Stripe payment provider initialized.")

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	// Redis is optional; without it the disabled-dates cache degrades to
	// recomputing from the bookings table on every request.
	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		log.Printf("✅ Redis calendar cache enabled (%s)", addr)
	}
	cache := services.NewCalendarCache(rdb, 5*time.Minute)

	// Initialize services
	availabilityService := services.NewAvailabilityService(db)
	hotelService := services.NewHotelService(db)
	roomService := services.NewRoomService(db)
	bookingService := services.NewBookingService(db, availabilityService, payments, cache)

	// Initialize controllers
	hotelController := controllers.NewHotelController(hotelService)
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService, availabilityService, cache)

	// Build router
	router := routes.SetupRouter(hotelController, roomController, bookingController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}

	log.Println("✅ Server stopped gracefully")
}
