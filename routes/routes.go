package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking-backend/controllers"
	"hotel-booking-backend/middleware"
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

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	hc *controllers.HotelController,
	rc *controllers.RoomController,
	bc *controllers.BookingController,
) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.Logger())

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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-User-Id"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		hotels := api.Group("/hotels")
		{
			hotels.GET("", hc.GetHotels)

			// must come before /:id
			hotels.GET("/my", middleware.RequireUser(), hc.GetMyHotels)

			hotels.GET("/:id", hc.GetHotelByID)
			hotels.POST("", middleware.RequireUser(), hc.CreateHotel)
			hotels.PATCH("/:id", middleware.RequireUser(), hc.UpdateHotel)
			hotels.DELETE("/:id", middleware.RequireUser(), hc.DeleteHotel)

			hotels.POST("/:id/rooms", middleware.RequireUser(), rc.CreateRoom)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("/:id", rc.GetRoom)
			rooms.PATCH("/:id", middleware.RequireUser(), rc.UpdateRoom)
			rooms.DELETE("/:id", middleware.RequireUser(), rc.DeleteRoom)

			rooms.GET("/:id/bookings", bc.RoomBookings)
			rooms.GET("/:id/disabled-dates", bc.DisabledDates)
			rooms.POST("/:id/quote", bc.Quote)
		}

		bookings := api.Group("/bookings", middleware.RequireUser())
		{
			bookings.POST("/checkout", bc.Checkout)
			bookings.PATCH("/confirm/:intentId", bc.Confirm)
			bookings.GET("/my", bc.MyBookings)
			bookings.GET("/received", bc.ReceivedBookings)
			bookings.DELETE("/:id", bc.Delete)
		}
	}

	return r
}
