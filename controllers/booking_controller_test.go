package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubPayments struct {
	nextID    int
	succeeded map[string]bool
}

func (f *stubPayments) CreateOrReuseIntent(amount float64, currency string, existingID string, metadata map[string]string) (services.PaymentIntent, error) {
	if existingID != "" {
		return services.PaymentIntent{ID: existingID, ClientSecret: existingID + "_secret"}, nil
	}
	f.nextID++
	id := fmt.Sprintf("pi_test_%d", f.nextID)
	return services.PaymentIntent{ID: id, ClientSecret: id + "_secret"}, nil
}

func (f *stubPayments) CheckSucceeded(intentID string) (bool, error) {
	return f.succeeded[intentID], nil
}

type testEnv struct {
	router   *gin.Engine
	db       *gorm.DB
	payments *stubPayments
	room     models.Room
	hotel    models.Hotel
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Booking{}))
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Booking{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Room{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Hotel{})

	hotel := models.Hotel{UserID: "owner-1", Title: "Test Hotel"}
	require.NoError(t, db.Create(&hotel).Error)
	breakfast := 20.0
	room := models.Room{HotelID: hotel.ID, Title: "Double", RoomPrice: 100, BreakfastPrice: &breakfast}
	require.NoError(t, db.Create(&room).Error)

	payments := &stubPayments{succeeded: make(map[string]bool)}
	cache := services.NewCalendarCache(nil, 0)
	availability := services.NewAvailabilityService(db)
	bookingSvc := services.NewBookingService(db, availability, payments, cache)
	bc := NewBookingController(bookingSvc, availability, cache)

	r := gin.New()
	r.GET("/api/rooms/:id/disabled-dates", bc.DisabledDates)
	r.GET("/api/rooms/:id/bookings", bc.RoomBookings)
	r.POST("/api/rooms/:id/quote", bc.Quote)
	auth := r.Group("/api/bookings", middleware.RequireUser())
	auth.POST("/checkout", bc.Checkout)
	auth.PATCH("/confirm/:intentId", bc.Confirm)
	auth.GET("/my", bc.MyBookings)

	return &testEnv{router: r, db: db, payments: payments, room: room, hotel: hotel}
}

func (e *testEnv) do(t *testing.T, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jan(d int) time.Time { return time.Date(2026, time.January, d, 0, 0, 0, 0, time.UTC) }

func TestQuoteEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, fmt.Sprintf("/api/rooms/%d/quote", env.room.ID), "", gin.H{
		"startDate":        jan(1),
		"endDate":          jan(4),
		"includeBreakfast": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Nights     int     `json:"nights"`
			TotalPrice float64 `json:"totalPrice"`
			Available  bool    `json:"available"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Data.Nights)
	assert.Equal(t, 360.0, resp.Data.TotalPrice)
	assert.True(t, resp.Data.Available)

	t.Run("end before start", func(t *testing.T) {
		w := env.do(t, http.MethodPost, fmt.Sprintf("/api/rooms/%d/quote", env.room.ID), "", gin.H{
			"startDate": jan(4),
			"endDate":   jan(1),
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckoutEndpointRequiresAuth(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/bookings/checkout", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	env := setupEnv(t)

	checkout := gin.H{
		"roomId":           env.room.ID,
		"hotelId":          env.hotel.ID,
		"hotelOwnerId":     "owner-1",
		"startDate":        jan(5),
		"endDate":          jan(10),
		"includeBreakfast": false,
	}

	w := env.do(t, http.MethodPost, "/api/bookings/checkout", "guest-1", checkout)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			PaymentIntentID string  `json:"paymentIntentId"`
			ClientSecret    string  `json:"clientSecret"`
			TotalPrice      float64 `json:"totalPrice"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ClientSecret)
	assert.Equal(t, 500.0, resp.Data.TotalPrice)

	// pending booking does not disable any dates yet
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/rooms/%d/disabled-dates", env.room.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"data":null`)

	env.payments.succeeded[resp.Data.PaymentIntentID] = true
	w = env.do(t, http.MethodPatch, "/api/bookings/confirm/"+resp.Data.PaymentIntentID, "guest-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed":true`)

	// confirmed booking now blocks the calendar
	w = env.do(t, http.MethodGet, fmt.Sprintf("/api/rooms/%d/disabled-dates", env.room.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "2026-01-05")
	assert.Contains(t, w.Body.String(), "2026-01-10")

	// overlapping checkout by another guest is refused up front
	conflict := gin.H{
		"roomId":       env.room.ID,
		"hotelId":      env.hotel.ID,
		"hotelOwnerId": "owner-1",
		"startDate":    jan(8),
		"endDate":      jan(12),
	}
	w = env.do(t, http.MethodPost, "/api/bookings/checkout", "guest-2", conflict)
	assert.Equal(t, http.StatusConflict, w.Code)

	// double confirm reports no-op
	w = env.do(t, http.MethodPatch, "/api/bookings/confirm/"+resp.Data.PaymentIntentID, "guest-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"confirmed":false`)

	// guest sees the booking
	w = env.do(t, http.MethodGet, "/api/bookings/my", "guest-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), resp.Data.PaymentIntentID)
}
