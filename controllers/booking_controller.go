package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type QuoteRequest struct {
	StartDate        time.Time `json:"startDate" binding:"required"`
	EndDate          time.Time `json:"endDate" binding:"required"`
	IncludeBreakfast bool      `json:"includeBreakfast"`
}

type CheckoutRequest struct {
	RoomID           uint      `json:"roomId" binding:"required"`
	HotelID          uint      `json:"hotelId" binding:"required"`
	HotelOwnerID     string    `json:"hotelOwnerId" binding:"required"`
	StartDate        time.Time `json:"startDate" binding:"required"`
	EndDate          time.Time `json:"endDate" binding:"required"`
	IncludeBreakfast bool      `json:"includeBreakfast"`

	// Sent back by the client when retrying checkout for the same draft so
	// the payment intent is reused rather than duplicated.
	PaymentIntentID string `json:"paymentIntentId"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc      *services.BookingService
	AvailabilitySvc *services.AvailabilityService
	Cache           *services.CalendarCache
}

func NewBookingController(svc *services.BookingService, availability *services.AvailabilityService, cache *services.CalendarCache) *BookingController {
	return &BookingController{BookingSvc: svc, AvailabilitySvc: availability, Cache: cache}
}

func parseRoomID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return 0, false
	}
	return uint(id), true
}

// Quote (POST /api/rooms/:id/quote) prices a stay for display and reports
// current availability. Purely advisory; dates are re-validated at confirm.
func (bc *BookingController) Quote(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	iv, total, available, err := bc.BookingSvc.Quote(roomID, req.StartDate, req.EndDate, req.IncludeBreakfast)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"startDate":  iv.Start,
		"endDate":    iv.End,
		"nights":     iv.Nights(),
		"totalPrice": total,
		"available":  available,
	})
}

// DisabledDates (GET /api/rooms/:id/disabled-dates) returns every day blocked
// by a confirmed booking, for greying out the date picker.
func (bc *BookingController) DisabledDates(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	if days, hit := bc.Cache.Get(c.Request.Context(), roomID); hit {
		utils.JSONSuccess(c, http.StatusOK, days)
		return
	}

	days, err := bc.AvailabilitySvc.DisabledDatesForRoom(roomID)
	if err != nil {
		log.Printf("❌ disabled dates query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load disabled dates")
		return
	}

	bc.Cache.Set(c.Request.Context(), roomID, days)
	utils.JSONSuccess(c, http.StatusOK, days)
}

// RoomBookings (GET /api/rooms/:id/bookings) returns the room's confirmed
// bookings. The payment form refetches this right before confirming payment
// to run its own overlap check against a fresh snapshot.
func (bc *BookingController) RoomBookings(c *gin.Context) {
	roomID, ok := parseRoomID(c)
	if !ok {
		return
	}

	bookings, err := bc.AvailabilitySvc.ListConfirmedBookings(roomID)
	if err != nil {
		log.Printf("❌ room bookings query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Checkout (POST /api/bookings/checkout) creates the unpaid booking row and
// the payment intent, returning the client secret the payment form needs.
func (bc *BookingController) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	iv, err := utils.NormalizeInterval(req.StartDate, req.EndDate)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	draft := &services.BookingDraft{
		UserID:           middleware.UserID(c),
		HotelID:          req.HotelID,
		HotelOwnerID:     req.HotelOwnerID,
		RoomID:           req.RoomID,
		Interval:         iv,
		IncludeBreakfast: req.IncludeBreakfast,
		PaymentIntentID:  req.PaymentIntentID,
		CreatedAt:        time.Now().UTC(),
	}

	intent, err := bc.BookingSvc.Checkout(c.Request.Context(), draft)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"paymentIntentId": intent.ID,
		"clientSecret":    intent.ClientSecret,
		"totalPrice":      draft.TotalPrice,
	})
}

// Confirm (PATCH /api/bookings/confirm/:intentId) finalizes the booking after
// the client reports payment completion. The service re-checks the provider
// and re-validates availability; a conflict here means payment succeeded but
// the dates were taken in the meantime, which needs a manual refund.
func (bc *BookingController) Confirm(c *gin.Context) {
	intentID := c.Param("intentId")
	if intentID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing payment intent id")
		return
	}

	confirmed, err := bc.BookingSvc.Confirm(c.Request.Context(), intentID)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{"confirmed": confirmed})
}

// MyBookings (GET /api/bookings/my) lists bookings the guest has made.
func (bc *BookingController) MyBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.BookingsByUser(middleware.UserID(c))
	if err != nil {
		log.Printf("❌ my bookings query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// ReceivedBookings (GET /api/bookings/received) lists bookings visitors made
// on hotels the caller owns.
func (bc *BookingController) ReceivedBookings(c *gin.Context) {
	bookings, err := bc.BookingSvc.BookingsByHotelOwner(middleware.UserID(c))
	if err != nil {
		log.Printf("❌ received bookings query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load bookings")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// Delete (DELETE /api/bookings/:id) removes the caller's own unpaid booking.
func (bc *BookingController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking id")
		return
	}

	if err := bc.BookingSvc.Abandon(uint(id), middleware.UserID(c)); err != nil {
		respondBookingError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// respondBookingError maps service errors onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, utils.ErrInvalidRange), errors.Is(err, services.ErrInvalidStay):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDateConflict):
		utils.JSONError(c, http.StatusConflict,
			"some of the days you tried to book have already been reserved, please select different dates")
	case errors.Is(err, services.ErrAlreadyConfirmed):
		utils.JSONError(c, http.StatusConflict, "this booking has already been confirmed")
	case errors.Is(err, services.ErrRoomNotFound), errors.Is(err, services.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	default:
		log.Printf("❌ booking error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed")
	}
}
