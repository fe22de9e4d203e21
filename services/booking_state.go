package services

import (
	"time"

	"hotel-booking-backend/utils"
)

// BookingState models the stations a reservation passes through. A draft is
// client-session scoped until checkout creates an unpaid row; the row becomes
// Confirmed only after payment success plus a fresh availability check.
type BookingState string

const (
	StateDrafting       BookingState = "drafting"
	StatePendingPayment BookingState = "pending_payment"
	StateConfirmed      BookingState = "confirmed"
	StateFailed         BookingState = "failed"
	StateAbandoned      BookingState = "abandoned"
)

// bookingTransitions is the allowed-transition table. Failed may retry back
// into PendingPayment with a new payment attempt against the same draft.
var bookingTransitions = map[BookingState][]BookingState{
	StateDrafting:       {StatePendingPayment, StateAbandoned},
	StatePendingPayment: {StateConfirmed, StateFailed},
	StateFailed:         {StatePendingPayment},
}

// CanTransition checks if a lifecycle transition is allowed.
func CanTransition(from, to BookingState) bool {
	for _, s := range bookingTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// BookingDraft is the in-progress reservation intent a guest builds up before
// paying. It is a session-scoped value threaded explicitly through
// quote → checkout → confirm, never ambient state. Date or breakfast changes
// must recompute TotalPrice through ComputeTotal rather than patching it.
type BookingDraft struct {
	UserID       string
	HotelID      uint
	HotelOwnerID string
	RoomID       uint

	Interval         utils.DateInterval
	IncludeBreakfast bool
	TotalPrice       float64
	Currency         string

	// Set after the first checkout attempt so retries reuse the same
	// payment intent instead of creating duplicates.
	PaymentIntentID string

	CreatedAt time.Time
}
