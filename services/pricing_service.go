package services

import (
	"errors"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"
)

// ErrInvalidStay is returned for a stay of zero nights (check-in and
// check-out on the same calendar day).
var ErrInvalidStay = errors.New("invalid stay: must span at least one night")

// ComputeTotal derives the total cost of a stay from its interval and the
// room's rate card. Nights follow the checkout convention: a Jan 1 → Jan 4
// stay is 3 nights even though it touches 4 calendar dates. Breakfast is
// added per night only when requested and the room actually prices it.
// Always recomputed from scratch; never incrementally adjusted.
func ComputeTotal(iv utils.DateInterval, rate models.RateCard, includeBreakfast bool) (float64, error) {
	nights := iv.Nights()
	if nights <= 0 {
		return 0, ErrInvalidStay
	}

	total := float64(nights) * rate.RoomPrice
	if includeBreakfast && rate.BreakfastPrice != nil && *rate.BreakfastPrice > 0 {
		total += float64(nights) * *rate.BreakfastPrice
	}
	return total, nil
}
