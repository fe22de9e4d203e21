package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrDateConflict is raised when the confirm-time re-validation finds a
	// booking confirmed since the quote. Payment may already have succeeded
	// at that point, so this is surfaced as a booking failure requiring a
	// manual refund, never swallowed.
	ErrDateConflict = errors.New("requested dates conflict with a confirmed booking")

	// ErrAlreadyConfirmed marks the idempotent no-op second confirmation.
	ErrAlreadyConfirmed = errors.New("booking already confirmed")

	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
)

// BookingService drives the reservation lifecycle:
// drafting → pending payment → confirmed, with abandon/fail exits. No locking
// at quote time; conflicts between concurrent guests are resolved by
// re-validating availability inside the confirm transaction, so whoever's
// confirmation lands first wins.
type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
	Payments     PaymentProvider
	Cache        *CalendarCache

	// roomLocks serializes confirmations per room. Two concurrent confirms of
	// different bookings with overlapping dates would otherwise each read a
	// snapshot missing the other's write and both pass re-validation.
	roomLocks sync.Map
}

func NewBookingService(db *gorm.DB, availability *AvailabilityService, payments PaymentProvider, cache *CalendarCache) *BookingService {
	return &BookingService{DB: db, Availability: availability, Payments: payments, Cache: cache}
}

func (s *BookingService) lockRoom(roomID uint) func() {
	v, _ := s.roomLocks.LoadOrStore(roomID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Quote prices a draft stay and checks current availability for display. The
// result is advisory: nothing is reserved until checkout, and the dates are
// re-validated again at confirm time.
func (s *BookingService) Quote(roomID uint, rawStart, rawEnd time.Time, includeBreakfast bool) (utils.DateInterval, float64, bool, error) {
	iv, err := utils.NormalizeInterval(rawStart, rawEnd)
	if err != nil {
		return utils.DateInterval{}, 0, false, err
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.DateInterval{}, 0, false, ErrRoomNotFound
		}
		return utils.DateInterval{}, 0, false, fmt.Errorf("failed to load room: %w", err)
	}

	total, err := ComputeTotal(iv, room.RateCard(), includeBreakfast)
	if err != nil {
		return utils.DateInterval{}, 0, false, err
	}

	available, err := s.Availability.CheckRoom(roomID, iv)
	if err != nil {
		return utils.DateInterval{}, 0, false, fmt.Errorf("availability check failed: %w", err)
	}
	return iv, total, available, nil
}

// Checkout moves a draft into pending payment: it re-prices the stay
// server-side (client totals are never trusted), persists an unpaid booking
// row and requests a payment intent. When the draft already carries an intent
// id from an earlier attempt the same intent is updated instead of a new one
// being created, and the unpaid row is reused.
func (s *BookingService) Checkout(ctx context.Context, draft *BookingDraft) (PaymentIntent, error) {
	if !CanTransition(StateDrafting, StatePendingPayment) {
		return PaymentIntent{}, errors.New("invalid lifecycle transition")
	}

	var room models.Room
	if err := s.DB.First(&room, draft.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PaymentIntent{}, ErrRoomNotFound
		}
		return PaymentIntent{}, fmt.Errorf("failed to load room: %w", err)
	}

	total, err := ComputeTotal(draft.Interval, room.RateCard(), draft.IncludeBreakfast)
	if err != nil {
		return PaymentIntent{}, err
	}
	draft.TotalPrice = total
	if draft.Currency == "" {
		draft.Currency = utils.EnvOrDefault("BOOKING_CURRENCY", "usd")
	}

	// Reject obviously conflicting dates before touching the payment
	// provider. This is the quote-time check; it does not reserve anything.
	available, err := s.Availability.CheckRoom(draft.RoomID, draft.Interval)
	if err != nil {
		return PaymentIntent{}, fmt.Errorf("availability check failed: %w", err)
	}
	if !available {
		return PaymentIntent{}, ErrDateConflict
	}

	intent, err := s.Payments.CreateOrReuseIntent(total, draft.Currency, draft.PaymentIntentID, map[string]string{
		"roomId": fmt.Sprint(draft.RoomID),
		"userId": draft.UserID,
	})
	if err != nil {
		return PaymentIntent{}, fmt.Errorf("payment intent request failed: %w", err)
	}

	meta, _ := json.Marshal(map[string]interface{}{
		"breakfastIncluded": draft.IncludeBreakfast,
		"nights":            draft.Interval.Nights(),
	})

	booking := models.Booking{
		UserID:            draft.UserID,
		HotelOwnerID:      draft.HotelOwnerID,
		HotelID:           draft.HotelID,
		RoomID:            draft.RoomID,
		StartDate:         draft.Interval.Start,
		EndDate:           draft.Interval.End,
		BreakfastIncluded: draft.IncludeBreakfast,
		Currency:          draft.Currency,
		TotalPrice:        total,
		PaymentStatus:     false,
		PaymentIntentID:   intent.ID,
		ReferenceCode:     utils.NewReferenceCode(),
		PaymentMeta:       datatypes.JSON(meta),
		BookedAt:          time.Now().UTC(),
	}

	if draft.PaymentIntentID != "" && draft.PaymentIntentID == intent.ID {
		// Retry against the same draft: update the existing unpaid row
		// rather than inserting a sibling.
		res := s.DB.Model(&models.Booking{}).
			Where("payment_intent_id = ? AND payment_status = ?", intent.ID, false).
			Updates(map[string]interface{}{
				"start_date":         booking.StartDate,
				"end_date":           booking.EndDate,
				"breakfast_included": booking.BreakfastIncluded,
				"total_price":        booking.TotalPrice,
				"booked_at":          booking.BookedAt,
			})
		if res.Error != nil {
			return PaymentIntent{}, fmt.Errorf("failed to persist pending booking: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// No live unpaid row behind the intent. Either the booking was
			// already confirmed, or it was abandoned and a pending row has to
			// be recreated so the intent stays backed by persisted state.
			var confirmed int64
			if err := s.DB.Model(&models.Booking{}).
				Where("payment_intent_id = ? AND payment_status = ?", intent.ID, true).
				Count(&confirmed).Error; err != nil {
				return PaymentIntent{}, fmt.Errorf("failed to inspect existing booking: %w", err)
			}
			if confirmed > 0 {
				return PaymentIntent{}, ErrAlreadyConfirmed
			}
			// The abandoned row was soft-deleted and still occupies the
			// unique payment_intent_id index; clear it before recreating.
			if err := s.DB.Unscoped().
				Where("payment_intent_id = ?", intent.ID).
				Delete(&models.Booking{}).Error; err != nil {
				return PaymentIntent{}, fmt.Errorf("failed to clear abandoned booking: %w", err)
			}
			if err := s.DB.Create(&booking).Error; err != nil {
				return PaymentIntent{}, fmt.Errorf("failed to persist pending booking: %w", err)
			}
		}
	} else {
		if err := s.DB.Create(&booking).Error; err != nil {
			return PaymentIntent{}, fmt.Errorf("failed to persist pending booking: %w", err)
		}
	}

	draft.PaymentIntentID = intent.ID
	return intent, nil
}

// Confirm completes the lifecycle for the booking behind a payment intent.
// The transition to confirmed requires BOTH payment success reported by the
// provider AND a fresh availability re-validation inside the confirm
// transaction; reusing the quote-time answer would reopen the double-booking
// race this step exists to close. A second call for an already-confirmed
// booking is a no-op returning (false, nil). On any collaborator failure no
// state changes, so the caller may retry the whole step.
func (s *BookingService) Confirm(ctx context.Context, paymentIntentID string) (bool, error) {
	succeeded, err := s.Payments.CheckSucceeded(paymentIntentID)
	if err != nil {
		return false, fmt.Errorf("payment status check failed: %w", err)
	}
	if !succeeded {
		return false, errors.New("payment has not succeeded")
	}

	var lookup models.Booking
	if err := s.DB.Select("room_id").
		Where("payment_intent_id = ?", paymentIntentID).
		First(&lookup).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrBookingNotFound
		}
		return false, fmt.Errorf("failed to load booking: %w", err)
	}
	unlock := s.lockRoom(lookup.RoomID)
	defer unlock()

	var confirmedRoomID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.
			Where("payment_intent_id = ?", paymentIntentID).
			First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("failed to load booking: %w", err)
		}

		if booking.PaymentStatus {
			// Idempotence guard: confirming twice is a no-op.
			return ErrAlreadyConfirmed
		}

		iv, err := utils.NormalizeInterval(booking.StartDate, booking.EndDate)
		if err != nil {
			return err
		}

		// Re-validation against the latest snapshot. Another guest whose
		// confirmation landed first turns this into a refusal even though
		// our payment succeeded.
		var existing []models.Booking
		if err := tx.
			Where("room_id = ? AND payment_status = ? AND id <> ?", booking.RoomID, true, booking.ID).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("failed to load confirmed bookings: %w", err)
		}
		if !IsAvailable(iv, existing) {
			return ErrDateConflict
		}

		// Guarded write: the payment_status predicate makes a concurrent
		// confirm of the same booking a no-op for whoever writes second.
		// Read-committed isolation is enough here; first confirmation
		// write wins the room.
		res := tx.Model(&models.Booking{}).
			Where("id = ? AND payment_status = ?", booking.ID, false).
			Updates(map[string]interface{}{
				"payment_status": true,
				"booked_at":      time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to mark booking confirmed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyConfirmed
		}
		confirmedRoomID = booking.RoomID
		return nil
	})

	if errors.Is(err, ErrAlreadyConfirmed) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	s.Cache.Invalidate(ctx, confirmedRoomID)
	log.Printf("✅ Booking confirmed for intent %s", paymentIntentID)
	return true, nil
}

// Abandon deletes the caller's own unpaid booking row. Confirmed bookings are
// immutable through this path; unpaid rows never blocked availability anyway,
// so this is cleanup, not cancellation of a reservation.
func (s *BookingService) Abandon(bookingID uint, userID string) error {
	res := s.DB.
		Where("id = ? AND user_id = ? AND payment_status = ?", bookingID, userID, false).
		Delete(&models.Booking{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// BookingsByUser lists the bookings a guest has made, newest first.
func (s *BookingService) BookingsByUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Hotel").
		Where("user_id = ?", userID).
		Order("booked_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// BookingsByHotelOwner lists the bookings visitors made on the owner's hotels.
func (s *BookingService) BookingsByHotelOwner(ownerID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").Preload("Hotel").
		Where("hotel_owner_id = ?", ownerID).
		Order("booked_at DESC").
		Find(&bookings).Error
	return bookings, err
}
