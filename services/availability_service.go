package services

import (
	"sort"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"gorm.io/gorm"
)

// AvailabilityService answers "is this date range free for this room?" and
// derives the blocked calendar days for the booking calendar. The overlap
// logic itself is pure; the DB only supplies the confirmed-booking snapshot.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// IsAvailable reports whether candidate conflicts with none of the existing
// bookings. Only confirmed bookings (payment_status = true) participate;
// pending rows never block other guests. Pure over its inputs: calling it
// again with a refreshed snapshot may legitimately flip the answer if another
// booking was confirmed in between (last-confirmed-wins).
func IsAvailable(candidate utils.DateInterval, existing []models.Booking) bool {
	for _, b := range existing {
		if !b.PaymentStatus {
			continue
		}
		iv, err := utils.NormalizeInterval(b.StartDate, b.EndDate)
		if err != nil {
			// A stored booking with end before start is corrupt data;
			// treat it as non-blocking rather than poisoning every check.
			continue
		}
		if utils.Overlaps(candidate, iv) {
			return false
		}
	}
	return true
}

// DisabledDates returns every calendar day covered by a confirmed booking,
// deduplicated and sorted. Order carries no meaning for callers; sorting just
// keeps responses stable.
func DisabledDates(existing []models.Booking) []time.Time {
	seen := make(map[time.Time]struct{})
	for _, b := range existing {
		if !b.PaymentStatus {
			continue
		}
		iv, err := utils.NormalizeInterval(b.StartDate, b.EndDate)
		if err != nil {
			continue
		}
		for _, day := range iv.DaysCovered() {
			seen[day.UTC()] = struct{}{}
		}
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// ListConfirmedBookings loads the confirmed-booking snapshot for a room.
func (s *AvailabilityService) ListConfirmedBookings(roomID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.
		Where("room_id = ? AND payment_status = ?", roomID, true).
		Find(&bookings).Error
	return bookings, err
}

// CheckRoom runs the availability test against the latest confirmed bookings
// for the room.
func (s *AvailabilityService) CheckRoom(roomID uint, candidate utils.DateInterval) (bool, error) {
	existing, err := s.ListConfirmedBookings(roomID)
	if err != nil {
		return false, err
	}
	return IsAvailable(candidate, existing), nil
}

// DisabledDatesForRoom derives the blocked days for a room from the latest
// confirmed bookings.
func (s *AvailabilityService) DisabledDatesForRoom(roomID uint) ([]time.Time, error) {
	existing, err := s.ListConfirmedBookings(roomID)
	if err != nil {
		return nil, err
	}
	return DisabledDates(existing), nil
}
