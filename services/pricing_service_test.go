package services

import (
	"testing"
	"time"

	"hotel-booking-backend/models"
	"hotel-booking-backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func interval(t *testing.T, start, end time.Time) utils.DateInterval {
	t.Helper()
	iv, err := utils.NormalizeInterval(start, end)
	require.NoError(t, err)
	return iv
}

func TestComputeTotal(t *testing.T) {
	breakfast := 20.0
	rate := models.RateCard{RoomPrice: 100, BreakfastPrice: &breakfast}

	t.Run("three nights with breakfast", func(t *testing.T) {
		iv := interval(t, day(2026, time.January, 1), day(2026, time.January, 4))
		total, err := ComputeTotal(iv, rate, true)
		require.NoError(t, err)
		assert.Equal(t, 360.0, total) // 3*100 + 3*20
	})

	t.Run("breakfast not requested", func(t *testing.T) {
		iv := interval(t, day(2026, time.January, 1), day(2026, time.January, 4))
		total, err := ComputeTotal(iv, rate, false)
		require.NoError(t, err)
		assert.Equal(t, 300.0, total)
	})

	t.Run("room without breakfast offer ignores the toggle", func(t *testing.T) {
		iv := interval(t, day(2026, time.January, 1), day(2026, time.January, 3))
		total, err := ComputeTotal(iv, models.RateCard{RoomPrice: 100}, true)
		require.NoError(t, err)
		assert.Equal(t, 200.0, total)
	})

	t.Run("zero breakfast price ignored", func(t *testing.T) {
		zero := 0.0
		iv := interval(t, day(2026, time.January, 1), day(2026, time.January, 3))
		total, err := ComputeTotal(iv, models.RateCard{RoomPrice: 100, BreakfastPrice: &zero}, true)
		require.NoError(t, err)
		assert.Equal(t, 200.0, total)
	})

	t.Run("linear in nights", func(t *testing.T) {
		one := interval(t, day(2026, time.January, 1), day(2026, time.January, 2))
		two := interval(t, day(2026, time.January, 1), day(2026, time.January, 3))

		t1, err := ComputeTotal(one, rate, false)
		require.NoError(t, err)
		t2, err := ComputeTotal(two, rate, false)
		require.NoError(t, err)
		assert.Equal(t, 2*t1, t2)
	})

	t.Run("zero night stay fails", func(t *testing.T) {
		iv := interval(t, day(2026, time.January, 1), day(2026, time.January, 1))
		_, err := ComputeTotal(iv, rate, false)
		assert.ErrorIs(t, err, ErrInvalidStay)
	})
}
