package services

import (
	"testing"

	"hotel-booking-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Hotel{}, &models.Room{}, &models.Booking{}))

	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Booking{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Room{})
	db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Hotel{})
	return db
}

func TestHotelOwnership(t *testing.T) {
	db := setupDB(t)
	svc := NewHotelService(db)

	hotel := models.Hotel{UserID: "owner-1", Title: "Mine"}
	require.NoError(t, svc.Create(&hotel))

	t.Run("owner can update", func(t *testing.T) {
		updated, err := svc.Update(hotel.ID, "owner-1", map[string]interface{}{"title": "Renamed"})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		_, err := svc.Update(hotel.ID, "owner-2", map[string]interface{}{"title": "Stolen"})
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("protected fields are stripped", func(t *testing.T) {
		updated, err := svc.Update(hotel.ID, "owner-1", map[string]interface{}{
			"user_id": "owner-2",
			"city":    "Porto",
		})
		require.NoError(t, err)
		assert.Equal(t, "owner-1", updated.UserID)
		assert.Equal(t, "Porto", updated.City)
	})

	t.Run("unknown hotel", func(t *testing.T) {
		_, err := svc.GetByID(9999)
		assert.ErrorIs(t, err, ErrHotelNotFound)
	})
}

func TestHotelDeleteCascadesRooms(t *testing.T) {
	db := setupDB(t)
	hotelSvc := NewHotelService(db)
	roomSvc := NewRoomService(db)

	hotel := models.Hotel{UserID: "owner-1", Title: "Mine"}
	require.NoError(t, hotelSvc.Create(&hotel))

	room := models.Room{Title: "Room", RoomPrice: 50}
	require.NoError(t, roomSvc.Create(hotel.ID, "owner-1", &room))

	t.Run("stranger cannot delete", func(t *testing.T) {
		assert.ErrorIs(t, hotelSvc.Delete(hotel.ID, "owner-2"), ErrNotOwner)
	})

	require.NoError(t, hotelSvc.Delete(hotel.ID, "owner-1"))

	_, err := hotelSvc.GetByID(hotel.ID)
	assert.ErrorIs(t, err, ErrHotelNotFound)
	_, err = roomSvc.GetByID(room.ID)
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRoomService(t *testing.T) {
	db := setupDB(t)
	hotelSvc := NewHotelService(db)
	roomSvc := NewRoomService(db)

	hotel := models.Hotel{UserID: "owner-1", Title: "Mine"}
	require.NoError(t, hotelSvc.Create(&hotel))

	t.Run("create requires ownership", func(t *testing.T) {
		room := models.Room{Title: "Nope", RoomPrice: 50}
		assert.ErrorIs(t, roomSvc.Create(hotel.ID, "owner-2", &room), ErrNotOwner)
	})

	breakfast := 15.0
	room := models.Room{Title: "Double", RoomPrice: 80, BreakfastPrice: &breakfast}
	require.NoError(t, roomSvc.Create(hotel.ID, "owner-1", &room))
	assert.Equal(t, hotel.ID, room.HotelID)

	t.Run("rate card lookup", func(t *testing.T) {
		rate, err := roomSvc.GetRateCard(room.ID)
		require.NoError(t, err)
		assert.Equal(t, 80.0, rate.RoomPrice)
		require.NotNil(t, rate.BreakfastPrice)
		assert.Equal(t, 15.0, *rate.BreakfastPrice)
	})

	t.Run("update strips hotel binding", func(t *testing.T) {
		updated, err := roomSvc.Update(room.ID, "owner-1", map[string]interface{}{
			"hotel_id":   uint(9999),
			"room_price": 90.0,
		})
		require.NoError(t, err)
		assert.Equal(t, hotel.ID, updated.HotelID)
		assert.Equal(t, 90.0, updated.RoomPrice)
	})

	t.Run("delete requires ownership", func(t *testing.T) {
		assert.ErrorIs(t, roomSvc.Delete(room.ID, "owner-2"), ErrNotOwner)
		assert.NoError(t, roomSvc.Delete(room.ID, "owner-1"))
	})
}
