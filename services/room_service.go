package services

import (
	"errors"
	"fmt"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// Create adds a room under a hotel after verifying the caller owns it.
func (s *RoomService) Create(hotelID uint, userID string, room *models.Room) error {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHotelNotFound
		}
		return err
	}
	if hotel.UserID != userID {
		return ErrNotOwner
	}
	room.HotelID = hotelID
	return s.DB.Create(room).Error
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	err := s.DB.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Room{}, ErrRoomNotFound
	}
	return room, err
}

// GetRateCard is the rate-source lookup the price calculator depends on.
func (s *RoomService) GetRateCard(roomID uint) (models.RateCard, error) {
	room, err := s.GetByID(roomID)
	if err != nil {
		return models.RateCard{}, err
	}
	return room.RateCard(), nil
}

func (s *RoomService) Update(id uint, userID string, fields map[string]interface{}) (models.Room, error) {
	room, err := s.ownedRoom(id, userID)
	if err != nil {
		return models.Room{}, err
	}

	delete(fields, "id")
	delete(fields, "hotelId")
	delete(fields, "hotel_id")
	delete(fields, "created_at")

	if err := s.DB.Model(&room).Updates(fields).Error; err != nil {
		return models.Room{}, fmt.Errorf("failed to update room: %w", err)
	}
	return s.GetByID(id)
}

func (s *RoomService) Delete(id uint, userID string) error {
	room, err := s.ownedRoom(id, userID)
	if err != nil {
		return err
	}
	return s.DB.Delete(&room).Error
}

func (s *RoomService) ownedRoom(id uint, userID string) (models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("Hotel").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, err
	}
	if room.Hotel.UserID != userID {
		return models.Room{}, ErrNotOwner
	}
	return room, nil
}
