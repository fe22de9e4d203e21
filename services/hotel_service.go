package services

import (
	"errors"
	"fmt"

	"hotel-booking-backend/models"

	"gorm.io/gorm"
)

var ErrHotelNotFound = errors.New("hotel not found")

// ErrNotOwner is returned when a caller tries to mutate a hotel or room they
// do not own.
var ErrNotOwner = errors.New("not the hotel owner")

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

func (s *HotelService) Create(hotel *models.Hotel) error {
	return s.DB.Create(hotel).Error
}

func (s *HotelService) GetAll() ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := s.DB.Preload("Rooms").Find(&hotels).Error
	return hotels, err
}

func (s *HotelService) GetByID(id uint) (models.Hotel, error) {
	var hotel models.Hotel
	err := s.DB.Preload("Rooms").First(&hotel, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Hotel{}, ErrHotelNotFound
	}
	return hotel, err
}

func (s *HotelService) GetByOwner(userID string) ([]models.Hotel, error) {
	var hotels []models.Hotel
	err := s.DB.Preload("Rooms").Where("user_id = ?", userID).Find(&hotels).Error
	return hotels, err
}

// Update applies the given fields to the hotel after an ownership check.
func (s *HotelService) Update(id uint, userID string, fields map[string]interface{}) (models.Hotel, error) {
	hotel, err := s.ownedHotel(id, userID)
	if err != nil {
		return models.Hotel{}, err
	}

	delete(fields, "id")
	delete(fields, "userId")
	delete(fields, "user_id")
	delete(fields, "created_at")

	if err := s.DB.Model(&hotel).Updates(fields).Error; err != nil {
		return models.Hotel{}, fmt.Errorf("failed to update hotel: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes the hotel and its rooms. Bookings keep their rows for the
// guests' history; the soft delete just takes the inventory off the market.
func (s *HotelService) Delete(id uint, userID string) error {
	hotel, err := s.ownedHotel(id, userID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("hotel_id = ?", hotel.ID).Delete(&models.Room{}).Error; err != nil {
			return err
		}
		return tx.Delete(&hotel).Error
	})
}

func (s *HotelService) ownedHotel(id uint, userID string) (models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Hotel{}, ErrHotelNotFound
		}
		return models.Hotel{}, err
	}
	if hotel.UserID != userID {
		return models.Hotel{}, ErrNotOwner
	}
	return hotel, nil
}
