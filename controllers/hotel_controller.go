package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	HotelSvc *services.HotelService
}

func NewHotelController(svc *services.HotelService) *HotelController {
	return &HotelController{HotelSvc: svc}
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// GetHotels (GET /api/hotels) lists every hotel with its rooms.
func (hc *HotelController) GetHotels(c *gin.Context) {
	hotels, err := hc.HotelSvc.GetAll()
	if err != nil {
		log.Printf("❌ hotels query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load hotels")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// GetHotelByID (GET /api/hotels/:id)
func (hc *HotelController) GetHotelByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := hc.HotelSvc.GetByID(id)
	if err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// GetMyHotels (GET /api/hotels/my) lists the caller's own hotels.
func (hc *HotelController) GetMyHotels(c *gin.Context) {
	hotels, err := hc.HotelSvc.GetByOwner(middleware.UserID(c))
	if err != nil {
		log.Printf("❌ my hotels query failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to load hotels")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// CreateHotel (POST /api/hotels)
func (hc *HotelController) CreateHotel(c *gin.Context) {
	var hotel models.Hotel
	if err := c.ShouldBindJSON(&hotel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	hotel.Title = strings.TrimSpace(hotel.Title)
	if hotel.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "title is required")
		return
	}
	hotel.UserID = middleware.UserID(c)

	if err := hc.HotelSvc.Create(&hotel); err != nil {
		log.Printf("❌ hotel create failed: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to create hotel")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

// UpdateHotel (PATCH /api/hotels/:id)
func (hc *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	hotel, err := hc.HotelSvc.Update(id, middleware.UserID(c), fields)
	if err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

// DeleteHotel (DELETE /api/hotels/:id)
func (hc *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hc.HotelSvc.Delete(id, middleware.UserID(c)); err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

func respondOwnershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHotelNotFound), errors.Is(err, services.ErrRoomNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		utils.JSONError(c, http.StatusForbidden, err.Error())
	default:
		log.Printf("❌ hotel error: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "operation failed")
	}
}
