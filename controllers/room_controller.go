package controllers

import (
	"net/http"
	"strings"

	"hotel-booking-backend/middleware"
	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
	"hotel-booking-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// GetRoom (GET /api/rooms/:id)
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := rc.RoomSvc.GetByID(id)
	if err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom (POST /api/hotels/:id/rooms)
func (rc *RoomController) CreateRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := c.ShouldBindJSON(&room); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room.Title = strings.TrimSpace(room.Title)
	if room.Title == "" {
		utils.JSONError(c, http.StatusBadRequest, "title is required")
		return
	}
	if room.RoomPrice <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "room price is required")
		return
	}

	if err := rc.RoomSvc.Create(hotelID, middleware.UserID(c), &room); err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom (PATCH /api/rooms/:id)
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	room, err := rc.RoomSvc.Update(id, middleware.UserID(c), fields)
	if err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom (DELETE /api/rooms/:id)
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := rc.RoomSvc.Delete(id, middleware.UserID(c)); err != nil {
		respondOwnershipError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
