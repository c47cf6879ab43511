package controllers

import (
	"net/http"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RoomController struct {
	Svc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{Svc: svc}
}

type CreateRoomPayload struct {
	RoomNumber string          `json:"roomNumber" binding:"required"`
	RoomType   string          `json:"roomType" binding:"required"`
	Capacity   int             `json:"capacity" binding:"required"`
	BaseRate   decimal.Decimal `json:"baseRate"`
}

type UpdateRoomStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

func (ctl *RoomController) CreateRoom(c *gin.Context) {
	var payload CreateRoomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := ctl.Svc.CreateRoom(services.CreateRoomInput{
		RoomNumber: payload.RoomNumber,
		RoomType:   models.RoomType(payload.RoomType),
		Capacity:   payload.Capacity,
		BaseRate:   payload.BaseRate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func (ctl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctl.Svc.GetAllRooms()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

func (ctl *RoomController) GetRoomByNumber(c *gin.Context) {
	room, err := ctl.Svc.GetRoomByNumber(c.Param("number"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// UpdateStatus handles PATCH /rooms/:id/status for housekeeping moves.
func (ctl *RoomController) UpdateStatus(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload UpdateRoomStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	room, err := ctl.Svc.UpdateRoomStatus(roomID, models.RoomStatus(payload.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func (ctl *RoomController) Deactivate(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.Svc.DeactivateRoom(roomID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deactivated": true})
}
