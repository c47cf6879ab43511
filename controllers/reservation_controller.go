package controllers

import (
	"net/http"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Svc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{Svc: svc}
}

type accompanyingGuestPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Type     string `json:"type"`
}

type CreateReservationPayload struct {
	GuestEmail                 string                     `json:"guestEmail" binding:"required"`
	RoomNumber                 string                     `json:"roomNumber" binding:"required"`
	ChannelCode                string                     `json:"channelCode" binding:"required"`
	CheckInDate                string                     `json:"checkInDate" binding:"required"`
	CheckOutDate               string                     `json:"checkOutDate" binding:"required"`
	NumberOfGuests             int                        `json:"numberOfGuests" binding:"required"`
	NumberOfChildren           int                        `json:"numberOfChildren"`
	NumberOfInfants            int                        `json:"numberOfInfants"`
	SpecialRequests            string                     `json:"specialRequests"`
	ExternalConfirmationNumber string                     `json:"externalConfirmationNumber"`
	AccompanyingGuests         []accompanyingGuestPayload `json:"accompanyingGuests"`
}

type CancelReservationPayload struct {
	Reason string `json:"reason"`
}

func (ctl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	checkIn, err := parseDate(payload.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkInDate must be formatted as YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(payload.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOutDate must be formatted as YYYY-MM-DD")
		return
	}

	guests := make([]services.AccompanyingGuest, 0, len(payload.AccompanyingGuests))
	for _, g := range payload.AccompanyingGuests {
		typ := g.Type
		if typ == "" {
			typ = "Adult"
		}
		guests = append(guests, services.AccompanyingGuest{FullName: g.FullName, Type: typ})
	}

	reservation, err := ctl.Svc.CreateReservation(services.CreateReservationInput{
		GuestEmail:                 payload.GuestEmail,
		RoomNumber:                 payload.RoomNumber,
		ChannelCode:                payload.ChannelCode,
		CheckInDate:                checkIn,
		CheckOutDate:               checkOut,
		NumberOfGuests:             payload.NumberOfGuests,
		NumberOfChildren:           payload.NumberOfChildren,
		NumberOfInfants:            payload.NumberOfInfants,
		SpecialRequests:            payload.SpecialRequests,
		ExternalConfirmationNumber: payload.ExternalConfirmationNumber,
		AccompanyingGuests:         guests,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

func (ctl *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := ctl.Svc.GetReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) GetByConfirmation(c *gin.Context) {
	reservation, err := ctl.Svc.GetReservationByConfirmation(c.Param("confirmation"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := ctl.Svc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := ctl.Svc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload CancelReservationPayload
	_ = c.ShouldBindJSON(&payload)

	reservation, err := ctl.Svc.Cancel(id, payload.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

func (ctl *ReservationController) NoShow(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := ctl.Svc.NoShow(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// CheckAvailability handles GET /availability?checkIn=...&checkOut=...&roomType=...
func (ctl *ReservationController) CheckAvailability(c *gin.Context) {
	checkIn, err := parseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkIn must be formatted as YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "checkOut must be formatted as YYYY-MM-DD")
		return
	}

	var roomType *models.RoomType
	if raw := c.Query("roomType"); raw != "" {
		rt := models.RoomType(raw)
		if !models.ValidRoomType(rt) {
			utils.JSONError(c, http.StatusBadRequest, "unknown room type '"+raw+"'")
			return
		}
		roomType = &rt
	}

	rooms, err := ctl.Svc.CheckAvailability(checkIn, checkOut, roomType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}
