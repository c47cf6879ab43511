package controllers

import (
	"net/http"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ChannelController struct {
	Svc *services.ChannelService
}

func NewChannelController(svc *services.ChannelService) *ChannelController {
	return &ChannelController{Svc: svc}
}

type CreateChannelPayload struct {
	ChannelName    string           `json:"channelName" binding:"required"`
	ChannelCode    string           `json:"channelCode" binding:"required"`
	CommissionRate *decimal.Decimal `json:"commissionRate"`
	ApiEndpoint    string           `json:"apiEndpoint"`
	Description    string           `json:"description"`
}

func (ctl *ChannelController) CreateChannel(c *gin.Context) {
	var payload CreateChannelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	channel, err := ctl.Svc.CreateChannel(services.CreateChannelInput{
		ChannelName:    payload.ChannelName,
		ChannelCode:    payload.ChannelCode,
		CommissionRate: payload.CommissionRate,
		ApiEndpoint:    payload.ApiEndpoint,
		Description:    payload.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, channel)
}

func (ctl *ChannelController) GetChannels(c *gin.Context) {
	channels, err := ctl.Svc.GetAllChannels()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, channels)
}

func (ctl *ChannelController) GetChannelByCode(c *gin.Context) {
	channel, err := ctl.Svc.GetChannelByCode(c.Param("code"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, channel)
}

// GetReservationPerformance handles GET /reservations/:id/commission
func (ctl *ChannelController) GetReservationPerformance(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	perf, err := ctl.Svc.ReservationPerformance(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, perf)
}
