package controllers

import (
	"net/http"

	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RateController struct {
	Svc *services.RateService
}

func NewRateController(svc *services.RateService) *RateController {
	return &RateController{Svc: svc}
}

type SetRatePayload struct {
	RoomID         uint            `json:"roomId" binding:"required"`
	ChannelID      uint            `json:"channelId" binding:"required"`
	Date           string          `json:"date" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	AvailableRooms int             `json:"availableRooms"`
}

type BulkSetRatePayload struct {
	RoomID         uint            `json:"roomId" binding:"required"`
	ChannelID      uint            `json:"channelId" binding:"required"`
	StartDate      string          `json:"startDate" binding:"required"`
	EndDate        string          `json:"endDate" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	AvailableRooms int             `json:"availableRooms"`
}

type BlockSalesPayload struct {
	RoomID    uint   `json:"roomId" binding:"required"`
	ChannelID uint   `json:"channelId" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

func (ctl *RateController) SetRate(c *gin.Context) {
	var payload SetRatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	rate, err := ctl.Svc.SetRate(payload.RoomID, payload.ChannelID, date, payload.Amount, payload.AvailableRooms)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rate)
}

func (ctl *RateController) BulkSetRates(c *gin.Context) {
	var payload BulkSetRatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	start, err := parseDate(payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "startDate must be formatted as YYYY-MM-DD")
		return
	}
	end, err := parseDate(payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "endDate must be formatted as YYYY-MM-DD")
		return
	}

	if err := ctl.Svc.BulkSetRates(payload.RoomID, payload.ChannelID, start, end, payload.Amount, payload.AvailableRooms); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "rates updated"})
}

func (ctl *RateController) BlockSales(c *gin.Context) {
	ctl.toggleBlock(c, true)
}

func (ctl *RateController) UnblockSales(c *gin.Context) {
	ctl.toggleBlock(c, false)
}

func (ctl *RateController) toggleBlock(c *gin.Context, block bool) {
	var payload BlockSalesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	date, err := parseDate(payload.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	if block {
		err = ctl.Svc.BlockSales(payload.RoomID, payload.ChannelID, date)
	} else {
		err = ctl.Svc.UnblockSales(payload.RoomID, payload.ChannelID, date)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"blocked": block})
}

// GetRatesForRoom handles GET /rooms/:id/rates?start=...&end=...
func (ctl *RateController) GetRatesForRoom(c *gin.Context) {
	roomID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	start, err := parseDate(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "start must be formatted as YYYY-MM-DD")
		return
	}
	end, err := parseDate(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "end must be formatted as YYYY-MM-DD")
		return
	}

	rates, err := ctl.Svc.GetRatesForRoom(roomID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}

// GetRatesForChannel handles GET /channels/:id/rates?date=...
func (ctl *RateController) GetRatesForChannel(c *gin.Context) {
	channelID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	rates, err := ctl.Svc.GetRatesForChannel(channelID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rates)
}
