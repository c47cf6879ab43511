package controllers

import (
	"net/http"
	"time"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type FolioController struct {
	Svc *services.FolioService
}

func NewFolioController(svc *services.FolioService) *FolioController {
	return &FolioController{Svc: svc}
}

type AddChargePayload struct {
	ChargeType  string           `json:"chargeType" binding:"required"`
	Description string           `json:"description" binding:"required"`
	Amount      decimal.Decimal  `json:"amount"`
	ChargeDate  string           `json:"chargeDate"`
	TaxRate     *decimal.Decimal `json:"taxRate"`
}

type AddChargeWithQuantityPayload struct {
	ChargeType  string          `json:"chargeType" binding:"required"`
	Description string          `json:"description" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" binding:"required"`
	ChargeDate  string          `json:"chargeDate"`
}

type CorrectChargePayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// AddCharge handles POST /reservations/:id/charges
func (ctl *FolioController) AddCharge(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload AddChargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	chargeDate := time.Now().UTC()
	if payload.ChargeDate != "" {
		parsed, err := parseDate(payload.ChargeDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "chargeDate must be formatted as YYYY-MM-DD")
			return
		}
		chargeDate = parsed
	}

	charge, err := ctl.Svc.AddCharge(reservationID, models.ChargeType(payload.ChargeType),
		payload.Description, payload.Amount, chargeDate, payload.TaxRate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

// AddChargeWithQuantity handles POST /reservations/:id/charges/quantity
func (ctl *FolioController) AddChargeWithQuantity(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload AddChargeWithQuantityPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	chargeDate := time.Now().UTC()
	if payload.ChargeDate != "" {
		parsed, err := parseDate(payload.ChargeDate)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "chargeDate must be formatted as YYYY-MM-DD")
			return
		}
		chargeDate = parsed
	}

	charge, err := ctl.Svc.AddChargeWithQuantity(reservationID, models.ChargeType(payload.ChargeType),
		payload.Description, payload.UnitPrice, payload.Quantity, chargeDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

// CorrectCharge handles PATCH /charges/:id
func (ctl *FolioController) CorrectCharge(c *gin.Context) {
	chargeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload CorrectChargePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	charge, err := ctl.Svc.CorrectChargeAmount(chargeID, payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charge)
}

// GetCharges handles GET /reservations/:id/charges
func (ctl *FolioController) GetCharges(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	charges, err := ctl.Svc.GetReservationCharges(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}

// GetTotal handles GET /reservations/:id/charges/total
func (ctl *FolioController) GetTotal(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	total, err := ctl.Svc.CalculateTotalCharges(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"total": total})
}

// GetRefundable handles GET /reservations/:id/charges/refundable
func (ctl *FolioController) GetRefundable(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	charges, err := ctl.Svc.RefundableCharges(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}
