package controllers

import (
	"net/http"

	"hotel-pms/models"
	"hotel-pms/services"
	"hotel-pms/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentController struct {
	Svc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: svc}
}

type ProcessPaymentPayload struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" binding:"required"`
	TransactionID string          `json:"transactionId"`
}

type ProcessRefundPayload struct {
	Amount decimal.Decimal `json:"amount"`
}

// ProcessPayment handles POST /reservations/:id/payments
func (ctl *PaymentController) ProcessPayment(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ProcessPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	payment, err := ctl.Svc.ProcessPayment(reservationID, payload.Amount,
		models.PaymentMethod(payload.PaymentMethod), payload.TransactionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// ProcessRefund handles POST /payments/:id/refund
func (ctl *PaymentController) ProcessRefund(c *gin.Context) {
	paymentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var payload ProcessRefundPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	refund, err := ctl.Svc.ProcessRefund(paymentID, payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, refund)
}

// GetPayments handles GET /reservations/:id/payments
func (ctl *PaymentController) GetPayments(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payments, err := ctl.Svc.GetReservationPayments(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// GetOutstandingBalance handles GET /reservations/:id/balance
func (ctl *PaymentController) GetOutstandingBalance(c *gin.Context) {
	reservationID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	balance, err := ctl.Svc.GetOutstandingBalance(reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"outstandingBalance": balance})
}
