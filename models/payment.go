package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOnline       PaymentMethod = "ONLINE"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// Payment is one entry in a reservation's payment ledger. Refunds are
// separate rows with a negated amount and status REFUNDED; the original
// payment row is never mutated.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint            `gorm:"column:reservation_id;index;not null" json:"reservationId"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	PaymentMethod PaymentMethod   `gorm:"column:payment_method;size:20;not null" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"column:payment_status;size:20;not null;default:PENDING" json:"paymentStatus"`
	TransactionID string          `gorm:"column:transaction_id;size:100" json:"transactionId,omitempty"`
	PaymentDate   time.Time       `gorm:"column:payment_date;not null" json:"paymentDate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}

func (p *Payment) IsRefund() bool {
	return p.PaymentStatus == PaymentStatusRefunded && p.Amount.IsNegative()
}

// ValidPaymentMethod reports whether m is one of the known methods.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodBankTransfer, PaymentMethodOnline:
		return true
	}
	return false
}
