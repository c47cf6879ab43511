package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-pms/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentService records payments and refunds against a reservation and
// keeps the reservation's cached paidAmount synchronized with the
// payment ledger. After every operation
// paidAmount == sum(COMPLETED payments) - sum(refunds), and
// 0 <= paidAmount <= totalAmount, enforced by rejecting violating
// operations rather than clamping.
type PaymentService struct {
	DB    *gorm.DB
	folio *FolioService
}

func NewPaymentService(db *gorm.DB, folio *FolioService) *PaymentService {
	return &PaymentService{DB: db, folio: folio}
}

// ProcessPayment records a COMPLETED payment and increments the
// reservation's paid amount in the same transaction. When the paid
// amount reaches the folio total, every unpaid charge is marked paid.
func (s *PaymentService) ProcessPayment(reservationID uint, amount decimal.Decimal, method models.PaymentMethod, transactionID string) (*models.Payment, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, validationError("payment amount must be greater than zero")
	}
	if !models.ValidPaymentMethod(method) {
		return nil, validationError("unknown payment method '%s'", method)
	}
	transactionID = strings.TrimSpace(transactionID)
	if transactionID == "" {
		transactionID = uuid.NewString()
	}

	var payment models.Payment
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var reservation models.Reservation
			if err := lockForUpdate(tx).First(&reservation, reservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundError("Reservation", "id", reservationID)
				}
				return err
			}
			if reservation.Status == models.StatusCancelled {
				return businessError("cannot process payment for cancelled reservation %s",
					reservation.ConfirmationNumber)
			}

			outstanding := reservation.OutstandingBalance()
			if amount.GreaterThan(outstanding.Mul(decimal.NewFromInt(2))) {
				return fmt.Errorf("%w: payment amount %s significantly exceeds outstanding balance %s",
					ErrOverpayment, amount.StringFixed(2), outstanding.StringFixed(2))
			}
			newPaid := reservation.PaidAmount.Add(amount)
			if newPaid.GreaterThan(reservation.TotalAmount) {
				return fmt.Errorf("%w: paid amount %s would exceed total amount %s",
					ErrOverpayment, newPaid.StringFixed(2), reservation.TotalAmount.StringFixed(2))
			}

			payment = models.Payment{
				ReservationID: reservationID,
				Amount:        amount,
				PaymentMethod: method,
				PaymentStatus: models.PaymentStatusCompleted,
				TransactionID: transactionID,
				PaymentDate:   time.Now().UTC(),
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}

			if err := casUpdateReservation(tx, &reservation, map[string]interface{}{
				"paid_amount": newPaid,
			}); err != nil {
				return err
			}

			totalCharges, err := s.folio.calculateTotalChargesTx(tx, reservationID)
			if err != nil {
				return err
			}
			if newPaid.GreaterThanOrEqual(totalCharges) {
				return s.folio.markChargesAsPaidTx(tx, reservationID)
			}
			return nil
		})
		if errors.Is(err, errStaleVersion) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &payment, nil
	}
	return nil, ErrConcurrencyConflict
}

// ProcessRefund records a refund against a COMPLETED payment as a new
// ledger row with negated amount and status REFUNDED, and decrements
// the reservation's paid amount atomically. The original payment row is
// never mutated.
func (s *PaymentService) ProcessRefund(originalPaymentID uint, refundAmount decimal.Decimal) (*models.Payment, error) {
	if refundAmount.LessThanOrEqual(decimal.Zero) {
		return nil, validationError("refund amount must be greater than zero")
	}

	var refund models.Payment
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var original models.Payment
			if err := tx.First(&original, originalPaymentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundError("Payment", "id", originalPaymentID)
				}
				return err
			}
			if !original.IsCompleted() {
				return businessError("can only refund completed payments")
			}
			if refundAmount.GreaterThan(original.Amount) {
				return fmt.Errorf("%w: refund amount %s exceeds original payment amount %s",
					ErrOverRefund, refundAmount.StringFixed(2), original.Amount.StringFixed(2))
			}

			var reservation models.Reservation
			if err := lockForUpdate(tx).First(&reservation, original.ReservationID).Error; err != nil {
				return err
			}
			newPaid := reservation.PaidAmount.Sub(refundAmount)
			if newPaid.IsNegative() {
				return fmt.Errorf("%w: refund would drive paid amount below zero", ErrOverRefund)
			}

			refund = models.Payment{
				ReservationID: original.ReservationID,
				Amount:        refundAmount.Neg(),
				PaymentMethod: original.PaymentMethod,
				PaymentStatus: models.PaymentStatusRefunded,
				TransactionID: "REFUND-" + original.TransactionID,
				PaymentDate:   time.Now().UTC(),
			}
			if err := tx.Create(&refund).Error; err != nil {
				return err
			}

			return casUpdateReservation(tx, &reservation, map[string]interface{}{
				"paid_amount": newPaid,
			})
		})
		if errors.Is(err, errStaleVersion) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &refund, nil
	}
	return nil, ErrConcurrencyConflict
}

// GetReservationPayments lists the reservation's payment ledger in
// entry order, refunds included.
func (s *PaymentService) GetReservationPayments(reservationID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.
		Where("reservation_id = ?", reservationID).
		Order("id").
		Find(&payments).Error
	return payments, err
}

// CalculateTotalPayments returns sum(COMPLETED) - sum(refunds). Refund
// rows are stored negative, so a plain sum over both statuses yields
// the net figure.
func (s *PaymentService) CalculateTotalPayments(reservationID uint) (decimal.Decimal, error) {
	payments, err := s.GetReservationPayments(reservationID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range payments {
		if payments[i].IsCompleted() || payments[i].IsRefund() {
			total = total.Add(payments[i].Amount)
		}
	}
	return total, nil
}

// GetOutstandingBalance returns the folio total minus net payments.
func (s *PaymentService) GetOutstandingBalance(reservationID uint) (decimal.Decimal, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, notFoundError("Reservation", "id", reservationID)
		}
		return decimal.Zero, err
	}
	totalCharges, err := s.folio.CalculateTotalCharges(reservationID)
	if err != nil {
		return decimal.Zero, err
	}
	totalPayments, err := s.CalculateTotalPayments(reservationID)
	if err != nil {
		return decimal.Zero, err
	}
	return totalCharges.Sub(totalPayments), nil
}
