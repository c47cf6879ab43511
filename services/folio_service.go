package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FolioService maintains the append-only charge ledger attached to each
// reservation. Charges are immutable once created except for the paid
// flag and late amount corrections prior to payment. Adding or
// correcting a charge adjusts the reservation's cached total in the
// same transaction, so totalAmount always equals the folio sum.
type FolioService struct {
	DB *gorm.DB
}

func NewFolioService(db *gorm.DB) *FolioService {
	return &FolioService{DB: db}
}

// CreateRoomChargesTx accrues one ROOM charge per night of the stay at
// the price decided at booking time. Runs inside the booking
// transaction; the reservation's total already reflects these charges.
func (s *FolioService) CreateRoomChargesTx(tx *gorm.DB, reservation *models.Reservation, room *models.Room, nights []NightlyRate) error {
	for i, night := range nights {
		charge := models.FolioCharge{
			ReservationID: reservation.ID,
			ChargeType:    models.ChargeTypeRoom,
			Description:   fmt.Sprintf("Room %s - Night %d", room.RoomNumber, i+1),
			Amount:        night.Amount,
			Quantity:      1,
			ChargeDate:    night.Date,
			Department:    "FRONT_OFFICE",
		}
		if err := tx.Create(&charge).Error; err != nil {
			return err
		}
	}
	return nil
}

// AddCharge appends a charge to the reservation's folio. A tax rate, if
// given, derives the tax amount as amount * taxRate / 100. DISCOUNT
// charges carry a negative amount.
func (s *FolioService) AddCharge(reservationID uint, chargeType models.ChargeType, description string, amount decimal.Decimal, chargeDate time.Time, taxRate *decimal.Decimal) (*models.FolioCharge, error) {
	if !models.ValidChargeType(chargeType) {
		return nil, validationError("unknown charge type '%s'", chargeType)
	}
	if strings.TrimSpace(description) == "" {
		return nil, validationError("charge description is required")
	}
	if amount.IsZero() {
		return nil, validationError("charge amount must not be zero")
	}
	if chargeType == models.ChargeTypeDiscount && amount.IsPositive() {
		amount = amount.Neg()
	}

	charge := models.FolioCharge{
		ChargeType:  chargeType,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		Quantity:    1,
		ChargeDate:  models.DateOnly(chargeDate),
	}
	if taxRate != nil {
		tax := amount.Mul(*taxRate).Div(decimal.NewFromInt(100))
		charge.TaxRate = taxRate
		charge.TaxAmount = &tax
	}
	if err := s.appendCharge(reservationID, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

// AddChargeWithQuantity appends a charge priced as unitPrice *
// quantity. The amount is computed once and stored, never recomputed.
func (s *FolioService) AddChargeWithQuantity(reservationID uint, chargeType models.ChargeType, description string, unitPrice decimal.Decimal, quantity int, chargeDate time.Time) (*models.FolioCharge, error) {
	if !models.ValidChargeType(chargeType) {
		return nil, validationError("unknown charge type '%s'", chargeType)
	}
	if strings.TrimSpace(description) == "" {
		return nil, validationError("charge description is required")
	}
	if quantity <= 0 {
		return nil, validationError("quantity must be greater than zero")
	}
	if unitPrice.IsZero() {
		return nil, validationError("unit price must not be zero")
	}

	amount := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	charge := models.FolioCharge{
		ChargeType:  chargeType,
		Description: strings.TrimSpace(description),
		Amount:      amount,
		UnitPrice:   &unitPrice,
		Quantity:    quantity,
		ChargeDate:  models.DateOnly(chargeDate),
	}
	if err := s.appendCharge(reservationID, &charge); err != nil {
		return nil, err
	}
	return &charge, nil
}

// appendCharge persists the charge and folds its amount into the
// reservation's cached total inside one transaction, retrying on
// version conflicts.
func (s *FolioService) appendCharge(reservationID uint, charge *models.FolioCharge) error {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var reservation models.Reservation
			if err := lockForUpdate(tx).First(&reservation, reservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundError("Reservation", "id", reservationID)
				}
				return err
			}

			charge.ID = 0
			charge.ReservationID = reservationID
			if err := tx.Create(charge).Error; err != nil {
				return err
			}

			return casUpdateReservation(tx, &reservation, map[string]interface{}{
				"total_amount": reservation.TotalAmount.Add(charge.Amount),
			})
		})
		if errors.Is(err, errStaleVersion) {
			continue
		}
		return err
	}
	return ErrConcurrencyConflict
}

// CorrectChargeAmount applies a late amount correction to an unpaid
// charge, keeping the reservation total in sync. Paid charges are
// immutable.
func (s *FolioService) CorrectChargeAmount(chargeID uint, newAmount decimal.Decimal) (*models.FolioCharge, error) {
	if newAmount.IsZero() {
		return nil, validationError("charge amount must not be zero")
	}

	var corrected models.FolioCharge
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var charge models.FolioCharge
			if err := tx.First(&charge, chargeID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundError("FolioCharge", "id", chargeID)
				}
				return err
			}
			if charge.IsPaid {
				return businessError("cannot correct a paid charge")
			}

			var reservation models.Reservation
			if err := lockForUpdate(tx).First(&reservation, charge.ReservationID).Error; err != nil {
				return err
			}

			delta := newAmount.Sub(charge.Amount)
			updates := map[string]interface{}{"amount": newAmount}
			if charge.TaxRate != nil {
				tax := newAmount.Mul(*charge.TaxRate).Div(decimal.NewFromInt(100))
				updates["tax_amount"] = tax
				charge.TaxAmount = &tax
			}
			if err := tx.Model(&charge).Updates(updates).Error; err != nil {
				return err
			}
			charge.Amount = newAmount
			corrected = charge

			return casUpdateReservation(tx, &reservation, map[string]interface{}{
				"total_amount": reservation.TotalAmount.Add(delta),
			})
		})
		if errors.Is(err, errStaleVersion) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &corrected, nil
	}
	return nil, ErrConcurrencyConflict
}

// GetReservationCharges lists the folio in charge-date order.
func (s *FolioService) GetReservationCharges(reservationID uint) ([]models.FolioCharge, error) {
	var charges []models.FolioCharge
	err := s.DB.
		Where("reservation_id = ?", reservationID).
		Order("charge_date, id").
		Find(&charges).Error
	return charges, err
}

// CalculateTotalCharges sums every charge on the folio regardless of
// paid flag.
func (s *FolioService) CalculateTotalCharges(reservationID uint) (decimal.Decimal, error) {
	return s.calculateTotalChargesTx(s.DB, reservationID)
}

func (s *FolioService) calculateTotalChargesTx(tx *gorm.DB, reservationID uint) (decimal.Decimal, error) {
	var charges []models.FolioCharge
	if err := tx.Where("reservation_id = ?", reservationID).Find(&charges).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range charges {
		total = total.Add(charges[i].Amount)
	}
	return total, nil
}

// MarkChargesAsPaid flips every unpaid charge on the folio to paid.
func (s *FolioService) MarkChargesAsPaid(reservationID uint) error {
	return s.markChargesAsPaidTx(s.DB, reservationID)
}

func (s *FolioService) markChargesAsPaidTx(tx *gorm.DB, reservationID uint) error {
	return tx.Model(&models.FolioCharge{}).
		Where("reservation_id = ? AND is_paid = ?", reservationID, false).
		Updates(map[string]interface{}{"is_paid": true, "updated_at": time.Now().UTC()}).Error
}

// RefundableCharges filters the folio through the advisory
// refundability predicate for refund-issuing callers.
func (s *FolioService) RefundableCharges(reservationID uint) ([]models.FolioCharge, error) {
	var reservation models.Reservation
	if err := s.DB.First(&reservation, reservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Reservation", "id", reservationID)
		}
		return nil, err
	}
	charges, err := s.GetReservationCharges(reservationID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	refundable := make([]models.FolioCharge, 0, len(charges))
	for _, c := range charges {
		if c.IsRefundable(reservation.Status, now) {
			refundable = append(refundable, c)
		}
	}
	return refundable, nil
}
