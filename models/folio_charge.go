package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ChargeType string

const (
	ChargeTypeRoom     ChargeType = "ROOM"
	ChargeTypeTax      ChargeType = "TAX"
	ChargeTypeService  ChargeType = "SERVICE"
	ChargeTypeExtra    ChargeType = "EXTRA"
	ChargeTypePenalty  ChargeType = "PENALTY"
	ChargeTypeDiscount ChargeType = "DISCOUNT"
)

// FolioCharge is one line on a reservation's folio. Charges are
// append-only: after creation only the paid flag changes.
type FolioCharge struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint       `gorm:"column:reservation_id;index;not null" json:"reservationId"`
	ChargeType    ChargeType `gorm:"column:charge_type;size:20;not null" json:"chargeType"`
	Description   string     `gorm:"column:description;size:200;not null" json:"description"`

	Amount     decimal.Decimal  `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	Quantity   int              `gorm:"column:quantity;default:1" json:"quantity"`
	UnitPrice  *decimal.Decimal `gorm:"column:unit_price;type:decimal(10,2)" json:"unitPrice,omitempty"`
	TaxRate    *decimal.Decimal `gorm:"column:tax_rate;type:decimal(5,2)" json:"taxRate,omitempty"`
	TaxAmount  *decimal.Decimal `gorm:"column:tax_amount;type:decimal(10,2)" json:"taxAmount,omitempty"`
	ChargeDate time.Time        `gorm:"column:charge_date;not null" json:"chargeDate"`
	IsPaid     bool             `gorm:"column:is_paid;default:false" json:"isPaid"`

	Department string `gorm:"column:department;size:50" json:"department,omitempty"`
	Reference  string `gorm:"column:reference;size:100" json:"reference,omitempty"`
	Notes      string `gorm:"column:notes;size:1000" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *FolioCharge) MarkAsPaid() {
	c.IsPaid = true
}

func (c *FolioCharge) IsRoomCharge() bool {
	return c.ChargeType == ChargeTypeRoom
}

// IsRefundable is the advisory refundability predicate consulted by
// refund-issuing callers; the ledger itself never enforces it. Room
// charges are refundable only while the reservation is still CONFIRMED;
// any other charge only within 24 hours of its charge date.
func (c *FolioCharge) IsRefundable(reservationStatus ReservationStatus, now time.Time) bool {
	if c.IsRoomCharge() {
		return reservationStatus == StatusConfirmed
	}
	return c.ChargeDate.After(now.AddDate(0, 0, -1))
}

// TotalWithTax returns amount plus the derived tax amount, if any.
func (c *FolioCharge) TotalWithTax() decimal.Decimal {
	if c.TaxAmount != nil {
		return c.Amount.Add(*c.TaxAmount)
	}
	return c.Amount
}

// ValidChargeType reports whether t is one of the known charge types.
func ValidChargeType(t ChargeType) bool {
	switch t {
	case ChargeTypeRoom, ChargeTypeTax, ChargeTypeService,
		ChargeTypeExtra, ChargeTypePenalty, ChargeTypeDiscount:
		return true
	}
	return false
}
