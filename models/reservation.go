package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type ReservationStatus string

const (
	StatusConfirmed  ReservationStatus = "CONFIRMED"
	StatusCheckedIn  ReservationStatus = "CHECKED_IN"
	StatusCheckedOut ReservationStatus = "CHECKED_OUT"
	StatusCancelled  ReservationStatus = "CANCELLED"
	StatusNoShow     ReservationStatus = "NO_SHOW"
)

// Reservation is a single booking of one room for a half-open date
// range [CheckInDate, CheckOutDate). A reservation is never physically
// deleted; cancellation is a status. The Version column backs the
// optimistic compare-and-swap used by lifecycle and payment updates.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ConfirmationNumber         string `gorm:"column:confirmation_number;uniqueIndex;size:50;not null" json:"confirmationNumber"`
	ExternalConfirmationNumber string `gorm:"column:external_confirmation_number;size:500" json:"externalConfirmationNumber,omitempty"`

	GuestID   uint `gorm:"column:guest_id;index;not null" json:"guestId"`
	RoomID    uint `gorm:"column:room_id;index;not null" json:"roomId"`
	ChannelID uint `gorm:"column:channel_id;index;not null" json:"channelId"`

	CheckInDate  time.Time `gorm:"column:check_in_date;not null" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;not null" json:"checkOutDate"`

	NumberOfGuests   int `gorm:"column:number_of_guests" json:"numberOfGuests"`
	NumberOfChildren int `gorm:"column:number_of_children;default:0" json:"numberOfChildren"`
	NumberOfInfants  int `gorm:"column:number_of_infants;default:0" json:"numberOfInfants"`

	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:decimal(10,2)" json:"totalAmount"`
	PaidAmount     decimal.Decimal `gorm:"column:paid_amount;type:decimal(10,2)" json:"paidAmount"`
	DiscountAmount decimal.Decimal `gorm:"column:discount_amount;type:decimal(10,2)" json:"discountAmount"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:decimal(10,2)" json:"taxAmount"`

	Status          ReservationStatus `gorm:"column:status;size:20;not null;default:CONFIRMED" json:"status"`
	SpecialRequests string            `gorm:"column:special_requests;size:1000" json:"specialRequests,omitempty"`

	AccompanyingGuests datatypes.JSON `gorm:"column:accompanying_guests" json:"accompanyingGuests,omitempty"`

	CheckedInAt        *time.Time `gorm:"column:checked_in_at" json:"checkedInAt,omitempty"`
	CheckedOutAt       *time.Time `gorm:"column:checked_out_at" json:"checkedOutAt,omitempty"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelledAt,omitempty"`
	CancellationReason string     `gorm:"column:cancellation_reason;size:500" json:"cancellationReason,omitempty"`

	Version int `gorm:"column:version;not null;default:1" json:"-"`

	Guest   Guest   `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Room    Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Channel Channel `gorm:"foreignKey:ChannelID" json:"channel,omitempty"`

	FolioCharges []FolioCharge `gorm:"foreignKey:ReservationID" json:"folioCharges,omitempty"`
	Payments     []Payment     `gorm:"foreignKey:ReservationID" json:"payments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Nights returns the stay length in nights (half-open range).
func (r *Reservation) Nights() int {
	return int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
}

// IsActive reports whether the reservation still occupies its room's
// date range for conflict purposes.
func (r *Reservation) IsActive() bool {
	return r.Status == StatusConfirmed || r.Status == StatusCheckedIn
}

func (r *Reservation) CanCheckIn(now time.Time) bool {
	return r.Status == StatusConfirmed && !r.CheckInDate.After(dateOnly(now))
}

func (r *Reservation) CanCheckOut() bool {
	return r.Status == StatusCheckedIn
}

// CanCancel reports whether the cancel transition is permitted. Only a
// CONFIRMED reservation may be cancelled; a checked-in guest must be
// checked out, and terminal states stay terminal.
func (r *Reservation) CanCancel() bool {
	return r.Status == StatusConfirmed
}

func (r *Reservation) OutstandingBalance() decimal.Decimal {
	return r.TotalAmount.Sub(r.PaidAmount)
}

func (r *Reservation) IsFullyPaid() bool {
	return r.OutstandingBalance().LessThanOrEqual(decimal.Zero)
}

func (r *Reservation) IsOverdue(now time.Time) bool {
	return r.CheckOutDate.Before(dateOnly(now)) && r.OutstandingBalance().GreaterThan(decimal.Zero)
}

// IsFromOTA reports whether the reservation came through a non-direct
// channel. Requires the Channel association to be loaded.
func (r *Reservation) IsFromOTA() bool {
	return r.Channel.ID != 0 && !r.Channel.IsDirect()
}

// ChannelCommission returns the commission owed on this reservation's
// total. Requires the Channel association to be loaded.
func (r *Reservation) ChannelCommission() decimal.Decimal {
	return r.Channel.CalculateCommission(r.TotalAmount)
}

func (r *Reservation) NetRevenue() decimal.Decimal {
	return r.TotalAmount.Sub(r.ChannelCommission())
}

// dateOnly truncates t to midnight UTC so calendar-date comparisons
// ignore the time of day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOnly is the exported form used by services when normalizing
// check-in/check-out and rate dates.
func DateOnly(t time.Time) time.Time {
	return dateOnly(t)
}
