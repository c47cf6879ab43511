package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rate is the price and allotment for one room, one channel, one
// calendar date. At most one row may exist per (room, channel, date).
type Rate struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID    uint      `gorm:"column:room_id;uniqueIndex:idx_rate_room_channel_date;not null" json:"roomId"`
	ChannelID uint      `gorm:"column:channel_id;uniqueIndex:idx_rate_room_channel_date;not null" json:"channelId"`
	RateDate  time.Time `gorm:"column:rate_date;uniqueIndex:idx_rate_room_channel_date;not null" json:"rateDate"`

	RateAmount      decimal.Decimal  `gorm:"column:rate_amount;type:decimal(10,2);not null" json:"rateAmount"`
	AvailableRooms  int              `gorm:"column:available_rooms;not null" json:"availableRooms"`
	ExtraPersonRate *decimal.Decimal `gorm:"column:extra_person_rate;type:decimal(10,2)" json:"extraPersonRate,omitempty"`
	ChildRate       *decimal.Decimal `gorm:"column:child_rate;type:decimal(10,2)" json:"childRate,omitempty"`
	IsBlocked       bool             `gorm:"column:is_blocked;default:false" json:"isBlocked"`
	Restrictions    string           `gorm:"column:restrictions;size:255" json:"restrictions,omitempty"`

	Room    Room    `gorm:"foreignKey:RoomID" json:"-"`
	Channel Channel `gorm:"foreignKey:ChannelID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAvailable reports whether this rate row may price a NEW booking.
// Existing bookings priced from it are unaffected; pricing is decided
// at booking time and never recomputed.
func (r *Rate) IsAvailable() bool {
	return !r.IsBlocked && r.AvailableRooms > 0
}

// TotalForOccupancy returns the nightly amount for the given occupancy:
// the base rate amount, plus the extra-person surcharge for each guest
// over the room's capacity, plus the child surcharge per child.
func (r *Rate) TotalForOccupancy(roomCapacity, numberOfGuests, numberOfChildren int) decimal.Decimal {
	total := r.RateAmount

	if numberOfGuests > roomCapacity && r.ExtraPersonRate != nil {
		extra := int64(numberOfGuests - roomCapacity)
		total = total.Add(r.ExtraPersonRate.Mul(decimal.NewFromInt(extra)))
	}
	if numberOfChildren > 0 && r.ChildRate != nil {
		total = total.Add(r.ChildRate.Mul(decimal.NewFromInt(int64(numberOfChildren))))
	}
	return total
}
