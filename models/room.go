package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type RoomType string

const (
	RoomTypeSingle RoomType = "SINGLE"
	RoomTypeDouble RoomType = "DOUBLE"
	RoomTypeTwin   RoomType = "TWIN"
	RoomTypeSuite  RoomType = "SUITE"
	RoomTypeDeluxe RoomType = "DELUXE"
)

type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "AVAILABLE"
	RoomStatusOccupied    RoomStatus = "OCCUPIED"
	RoomStatusDirty       RoomStatus = "DIRTY"
	RoomStatusMaintenance RoomStatus = "MAINTENANCE"
	RoomStatusOutOfOrder  RoomStatus = "OUT_OF_ORDER"
)

// Room is the authoritative inventory record for one physical room.
// Status is mutated only through status-transition operations in the
// room/reservation services.
type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber string          `gorm:"column:room_number;uniqueIndex;size:50" json:"roomNumber"`
	RoomType   RoomType        `gorm:"column:room_type;size:20" json:"roomType"`
	Capacity   int             `gorm:"column:capacity" json:"capacity"`
	BaseRate   decimal.Decimal `gorm:"column:base_rate;type:decimal(10,2)" json:"baseRate"`
	Status     RoomStatus      `gorm:"column:status;size:20;default:AVAILABLE" json:"status"`
	IsActive   bool            `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsAvailable reports whether the room can receive a new booking at the
// inventory level. Date-range conflicts are checked separately.
func (r *Room) IsAvailable() bool {
	return r.Status == RoomStatusAvailable && r.IsActive
}

func (r *Room) MarkAsOccupied() {
	r.Status = RoomStatusOccupied
}

func (r *Room) MarkAsAvailable() {
	r.Status = RoomStatusAvailable
}

// ValidRoomType reports whether t is one of the known room types.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTwin, RoomTypeSuite, RoomTypeDeluxe:
		return true
	}
	return false
}
