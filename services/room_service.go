package services

import (
	"errors"
	"fmt"
	"strings"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RoomService is the thin inventory surface the engine consumes: room
// lookup by business key and housekeeping status transitions. Room CRUD
// beyond this belongs to the surrounding admin system.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type CreateRoomInput struct {
	RoomNumber string
	RoomType   models.RoomType
	Capacity   int
	BaseRate   decimal.Decimal
}

func (s *RoomService) CreateRoom(in CreateRoomInput) (*models.Room, error) {
	number := strings.TrimSpace(in.RoomNumber)
	if number == "" {
		return nil, validationError("room number is required")
	}
	if !models.ValidRoomType(in.RoomType) {
		return nil, validationError("unknown room type '%s'", in.RoomType)
	}
	if in.Capacity <= 0 {
		return nil, validationError("capacity must be greater than zero")
	}
	if in.BaseRate.IsNegative() {
		return nil, validationError("base rate must not be negative")
	}

	room := models.Room{
		RoomNumber: number,
		RoomType:   in.RoomType,
		Capacity:   in.Capacity,
		BaseRate:   in.BaseRate,
		Status:     models.RoomStatusAvailable,
		IsActive:   true,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, businessError("room number '%s' already exists", number)
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetRoomByNumber(roomNumber string) (*models.Room, error) {
	var room models.Room
	err := s.DB.Where("room_number = ?", strings.TrimSpace(roomNumber)).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Room", "roomNumber", roomNumber)
		}
		return nil, err
	}
	return &room, nil
}

func (s *RoomService) GetAllRooms() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number").Find(&rooms).Error
	return rooms, err
}

// roomStatusTransitions lists the permitted housekeeping moves. OCCUPIED
// is entered and left only through the reservation lifecycle.
var roomStatusTransitions = map[models.RoomStatus][]models.RoomStatus{
	models.RoomStatusAvailable:   {models.RoomStatusMaintenance, models.RoomStatusOutOfOrder, models.RoomStatusDirty},
	models.RoomStatusDirty:       {models.RoomStatusAvailable, models.RoomStatusMaintenance, models.RoomStatusOutOfOrder},
	models.RoomStatusMaintenance: {models.RoomStatusAvailable, models.RoomStatusOutOfOrder},
	models.RoomStatusOutOfOrder:  {models.RoomStatusAvailable, models.RoomStatusMaintenance},
}

// UpdateRoomStatus applies a housekeeping status change (for example
// DIRTY -> AVAILABLE after cleaning). Transitions in or out of OCCUPIED
// are rejected here; check-in and check-out own those.
func (s *RoomService) UpdateRoomStatus(roomID uint, status models.RoomStatus) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Room", "id", roomID)
		}
		return nil, err
	}

	allowed := false
	for _, next := range roomStatusTransitions[room.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: room %s cannot move from %s to %s",
			ErrInvalidStateTransition, room.RoomNumber, room.Status, status)
	}

	if err := s.DB.Model(&room).Update("status", status).Error; err != nil {
		return nil, err
	}
	room.Status = status
	return &room, nil
}

// DeactivateRoom takes the room out of sellable inventory without
// touching its reservation history.
func (s *RoomService) DeactivateRoom(roomID uint) error {
	res := s.DB.Model(&models.Room{}).Where("id = ?", roomID).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundError("Room", "id", roomID)
	}
	return nil
}
