package services

import (
	"time"

	"hotel-pms/models"

	"gorm.io/gorm"
)

// AvailabilityService answers "is room R bookable for [checkIn,
// checkOut)?" by combining the room's inventory status with overlap
// checks against existing reservations. Two half-open intervals
// [inA,outA) and [inB,outB) overlap iff inA < outB && outA > inB, so a
// checkout and a check-in on the same day never conflict.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// blockingStatuses are the reservation states that occupy a room's
// date range.
var blockingStatuses = []models.ReservationStatus{
	models.StatusConfirmed,
	models.StatusCheckedIn,
}

// CountConflicting returns the number of reservations on roomID whose
// date range overlaps [checkIn, checkOut). It runs on the supplied tx
// so booking creation can re-validate under its row lock.
func (s *AvailabilityService) CountConflicting(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (int64, error) {
	var n int64
	err := tx.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ? AND check_in_date < ? AND check_out_date > ?",
			roomID, blockingStatuses, checkOut, checkIn).
		Count(&n).Error
	return n, err
}

// IsRoomAvailable reports whether the room is active, AVAILABLE and
// free of overlapping reservations for the given range. A false answer
// is a valid result, not an error.
func (s *AvailabilityService) IsRoomAvailable(roomID uint, checkIn, checkOut time.Time) (bool, error) {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}
	if !room.IsAvailable() {
		return false, nil
	}
	n, err := s.CountConflicting(s.DB, roomID, models.DateOnly(checkIn), models.DateOnly(checkOut))
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

// FindAvailableRooms lists the active AVAILABLE rooms with no
// overlapping reservation in [checkIn, checkOut), optionally filtered
// by room type. An empty slice means nothing matched.
func (s *AvailabilityService) FindAvailableRooms(checkIn, checkOut time.Time, roomType *models.RoomType) ([]models.Room, error) {
	checkIn = models.DateOnly(checkIn)
	checkOut = models.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return nil, ErrDateRangeInvalid
	}

	conflicting := s.DB.Model(&models.Reservation{}).
		Select("room_id").
		Where("status IN ? AND check_in_date < ? AND check_out_date > ?",
			blockingStatuses, checkOut, checkIn)

	q := s.DB.
		Where("is_active = ?", true).
		Where("status = ?", models.RoomStatusAvailable).
		Where("id NOT IN (?)", conflicting)
	if roomType != nil {
		q = q.Where("room_type = ?", *roomType)
	}

	var rooms []models.Room
	if err := q.Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}
