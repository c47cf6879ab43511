package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-pms/config"
	"hotel-pms/models"
	"hotel-pms/utils"

	"gorm.io/gorm"
)

// ReservationService drives a booking through its lifecycle:
// CONFIRMED -> CHECKED_IN -> CHECKED_OUT, with CANCELLED and NO_SHOW as
// alternate terminal exits from CONFIRMED. Creation is the critical
// section: the availability check is re-validated under a row lock on
// the room inside the same transaction that inserts the reservation
// and accrues its room charges.
type ReservationService struct {
	DB           *gorm.DB
	availability *AvailabilityService
	rates        *RateService
	folio        *FolioService
}

func NewReservationService(db *gorm.DB, availability *AvailabilityService, rates *RateService, folio *FolioService) *ReservationService {
	return &ReservationService{DB: db, availability: availability, rates: rates, folio: folio}
}

// AccompanyingGuest is one entry of the optional guest list stored on
// the reservation as JSON.
type AccompanyingGuest struct {
	FullName string `json:"fullName"`
	Type     string `json:"type"`
}

type CreateReservationInput struct {
	GuestEmail                 string
	RoomNumber                 string
	ChannelCode                string
	CheckInDate                time.Time
	CheckOutDate               time.Time
	NumberOfGuests             int
	NumberOfChildren           int
	NumberOfInfants            int
	SpecialRequests            string
	ExternalConfirmationNumber string
	AccompanyingGuests         []AccompanyingGuest
}

// CreateReservation validates the request, prices the stay and persists
// a CONFIRMED reservation with its nightly room charges in one
// transaction. Lock or confirmation-number collisions are retried a
// bounded number of times before surfacing a booking conflict.
func (s *ReservationService) CreateReservation(in CreateReservationInput) (*models.Reservation, error) {
	if strings.TrimSpace(in.GuestEmail) == "" {
		return nil, validationError("guest email is required")
	}
	if strings.TrimSpace(in.RoomNumber) == "" {
		return nil, validationError("room number is required")
	}
	if strings.TrimSpace(in.ChannelCode) == "" {
		return nil, validationError("channel code is required")
	}
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() {
		return nil, validationError("check-in and check-out dates are required")
	}
	checkIn := models.DateOnly(in.CheckInDate)
	checkOut := models.DateOnly(in.CheckOutDate)
	if !checkOut.After(checkIn) {
		return nil, ErrDateRangeInvalid
	}
	if in.NumberOfGuests <= 0 {
		return nil, validationError("number of guests must be greater than 0")
	}
	if in.NumberOfChildren < 0 || in.NumberOfInfants < 0 {
		return nil, validationError("children and infant counts must not be negative")
	}

	var guest models.Guest
	if err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(in.GuestEmail))).First(&guest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Guest", "email", in.GuestEmail)
		}
		return nil, err
	}
	if !guest.IsActive {
		return nil, businessError("guest '%s' is not active", guest.Email)
	}

	var room models.Room
	if err := s.DB.Where("room_number = ?", strings.TrimSpace(in.RoomNumber)).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Room", "roomNumber", in.RoomNumber)
		}
		return nil, err
	}

	var channel models.Channel
	if err := s.DB.Where("channel_code = ?", strings.TrimSpace(in.ChannelCode)).First(&channel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Channel", "channelCode", in.ChannelCode)
		}
		return nil, err
	}
	if !channel.IsActive {
		return nil, businessError("channel '%s' is not active", channel.ChannelCode)
	}

	if !room.IsAvailable() {
		return nil, fmt.Errorf("%w: room %s is not available", ErrRoomUnavailable, room.RoomNumber)
	}
	if in.NumberOfGuests > room.Capacity {
		return nil, fmt.Errorf("%w: %d guests exceed room capacity of %d",
			ErrCapacityExceeded, in.NumberOfGuests, room.Capacity)
	}

	var guestListJSON []byte
	if len(in.AccompanyingGuests) > 0 {
		b, err := json.Marshal(in.AccompanyingGuests)
		if err != nil {
			return nil, validationError("invalid accompanying guest list")
		}
		guestListJSON = b
	}

	var reservation models.Reservation
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		lastErr = s.DB.Transaction(func(tx *gorm.DB) error {
			// Re-read the room under lock and re-validate the overlap
			// condition so two concurrent requests cannot both commit.
			var lockedRoom models.Room
			if err := lockForUpdate(tx).First(&lockedRoom, room.ID).Error; err != nil {
				return err
			}
			if !lockedRoom.IsAvailable() {
				return fmt.Errorf("%w: room %s is not available", ErrRoomUnavailable, lockedRoom.RoomNumber)
			}
			conflicts, err := s.availability.CountConflicting(tx, room.ID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if conflicts > 0 {
				return fmt.Errorf("%w: room %s is not available for the selected dates",
					ErrRoomUnavailable, room.RoomNumber)
			}

			total, nights, err := s.rates.PriceStay(tx, &room, channel.ID, checkIn, checkOut,
				in.NumberOfGuests, in.NumberOfChildren)
			if err != nil {
				return err
			}

			confirmation, err := s.uniqueConfirmationNumber(tx)
			if err != nil {
				return err
			}

			reservation = models.Reservation{
				ConfirmationNumber:         confirmation,
				ExternalConfirmationNumber: strings.TrimSpace(in.ExternalConfirmationNumber),
				GuestID:                    guest.ID,
				RoomID:                     room.ID,
				ChannelID:                  channel.ID,
				CheckInDate:                checkIn,
				CheckOutDate:               checkOut,
				NumberOfGuests:             in.NumberOfGuests,
				NumberOfChildren:           in.NumberOfChildren,
				NumberOfInfants:            in.NumberOfInfants,
				TotalAmount:                total,
				Status:                     models.StatusConfirmed,
				SpecialRequests:            strings.TrimSpace(in.SpecialRequests),
				AccompanyingGuests:         guestListJSON,
				Version:                    1,
			}
			if err := tx.Create(&reservation).Error; err != nil {
				return err
			}

			if err := s.folio.CreateRoomChargesTx(tx, &reservation, &room, nights); err != nil {
				return err
			}
			return s.rates.DecrementAvailabilityTx(tx, room.ID, channel.ID, checkIn, checkOut)
		})
		if lastErr == nil {
			reservation.Guest = guest
			reservation.Room = room
			reservation.Channel = channel
			return &reservation, nil
		}
		if isDuplicateKeyError(lastErr) || isRetryableTxError(lastErr) {
			log.Printf("reservation create collision (attempt %d): %v - retrying", attempt+1, lastErr)
			continue
		}
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %v", ErrBookingConflict, lastErr)
}

// CheckIn moves a CONFIRMED reservation to CHECKED_IN and the room to
// OCCUPIED. Allowed only on or after the check-in date.
func (s *ReservationService) CheckIn(reservationID uint) (*models.Reservation, error) {
	now := time.Now().UTC()
	return s.transition(reservationID, func(tx *gorm.DB, res *models.Reservation) error {
		if res.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: cannot check in reservation %s from status %s",
				ErrInvalidStateTransition, res.ConfirmationNumber, res.Status)
		}
		if res.CheckInDate.After(models.DateOnly(now)) {
			return fmt.Errorf("%w: reservation %s check-in date is in the future",
				ErrInvalidStateTransition, res.ConfirmationNumber)
		}
		if err := casUpdateReservation(tx, res, map[string]interface{}{
			"status":        models.StatusCheckedIn,
			"checked_in_at": now,
		}); err != nil {
			return err
		}
		return s.setRoomStatusTx(tx, res.RoomID, models.RoomStatusOccupied)
	})
}

// CheckOut moves a CHECKED_IN reservation to CHECKED_OUT. The room's
// post-checkout status (DIRTY awaiting housekeeping, or directly
// AVAILABLE) is a deployment policy, not hard-coded.
func (s *ReservationService) CheckOut(reservationID uint) (*models.Reservation, error) {
	now := time.Now().UTC()
	return s.transition(reservationID, func(tx *gorm.DB, res *models.Reservation) error {
		if !res.CanCheckOut() {
			return fmt.Errorf("%w: cannot check out reservation %s - guest is not checked in",
				ErrInvalidStateTransition, res.ConfirmationNumber)
		}
		if err := casUpdateReservation(tx, res, map[string]interface{}{
			"status":         models.StatusCheckedOut,
			"checked_out_at": now,
		}); err != nil {
			return err
		}
		return s.setRoomStatusTx(tx, res.RoomID, config.CheckoutRoomStatus())
	})
}

// Cancel moves a CONFIRMED reservation to CANCELLED. A checked-in
// guest must be checked out instead, and terminal states stay terminal.
func (s *ReservationService) Cancel(reservationID uint, reason string) (*models.Reservation, error) {
	now := time.Now().UTC()
	return s.transition(reservationID, func(tx *gorm.DB, res *models.Reservation) error {
		if res.Status == models.StatusCheckedOut {
			return fmt.Errorf("%w: cannot cancel reservation %s - already checked out",
				ErrInvalidStateTransition, res.ConfirmationNumber)
		}
		if !res.CanCancel() {
			return fmt.Errorf("%w: cannot cancel reservation %s from status %s",
				ErrInvalidStateTransition, res.ConfirmationNumber, res.Status)
		}
		if err := casUpdateReservation(tx, res, map[string]interface{}{
			"status":              models.StatusCancelled,
			"cancelled_at":        now,
			"cancellation_reason": strings.TrimSpace(reason),
		}); err != nil {
			return err
		}
		// If the room shows OCCUPIED on behalf of this reservation,
		// release it back to inventory.
		var room models.Room
		if err := tx.First(&room, res.RoomID).Error; err != nil {
			return err
		}
		if room.Status == models.RoomStatusOccupied && res.CheckedInAt != nil {
			return s.setRoomStatusTx(tx, room.ID, models.RoomStatusAvailable)
		}
		return nil
	})
}

// NoShow marks a CONFIRMED reservation whose guest never arrived.
func (s *ReservationService) NoShow(reservationID uint) (*models.Reservation, error) {
	return s.transition(reservationID, func(tx *gorm.DB, res *models.Reservation) error {
		if res.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: cannot mark reservation %s as no-show from status %s",
				ErrInvalidStateTransition, res.ConfirmationNumber, res.Status)
		}
		return casUpdateReservation(tx, res, map[string]interface{}{
			"status": models.StatusNoShow,
		})
	})
}

// CheckAvailability lists bookable rooms for the date range, optionally
// filtered by room type.
func (s *ReservationService) CheckAvailability(checkIn, checkOut time.Time, roomType *models.RoomType) ([]models.Room, error) {
	return s.availability.FindAvailableRooms(checkIn, checkOut, roomType)
}

func (s *ReservationService) GetReservation(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Guest").Preload("Room").Preload("Channel").
		First(&reservation, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Reservation", "id", reservationID)
		}
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) GetReservationByConfirmation(confirmationNumber string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.DB.
		Preload("Guest").Preload("Room").Preload("Channel").
		Where("confirmation_number = ?", strings.TrimSpace(confirmationNumber)).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Reservation", "confirmationNumber", confirmationNumber)
		}
		return nil, err
	}
	return &reservation, nil
}

// transition runs one guarded state change inside a transaction with a
// bounded optimistic retry loop, then returns the reloaded reservation.
func (s *ReservationService) transition(reservationID uint, apply func(tx *gorm.DB, res *models.Reservation) error) (*models.Reservation, error) {
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := s.DB.Transaction(func(tx *gorm.DB) error {
			var reservation models.Reservation
			if err := tx.First(&reservation, reservationID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return notFoundError("Reservation", "id", reservationID)
				}
				return err
			}
			return apply(tx, &reservation)
		})
		if errors.Is(err, errStaleVersion) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s.GetReservation(reservationID)
	}
	return nil, ErrConcurrencyConflict
}

func (s *ReservationService) setRoomStatusTx(tx *gorm.DB, roomID uint, status models.RoomStatus) error {
	return tx.Model(&models.Room{}).
		Where("id = ?", roomID).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now().UTC()}).Error
}

// uniqueConfirmationNumber regenerates until no reservation holds the
// candidate. The unique index remains the final arbiter; a lost race
// surfaces as a duplicate-key error and retries the whole transaction.
func (s *ReservationService) uniqueConfirmationNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < 10; i++ {
		candidate, err := utils.GenerateConfirmationNumber(time.Now().UTC())
		if err != nil {
			return "", err
		}
		var n int64
		if err := tx.Model(&models.Reservation{}).
			Where("confirmation_number = ?", candidate).
			Count(&n).Error; err != nil {
			return "", err
		}
		if n == 0 {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique confirmation number")
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// isRetryableTxError matches lock/serialization failures the store may
// raise under contention.
func isRetryableTxError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") || strings.Contains(msg, "lock wait timeout") ||
		strings.Contains(msg, "database is locked")
}
