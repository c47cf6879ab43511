package services

import (
	"errors"
	"time"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RateService owns the per (room, channel, date) price and allotment
// table. Upserts are keyed on the unique (room_id, channel_id,
// rate_date) index so re-running a bulk update yields identical rows.
type RateService struct {
	DB *gorm.DB
}

func NewRateService(db *gorm.DB) *RateService {
	return &RateService{DB: db}
}

// NightlyRate is the price decided for one night of a stay. The folio
// ledger accrues one ROOM charge per entry at booking time.
type NightlyRate struct {
	Date   time.Time
	Amount decimal.Decimal
}

// SetRate creates or updates the rate row for (roomID, channelID,
// date). Price and allotment are replaced; blocked flag and
// restrictions are left untouched on update.
func (s *RateService) SetRate(roomID, channelID uint, date time.Time, amount decimal.Decimal, availableRooms int) (*models.Rate, error) {
	if amount.IsNegative() {
		return nil, validationError("rate amount must not be negative")
	}
	if availableRooms < 0 {
		return nil, validationError("available rooms must not be negative")
	}
	if err := s.ensureRoomAndChannel(roomID, channelID); err != nil {
		return nil, err
	}

	var rate *models.Rate
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		rate, txErr = s.setRateTx(tx, roomID, channelID, date, amount, availableRooms)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return rate, nil
}

func (s *RateService) setRateTx(tx *gorm.DB, roomID, channelID uint, date time.Time, amount decimal.Decimal, availableRooms int) (*models.Rate, error) {
	date = models.DateOnly(date)

	var rate models.Rate
	err := tx.Where("room_id = ? AND channel_id = ? AND rate_date = ?", roomID, channelID, date).
		First(&rate).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"rate_amount":     amount,
			"available_rooms": availableRooms,
		}
		if err := tx.Model(&rate).Updates(updates).Error; err != nil {
			return nil, err
		}
		rate.RateAmount = amount
		rate.AvailableRooms = availableRooms
		return &rate, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		rate = models.Rate{
			RoomID:         roomID,
			ChannelID:      channelID,
			RateDate:       date,
			RateAmount:     amount,
			AvailableRooms: availableRooms,
		}
		if err := tx.Create(&rate).Error; err != nil {
			return nil, err
		}
		return &rate, nil
	default:
		return nil, err
	}
}

// BulkSetRates applies the same upsert once per date in the closed
// range [startDate, endDate]. The whole range is one transaction, and
// re-running with identical arguments leaves the stored rows identical.
func (s *RateService) BulkSetRates(roomID, channelID uint, startDate, endDate time.Time, amount decimal.Decimal, availableRooms int) error {
	startDate = models.DateOnly(startDate)
	endDate = models.DateOnly(endDate)
	if endDate.Before(startDate) {
		return validationError("end date must not be before start date")
	}
	if amount.IsNegative() {
		return validationError("rate amount must not be negative")
	}
	if availableRooms < 0 {
		return validationError("available rooms must not be negative")
	}
	if err := s.ensureRoomAndChannel(roomID, channelID); err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
			if _, err := s.setRateTx(tx, roomID, channelID, d, amount, availableRooms); err != nil {
				return err
			}
		}
		return nil
	})
}

// BlockSales marks the rate row closed for new bookings without
// altering its price.
func (s *RateService) BlockSales(roomID, channelID uint, date time.Time) error {
	return s.setBlocked(roomID, channelID, date, true)
}

// UnblockSales reopens the rate row for new bookings.
func (s *RateService) UnblockSales(roomID, channelID uint, date time.Time) error {
	return s.setBlocked(roomID, channelID, date, false)
}

func (s *RateService) setBlocked(roomID, channelID uint, date time.Time, blocked bool) error {
	date = models.DateOnly(date)
	res := s.DB.Model(&models.Rate{}).
		Where("room_id = ? AND channel_id = ? AND rate_date = ?", roomID, channelID, date).
		Update("is_blocked", blocked)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundError("Rate", "room/channel/date", date.Format("2006-01-02"))
	}
	return nil
}

// GetRatesForRoom lists the room's rate rows within [startDate,
// endDate], all channels, ordered by date.
func (s *RateService) GetRatesForRoom(roomID uint, startDate, endDate time.Time) ([]models.Rate, error) {
	var rates []models.Rate
	err := s.DB.
		Where("room_id = ? AND rate_date >= ? AND rate_date <= ?",
			roomID, models.DateOnly(startDate), models.DateOnly(endDate)).
		Order("rate_date, channel_id").
		Find(&rates).Error
	return rates, err
}

// GetRatesForChannel lists all room rates a channel sells on one date.
func (s *RateService) GetRatesForChannel(channelID uint, date time.Time) ([]models.Rate, error) {
	var rates []models.Rate
	err := s.DB.
		Where("channel_id = ? AND rate_date = ?", channelID, models.DateOnly(date)).
		Order("room_id").
		Find(&rates).Error
	return rates, err
}

// PriceStay prices [checkIn, checkOut) for a new booking: per night the
// (room, channel, night) rate row when present and open for sale,
// otherwise the room's base rate. Surcharges for guests over capacity
// and for children come from the rate row. Runs on the caller's tx so
// the booked price is read in the same unit of work that persists it.
func (s *RateService) PriceStay(tx *gorm.DB, room *models.Room, channelID uint, checkIn, checkOut time.Time, numberOfGuests, numberOfChildren int) (decimal.Decimal, []NightlyRate, error) {
	checkIn = models.DateOnly(checkIn)
	checkOut = models.DateOnly(checkOut)
	if !checkOut.After(checkIn) {
		return decimal.Zero, nil, ErrDateRangeInvalid
	}

	var rows []models.Rate
	err := tx.
		Where("room_id = ? AND channel_id = ? AND rate_date >= ? AND rate_date < ?",
			room.ID, channelID, checkIn, checkOut).
		Find(&rows).Error
	if err != nil {
		return decimal.Zero, nil, err
	}
	byDate := make(map[string]*models.Rate, len(rows))
	for i := range rows {
		byDate[models.DateOnly(rows[i].RateDate).Format("2006-01-02")] = &rows[i]
	}

	total := decimal.Zero
	var nights []NightlyRate
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		amount := room.BaseRate
		if rate, ok := byDate[d.Format("2006-01-02")]; ok && rate.IsAvailable() {
			amount = rate.TotalForOccupancy(room.Capacity, numberOfGuests, numberOfChildren)
		}
		nights = append(nights, NightlyRate{Date: d, Amount: amount})
		total = total.Add(amount)
	}
	return total, nights, nil
}

// DecrementAvailabilityTx reduces the per-night allotment after a
// booking, one room per night where a rate row exists with remaining
// availability. Runs inside the booking transaction.
func (s *RateService) DecrementAvailabilityTx(tx *gorm.DB, roomID, channelID uint, checkIn, checkOut time.Time) error {
	checkIn = models.DateOnly(checkIn)
	checkOut = models.DateOnly(checkOut)
	return tx.Model(&models.Rate{}).
		Where("room_id = ? AND channel_id = ? AND rate_date >= ? AND rate_date < ? AND available_rooms > 0",
			roomID, channelID, checkIn, checkOut).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - 1")).Error
}

func (s *RateService) ensureRoomAndChannel(roomID, channelID uint) error {
	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Room", "id", roomID)
		}
		return err
	}
	var channel models.Channel
	if err := s.DB.First(&channel, channelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Channel", "id", channelID)
		}
		return err
	}
	return nil
}
