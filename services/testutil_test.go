package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hotel-pms/config"
	"hotel-pms/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

// newTestDB opens a private in-memory SQLite database and applies the
// production migrations. cache=shared with a unique name keeps every
// pooled connection on the same database while isolating tests from
// each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// fixture bundles the engine's services over one test database plus a
// baseline guest, room and direct channel.
type fixture struct {
	db           *gorm.DB
	availability *AvailabilityService
	rates        *RateService
	folio        *FolioService
	reservations *ReservationService
	payments     *PaymentService
	channels     *ChannelService
	rooms        *RoomService
	guests       *GuestService

	guest   models.Guest
	room    models.Room
	channel models.Channel
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{db: db}
	f.availability = NewAvailabilityService(db)
	f.rates = NewRateService(db)
	f.folio = NewFolioService(db)
	f.reservations = NewReservationService(db, f.availability, f.rates, f.folio)
	f.payments = NewPaymentService(db, f.folio)
	f.channels = NewChannelService(db)
	f.rooms = NewRoomService(db)
	f.guests = NewGuestService(db)

	f.guest = models.Guest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		IsActive:  true,
	}
	if err := db.Create(&f.guest).Error; err != nil {
		t.Fatalf("seed guest: %v", err)
	}

	f.room = models.Room{
		RoomNumber: "101",
		RoomType:   models.RoomTypeDouble,
		Capacity:   2,
		BaseRate:   decimal.NewFromInt(100),
		Status:     models.RoomStatusAvailable,
		IsActive:   true,
	}
	if err := db.Create(&f.room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}

	f.channel = models.Channel{
		ChannelName: "Direct Booking",
		ChannelCode: "DIRECT",
		IsActive:    true,
	}
	if err := db.Create(&f.channel).Error; err != nil {
		t.Fatalf("seed channel: %v", err)
	}

	return f
}

func (f *fixture) addRoom(t *testing.T, number string, roomType models.RoomType, capacity int, baseRate int64) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber: number,
		RoomType:   roomType,
		Capacity:   capacity,
		BaseRate:   decimal.NewFromInt(baseRate),
		Status:     models.RoomStatusAvailable,
		IsActive:   true,
	}
	if err := f.db.Create(&room).Error; err != nil {
		t.Fatalf("seed room %s: %v", number, err)
	}
	return room
}

func (f *fixture) addChannel(t *testing.T, name, code string, commissionRate *decimal.Decimal) models.Channel {
	t.Helper()
	channel := models.Channel{
		ChannelName:    name,
		ChannelCode:    code,
		CommissionRate: commissionRate,
		IsActive:       true,
	}
	if err := f.db.Create(&channel).Error; err != nil {
		t.Fatalf("seed channel %s: %v", code, err)
	}
	return channel
}

// book creates a reservation for the fixture's guest/room/channel.
func (f *fixture) book(t *testing.T, checkIn, checkOut time.Time, guests int) *models.Reservation {
	t.Helper()
	reservation, err := f.reservations.CreateReservation(CreateReservationInput{
		GuestEmail:     f.guest.Email,
		RoomNumber:     f.room.RoomNumber,
		ChannelCode:    f.channel.ChannelCode,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfGuests: guests,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return reservation
}

func (f *fixture) reloadReservation(t *testing.T, id uint) *models.Reservation {
	t.Helper()
	var reservation models.Reservation
	if err := f.db.First(&reservation, id).Error; err != nil {
		t.Fatalf("reload reservation %d: %v", id, err)
	}
	return &reservation
}

func (f *fixture) reloadRoom(t *testing.T, id uint) *models.Room {
	t.Helper()
	var room models.Room
	if err := f.db.First(&room, id).Error; err != nil {
		t.Fatalf("reload room %d: %v", id, err)
	}
	return &room
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func today() time.Time {
	return models.DateOnly(time.Now().UTC())
}

func assertDecimal(t *testing.T, got decimal.Decimal, want int64, label string) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s = %s, want %d", label, got.String(), want)
	}
}
