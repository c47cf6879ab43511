package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestCreateChannelNormalizesCode(t *testing.T) {
	f := newFixture(t)
	rate := decimal.NewFromInt(15)
	channel, err := f.channels.CreateChannel(CreateChannelInput{
		ChannelName:    "Booking.com",
		ChannelCode:    " bcm ",
		CommissionRate: &rate,
	})
	if err != nil {
		t.Fatalf("CreateChannel: %v", err)
	}
	if channel.ChannelCode != "BCM" {
		t.Fatalf("code = %q, want BCM", channel.ChannelCode)
	}

	found, err := f.channels.GetChannelByCode("bcm")
	if err != nil {
		t.Fatalf("GetChannelByCode: %v", err)
	}
	if found.ID != channel.ID {
		t.Fatalf("lookup returned id %d, want %d", found.ID, channel.ID)
	}
}

func TestCreateChannelDuplicateCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.channels.CreateChannel(CreateChannelInput{
		ChannelName: "Walk-in",
		ChannelCode: "direct",
	})
	if !errors.Is(err, ErrDuplicateChannelCode) {
		t.Fatalf("got %v, want ErrDuplicateChannelCode", err)
	}
}

func TestCreateChannelCommissionRateBounds(t *testing.T) {
	f := newFixture(t)
	over := decimal.NewFromInt(101)
	_, err := f.channels.CreateChannel(CreateChannelInput{
		ChannelName:    "Greedy OTA",
		ChannelCode:    "GRD",
		CommissionRate: &over,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("rate over 100: got %v, want ErrValidation", err)
	}

	negative := decimal.NewFromInt(-1)
	_, err = f.channels.CreateChannel(CreateChannelInput{
		ChannelName:    "Generous OTA",
		ChannelCode:    "GEN",
		CommissionRate: &negative,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("negative rate: got %v, want ErrValidation", err)
	}
}

func TestCalculatePerformance(t *testing.T) {
	f := newFixture(t)
	rate := decimal.NewFromInt(15)
	ota := f.addChannel(t, "Booking.com", "BCM", &rate)

	perf := f.channels.CalculatePerformance(&ota, decimal.NewFromInt(1000))
	assertDecimal(t, perf.Commission, 150, "commission at 15%")
	assertDecimal(t, perf.NetRevenue, 850, "net revenue")

	// Channels without a commission rate owe nothing.
	perf = f.channels.CalculatePerformance(&f.channel, decimal.NewFromInt(1000))
	assertDecimal(t, perf.Commission, 0, "direct commission")
	assertDecimal(t, perf.NetRevenue, 1000, "direct net revenue")
}

func TestReservationPerformance(t *testing.T) {
	f := newFixture(t)
	rate := decimal.NewFromInt(20)
	f.addChannel(t, "Expedia", "EXP", &rate)

	reservation, err := f.reservations.CreateReservation(CreateReservationInput{
		GuestEmail:     f.guest.Email,
		RoomNumber:     f.room.RoomNumber,
		ChannelCode:    "EXP",
		CheckInDate:    date(2026, time.March, 1),
		CheckOutDate:   date(2026, time.March, 6), // 5 nights at base 100
		NumberOfGuests: 2,
	})
	if err != nil {
		t.Fatalf("CreateReservation: %v", err)
	}

	perf, err := f.channels.ReservationPerformance(reservation.ID)
	if err != nil {
		t.Fatalf("ReservationPerformance: %v", err)
	}
	if perf.ChannelCode != "EXP" {
		t.Fatalf("channel code = %q, want EXP", perf.ChannelCode)
	}
	assertDecimal(t, perf.TotalAmount, 500, "reservation total")
	assertDecimal(t, perf.Commission, 100, "commission at 20%")
	assertDecimal(t, perf.NetRevenue, 400, "net revenue")
}

func TestReservationPerformanceUnknownReservation(t *testing.T) {
	f := newFixture(t)
	_, err := f.channels.ReservationPerformance(9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
