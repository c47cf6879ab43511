package services

import (
	"errors"
	"testing"
	"time"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
)

func TestSetRateUpserts(t *testing.T) {
	f := newFixture(t)
	day := date(2026, time.April, 10)

	first, err := f.rates.SetRate(f.room.ID, f.channel.ID, day, decimal.NewFromInt(120), 5)
	if err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	second, err := f.rates.SetRate(f.room.ID, f.channel.ID, day, decimal.NewFromInt(135), 3)
	if err != nil {
		t.Fatalf("SetRate update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("update created a new row: %d != %d", second.ID, first.ID)
	}

	var n int64
	if err := f.db.Model(&models.Rate{}).
		Where("room_id = ? AND channel_id = ? AND rate_date = ?", f.room.ID, f.channel.ID, day).
		Count(&n).Error; err != nil {
		t.Fatalf("count rates: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d rate rows for the date, want 1", n)
	}
	assertDecimal(t, second.RateAmount, 135, "rate amount")
	if second.AvailableRooms != 3 {
		t.Fatalf("available rooms = %d, want 3", second.AvailableRooms)
	}
}

func TestSetRateRejectsNegative(t *testing.T) {
	f := newFixture(t)
	_, err := f.rates.SetRate(f.room.ID, f.channel.ID, date(2026, time.April, 10), decimal.NewFromInt(-1), 5)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	_, err = f.rates.SetRate(f.room.ID, f.channel.ID, date(2026, time.April, 10), decimal.NewFromInt(100), -1)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestSetRateUnknownRoomOrChannel(t *testing.T) {
	f := newFixture(t)
	_, err := f.rates.SetRate(9999, f.channel.ID, date(2026, time.April, 10), decimal.NewFromInt(100), 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	_, err = f.rates.SetRate(f.room.ID, 9999, date(2026, time.April, 10), decimal.NewFromInt(100), 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestBulkSetRatesIdempotent(t *testing.T) {
	f := newFixture(t)
	start := date(2026, time.April, 1)
	end := date(2026, time.April, 5)

	run := func() []models.Rate {
		if err := f.rates.BulkSetRates(f.room.ID, f.channel.ID, start, end, decimal.NewFromInt(110), 4); err != nil {
			t.Fatalf("BulkSetRates: %v", err)
		}
		rates, err := f.rates.GetRatesForRoom(f.room.ID, start, end)
		if err != nil {
			t.Fatalf("GetRatesForRoom: %v", err)
		}
		return rates
	}

	first := run()
	if len(first) != 5 {
		t.Fatalf("got %d rows, want 5", len(first))
	}
	second := run()
	if len(second) != 5 {
		t.Fatalf("second run produced %d rows, want 5", len(second))
	}
	for i := range first {
		if second[i].ID != first[i].ID {
			t.Fatalf("row %d recreated: id %d != %d", i, second[i].ID, first[i].ID)
		}
		if !second[i].RateAmount.Equal(first[i].RateAmount) {
			t.Fatalf("row %d amount changed: %s != %s", i, second[i].RateAmount, first[i].RateAmount)
		}
	}
}

func TestBulkSetRatesRejectsReversedRange(t *testing.T) {
	f := newFixture(t)
	err := f.rates.BulkSetRates(f.room.ID, f.channel.ID,
		date(2026, time.April, 5), date(2026, time.April, 1), decimal.NewFromInt(110), 4)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
}

func TestBlockAndUnblockSales(t *testing.T) {
	f := newFixture(t)
	day := date(2026, time.April, 10)
	if _, err := f.rates.SetRate(f.room.ID, f.channel.ID, day, decimal.NewFromInt(120), 5); err != nil {
		t.Fatalf("SetRate: %v", err)
	}

	if err := f.rates.BlockSales(f.room.ID, f.channel.ID, day); err != nil {
		t.Fatalf("BlockSales: %v", err)
	}
	rates, err := f.rates.GetRatesForRoom(f.room.ID, day, day)
	if err != nil {
		t.Fatalf("GetRatesForRoom: %v", err)
	}
	if len(rates) != 1 || !rates[0].IsBlocked {
		t.Fatal("rate should be blocked")
	}
	assertDecimal(t, rates[0].RateAmount, 120, "blocked rate amount")

	if err := f.rates.UnblockSales(f.room.ID, f.channel.ID, day); err != nil {
		t.Fatalf("UnblockSales: %v", err)
	}
	rates, _ = f.rates.GetRatesForRoom(f.room.ID, day, day)
	if rates[0].IsBlocked {
		t.Fatal("rate should be unblocked")
	}
}

func TestBlockSalesMissingRate(t *testing.T) {
	f := newFixture(t)
	err := f.rates.BlockSales(f.room.ID, f.channel.ID, date(2026, time.April, 20))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestPriceStayFallsBackToBaseRate(t *testing.T) {
	f := newFixture(t)
	checkIn := date(2026, time.May, 1)
	checkOut := date(2026, time.May, 4)

	total, nights, err := f.rates.PriceStay(f.db, &f.room, f.channel.ID, checkIn, checkOut, 2, 0)
	if err != nil {
		t.Fatalf("PriceStay: %v", err)
	}
	assertDecimal(t, total, 300, "total for 3 nights at base rate")
	if len(nights) != 3 {
		t.Fatalf("got %d nights, want 3", len(nights))
	}
}

func TestPriceStayUsesChannelRateWhereSet(t *testing.T) {
	f := newFixture(t)
	checkIn := date(2026, time.May, 1)
	checkOut := date(2026, time.May, 4)

	for _, d := range []time.Time{checkIn, checkIn.AddDate(0, 0, 1)} {
		if _, err := f.rates.SetRate(f.room.ID, f.channel.ID, d, decimal.NewFromInt(120), 2); err != nil {
			t.Fatalf("SetRate: %v", err)
		}
	}

	total, nights, err := f.rates.PriceStay(f.db, &f.room, f.channel.ID, checkIn, checkOut, 2, 0)
	if err != nil {
		t.Fatalf("PriceStay: %v", err)
	}
	// 120 + 120 + base 100
	assertDecimal(t, total, 340, "total with two overridden nights")
	assertDecimal(t, nights[0].Amount, 120, "night 1")
	assertDecimal(t, nights[2].Amount, 100, "night 3")
}

func TestPriceStayIgnoresBlockedRate(t *testing.T) {
	f := newFixture(t)
	day := date(2026, time.May, 1)
	if _, err := f.rates.SetRate(f.room.ID, f.channel.ID, day, decimal.NewFromInt(500), 2); err != nil {
		t.Fatalf("SetRate: %v", err)
	}
	if err := f.rates.BlockSales(f.room.ID, f.channel.ID, day); err != nil {
		t.Fatalf("BlockSales: %v", err)
	}

	total, _, err := f.rates.PriceStay(f.db, &f.room, f.channel.ID, day, day.AddDate(0, 0, 1), 2, 0)
	if err != nil {
		t.Fatalf("PriceStay: %v", err)
	}
	assertDecimal(t, total, 100, "blocked rate falls back to base")
}

func TestPriceStayOccupancySurcharges(t *testing.T) {
	f := newFixture(t)
	day := date(2026, time.May, 1)
	extra := decimal.NewFromInt(25)
	child := decimal.NewFromInt(10)
	rate := models.Rate{
		RoomID:          f.room.ID,
		ChannelID:       f.channel.ID,
		RateDate:        day,
		RateAmount:      decimal.NewFromInt(120),
		AvailableRooms:  2,
		ExtraPersonRate: &extra,
		ChildRate:       &child,
	}
	if err := f.db.Create(&rate).Error; err != nil {
		t.Fatalf("seed rate: %v", err)
	}

	// 3 guests in a capacity-2 room with 2 children: 120 + 25 + 2*10
	total, _, err := f.rates.PriceStay(f.db, &f.room, f.channel.ID, day, day.AddDate(0, 0, 1), 3, 2)
	if err != nil {
		t.Fatalf("PriceStay: %v", err)
	}
	assertDecimal(t, total, 165, "night with surcharges")
}

func TestPriceStayRejectsEmptyRange(t *testing.T) {
	f := newFixture(t)
	day := date(2026, time.May, 1)
	_, _, err := f.rates.PriceStay(f.db, &f.room, f.channel.ID, day, day, 2, 0)
	if !errors.Is(err, ErrDateRangeInvalid) {
		t.Fatalf("got %v, want ErrDateRangeInvalid", err)
	}
}

func TestBookingDecrementsAllotment(t *testing.T) {
	f := newFixture(t)
	checkIn := date(2026, time.May, 1)
	checkOut := date(2026, time.May, 3)
	if err := f.rates.BulkSetRates(f.room.ID, f.channel.ID, checkIn, checkOut, decimal.NewFromInt(120), 2); err != nil {
		t.Fatalf("BulkSetRates: %v", err)
	}

	f.book(t, checkIn, checkOut, 2)

	rates, err := f.rates.GetRatesForRoom(f.room.ID, checkIn, checkOut.AddDate(0, 0, -1))
	if err != nil {
		t.Fatalf("GetRatesForRoom: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("got %d stay-night rows, want 2", len(rates))
	}
	for _, r := range rates {
		if r.AvailableRooms != 1 {
			t.Fatalf("allotment on %s = %d, want 1", r.RateDate.Format("2006-01-02"), r.AvailableRooms)
		}
	}

	// The checkout date itself is not a stay night and keeps its allotment.
	checkoutRates, err := f.rates.GetRatesForRoom(f.room.ID, checkOut, checkOut)
	if err != nil {
		t.Fatalf("GetRatesForRoom checkout: %v", err)
	}
	if len(checkoutRates) == 1 && checkoutRates[0].AvailableRooms != 2 {
		t.Fatalf("checkout-day allotment = %d, want 2", checkoutRates[0].AvailableRooms)
	}
}
