package services

import (
	"errors"
	"testing"
	"time"

	"hotel-pms/models"
)

func TestIsRoomAvailableHalfOpenBoundaries(t *testing.T) {
	f := newFixture(t)
	f.book(t, date(2026, time.March, 1), date(2026, time.March, 5), 2)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     bool
	}{
		{"overlapping tail", date(2026, time.March, 4), date(2026, time.March, 6), false},
		{"overlapping head", date(2026, time.February, 27), date(2026, time.March, 2), false},
		{"fully contained", date(2026, time.March, 2), date(2026, time.March, 4), false},
		{"fully containing", date(2026, time.February, 27), date(2026, time.March, 7), false},
		{"back to back after checkout", date(2026, time.March, 5), date(2026, time.March, 8), true},
		{"ends on check-in day", date(2026, time.February, 25), date(2026, time.March, 1), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.availability.IsRoomAvailable(f.room.ID, tc.checkIn, tc.checkOut)
			if err != nil {
				t.Fatalf("IsRoomAvailable: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsRoomAvailable(%s, %s) = %v, want %v",
					tc.checkIn.Format("2006-01-02"), tc.checkOut.Format("2006-01-02"), got, tc.want)
			}
		})
	}
}

func TestCancelledReservationReleasesDates(t *testing.T) {
	f := newFixture(t)
	reservation := f.book(t, date(2026, time.March, 1), date(2026, time.March, 5), 2)

	available, err := f.availability.IsRoomAvailable(f.room.ID, date(2026, time.March, 2), date(2026, time.March, 4))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if available {
		t.Fatal("room should be blocked while the reservation is confirmed")
	}

	if _, err := f.reservations.Cancel(reservation.ID, "guest request"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	available, err = f.availability.IsRoomAvailable(f.room.ID, date(2026, time.March, 2), date(2026, time.March, 4))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if !available {
		t.Fatal("cancelled reservation must not block the room")
	}
}

func TestFindAvailableRooms(t *testing.T) {
	f := newFixture(t)
	suite := f.addRoom(t, "201", models.RoomTypeSuite, 4, 250)
	f.addRoom(t, "202", models.RoomTypeDouble, 2, 110)

	f.book(t, date(2026, time.March, 1), date(2026, time.March, 5), 2) // occupies 101

	rooms, err := f.availability.FindAvailableRooms(date(2026, time.March, 2), date(2026, time.March, 4), nil)
	if err != nil {
		t.Fatalf("FindAvailableRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("got %d rooms, want 2", len(rooms))
	}
	if rooms[0].RoomNumber != "201" || rooms[1].RoomNumber != "202" {
		t.Fatalf("unexpected rooms %s, %s", rooms[0].RoomNumber, rooms[1].RoomNumber)
	}

	suiteType := models.RoomTypeSuite
	rooms, err = f.availability.FindAvailableRooms(date(2026, time.March, 2), date(2026, time.March, 4), &suiteType)
	if err != nil {
		t.Fatalf("FindAvailableRooms with type: %v", err)
	}
	if len(rooms) != 1 || rooms[0].ID != suite.ID {
		t.Fatalf("expected only the suite, got %d rooms", len(rooms))
	}
}

func TestFindAvailableRoomsExcludesOutOfService(t *testing.T) {
	f := newFixture(t)
	broken := f.addRoom(t, "301", models.RoomTypeDouble, 2, 100)
	if err := f.db.Model(&broken).Update("status", models.RoomStatusMaintenance).Error; err != nil {
		t.Fatalf("set maintenance: %v", err)
	}

	rooms, err := f.availability.FindAvailableRooms(date(2026, time.March, 1), date(2026, time.March, 3), nil)
	if err != nil {
		t.Fatalf("FindAvailableRooms: %v", err)
	}
	for _, r := range rooms {
		if r.ID == broken.ID {
			t.Fatal("room under maintenance must not be listed")
		}
	}
}

func TestFindAvailableRoomsRejectsInvalidRange(t *testing.T) {
	f := newFixture(t)
	_, err := f.availability.FindAvailableRooms(date(2026, time.March, 5), date(2026, time.March, 5), nil)
	if !errors.Is(err, ErrDateRangeInvalid) {
		t.Fatalf("got %v, want ErrDateRangeInvalid", err)
	}
}
