package services

import (
	"errors"
	"testing"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
)

func TestCreateRoom(t *testing.T) {
	f := newFixture(t)
	room, err := f.rooms.CreateRoom(CreateRoomInput{
		RoomNumber: "305",
		RoomType:   models.RoomTypeSuite,
		Capacity:   4,
		BaseRate:   decimal.NewFromInt(250),
	})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if room.Status != models.RoomStatusAvailable || !room.IsActive {
		t.Fatalf("new room should be active and AVAILABLE, got %s active=%v", room.Status, room.IsActive)
	}

	_, err = f.rooms.CreateRoom(CreateRoomInput{
		RoomNumber: "305",
		RoomType:   models.RoomTypeSuite,
		Capacity:   4,
		BaseRate:   decimal.NewFromInt(250),
	})
	if !errors.Is(err, ErrBusinessRule) {
		t.Fatalf("duplicate number: got %v, want ErrBusinessRule", err)
	}
}

func TestCreateRoomValidation(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name string
		in   CreateRoomInput
	}{
		{"blank number", CreateRoomInput{RoomNumber: " ", RoomType: models.RoomTypeSingle, Capacity: 1, BaseRate: decimal.NewFromInt(80)}},
		{"unknown type", CreateRoomInput{RoomNumber: "401", RoomType: "PENTHOUSE", Capacity: 2, BaseRate: decimal.NewFromInt(80)}},
		{"zero capacity", CreateRoomInput{RoomNumber: "401", RoomType: models.RoomTypeSingle, Capacity: 0, BaseRate: decimal.NewFromInt(80)}},
		{"negative rate", CreateRoomInput{RoomNumber: "401", RoomType: models.RoomTypeSingle, Capacity: 1, BaseRate: decimal.NewFromInt(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.rooms.CreateRoom(tc.in); !errors.Is(err, ErrValidation) {
				t.Fatalf("got %v, want ErrValidation", err)
			}
		})
	}
}

func TestUpdateRoomStatusHousekeepingMoves(t *testing.T) {
	f := newFixture(t)

	room, err := f.rooms.UpdateRoomStatus(f.room.ID, models.RoomStatusMaintenance)
	if err != nil {
		t.Fatalf("to MAINTENANCE: %v", err)
	}
	if room.Status != models.RoomStatusMaintenance {
		t.Fatalf("status = %s, want MAINTENANCE", room.Status)
	}

	if _, err := f.rooms.UpdateRoomStatus(f.room.ID, models.RoomStatusAvailable); err != nil {
		t.Fatalf("back to AVAILABLE: %v", err)
	}

	// Lifecycle-owned status cannot be set by hand.
	_, err = f.rooms.UpdateRoomStatus(f.room.ID, models.RoomStatusOccupied)
	if !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("to OCCUPIED: got %v, want ErrInvalidStateTransition", err)
	}
}

func TestDeactivateRoomRemovesFromInventory(t *testing.T) {
	f := newFixture(t)
	if err := f.rooms.DeactivateRoom(f.room.ID); err != nil {
		t.Fatalf("DeactivateRoom: %v", err)
	}

	available, err := f.availability.IsRoomAvailable(f.room.ID, date(2026, 3, 1), date(2026, 3, 3))
	if err != nil {
		t.Fatalf("IsRoomAvailable: %v", err)
	}
	if available {
		t.Fatal("deactivated room must not be bookable")
	}

	if err := f.rooms.DeactivateRoom(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown room: got %v, want ErrNotFound", err)
	}
}
