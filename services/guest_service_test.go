package services

import (
	"errors"
	"testing"
)

func TestCreateGuestNormalizesEmail(t *testing.T) {
	f := newFixture(t)
	guest, err := f.guests.CreateGuest(CreateGuestInput{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     " Grace.Hopper@Example.COM ",
	})
	if err != nil {
		t.Fatalf("CreateGuest: %v", err)
	}
	if guest.Email != "grace.hopper@example.com" {
		t.Fatalf("email = %q", guest.Email)
	}
	if guest.FullName() != "Grace Hopper" {
		t.Fatalf("full name = %q", guest.FullName())
	}

	found, err := f.guests.FindGuestByEmail("GRACE.HOPPER@example.com")
	if err != nil {
		t.Fatalf("FindGuestByEmail: %v", err)
	}
	if found.ID != guest.ID {
		t.Fatalf("lookup returned id %d, want %d", found.ID, guest.ID)
	}
}

func TestCreateGuestDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	_, err := f.guests.CreateGuest(CreateGuestInput{
		FirstName: "Other",
		LastName:  "Ada",
		Email:     "ADA@example.com",
	})
	if !errors.Is(err, ErrBusinessRule) {
		t.Fatalf("got %v, want ErrBusinessRule", err)
	}
}

func TestCreateGuestValidation(t *testing.T) {
	f := newFixture(t)
	if _, err := f.guests.CreateGuest(CreateGuestInput{FirstName: "No", LastName: "Email"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing email: got %v, want ErrValidation", err)
	}
	if _, err := f.guests.CreateGuest(CreateGuestInput{Email: "anon@example.com"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing name: got %v, want ErrValidation", err)
	}
}

func TestFindGuestByEmailNotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.guests.FindGuestByEmail("missing@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}
