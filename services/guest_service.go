package services

import (
	"errors"
	"strings"

	"hotel-pms/models"

	"gorm.io/gorm"
)

// GuestService is the lookup surface the engine consumes. Guest CRM
// lives in the surrounding system; the engine only needs identity and
// the active flag.
type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

type CreateGuestInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (s *GuestService) CreateGuest(in CreateGuestInput) (*models.Guest, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, validationError("guest email is required")
	}
	if strings.TrimSpace(in.FirstName) == "" && strings.TrimSpace(in.LastName) == "" {
		return nil, validationError("guest name is required")
	}

	guest := models.Guest{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		IsActive:  true,
	}
	if err := s.DB.Create(&guest).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, businessError("guest with email '%s' already exists", email)
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) FindGuestByEmail(email string) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Guest", "email", email)
		}
		return nil, err
	}
	return &guest, nil
}

func (s *GuestService) GetGuest(guestID uint) (*models.Guest, error) {
	var guest models.Guest
	err := s.DB.First(&guest, guestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Guest", "id", guestID)
		}
		return nil, err
	}
	return &guest, nil
}
