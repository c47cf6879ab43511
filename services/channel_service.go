package services

import (
	"errors"
	"strings"

	"hotel-pms/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChannelService manages booking channels and derives commission
// figures. Commission is never persisted; it is recomputed on demand
// from the channel's rate and the reservation total.
type ChannelService struct {
	DB *gorm.DB
}

func NewChannelService(db *gorm.DB) *ChannelService {
	return &ChannelService{DB: db}
}

type CreateChannelInput struct {
	ChannelName    string
	ChannelCode    string
	CommissionRate *decimal.Decimal
	ApiEndpoint    string
	Description    string
}

func (s *ChannelService) CreateChannel(in CreateChannelInput) (*models.Channel, error) {
	name := strings.TrimSpace(in.ChannelName)
	code := strings.ToUpper(strings.TrimSpace(in.ChannelCode))
	if name == "" {
		return nil, validationError("channel name is required")
	}
	if code == "" {
		return nil, validationError("channel code is required")
	}
	if in.CommissionRate != nil {
		if in.CommissionRate.IsNegative() || in.CommissionRate.GreaterThan(decimal.NewFromInt(100)) {
			return nil, validationError("commission rate must be between 0 and 100")
		}
	}

	var n int64
	if err := s.DB.Model(&models.Channel{}).
		Where("channel_code = ? OR channel_name = ?", code, name).
		Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, ErrDuplicateChannelCode
	}

	channel := models.Channel{
		ChannelName:    name,
		ChannelCode:    code,
		CommissionRate: in.CommissionRate,
		IsActive:       true,
		ApiEndpoint:    strings.TrimSpace(in.ApiEndpoint),
		Description:    strings.TrimSpace(in.Description),
	}
	if err := s.DB.Create(&channel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrDuplicateChannelCode
		}
		return nil, err
	}
	return &channel, nil
}

func (s *ChannelService) GetChannelByCode(code string) (*models.Channel, error) {
	var channel models.Channel
	err := s.DB.Where("channel_code = ?", strings.ToUpper(strings.TrimSpace(code))).First(&channel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Channel", "channelCode", code)
		}
		return nil, err
	}
	return &channel, nil
}

func (s *ChannelService) GetAllChannels() ([]models.Channel, error) {
	var channels []models.Channel
	err := s.DB.Order("channel_code").Find(&channels).Error
	return channels, err
}

// ChannelPerformance is the reporting figure derived on demand for one
// reservation: commission owed to the channel and the property's net.
type ChannelPerformance struct {
	ChannelName string          `json:"channelName"`
	ChannelCode string          `json:"channelCode"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Commission  decimal.Decimal `json:"commission"`
	NetRevenue  decimal.Decimal `json:"netRevenue"`
}

// CalculatePerformance derives commission = total * rate / 100 (zero
// when the channel has no rate) and netRevenue = total - commission.
func (s *ChannelService) CalculatePerformance(channel *models.Channel, totalAmount decimal.Decimal) ChannelPerformance {
	commission := channel.CalculateCommission(totalAmount)
	return ChannelPerformance{
		ChannelName: channel.ChannelName,
		ChannelCode: channel.ChannelCode,
		TotalAmount: totalAmount,
		Commission:  commission,
		NetRevenue:  totalAmount.Sub(commission),
	}
}

// ReservationPerformance loads a reservation's channel and derives its
// commission figures.
func (s *ChannelService) ReservationPerformance(reservationID uint) (*ChannelPerformance, error) {
	var reservation models.Reservation
	err := s.DB.Preload("Channel").First(&reservation, reservationID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundError("Reservation", "id", reservationID)
		}
		return nil, err
	}
	perf := s.CalculatePerformance(&reservation.Channel, reservation.TotalAmount)
	return &perf, nil
}
