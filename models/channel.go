package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel is a sales/booking source (direct or OTA) with an associated
// commission rate. The commission rate is immutable business data read
// by the commission calculator; a nil rate means no commission.
type Channel struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ChannelName    string           `gorm:"column:channel_name;uniqueIndex;size:100" json:"channelName"`
	ChannelCode    string           `gorm:"column:channel_code;uniqueIndex;size:10" json:"channelCode"`
	CommissionRate *decimal.Decimal `gorm:"column:commission_rate;type:decimal(5,2)" json:"commissionRate,omitempty"`
	IsActive       bool             `gorm:"column:is_active;default:true" json:"isActive"`
	ApiEndpoint    string           `gorm:"column:api_endpoint;size:500" json:"apiEndpoint,omitempty"`
	Description    string           `gorm:"column:description;size:1000" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CalculateCommission returns amount * commissionRate / 100, or zero
// when no rate is set.
func (c *Channel) CalculateCommission(amount decimal.Decimal) decimal.Decimal {
	if c.CommissionRate == nil {
		return decimal.Zero
	}
	return amount.Mul(*c.CommissionRate).Div(decimal.NewFromInt(100))
}

func (c *Channel) IsDirect() bool {
	return c.ChannelCode == "DIRECT"
}

// IsOnlineChannel reports whether an integration endpoint is configured.
// The endpoint itself is an opaque string; no outbound behavior here.
func (c *Channel) IsOnlineChannel() bool {
	return c.ApiEndpoint != ""
}
