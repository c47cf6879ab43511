package models

import "time"

// Guest is the minimal guest record the engine consumes. Full guest
// CRM lives outside this service; reservations only need identity,
// contact and the active flag.
type Guest struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FirstName string `gorm:"column:first_name;size:100" json:"firstName"`
	LastName  string `gorm:"column:last_name;size:100" json:"lastName"`
	Email     string `gorm:"column:email;uniqueIndex;size:255" json:"email"`
	Phone     string `gorm:"column:phone;size:50" json:"phone,omitempty"`
	IsActive  bool   `gorm:"column:is_active;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *Guest) FullName() string {
	if g.FirstName == "" {
		return g.LastName
	}
	if g.LastName == "" {
		return g.FirstName
	}
	return g.FirstName + " " + g.LastName
}
