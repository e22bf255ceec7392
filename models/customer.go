package models

import "time"

// Customer is created on arrival; DepartedAt stays nil while the
// customer is present.
type Customer struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(100);not null" json:"name"`
	ArrivedAt  time.Time  `gorm:"not null" json:"arrived_at"`
	DepartedAt *time.Time `json:"departed_at,omitempty"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}
