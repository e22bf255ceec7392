package models

import "time"

// Menu is owned by exactly one manager (1:1, enforced by the unique
// index on ManagerID).
type Menu struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ManagerID uint      `gorm:"uniqueIndex;not null" json:"manager_id"`
	Manager   Manager   `gorm:"foreignKey:ManagerID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
