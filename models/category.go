package models

import "time"

// Category forms a tree via ParentID; root categories have no parent.
// Cycle prevention is handled in the repository layer, not by the store.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	ParentID  *uint     `gorm:"index" json:"parent_id,omitempty"`
	Parent    *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
