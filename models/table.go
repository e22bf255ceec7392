package models

import "time"

// Table belongs to one restaurant and is served by exactly one server.
// Available is the only lifecycle flag the seating cluster carries; it is
// toggled as customers seat and leave.
type Table struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Number       int        `gorm:"not null" json:"number"`
	Available    bool       `gorm:"not null;default:true" json:"available"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	ServerID     uint       `gorm:"not null;index" json:"server_id"`
	Server       Server     `gorm:"foreignKey:ServerID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
