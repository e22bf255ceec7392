package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a leaf of the menu structure, linked to one menu and one
// category. AvailableInKitchen is toggled by kitchen staff independently
// of the menu/category structure.
type MenuItem struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	Name               string          `gorm:"type:varchar(100);not null" json:"name"`
	Ingredients        string          `gorm:"type:text" json:"ingredients"`
	Price              decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	AvailableInKitchen bool            `gorm:"not null;default:true" json:"available_in_kitchen"`
	MenuID             uint            `gorm:"not null;index" json:"menu_id"`
	Menu               Menu            `gorm:"foreignKey:MenuID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID         uint            `gorm:"not null;index" json:"category_id"`
	Category           Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt          time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"not null" json:"updated_at"`
}
