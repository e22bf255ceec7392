package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderLine struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Quantity   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"quantity"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	Order      Order           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	MenuItemID uint            `gorm:"not null;index" json:"menu_item_id"`
	MenuItem   MenuItem        `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT" json:"menu_item"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}
