package models

import "time"

// Order carries a sequence number scoped to its bill; numbers are not
// unique across bills. DeliveredAt is set exactly once on fulfilment.
type Order struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	Number         int          `gorm:"not null;index:idx_orders_bill_number" json:"number"`
	OrderedAt      time.Time    `gorm:"not null" json:"ordered_at"`
	DeliveredAt    *time.Time   `json:"delivered_at,omitempty"`
	BillID         uint         `gorm:"not null;index:idx_orders_bill_number" json:"bill_id"`
	Bill           Bill         `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"-"`
	CustomerID     uint         `gorm:"not null;index" json:"customer_id"`
	Customer       Customer     `gorm:"foreignKey:CustomerID;constraint:OnDelete:RESTRICT" json:"-"`
	KitchenStaffID uint         `gorm:"not null;index" json:"kitchen_staff_id"`
	KitchenStaff   KitchenStaff `gorm:"foreignKey:KitchenStaffID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}
