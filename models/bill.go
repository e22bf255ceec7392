package models

import "time"

// Bill belongs to one table and may be handled by any number of
// cashiers. A bill is settled iff a Payment row references it; there is
// no stored status column.
type Bill struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	TableID   uint      `gorm:"not null;index" json:"table_id"`
	Table     Table     `gorm:"foreignKey:TableID;constraint:OnDelete:RESTRICT" json:"-"`
	Cashiers  []Cashier `gorm:"many2many:bill_cashiers" json:"cashiers,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
