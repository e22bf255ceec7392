package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment methods accepted by the billing cluster.
const (
	PaymentMethodCash   = "cash"
	PaymentMethodCard   = "card"
	PaymentMethodCheque = "cheque"
)

// Payment settles exactly one bill (1:1). The concrete method lives in
// exactly one of the specialization rows below.
type Payment struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	BillID     uint            `gorm:"uniqueIndex;not null" json:"bill_id"`
	Bill       Bill            `gorm:"foreignKey:BillID;constraint:OnDelete:CASCADE" json:"-"`
	Amount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	RecordedAt time.Time       `gorm:"not null" json:"recorded_at"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`
}

type CashPayment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"uniqueIndex;not null" json:"payment_id"`
	Payment   Payment   `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type CardPayment struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PaymentID         uint      `gorm:"uniqueIndex;not null" json:"payment_id"`
	Payment           Payment   `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"-"`
	TransactionNumber int       `gorm:"not null" json:"transaction_number"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}

type ChequePayment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PaymentID    uint      `gorm:"uniqueIndex;not null" json:"payment_id"`
	Payment      Payment   `gorm:"foreignKey:PaymentID;constraint:OnDelete:CASCADE" json:"-"`
	ChequeNumber int       `gorm:"not null" json:"cheque_number"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
