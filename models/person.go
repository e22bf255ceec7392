package models

import "time"

// Role names used by the disjoint Person specializations.
const (
	RoleServer       = "server"
	RoleCashier      = "cashier"
	RoleKitchenStaff = "kitchen_staff"
	RoleManager      = "manager"
)

type Person struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Login        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"type:varchar(128);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

// Server works at exactly one restaurant and may serve many tables.
type Server struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PersonID     uint       `gorm:"uniqueIndex;not null" json:"person_id"`
	Person       Person     `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:RESTRICT" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

type Cashier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  uint      `gorm:"uniqueIndex;not null" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type KitchenStaff struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  uint      `gorm:"uniqueIndex;not null" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

type Manager struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PersonID  uint      `gorm:"uniqueIndex;not null" json:"person_id"`
	Person    Person    `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"person"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
