package database

import (
	"gorm.io/gorm"

	"restaurant-core/models"
)

// Migrate creates the schema in dependency order: identity and staff
// first, then seating, menu, billing and payment, so every foreign key
// target exists before its referrers.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Person{},
		&models.Restaurant{},
		&models.Server{},
		&models.Cashier{},
		&models.KitchenStaff{},
		&models.Manager{},
		&models.Table{},
		&models.Customer{},
		&models.Menu{},
		&models.Category{},
		&models.MenuItem{},
		&models.Bill{},
		&models.Order{},
		&models.OrderLine{},
		&models.Payment{},
		&models.CashPayment{},
		&models.CardPayment{},
		&models.ChequePayment{},
	)
}
