package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

// SeatingRepository manages restaurants, their tables and the customer
// arrival/departure lifecycle.
type SeatingRepository interface {
	CreateRestaurant(ctx context.Context, name string) (*models.Restaurant, error)
	GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error)
	DeleteRestaurant(ctx context.Context, id uint) error
	CreateTable(ctx context.Context, restaurantID, serverID uint, number int) (*models.Table, error)
	SetTableAvailability(ctx context.Context, tableID uint, available bool) (*models.Table, error)
	DeleteTable(ctx context.Context, id uint) error
	TablesByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error)
	Arrive(ctx context.Context, name string, at time.Time) (*models.Customer, error)
	Depart(ctx context.Context, customerID uint, at time.Time) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id uint) error
}

type seatingRepository struct {
	db *gorm.DB
}

func NewSeatingRepository(db *gorm.DB) SeatingRepository {
	return &seatingRepository{db: db}
}

func (r *seatingRepository) CreateRestaurant(ctx context.Context, name string) (*models.Restaurant, error) {
	restaurant := models.Restaurant{Name: name}
	if err := r.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *seatingRepository) GetRestaurant(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("restaurant", id)
		}
		return nil, err
	}
	return &restaurant, nil
}

// DeleteRestaurant cascades to the restaurant's tables but is blocked
// while servers are still employed there or while any of those tables
// still carries a bill.
func (r *seatingRepository) DeleteRestaurant(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("restaurant", id)
			}
			return err
		}

		var servers int64
		if err := tx.Model(&models.Server{}).Where("restaurant_id = ?", id).Count(&servers).Error; err != nil {
			return err
		}
		if servers > 0 {
			return apperr.NewIntegrity("restaurant-in-use", "restaurant %d still employs %d server(s)", id, servers)
		}

		var tables []models.Table
		if err := tx.Where("restaurant_id = ?", id).Find(&tables).Error; err != nil {
			return err
		}
		for _, table := range tables {
			if err := requireTableUnbilled(tx, table.ID); err != nil {
				return err
			}
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Table{}).Error; err != nil {
			return err
		}
		return tx.Delete(&restaurant).Error
	})
}

// CreateTable requires the assigned server to belong to the same
// restaurant the table belongs to.
func (r *seatingRepository) CreateTable(ctx context.Context, restaurantID, serverID uint, number int) (*models.Table, error) {
	table := models.Table{Number: number, Available: true, RestaurantID: restaurantID, ServerID: serverID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("restaurant", restaurantID)
			}
			return err
		}
		var server models.Server
		if err := tx.First(&server, serverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("server", serverID)
			}
			return err
		}
		if server.RestaurantID != restaurantID {
			return apperr.NewValidation("server-restaurant-mismatch",
				"server %d works at restaurant %d, not %d", serverID, server.RestaurantID, restaurantID)
		}
		return tx.Create(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *seatingRepository) SetTableAvailability(ctx context.Context, tableID uint, available bool) (*models.Table, error) {
	var table models.Table
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("table", tableID)
			}
			return err
		}
		table.Available = available
		return tx.Save(&table).Error
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func requireTableUnbilled(tx *gorm.DB, tableID uint) error {
	var bills int64
	if err := tx.Model(&models.Bill{}).Where("table_id = ?", tableID).Count(&bills).Error; err != nil {
		return err
	}
	if bills > 0 {
		return apperr.NewIntegrity("table-in-use", "table %d still has %d bill(s)", tableID, bills)
	}
	return nil
}

// DeleteTable is blocked while any bill still references the table.
func (r *seatingRepository) DeleteTable(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("table", id)
			}
			return err
		}
		if err := requireTableUnbilled(tx, id); err != nil {
			return err
		}
		return tx.Delete(&table).Error
	})
}

func (r *seatingRepository) TablesByRestaurant(ctx context.Context, restaurantID uint) ([]models.Table, error) {
	var tables []models.Table
	if err := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("number").Find(&tables).Error; err != nil {
		return nil, err
	}
	return tables, nil
}

func (r *seatingRepository) Arrive(ctx context.Context, name string, at time.Time) (*models.Customer, error) {
	customer := models.Customer{Name: name, ArrivedAt: at}
	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// Depart stamps the departure time exactly once.
func (r *seatingRepository) Depart(ctx context.Context, customerID uint, at time.Time) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("customer", customerID)
			}
			return err
		}
		if customer.DepartedAt != nil {
			return apperr.NewState("already-departed", "customer %d departed at %s", customerID, customer.DepartedAt)
		}
		customer.DepartedAt = &at
		return tx.Save(&customer).Error
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *seatingRepository) DeleteCustomer(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("customer", id)
			}
			return err
		}
		var orders int64
		if err := tx.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orders).Error; err != nil {
			return err
		}
		if orders > 0 {
			return apperr.NewIntegrity("customer-in-use", "customer %d still has %d order(s)", id, orders)
		}
		return tx.Delete(&customer).Error
	})
}
