package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

// BillingRepository manages bills, their cashier links, orders and order
// lines.
type BillingRepository interface {
	CreateBill(ctx context.Context, tableID uint, name string) (*models.Bill, error)
	GetBill(ctx context.Context, id uint) (*models.Bill, error)
	AddCashier(ctx context.Context, billID, cashierID uint) error
	RemoveCashier(ctx context.Context, billID, cashierID uint) error
	DeleteBill(ctx context.Context, id uint) error
	CreateOrder(ctx context.Context, billID, customerID, kitchenStaffID uint, orderedAt time.Time) (*models.Order, error)
	MarkDelivered(ctx context.Context, orderID uint, at time.Time) (*models.Order, error)
	DeleteOrder(ctx context.Context, id uint) error
	AddOrderLine(ctx context.Context, orderID, menuItemID uint, quantity decimal.Decimal) (*models.OrderLine, error)
	RemoveOrderLine(ctx context.Context, id uint) error
	OrdersByBill(ctx context.Context, billID uint) ([]models.Order, error)
	OrderLinesByOrder(ctx context.Context, orderID uint) ([]models.OrderLine, error)
}

type billingRepository struct {
	db *gorm.DB
}

func NewBillingRepository(db *gorm.DB) BillingRepository {
	return &billingRepository{db: db}
}

// CreateBill accepts the table in any availability state; toggling
// availability is the seating cluster's concern.
func (r *billingRepository) CreateBill(ctx context.Context, tableID uint, name string) (*models.Bill, error) {
	bill := models.Bill{Name: name, TableID: tableID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("table", tableID)
			}
			return err
		}
		return tx.Create(&bill).Error
	})
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billingRepository) GetBill(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.WithContext(ctx).Preload("Cashiers").First(&bill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NewNotFound("bill", id)
		}
		return nil, err
	}
	return &bill, nil
}

// AddCashier links a cashier to a bill. The link is a plain N:N
// association, independent of the bill lifecycle; linking twice is a
// no-op.
func (r *billingRepository) AddCashier(ctx context.Context, billID, cashierID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("bill", billID)
			}
			return err
		}
		var cashier models.Cashier
		if err := tx.First(&cashier, cashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("cashier", cashierID)
			}
			return err
		}
		return tx.Model(&bill).Association("Cashiers").Append(&cashier)
	})
}

func (r *billingRepository) RemoveCashier(ctx context.Context, billID, cashierID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("bill", billID)
			}
			return err
		}
		var cashier models.Cashier
		if err := tx.First(&cashier, cashierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("cashier", cashierID)
			}
			return err
		}
		return tx.Model(&bill).Association("Cashiers").Delete(&cashier)
	})
}

func (r *billingRepository) DeleteBill(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("bill", id)
			}
			return err
		}
		return deleteBillCascade(tx, id)
	})
}

// CreateOrder assigns the next sequence number scoped to the bill inside
// the same transaction that creates the row.
func (r *billingRepository) CreateOrder(ctx context.Context, billID, customerID, kitchenStaffID uint, orderedAt time.Time) (*models.Order, error) {
	order := models.Order{
		OrderedAt:      orderedAt,
		BillID:         billID,
		CustomerID:     customerID,
		KitchenStaffID: kitchenStaffID,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("bill", billID)
			}
			return err
		}
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("customer", customerID)
			}
			return err
		}
		var kitchen models.KitchenStaff
		if err := tx.First(&kitchen, kitchenStaffID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("kitchen staff", kitchenStaffID)
			}
			return err
		}

		var lastNumber int
		if err := tx.Model(&models.Order{}).Where("bill_id = ?", billID).
			Select("COALESCE(MAX(number), 0)").Scan(&lastNumber).Error; err != nil {
			return err
		}
		order.Number = lastNumber + 1
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MarkDelivered stamps the delivery time exactly once.
func (r *billingRepository) MarkDelivered(ctx context.Context, orderID uint, at time.Time) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("order", orderID)
			}
			return err
		}
		if order.DeliveredAt != nil {
			return apperr.NewState("already-delivered", "order %d was delivered at %s", orderID, order.DeliveredAt)
		}
		order.DeliveredAt = &at
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *billingRepository) DeleteOrder(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("order", id)
			}
			return err
		}
		return deleteOrderCascade(tx, id)
	})
}

func (r *billingRepository) AddOrderLine(ctx context.Context, orderID, menuItemID uint, quantity decimal.Decimal) (*models.OrderLine, error) {
	if !quantity.IsPositive() {
		return nil, apperr.NewValidation("non-positive-quantity", "quantity must be > 0, got %s", quantity)
	}
	line := models.OrderLine{Quantity: quantity, OrderID: orderID, MenuItemID: menuItemID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("order", orderID)
			}
			return err
		}
		var item models.MenuItem
		if err := tx.First(&item, menuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("menu item", menuItemID)
			}
			return err
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *billingRepository) RemoveOrderLine(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.OrderLine{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.NewNotFound("order line", id)
	}
	return nil
}

func (r *billingRepository) OrdersByBill(ctx context.Context, billID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).Where("bill_id = ?", billID).Order("number").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *billingRepository) OrderLinesByOrder(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	var lines []models.OrderLine
	if err := r.db.WithContext(ctx).Preload("MenuItem").Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}
