package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

func TestOrderSequenceScopedPerBill(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	billA, err := billing.CreateBill(ctx, table.ID, "A")
	require.NoError(t, err)
	billB, err := billing.CreateBill(ctx, table.ID, "B")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")

	first, err := billing.CreateOrder(ctx, billA.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)
	second, err := billing.CreateOrder(ctx, billA.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)
	other, err := billing.CreateOrder(ctx, billB.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 1, other.Number, "sequence restarts per bill")
}

func TestMarkDeliveredOnce(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	order, err := billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)
	assert.Nil(t, order.DeliveredAt)

	delivered := time.Now().Add(20 * time.Minute)
	order, err = billing.MarkDelivered(ctx, order.ID, delivered)
	require.NoError(t, err)
	require.NotNil(t, order.DeliveredAt)

	_, err = billing.MarkDelivered(ctx, order.ID, delivered.Add(time.Minute))
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
	assert.Equal(t, "already-delivered", apperr.Reason(err))
}

func TestAddOrderLineValidation(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	menu := NewMenuRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	order, err := billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)

	owned, err := menu.CreateMenu(ctx, fixture.Manager.ID)
	require.NoError(t, err)
	category, err := menu.CreateCategory(ctx, "Food", nil)
	require.NoError(t, err)
	burger, err := menu.CreateMenuItem(ctx, owned.ID, category.ID, "Burger", "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)

	_, err = billing.AddOrderLine(ctx, order.ID, burger.ID, decimal.Zero)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "non-positive-quantity", apperr.Reason(err))

	_, err = billing.AddOrderLine(ctx, order.ID, burger.ID, decimal.RequireFromString("-1"))
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))

	_, err = billing.AddOrderLine(ctx, order.ID, 999, decimal.NewFromInt(1))
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	line, err := billing.AddOrderLine(ctx, order.ID, burger.ID, decimal.RequireFromString("2"))
	require.NoError(t, err)
	assert.True(t, line.Quantity.Equal(decimal.NewFromInt(2)))

	lines, err := billing.OrderLinesByOrder(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Burger", lines[0].MenuItem.Name)
}

func TestDeleteOrderCascadesLines(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	menu := NewMenuRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	order, err := billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)

	owned, err := menu.CreateMenu(ctx, fixture.Manager.ID)
	require.NoError(t, err)
	category, err := menu.CreateCategory(ctx, "Food", nil)
	require.NoError(t, err)
	burger, err := menu.CreateMenuItem(ctx, owned.ID, category.ID, "Burger", "", decimal.RequireFromString("10.00"))
	require.NoError(t, err)
	_, err = billing.AddOrderLine(ctx, order.ID, burger.ID, decimal.NewFromInt(2))
	require.NoError(t, err)

	require.NoError(t, billing.DeleteOrder(ctx, order.ID))

	var lines int64
	require.NoError(t, db.Model(&models.OrderLine{}).Count(&lines).Error)
	assert.Zero(t, lines)

	// The menu item survives the cascade.
	var items int64
	require.NoError(t, db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Count(&items).Error)
	assert.EqualValues(t, 1, items)
}

func TestCashierLinks(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	staff := NewStaffRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)

	person, err := staff.CreatePerson(ctx, "X2", "x2", "secret")
	require.NoError(t, err)
	second, err := staff.AssignCashier(ctx, person.ID)
	require.NoError(t, err)

	require.NoError(t, billing.AddCashier(ctx, bill.ID, fixture.Cashier.ID))
	require.NoError(t, billing.AddCashier(ctx, bill.ID, second.ID))
	// Linking twice is a no-op.
	require.NoError(t, billing.AddCashier(ctx, bill.ID, fixture.Cashier.ID))

	loaded, err := billing.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Cashiers, 2)

	require.NoError(t, billing.RemoveCashier(ctx, bill.ID, fixture.Cashier.ID))
	loaded, err = billing.GetBill(ctx, bill.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Cashiers, 1)
}

func TestDeleteBillCascades(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	payments := NewPaymentRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	_, err = billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)
	require.NoError(t, billing.AddCashier(ctx, bill.ID, fixture.Cashier.ID))
	_, err = payments.Pay(ctx, bill.ID, models.PaymentMethodCash, decimal.RequireFromString("25.00"), PaymentDetails{})
	require.NoError(t, err)

	require.NoError(t, billing.DeleteBill(ctx, bill.ID))

	var orders, paymentRows, cashRows int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.Payment{}).Count(&paymentRows).Error)
	require.NoError(t, db.Model(&models.CashPayment{}).Count(&cashRows).Error)
	assert.Zero(t, orders)
	assert.Zero(t, paymentRows)
	assert.Zero(t, cashRows)

	// The cashier itself is untouched.
	var cashiers int64
	require.NoError(t, db.Model(&models.Cashier{}).Where("id = ?", fixture.Cashier.ID).Count(&cashiers).Error)
	assert.EqualValues(t, 1, cashiers)
}
