package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-core/apperr"
	"restaurant-core/models"
)

func TestCreateTableServerMismatch(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	staff := NewStaffRepository(db)
	ctx := context.Background()

	other, err := seating.CreateRestaurant(ctx, "R2")
	require.NoError(t, err)
	person, err := staff.CreatePerson(ctx, "S2", "s2", "secret")
	require.NoError(t, err)
	otherServer, err := staff.AssignServer(ctx, person.ID, other.ID)
	require.NoError(t, err)

	// A server from another restaurant must be rejected.
	_, err = seating.CreateTable(ctx, fixture.Restaurant.ID, otherServer.ID, 7)
	require.Error(t, err)
	assert.True(t, apperr.IsValidation(err))
	assert.Equal(t, "server-restaurant-mismatch", apperr.Reason(err))

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 7)
	require.NoError(t, err)
	assert.True(t, table.Available, "tables start available")
}

func TestTablesByRestaurant(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	ctx := context.Background()

	for _, number := range []int{3, 1, 2} {
		_, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, number)
		require.NoError(t, err)
	}

	tables, err := seating.TablesByRestaurant(ctx, fixture.Restaurant.ID)
	require.NoError(t, err)
	require.Len(t, tables, 3)
	assert.Equal(t, 1, tables[0].Number)
	assert.Equal(t, 3, tables[2].Number)
}

func TestSetTableAvailability(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 4)
	require.NoError(t, err)

	table, err = seating.SetTableAvailability(ctx, table.ID, false)
	require.NoError(t, err)
	assert.False(t, table.Available)

	table, err = seating.SetTableAvailability(ctx, table.ID, true)
	require.NoError(t, err)
	assert.True(t, table.Available)
}

func TestDeleteTableProtectedByBill(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 9)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	order, err := billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)

	err = seating.DeleteTable(ctx, table.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsIntegrity(err))
	assert.Equal(t, "table-in-use", apperr.Reason(err))

	// The blocked delete leaves the table, its bill and the bill's
	// orders in place.
	var tables, bills, orders int64
	require.NoError(t, db.Model(&models.Table{}).Where("id = ?", table.ID).Count(&tables).Error)
	require.NoError(t, db.Model(&models.Bill{}).Where("id = ?", bill.ID).Count(&bills).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orders).Error)
	assert.EqualValues(t, 1, tables)
	assert.EqualValues(t, 1, bills)
	assert.EqualValues(t, 1, orders)

	// Once the bill is gone the table can be removed.
	require.NoError(t, billing.DeleteBill(ctx, bill.ID))
	require.NoError(t, seating.DeleteTable(ctx, table.ID))
}

func TestDeleteRestaurantProtectedByServers(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	ctx := context.Background()

	err := seating.DeleteRestaurant(ctx, fixture.Restaurant.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsIntegrity(err))
	assert.Equal(t, "restaurant-in-use", apperr.Reason(err))
}

func TestDeleteRestaurantCascadesTables(t *testing.T) {
	db := setupTestDB(t)
	seating := NewSeatingRepository(db)
	ctx := context.Background()

	restaurant, err := seating.CreateRestaurant(ctx, "Empty")
	require.NoError(t, err)
	require.NoError(t, seating.DeleteRestaurant(ctx, restaurant.ID))

	_, err = seating.GetRestaurant(ctx, restaurant.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCustomerDepartTwice(t *testing.T) {
	db := setupTestDB(t)
	seating := NewSeatingRepository(db)
	ctx := context.Background()

	arrived := time.Date(2026, 8, 30, 19, 0, 0, 0, time.UTC)
	customer, err := seating.Arrive(ctx, "C1", arrived)
	require.NoError(t, err)
	assert.Nil(t, customer.DepartedAt)

	left := arrived.Add(90 * time.Minute)
	customer, err = seating.Depart(ctx, customer.ID, left)
	require.NoError(t, err)
	require.NotNil(t, customer.DepartedAt)
	assert.True(t, customer.DepartedAt.Equal(left))

	_, err = seating.Depart(ctx, customer.ID, left.Add(time.Minute))
	require.Error(t, err)
	assert.True(t, apperr.IsState(err))
	assert.Equal(t, "already-departed", apperr.Reason(err))
}

func TestDeleteCustomerProtectedByOrder(t *testing.T) {
	db := setupTestDB(t)
	fixture := seedStaff(t, db)
	seating := NewSeatingRepository(db)
	billing := NewBillingRepository(db)
	ctx := context.Background()

	table, err := seating.CreateTable(ctx, fixture.Restaurant.ID, fixture.Server.ID, 2)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	customer := seedCustomer(t, db, "C1")
	order, err := billing.CreateOrder(ctx, bill.ID, customer.ID, fixture.Kitchen.ID, time.Now())
	require.NoError(t, err)

	err = seating.DeleteCustomer(ctx, customer.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsIntegrity(err))
	assert.Equal(t, "customer-in-use", apperr.Reason(err))

	require.NoError(t, billing.DeleteOrder(ctx, order.ID))
	require.NoError(t, seating.DeleteCustomer(ctx, customer.ID))
}
