package repositories

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-core/database"
	"restaurant-core/models"
)

var testDBCounter int64

// setupTestDB opens a fresh in-memory SQLite database. Each test gets
// its own named shared-cache DB so the connection pool sees one schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// seedStaff creates a restaurant with one person per role and returns
// the role rows. Used by tests that need a fully staffed restaurant.
type staffFixture struct {
	Restaurant *models.Restaurant
	Server     *models.Server
	Cashier    *models.Cashier
	Kitchen    *models.KitchenStaff
	Manager    *models.Manager
}

func seedStaff(t *testing.T, db *gorm.DB) staffFixture {
	t.Helper()
	ctx := context.Background()
	staff := NewStaffRepository(db)
	seating := NewSeatingRepository(db)

	restaurant, err := seating.CreateRestaurant(ctx, "R1")
	if err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}

	fixture := staffFixture{Restaurant: restaurant}

	person, err := staff.CreatePerson(ctx, "S1", "s1", "secret")
	if err != nil {
		t.Fatalf("seed server person: %v", err)
	}
	fixture.Server, err = staff.AssignServer(ctx, person.ID, restaurant.ID)
	if err != nil {
		t.Fatalf("seed server role: %v", err)
	}

	person, err = staff.CreatePerson(ctx, "X1", "x1", "secret")
	if err != nil {
		t.Fatalf("seed cashier person: %v", err)
	}
	fixture.Cashier, err = staff.AssignCashier(ctx, person.ID)
	if err != nil {
		t.Fatalf("seed cashier role: %v", err)
	}

	person, err = staff.CreatePerson(ctx, "K1", "k1", "secret")
	if err != nil {
		t.Fatalf("seed kitchen person: %v", err)
	}
	fixture.Kitchen, err = staff.AssignKitchenStaff(ctx, person.ID)
	if err != nil {
		t.Fatalf("seed kitchen role: %v", err)
	}

	person, err = staff.CreatePerson(ctx, "M1", "m1", "secret")
	if err != nil {
		t.Fatalf("seed manager person: %v", err)
	}
	fixture.Manager, err = staff.AssignManager(ctx, person.ID)
	if err != nil {
		t.Fatalf("seed manager role: %v", err)
	}

	return fixture
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	customer, err := NewSeatingRepository(db).Arrive(context.Background(), name, time.Now())
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return customer
}
