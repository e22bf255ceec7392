package controllers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"restaurant-core/controllers"
	"restaurant-core/models"
	"restaurant-core/repositories"
	"restaurant-core/utils"
)

func setupPaymentRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	r := gin.New()
	paymentCtrl := controllers.NewPaymentController(repositories.NewPaymentRepository(db))
	r.POST("/bills/:bill_id/payment", paymentCtrl.Pay)
	r.GET("/bills/:bill_id/payment", paymentCtrl.GetBillPayment)
	return r
}

// seedOpenBill builds restaurant, staff, table and an open bill straight
// through the repositories.
func seedOpenBill(t *testing.T, db *gorm.DB) *models.Bill {
	t.Helper()
	ctx := context.Background()
	staff := repositories.NewStaffRepository(db)
	seating := repositories.NewSeatingRepository(db)
	billing := repositories.NewBillingRepository(db)

	restaurant, err := seating.CreateRestaurant(ctx, "R1")
	require.NoError(t, err)
	person, err := staff.CreatePerson(ctx, "S1", fmt.Sprintf("s%d", time.Now().UnixNano()), "secret")
	require.NoError(t, err)
	server, err := staff.AssignServer(ctx, person.ID, restaurant.ID)
	require.NoError(t, err)
	table, err := seating.CreateTable(ctx, restaurant.ID, server.ID, 5)
	require.NoError(t, err)
	bill, err := billing.CreateBill(ctx, table.ID, "B1")
	require.NoError(t, err)
	return bill
}

func TestPayEndpointErrorMapping(t *testing.T) {
	db := setupTestDB(t)
	r := setupPaymentRouter(db)
	bill := seedOpenBill(t, db)

	url := fmt.Sprintf("/bills/%d/payment", bill.ID)

	// Card without a transaction number is a validation failure -> 400.
	w := postJSON(t, r, url, gin.H{"method": "card", "amount": "20.00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "method-detail-mismatch", response["reason"])

	w = postJSON(t, r, url, gin.H{"method": "card", "amount": "20.00", "transaction_number": 4471})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second payment -> 409 already-paid.
	w = postJSON(t, r, url, gin.H{"method": "cash", "amount": "20.00"})
	assert.Equal(t, http.StatusConflict, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, "already-paid", response["reason"])

	// Unknown bill -> 404 with the uniform reason code.
	w = postJSON(t, r, "/bills/999/payment", gin.H{"method": "cash", "amount": "5.00"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, "not-found", response["reason"])
}

func TestGetBillPayment(t *testing.T) {
	db := setupTestDB(t)
	r := setupPaymentRouter(db)
	bill := seedOpenBill(t, db)

	url := fmt.Sprintf("/bills/%d/payment", bill.ID)

	req, err := http.NewRequest("GET", url, nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, false, data["settled"])

	w = postJSON(t, r, url, gin.H{"method": "cash", "amount": "15.00"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	data = decodeResponse(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["settled"])
	assert.NotNil(t, data["payment"])
}
