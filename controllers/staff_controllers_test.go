package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"restaurant-core/controllers"
	"restaurant-core/database"
	"restaurant-core/repositories"
	"restaurant-core/utils"
)

var testDBCounter int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:ctrltest%d?mode=memory&cache=shared", n)
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

func setupStaffRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	r := gin.New()
	staffCtrl := controllers.NewStaffController(repositories.NewStaffRepository(db))
	r.POST("/persons", staffCtrl.Register)
	r.POST("/auth/login", staffCtrl.Login)
	r.POST("/persons/:person_id/role", staffCtrl.AssignRole)
	r.DELETE("/persons/:person_id", staffCtrl.DeletePerson)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := setupStaffRouter(db)

	w := postJSON(t, r, "/persons", gin.H{"name": "Ana", "login": "ana", "password": "secret"})
	assert.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	assert.Equal(t, "Person registered", response["message"])

	// Duplicate login maps to 409 with the conflict reason.
	w = postJSON(t, r, "/persons", gin.H{"name": "Ana 2", "login": "ana", "password": "secret"})
	assert.Equal(t, http.StatusConflict, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, "login-taken", response["reason"])

	w = postJSON(t, r, "/auth/login", gin.H{"login": "ana", "password": "secret"})
	assert.Equal(t, http.StatusOK, w.Code)
	response = decodeResponse(t, w)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	w = postJSON(t, r, "/auth/login", gin.H{"login": "ana", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAssignRoleEndpoint(t *testing.T) {
	db := setupTestDB(t)
	r := setupStaffRouter(db)

	w := postJSON(t, r, "/persons", gin.H{"name": "Bea", "login": "bea", "password": "secret"})
	require.Equal(t, http.StatusCreated, w.Code)
	response := decodeResponse(t, w)
	personID := uint(response["data"].(map[string]interface{})["id"].(float64))

	url := fmt.Sprintf("/persons/%d/role", personID)
	w = postJSON(t, r, url, gin.H{"role": "cashier"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// A second specialization of any kind conflicts.
	w = postJSON(t, r, url, gin.H{"role": "manager"})
	assert.Equal(t, http.StatusConflict, w.Code)
	response = decodeResponse(t, w)
	assert.Equal(t, "role-already-assigned", response["reason"])

	w = postJSON(t, r, url, gin.H{"role": "astronaut"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
