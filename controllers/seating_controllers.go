package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"restaurant-core/repositories"
	"restaurant-core/utils"
)

type SeatingController struct {
	Seating repositories.SeatingRepository
}

func NewSeatingController(seating repositories.SeatingRepository) *SeatingController {
	return &SeatingController{Seating: seating}
}

func (sc *SeatingController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant, err := sc.Seating.CreateRestaurant(c.Request.Context(), req.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("New restaurant created: %s", restaurant.Name)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

func (sc *SeatingController) DeleteRestaurant(c *gin.Context) {
	id, err := pathID(c, "restaurant_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Seating.DeleteRestaurant(c.Request.Context(), id); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted", nil)
}

func (sc *SeatingController) CreateTable(c *gin.Context) {
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Number   int  `json:"number" binding:"required"`
		ServerID uint `json:"server_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := sc.Seating.CreateTable(c.Request.Context(), restaurantID, req.ServerID, req.Number)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d created at restaurant %d", table.Number, restaurantID)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

func (sc *SeatingController) SetTableAvailability(c *gin.Context) {
	tableID, err := pathID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Available *bool `json:"available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table, err := sc.Seating.SetTableAvailability(c.Request.Context(), tableID, *req.Available)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d availability set to %t", table.ID, table.Available)
	utils.RespondJSON(c, http.StatusOK, "Table availability updated", table)
}

func (sc *SeatingController) DeleteTable(c *gin.Context) {
	tableID, err := pathID(c, "table_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Seating.DeleteTable(c.Request.Context(), tableID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deleted", tableID)
	utils.RespondJSON(c, http.StatusOK, "Table deleted", nil)
}

func (sc *SeatingController) ListTables(c *gin.Context) {
	restaurantID, err := pathID(c, "restaurant_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tables, err := sc.Seating.TablesByRestaurant(c.Request.Context(), restaurantID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// Arrive registers a customer arrival; the timestamp defaults to now.
func (sc *SeatingController) Arrive(c *gin.Context) {
	var req struct {
		Name      string     `json:"name" binding:"required"`
		ArrivedAt *time.Time `json:"arrived_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	at := time.Now()
	if req.ArrivedAt != nil {
		at = *req.ArrivedAt
	}

	customer, err := sc.Seating.Arrive(c.Request.Context(), req.Name, at)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Customer arrived: %s", customer.Name)
	utils.RespondJSON(c, http.StatusCreated, "Customer arrived", customer)
}

func (sc *SeatingController) Depart(c *gin.Context) {
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		DepartedAt *time.Time `json:"departed_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	at := time.Now()
	if req.DepartedAt != nil {
		at = *req.DepartedAt
	}

	customer, err := sc.Seating.Depart(c.Request.Context(), customerID, at)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d departed", customer.ID)
	utils.RespondJSON(c, http.StatusOK, "Customer departed", customer)
}

func (sc *SeatingController) DeleteCustomer(c *gin.Context) {
	customerID, err := pathID(c, "customer_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := sc.Seating.DeleteCustomer(c.Request.Context(), customerID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", customerID)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted", nil)
}
