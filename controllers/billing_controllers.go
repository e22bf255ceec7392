package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-core/repositories"
	"restaurant-core/utils"
)

type BillingController struct {
	Billing repositories.BillingRepository
}

func NewBillingController(billing repositories.BillingRepository) *BillingController {
	return &BillingController{Billing: billing}
}

func (bc *BillingController) CreateBill(c *gin.Context) {
	var req struct {
		TableID uint   `json:"table_id" binding:"required"`
		Name    string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.Billing.CreateBill(c.Request.Context(), req.TableID, req.Name)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Bill %d opened on table %d", bill.ID, bill.TableID)
	utils.RespondJSON(c, http.StatusCreated, "Bill created", bill)
}

func (bc *BillingController) GetBill(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	bill, err := bc.Billing.GetBill(c.Request.Context(), billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill details", bill)
}

func (bc *BillingController) AddCashier(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	cashierID, err := pathID(c, "cashier_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Billing.AddCashier(c.Request.Context(), billID, cashierID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cashier %d linked to bill %d", cashierID, billID)
	utils.RespondJSON(c, http.StatusOK, "Cashier linked", nil)
}

func (bc *BillingController) RemoveCashier(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	cashierID, err := pathID(c, "cashier_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Billing.RemoveCashier(c.Request.Context(), billID, cashierID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Cashier %d unlinked from bill %d", cashierID, billID)
	utils.RespondJSON(c, http.StatusOK, "Cashier unlinked", nil)
}

func (bc *BillingController) DeleteBill(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Billing.DeleteBill(c.Request.Context(), billID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Bill %d deleted", billID)
	utils.RespondJSON(c, http.StatusOK, "Bill deleted", nil)
}

func (bc *BillingController) CreateOrder(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		CustomerID     uint       `json:"customer_id" binding:"required"`
		KitchenStaffID uint       `json:"kitchen_staff_id" binding:"required"`
		OrderedAt      *time.Time `json:"ordered_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	at := time.Now()
	if req.OrderedAt != nil {
		at = *req.OrderedAt
	}

	order, err := bc.Billing.CreateOrder(c.Request.Context(), billID, req.CustomerID, req.KitchenStaffID, at)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d created on bill %d", order.Number, billID)
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

func (bc *BillingController) MarkDelivered(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		DeliveredAt *time.Time `json:"delivered_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	at := time.Now()
	if req.DeliveredAt != nil {
		at = *req.DeliveredAt
	}

	order, err := bc.Billing.MarkDelivered(c.Request.Context(), orderID, at)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d marked delivered", order.ID)
	utils.RespondJSON(c, http.StatusOK, "Order delivered", order)
}

func (bc *BillingController) DeleteOrder(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Billing.DeleteOrder(c.Request.Context(), orderID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %d deleted", orderID)
	utils.RespondJSON(c, http.StatusOK, "Order deleted", nil)
}

func (bc *BillingController) AddOrderLine(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		MenuItemID uint            `json:"menu_item_id" binding:"required"`
		Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := bc.Billing.AddOrderLine(c.Request.Context(), orderID, req.MenuItemID, req.Quantity)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order line added: %s x item %d on order %d", line.Quantity, line.MenuItemID, orderID)
	utils.RespondJSON(c, http.StatusCreated, "Order line added", line)
}

func (bc *BillingController) RemoveOrderLine(c *gin.Context) {
	lineID, err := pathID(c, "line_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := bc.Billing.RemoveOrderLine(c.Request.Context(), lineID); err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order line %d removed", lineID)
	utils.RespondJSON(c, http.StatusOK, "Order line removed", nil)
}

func (bc *BillingController) ListOrders(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	orders, err := bc.Billing.OrdersByBill(c.Request.Context(), billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (bc *BillingController) ListOrderLines(c *gin.Context) {
	orderID, err := pathID(c, "order_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	lines, err := bc.Billing.OrderLinesByOrder(c.Request.Context(), orderID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of order lines", lines)
}
