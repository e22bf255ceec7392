package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"restaurant-core/repositories"
	"restaurant-core/utils"
)

type PaymentController struct {
	Payments repositories.PaymentRepository
}

func NewPaymentController(payments repositories.PaymentRepository) *PaymentController {
	return &PaymentController{Payments: payments}
}

// Pay settles a bill with one of the cash/card/cheque methods.
func (pc *PaymentController) Pay(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Method            string          `json:"method" binding:"required"`
		Amount            decimal.Decimal `json:"amount" binding:"required"`
		TransactionNumber *int            `json:"transaction_number"`
		ChequeNumber      *int            `json:"cheque_number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Payments.Pay(c.Request.Context(), billID, req.Method, req.Amount, repositories.PaymentDetails{
		TransactionNumber: req.TransactionNumber,
		ChequeNumber:      req.ChequeNumber,
	})
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.InfoLogger.Printf("Bill %d paid: %s via %s", billID, payment.Amount, req.Method)
	utils.RespondJSON(c, http.StatusCreated, "Payment recorded", payment)
}

// GetBillPayment resolves a bill's payment; an unpaid bill yields a nil
// payment with settled=false.
func (pc *PaymentController) GetBillPayment(c *gin.Context) {
	billID, err := pathID(c, "bill_id")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Payments.BillPayment(c.Request.Context(), billID)
	if err != nil {
		utils.RespondDomainError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Bill payment", gin.H{
		"settled": payment != nil,
		"payment": payment,
	})
}
