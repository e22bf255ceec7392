package repositories

import (
	"errors"

	"gorm.io/gorm"

	"restaurant-core/models"
)

// Cascade helpers shared by the repositories. The protect/cascade policy
// is enforced here in the operation layer, not left to store settings,
// because it is a correctness-critical contract.

// deleteBillCascade removes a bill with its orders, their lines, its
// cashier links and its payment (including the method row).
func deleteBillCascade(tx *gorm.DB, billID uint) error {
	var orders []models.Order
	if err := tx.Where("bill_id = ?", billID).Find(&orders).Error; err != nil {
		return err
	}
	for _, order := range orders {
		if err := deleteOrderCascade(tx, order.ID); err != nil {
			return err
		}
	}

	var payment models.Payment
	err := tx.Where("bill_id = ?", billID).First(&payment).Error
	switch {
	case err == nil:
		if err := deletePaymentCascade(tx, payment.ID); err != nil {
			return err
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := tx.Exec("DELETE FROM bill_cashiers WHERE bill_id = ?", billID).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Bill{}, billID).Error
}

func deleteOrderCascade(tx *gorm.DB, orderID uint) error {
	if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderLine{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Order{}, orderID).Error
}

func deletePaymentCascade(tx *gorm.DB, paymentID uint) error {
	if err := tx.Where("payment_id = ?", paymentID).Delete(&models.CashPayment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("payment_id = ?", paymentID).Delete(&models.CardPayment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("payment_id = ?", paymentID).Delete(&models.ChequePayment{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Payment{}, paymentID).Error
}
