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

// PaymentDetails carries the method-specific attributes of a payment.
// Card requires a transaction number, cheque a cheque number, cash
// neither.
type PaymentDetails struct {
	TransactionNumber *int
	ChequeNumber      *int
}

// PaymentRepository settles bills. A bill has at most one payment, and
// that payment is specialized into exactly one method row.
type PaymentRepository interface {
	Pay(ctx context.Context, billID uint, method string, amount decimal.Decimal, details PaymentDetails) (*models.Payment, error)
	BillPayment(ctx context.Context, billID uint) (*models.Payment, error)
	BillSettled(ctx context.Context, billID uint) (bool, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func validateDetails(method string, details PaymentDetails) error {
	switch method {
	case models.PaymentMethodCash:
		if details.TransactionNumber != nil || details.ChequeNumber != nil {
			return apperr.NewValidation("method-detail-mismatch", "cash payments carry no transaction or cheque number")
		}
	case models.PaymentMethodCard:
		if details.TransactionNumber == nil {
			return apperr.NewValidation("method-detail-mismatch", "card payments require a transaction number")
		}
		if details.ChequeNumber != nil {
			return apperr.NewValidation("method-detail-mismatch", "card payments carry no cheque number")
		}
	case models.PaymentMethodCheque:
		if details.ChequeNumber == nil {
			return apperr.NewValidation("method-detail-mismatch", "cheque payments require a cheque number")
		}
		if details.TransactionNumber != nil {
			return apperr.NewValidation("method-detail-mismatch", "cheque payments carry no transaction number")
		}
	default:
		return apperr.NewValidation("method-detail-mismatch", "unknown payment method %q", method)
	}
	return nil
}

// Pay creates the payment row (RecordedAt = operation time) and exactly
// one method row in a single transaction. The unique index on
// payments.bill_id makes two concurrent attempts resolve into one
// success and one ConflictError.
func (r *paymentRepository) Pay(ctx context.Context, billID uint, method string, amount decimal.Decimal, details PaymentDetails) (*models.Payment, error) {
	if err := validateDetails(method, details); err != nil {
		return nil, err
	}

	payment := models.Payment{BillID: billID, Amount: amount, RecordedAt: time.Now()}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bill models.Bill
		if err := tx.First(&bill, billID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NewNotFound("bill", billID)
			}
			return err
		}

		// No read-then-write check here: the unique index on bill_id is
		// the arbiter, so a racing second attempt loses cleanly.
		if err := tx.Create(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.NewConflict("already-paid", "bill %d already has a payment", billID)
			}
			return err
		}

		switch method {
		case models.PaymentMethodCash:
			return tx.Create(&models.CashPayment{PaymentID: payment.ID}).Error
		case models.PaymentMethodCard:
			return tx.Create(&models.CardPayment{PaymentID: payment.ID, TransactionNumber: *details.TransactionNumber}).Error
		default:
			return tx.Create(&models.ChequePayment{PaymentID: payment.ID, ChequeNumber: *details.ChequeNumber}).Error
		}
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// BillPayment resolves a bill's payment; (nil, nil) means the bill is
// still open.
func (r *paymentRepository) BillPayment(ctx context.Context, billID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("bill_id = ?", billID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// BillSettled is derived from payment existence; there is no stored
// settlement flag.
func (r *paymentRepository) BillSettled(ctx context.Context, billID uint) (bool, error) {
	payment, err := r.BillPayment(ctx, billID)
	if err != nil {
		return false, err
	}
	return payment != nil, nil
}
