package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
)

// PaymentService simulates a payment gateway. No real charge ever happens,
// a pending order is simply marked paid and gets a generated transaction id.
type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// Pay settles a pending order of the given user. Paying an order that is
// already paid returns the existing payment, the call is idempotent.
func (s *PaymentService) Pay(userID, orderID uint, method string) (*models.Payment, error) {
	var payment *models.Payment

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := forUpdate(tx).
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		var existing models.Payment
		err = tx.Where("order_id = ?", order.ID).First(&existing).Error
		hasExisting := err == nil
		if hasExisting {
			if existing.Status == models.PaymentStatusPaid {
				payment = &existing
				return nil
			}
			if existing.Status != models.PaymentStatusPending {
				return ErrPaymentNotAllowed
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if order.Status != models.OrderStatusPending {
			return ErrOrderNotPending
		}

		now := time.Now()
		if hasExisting {
			// A pending payment is settled in place, one payment per order.
			existing.Method = method
			existing.Status = models.PaymentStatusPaid
			existing.PaidAt = &now
			existing.TransactionID = "MOCK-" + uuid.NewString()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			payment = &existing
		} else {
			payment = &models.Payment{
				OrderID:       order.ID,
				Method:        method,
				Status:        models.PaymentStatusPaid,
				PaidAt:        &now,
				TransactionID: "MOCK-" + uuid.NewString(),
			}
			if err := tx.Create(payment).Error; err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("status", models.OrderStatusPaid).Error
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}
