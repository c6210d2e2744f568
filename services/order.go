package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
)

// OrderService covers the admin side of the order lifecycle. Customers only
// ever move an order pending -> paid, and that goes through PaymentService.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// transitions holds the admin-reachable status changes. pending -> paid is
// deliberately absent, payment owns it.
var transitions = map[string][]string{
	models.OrderStatusPending: {models.OrderStatusCanceled},
	models.OrderStatusPaid:    {models.OrderStatusShipped, models.OrderStatusCanceled},
	models.OrderStatusShipped: {models.OrderStatusDelivered},
}

func canTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves an order along its lifecycle. Canceling puts the ordered
// quantities back into product stock.
func (s *OrderService) UpdateStatus(orderID uint, status string) (*models.Order, error) {
	var order models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		if err != nil {
			return err
		}

		if !canTransition(order.Status, status) {
			return ErrInvalidTransition
		}

		if status == models.OrderStatusCanceled {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			for _, it := range items {
				err := tx.Model(&models.Product{}).
					Where("id = ?", it.ProductID).
					Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error
				if err != nil {
					return err
				}
			}
		}

		order.Status = status
		return tx.Model(&order).Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
