package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
)

// CheckoutService converts an active cart into an order.
type CheckoutService struct {
	DB *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{DB: db}
}

// Checkout runs the whole conversion in one transaction:
// validates the address, locks cart and products, re-validates stock,
// snapshots the shipping address and unit prices into the order, decrements
// stock and marks the cart converted.
func (s *CheckoutService) Checkout(userID, addressID uint) (*models.Order, error) {
	var order *models.Order

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var address models.Address
		err := tx.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidAddress
		}
		if err != nil {
			return err
		}

		var cart models.Cart
		err = forUpdate(tx).
			Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidCart
		}
		if err != nil {
			return err
		}

		var cartItems []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		productIDs := make([]uint, 0, len(cartItems))
		for _, it := range cartItems {
			productIDs = append(productIDs, it.ProductID)
		}

		// Lock the products so two concurrent checkouts cannot both pass the
		// stock check.
		var products []models.Product
		err = forUpdate(tx).
			Where("id IN ? AND is_active = ?", productIDs, true).
			Find(&products).Error
		if err != nil {
			return err
		}

		byID := make(map[uint]*models.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		if len(byID) != len(productIDs) {
			return ErrProductUnavailable
		}

		for _, it := range cartItems {
			if byID[it.ProductID].Stock < it.Quantity {
				return ErrInsufficientStock
			}
		}

		cartID := cart.ID
		order = &models.Order{
			UserID:             userID,
			Status:             models.OrderStatusPending,
			CartID:             &cartID,
			ShippingCEP:        address.CEP,
			ShippingStreet:     address.Street,
			ShippingNumber:     address.Number,
			ShippingComplement: address.Complement,
			ShippingDistrict:   address.District,
			ShippingCity:       address.City,
			ShippingState:      address.State,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, it := range cartItems {
			p := byID[it.ProductID]

			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			})
			total += p.Price * float64(it.Quantity)

			newStock := p.Stock - it.Quantity
			if err := tx.Model(p).Update("stock", newStock).Error; err != nil {
				return err
			}
		}
		if err := tx.Create(&orderItems).Error; err != nil {
			return err
		}

		order.Total = total
		if err := tx.Model(order).Update("total", total).Error; err != nil {
			return err
		}

		if err := tx.Model(&cart).Update("status", models.CartStatusConverted).Error; err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
