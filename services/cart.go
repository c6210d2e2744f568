package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
)

// CartService owns the active cart of each user. A user has at most one
// active cart, created lazily on first use.
type CartService struct {
	DB *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db}
}

type CartLine struct {
	CartItemID uint    `json:"cart_item_id"`
	ProductID  uint    `json:"product_id"`
	Slug       string  `json:"slug"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	ImageURL   string  `json:"image_url"`
	UnitPrice  float64 `json:"unit_price"`
	Quantity   uint    `json:"quantity"`
	Subtotal   float64 `json:"subtotal"`
}

// CartSummary is always computed from the lines, the total is never persisted.
type CartSummary struct {
	CartID uint       `json:"cart_id"`
	Items  []CartLine `json:"items"`
	Total  float64    `json:"total"`
}

func (s *CartService) GetOrCreateActiveCart(userID uint) (*models.Cart, error) {
	var cart *models.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var innerErr error
		cart, innerErr = getOrCreateActiveCart(tx, userID)
		return innerErr
	})
	return cart, err
}

func getOrCreateActiveCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := forUpdate(tx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		Order("updated_at DESC").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, Status: models.CartStatusActive}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddItem puts a product into the active cart, incrementing the existing line
// when there is one. The stock check here is a light one for UX, the
// definitive validation happens at checkout.
func (s *CartService) AddItem(userID, productID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var cart *models.Cart
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		err := tx.Where("id = ? AND is_active = ?", productID, true).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductUnavailable
		}
		if err != nil {
			return err
		}

		cart, err = getOrCreateActiveCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if product.Stock < uint(quantity) {
				return ErrInsufficientStock
			}
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: uint(quantity)}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			newQty := item.Quantity + uint(quantity)
			if product.Stock < newQty {
				return ErrInsufficientStock
			}
			if err := tx.Model(&item).Update("quantity", newQty).Error; err != nil {
				return err
			}
		}

		// Touch the cart so the most recently used one sorts first.
		return tx.Model(cart).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItemQuantity replaces the quantity of a cart line. Zero or negative
// removes the line, the returned item is nil in that case.
func (s *CartService) UpdateItemQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	var updated *models.CartItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		err := forUpdate(tx).
			Select("cart_items.*").
			Joins("JOIN carts ON carts.id = cart_items.cart_id").
			Where("cart_items.id = ? AND carts.user_id = ? AND carts.status = ?",
				itemID, userID, models.CartStatusActive).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}

		if quantity <= 0 {
			return tx.Delete(&item).Error
		}

		var product models.Product
		if err := tx.First(&product, item.ProductID).Error; err != nil {
			return err
		}
		if !product.IsActive {
			return ErrProductUnavailable
		}
		if product.Stock < uint(quantity) {
			return ErrInsufficientStock
		}

		item.Quantity = uint(quantity)
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		updated = &item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *CartService) RemoveItem(userID, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.CartItem
		err := tx.
			Select("cart_items.*").
			Joins("JOIN carts ON carts.id = cart_items.cart_id").
			Where("cart_items.id = ? AND carts.user_id = ? AND carts.status = ?",
				itemID, userID, models.CartStatusActive).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		if err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

func (s *CartService) Clear(userID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		cart, err := getOrCreateActiveCart(tx, userID)
		if err != nil {
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}

func (s *CartService) Summary(userID uint) (*CartSummary, error) {
	cart, err := s.GetOrCreateActiveCart(userID)
	if err != nil {
		return nil, err
	}

	var items []models.CartItem
	err = s.DB.
		Preload("Product").
		Preload("Product.Category").
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	summary := &CartSummary{CartID: cart.ID, Items: make([]CartLine, 0, len(items))}
	for _, it := range items {
		subtotal := it.Product.Price * float64(it.Quantity)
		summary.Items = append(summary.Items, CartLine{
			CartItemID: it.ID,
			ProductID:  it.ProductID,
			Slug:       it.Product.Slug,
			Name:       it.Product.Name,
			Category:   it.Product.Category.Name,
			ImageURL:   it.Product.ImageURL,
			UnitPrice:  it.Product.Price,
			Quantity:   it.Quantity,
			Subtotal:   subtotal,
		})
		summary.Total += subtotal
	}
	return summary, nil
}
