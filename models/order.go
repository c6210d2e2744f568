package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCanceled  = "canceled"
)

type Order struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Status string  `gorm:"size:20;default:pending;index" json:"status"`
	Total  float64 `json:"total"`

	// Cart that originated the order, kept for traceability.
	CartID *uint `json:"cart_id,omitempty"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`

	// Shipping address snapshot, copied at checkout.
	ShippingCEP        string `gorm:"size:9" json:"shipping_cep"`
	ShippingStreet     string `gorm:"size:200" json:"shipping_street"`
	ShippingNumber     string `gorm:"size:20" json:"shipping_number"`
	ShippingComplement string `gorm:"size:100" json:"shipping_complement"`
	ShippingDistrict   string `gorm:"size:100" json:"shipping_district"`
	ShippingCity       string `gorm:"size:100" json:"shipping_city"`
	ShippingState      string `gorm:"size:2" json:"shipping_state"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
