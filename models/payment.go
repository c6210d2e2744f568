package models

import "time"

const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

const (
	PaymentMethodPix    = "pix"
	PaymentMethodCard   = "card"
	PaymentMethodBoleto = "boleto"
)

// PaymentMethods are the methods accepted at the pay endpoint.
var PaymentMethods = map[string]bool{
	PaymentMethodPix:    true,
	PaymentMethodCard:   true,
	PaymentMethodBoleto: true,
}

type Payment struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;uniqueIndex" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`

	Method        string     `gorm:"size:20;not null" json:"method"`
	Status        string     `gorm:"size:20;default:pending" json:"status"`
	TransactionID string     `gorm:"size:120" json:"transaction_id"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
