package services

import "errors"

var (
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrProductUnavailable = errors.New("product not found or inactive")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrItemNotFound       = errors.New("cart item not found")

	ErrEmptyCart      = errors.New("cart is empty")
	ErrInvalidAddress = errors.New("address is invalid or does not belong to the user")
	ErrInvalidCart    = errors.New("cart is invalid or not active")

	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotPending   = errors.New("order is not pending payment")
	ErrPaymentNotAllowed = errors.New("order cannot be paid in its current state")

	ErrInvalidTransition = errors.New("invalid order status transition")
)
