package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloDarma22/E-commerce/models"
)

func TestUpdateStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{models.OrderStatusPending, models.OrderStatusCanceled, true},
		{models.OrderStatusPaid, models.OrderStatusShipped, true},
		{models.OrderStatusPaid, models.OrderStatusCanceled, true},
		{models.OrderStatusShipped, models.OrderStatusDelivered, true},
		{models.OrderStatusPending, models.OrderStatusPaid, false}, // payment owns this one
		{models.OrderStatusPending, models.OrderStatusShipped, false},
		{models.OrderStatusShipped, models.OrderStatusCanceled, false},
		{models.OrderStatusDelivered, models.OrderStatusShipped, false},
		{models.OrderStatusCanceled, models.OrderStatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.from+"->"+tc.to, func(t *testing.T) {
			db := openTestDB(t)
			svc := NewOrderService(db)
			user := createUser(t, db, nextEmail())

			order := models.Order{UserID: user.ID, Status: tc.from}
			require.NoError(t, db.Create(&order).Error)

			updated, err := svc.UpdateStatus(order.ID, tc.to)
			if tc.ok {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatus_CancelRestocks(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrderService(db)
	user := createUser(t, db, nextEmail())
	product := createProduct(t, db, "Keyboard", 150, 8)

	order := models.Order{UserID: user.ID, Status: models.OrderStatusPaid}
	require.NoError(t, db.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 3, UnitPrice: 150}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.UpdateStatus(order.ID, models.OrderStatusCanceled)
	require.NoError(t, err)

	assert.Equal(t, uint(11), productStock(t, db, product.ID))
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db := openTestDB(t)
	svc := NewOrderService(db)

	_, err := svc.UpdateStatus(42, models.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
