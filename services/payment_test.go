package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
)

func createPendingOrder(t *testing.T, db *gorm.DB, userID uint, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Total:  total,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestPay_SettlesPendingOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, user.ID, 300)

	payment, err := svc.Pay(user.ID, order.ID, models.PaymentMethodPix)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, models.PaymentMethodPix, payment.Method)
	assert.True(t, strings.HasPrefix(payment.TransactionID, "MOCK-"))
	require.NotNil(t, payment.PaidAt)

	var updated models.Order
	require.NoError(t, db.First(&updated, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)
}

func TestPay_Idempotent(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, user.ID, 300)

	first, err := svc.Pay(user.ID, order.ID, models.PaymentMethodCard)
	require.NoError(t, err)
	second, err := svc.Pay(user.ID, order.ID, models.PaymentMethodBoleto)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.TransactionID, second.TransactionID)
	// the retry did not change the method of the settled payment
	assert.Equal(t, models.PaymentMethodCard, second.Method)

	var count int64
	require.NoError(t, db.Model(&models.Payment{}).Where("order_id = ?", order.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPay_SettlesExistingPendingPayment(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, user.ID, 300)

	pending := models.Payment{
		OrderID: order.ID,
		Method:  models.PaymentMethodBoleto,
		Status:  models.PaymentStatusPending,
	}
	require.NoError(t, db.Create(&pending).Error)

	payment, err := svc.Pay(user.ID, order.ID, models.PaymentMethodPix)
	require.NoError(t, err)

	assert.Equal(t, pending.ID, payment.ID)
	assert.Equal(t, models.PaymentStatusPaid, payment.Status)
	assert.Equal(t, models.PaymentMethodPix, payment.Method)
}

func TestPay_ForeignOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	owner := createUser(t, db, nextEmail())
	intruder := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, owner.ID, 300)

	_, err := svc.Pay(intruder.ID, order.ID, models.PaymentMethodPix)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestPay_NonPendingOrder(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, user.ID, 300)
	require.NoError(t, db.Model(&order).Update("status", models.OrderStatusCanceled).Error)

	_, err := svc.Pay(user.ID, order.ID, models.PaymentMethodPix)
	assert.ErrorIs(t, err, ErrOrderNotPending)
}

func TestPay_BlockedByNonPendingPayment(t *testing.T) {
	db := openTestDB(t)
	svc := NewPaymentService(db)
	user := createUser(t, db, nextEmail())
	order := createPendingOrder(t, db, user.ID, 300)

	refunded := models.Payment{
		OrderID: order.ID,
		Method:  models.PaymentMethodCard,
		Status:  models.PaymentStatusRefunded,
	}
	require.NoError(t, db.Create(&refunded).Error)

	_, err := svc.Pay(user.ID, order.ID, models.PaymentMethodPix)
	assert.ErrorIs(t, err, ErrPaymentNotAllowed)
}
