package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/models"
	"github.com/PabloDarma22/E-commerce/services"
	"github.com/PabloDarma22/E-commerce/utils"
)

const orderPageSize = 10

type OrderHandler struct {
	DB       *gorm.DB
	Orders   *services.OrderService
	Payments *services.PaymentService
}

func NewOrderHandler(db *gorm.DB, orders *services.OrderService, payments *services.PaymentService) *OrderHandler {
	return &OrderHandler{DB: db, Orders: orders, Payments: payments}
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var orders []models.Order
	err = h.DB.
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(orderPageSize).
		Offset((page - 1) * orderPageSize).
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "page": page})
}

func (h *OrderHandler) GetByID(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var order models.Order
	err = h.DB.
		Preload("Items").
		Preload("Items.Product").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var payment models.Payment
	resp := gin.H{"order": order}
	if err := h.DB.Where("order_id = ?", order.ID).First(&payment).Error; err == nil {
		resp["payment"] = payment
	}

	c.JSON(http.StatusOK, resp)
}

// Pay runs the simulated payment for one of the user's pending orders.
func (h *OrderHandler) Pay(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a payment method"})
		return
	}

	method := strings.ToLower(strings.TrimSpace(input.Method))
	if !models.PaymentMethods[method] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Select a valid payment method"})
		return
	}

	payment, err := h.Payments.Pay(userID, uint(orderID), method)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrOrderNotPending), errors.Is(err, services.ErrPaymentNotAllowed):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment approved (simulated)", "payment": payment})
}

func (h *OrderHandler) ListAll(c *gin.Context) {
	var orders []models.Order
	err := h.DB.
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status payload"})
		return
	}

	order, err := h.Orders.UpdateStatus(uint(orderID), strings.ToLower(input.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		}
		return
	}

	c.JSON(http.StatusOK, order)
}
