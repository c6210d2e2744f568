package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PabloDarma22/E-commerce/middleware"
	"github.com/PabloDarma22/E-commerce/models"
	"github.com/PabloDarma22/E-commerce/services"
)

const testSecret = "test-secret"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
	))
	return db
}

// setupRouter wires the same routes as main, minus redis and S3.
func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := openTestDB(t)

	authHandler := NewAuthHandler(db, testSecret)
	productHandler := NewProductHandler(db, nil, nil)
	cartHandler := NewCartHandler(services.NewCartService(db))
	checkoutHandler := NewCheckoutHandler(services.NewCheckoutService(db))
	orderHandler := NewOrderHandler(db, services.NewOrderService(db), services.NewPaymentService(db))
	addressHandler := NewAddressHandler(db)

	r := gin.New()

	r.POST("/signup", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/products", productHandler.List)
	r.GET("/products/:slug", productHandler.GetBySlug)
	r.GET("/categories", productHandler.ListCategories)

	auth := r.Group("", middleware.AuthRequired(testSecret))
	{
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", authHandler.Me)

		auth.GET("/cart", cartHandler.GetCart)
		auth.POST("/cart/items", cartHandler.AddItem)
		auth.PUT("/cart/items/:item_id", cartHandler.UpdateItem)
		auth.DELETE("/cart/items/:item_id", cartHandler.RemoveItem)
		auth.DELETE("/cart", cartHandler.Clear)

		auth.POST("/checkout", checkoutHandler.Confirm)

		auth.GET("/orders", orderHandler.ListMine)
		auth.GET("/orders/:id", orderHandler.GetByID)
		auth.POST("/orders/:id/pay", orderHandler.Pay)

		auth.GET("/addresses", addressHandler.List)
		auth.POST("/addresses", addressHandler.Create)
		auth.POST("/addresses/:id/default", addressHandler.SetDefault)
		auth.DELETE("/addresses/:id", addressHandler.Delete)
	}

	admin := r.Group("/admin", middleware.AuthRequired(testSecret), middleware.AdminOnly())
	{
		admin.POST("/products", productHandler.Create)
		admin.PUT("/products/:id", productHandler.Update)
		admin.DELETE("/products/:id", productHandler.Delete)
		admin.POST("/categories", productHandler.CreateCategory)

		admin.GET("/orders", orderHandler.ListAll)
		admin.PUT("/orders/:id/status", orderHandler.UpdateStatus)
	}

	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// signup registers a user through the API and returns its session cookies.
func signup(t *testing.T, r *gin.Engine, email string) []*http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/signup", gin.H{
		"username": email,
		"email":    email,
		"password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func promoteToAdmin(t *testing.T, r *gin.Engine, db *gorm.DB, email string) []*http.Cookie {
	t.Helper()

	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error)

	// re-login so the role claim in the token picks up the change
	w := doJSON(t, r, http.MethodPost, "/login", gin.H{
		"email":    email,
		"password": "s3cret-pass",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w.Result().Cookies()
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price float64, stock uint) models.Product {
	t.Helper()

	category := models.Category{Name: "cat-" + name}
	require.NoError(t, db.Create(&category).Error)

	product := models.Product{
		CategoryID: category.ID,
		Name:       name,
		Price:      price,
		Stock:      stock,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}
