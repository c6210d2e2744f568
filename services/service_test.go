package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/PabloDarma22/E-commerce/models"
)

// openTestDB returns an isolated in-memory sqlite database. A single
// connection keeps every goroutine on the same database and serializes
// writes, which sqlite needs anyway.
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

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		Username:     email,
		PasswordHash: "x",
		Role:         models.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createAddress(t *testing.T, db *gorm.DB, userID uint) models.Address {
	t.Helper()
	address := models.Address{
		UserID:   userID,
		CEP:      "12345-678",
		Street:   "Rua das Flores",
		Number:   "100",
		District: "Centro",
		City:     "Rio de Janeiro",
		State:    "RJ",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock uint) models.Product {
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

func productStock(t *testing.T, db *gorm.DB, id uint) uint {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Stock
}

var emailSeq int

func nextEmail() string {
	emailSeq++
	return fmt.Sprintf("user%d@example.com", emailSeq)
}
