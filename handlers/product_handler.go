package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/PabloDarma22/E-commerce/cache"
	"github.com/PabloDarma22/E-commerce/models"
	"github.com/PabloDarma22/E-commerce/storage"
)

const productPageSize = 12

type ProductHandler struct {
	DB       *gorm.DB
	Cache    *cache.Catalog
	Uploader *storage.Uploader
}

func NewProductHandler(db *gorm.DB, catalog *cache.Catalog, uploader *storage.Uploader) *ProductHandler {
	return &ProductHandler{DB: db, Cache: catalog, Uploader: uploader}
}

// List returns active products ordered by name, with optional name search
// and page-based pagination.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	q := strings.TrimSpace(c.Query("q"))

	// fresh chain per finisher, gorm statements are not reusable
	base := func() *gorm.DB {
		query := h.DB.Model(&models.Product{}).Where("is_active = ?", true)
		if q != "" {
			query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
		return query
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	var products []models.Product
	err := base().
		Preload("Category").
		Order("name").
		Limit(productPageSize).
		Offset((page - 1) * productPageSize).
		Find(&products).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	totalPages := int((total + productPageSize - 1) / productPageSize)
	c.JSON(http.StatusOK, gin.H{
		"products":    products,
		"page":        page,
		"total_pages": totalPages,
		"total":       total,
		"q":           q,
	})
}

// GetBySlug serves product detail, read-through cached when redis is around.
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	if product, ok := h.Cache.GetProduct(c.Request.Context(), slug); ok {
		c.JSON(http.StatusOK, product)
		return
	}

	var product models.Product
	err := h.DB.Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	h.Cache.SetProduct(c.Request.Context(), &product)
	c.JSON(http.StatusOK, product)
}

type productInput struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Stock       uint    `json:"stock"`
	IsActive    *bool   `json:"is_active"`
	SKU         *string `json:"sku"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	var category models.Category
	if err := h.DB.First(&category, input.CategoryID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
		return
	}

	product := models.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		IsActive:    true,
		SKU:         input.SKU,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := h.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload"})
		return
	}

	product.CategoryID = input.CategoryID
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.SKU = input.SKU
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := h.DB.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	h.Cache.InvalidateProduct(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.DB.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	h.Cache.InvalidateProduct(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) UploadImage(c *gin.Context) {
	if h.Uploader == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Image storage is not configured"})
		return
	}

	id := c.Param("id")
	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only images can be uploaded"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open file"})
		return
	}
	defer file.Close()

	key := fmt.Sprintf("products/%d/main.jpg", product.ID)
	imageURL, err := h.Uploader.Upload(key, file, contentType)
	if err != nil {
		log.Error().Err(err).Uint("product_id", product.ID).Msg("image upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	if err := h.DB.Model(&product).Update("image_url", imageURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image URL"})
		return
	}

	h.Cache.InvalidateProduct(c.Request.Context(), product.Slug)
	c.JSON(http.StatusOK, gin.H{"message": "Image uploaded", "image_url": imageURL})
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category payload"})
		return
	}

	category := models.Category{Name: input.Name}
	if err := h.DB.Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
		return
	}

	c.JSON(http.StatusCreated, category)
}
