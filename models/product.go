package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type Product struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	CategoryID uint     `gorm:"not null;index" json:"category_id"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"category"`

	Name        string  `gorm:"size:200;not null" json:"name"`
	Slug        string  `gorm:"size:220;uniqueIndex" json:"slug"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Stock       uint    `gorm:"default:0" json:"stock"`
	IsActive    bool    `gorm:"default:true;index" json:"is_active"`
	SKU         *string `gorm:"size:60;uniqueIndex" json:"sku,omitempty"`
	ImageURL    string  `json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	return nil
}
