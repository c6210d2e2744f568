package models

import "time"

type Address struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CEP        string `gorm:"size:9;not null" json:"cep"`
	Street     string `gorm:"size:200;not null" json:"street"`
	Number     string `gorm:"size:20;not null" json:"number"`
	Complement string `gorm:"size:100" json:"complement"`
	District   string `gorm:"size:100;not null" json:"district"`
	City       string `gorm:"size:100;not null" json:"city"`
	State      string `gorm:"size:2;not null" json:"state"`

	IsDefault bool `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time `json:"created_at"`
}
