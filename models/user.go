package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:customer" json:"role"`

	// Profile extras, all optional.
	Phone     string     `json:"phone"`
	Document  *string    `gorm:"uniqueIndex" json:"document,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
