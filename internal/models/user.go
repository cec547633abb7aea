package models

import (
	"time"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
)

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20;index;not null" json:"phone"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         role.Role `gorm:"type:varchar(20);not null" json:"role"`
	Gender       string    `gorm:"size:20" json:"gender"`

	// false for accounts created through OTP until the profile step is done
	ProfileComplete bool `gorm:"not null;default:false" json:"profile_complete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
