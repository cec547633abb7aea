package models

import "time"

type Worker struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	Role       string `gorm:"size:100" json:"role"` // label, e.g. "Senior Stylist"
	Phone      string `gorm:"size:20" json:"phone"`
	Experience int    `json:"experience"`
	Skills     string `gorm:"size:255" json:"skills"`
	ImageURL   string `gorm:"size:300" json:"image_url"`
	IsOnline   bool   `gorm:"not null;default:false" json:"is_online"`

	SalonID uint   `gorm:"index;not null" json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// nil for seeded workers without an account
	UserID *uint `gorm:"uniqueIndex" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
