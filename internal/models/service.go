package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `gorm:"not null" json:"price"`
	Duration int     `gorm:"default:30" json:"duration"`
	Category string  `gorm:"size:50" json:"category"`
	ImageURL string  `gorm:"size:300" json:"image_url"`

	SalonID uint   `gorm:"index;not null" json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
