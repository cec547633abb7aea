package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`
	Date    string `gorm:"size:10" json:"date"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SalonID uint `gorm:"index;not null" json:"salon_id"`

	CreatedAt time.Time `json:"created_at"`
}
