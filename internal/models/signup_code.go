package models

import "time"

type SignupCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code   string `gorm:"size:10;uniqueIndex;not null" json:"code"`
	IsUsed bool   `gorm:"not null;default:false" json:"is_used"`

	UsedByUserID *uint `json:"used_by_user_id"`

	SalonID uint   `gorm:"index;not null" json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
