package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Location string  `gorm:"size:200;not null" json:"location"`
	Rating   float64 `gorm:"default:4.5" json:"rating"`
	Phone    string  `gorm:"size:20" json:"phone"`

	ImageURL string `gorm:"size:300" json:"image_url"`
	LogoURL  string `gorm:"size:300" json:"logo_url"`
	MapURL   string `gorm:"size:500" json:"map_url"`

	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsOpen    bool   `gorm:"default:true" json:"is_open"`

	// set once at creation; seeded salons may have no owner
	OwnerID *uint `gorm:"uniqueIndex" json:"owner_id"`
	Owner   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Services []Service `json:"services,omitempty"`
	Workers  []Worker  `json:"workers,omitempty"`
	Reviews  []Review  `json:"reviews,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
