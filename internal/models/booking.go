package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`

	SalonID uint   `gorm:"index;not null" json:"salon_id"`
	Salon   *Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"salon,omitempty"`

	ServiceID uint     `gorm:"not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service,omitempty"`

	// claimer; only written by the accept transition
	WorkerID *uint   `gorm:"index" json:"worker_id"`
	Worker   *Worker `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"worker,omitempty"`

	PreferredWorkerID *uint   `json:"preferred_worker_id"`
	PreferredWorker   *Worker `gorm:"foreignKey:PreferredWorkerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Date string `gorm:"size:10;not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Status string `gorm:"size:20;not null;default:'Pending';index" json:"status"`

	AcceptedAt  *time.Time `json:"accepted_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
