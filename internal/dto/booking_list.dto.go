package dto

import (
	"time"

	"github.com/BruksfildServices01/salongo/internal/models"
)

type BookingListDTO struct {
	ID        uint      `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`

	SalonID     uint    `json:"salon_id"`
	SalonName   string  `json:"salon_name,omitempty"`
	ServiceID   uint    `json:"service_id"`
	ServiceName string  `json:"service_name,omitempty"`
	Price       float64 `json:"price"`

	CustomerName string `json:"customer_name,omitempty"`
	WorkerID     *uint  `json:"worker_id"`
	WorkerName   string `json:"worker_name,omitempty"`
}

// BookingFromModel flattens a booking and whichever relations were preloaded.
func BookingFromModel(b models.Booking) BookingListDTO {
	out := BookingListDTO{
		ID:        b.ID,
		Date:      b.Date,
		Time:      b.Time,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		SalonID:   b.SalonID,
		ServiceID: b.ServiceID,
		WorkerID:  b.WorkerID,
	}

	if b.Salon != nil {
		out.SalonName = b.Salon.Name
	}
	if b.Service != nil {
		out.ServiceName = b.Service.Name
		out.Price = b.Service.Price
	}
	if b.User != nil {
		out.CustomerName = b.User.Name
	}
	if b.Worker != nil {
		out.WorkerName = b.Worker.Name
	}

	return out
}

func BookingsFromModels(list []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(list))
	for _, b := range list {
		out = append(out, BookingFromModel(b))
	}
	return out
}
