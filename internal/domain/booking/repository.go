package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salongo/internal/models"
)

type Repository interface {
	// -------- Catalog lookups --------
	GetService(ctx context.Context, id uint) (*models.Service, error)
	GetWorker(ctx context.Context, id uint) (*models.Worker, error)
	GetWorkerByUser(ctx context.Context, userID uint) (*models.Worker, error)

	// -------- Booking --------
	CreateBooking(ctx context.Context, b *models.Booking) error
	GetBooking(ctx context.Context, id uint) (*models.Booking, error)

	// -------- Conditional transitions --------
	// Each returns false without mutating anything when the row does not
	// match its precondition at write time.
	AcceptBooking(ctx context.Context, bookingID, workerID uint, at time.Time) (bool, error)
	CompleteBooking(ctx context.Context, bookingID, workerID uint, at time.Time) (bool, error)
	CancelBooking(ctx context.Context, bookingID, userID uint, at time.Time) (bool, error)

	// -------- Worker --------
	ToggleWorkerOnline(ctx context.Context, workerID uint) (bool, error)

	// -------- Listings --------
	ListBookingsForUser(ctx context.Context, userID uint) ([]models.Booking, error)
	ListBookingsForSalon(ctx context.Context, salonID uint) ([]models.Booking, error)
}
