package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catalog lookups
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetWorker(
	ctx context.Context,
	id uint,
) (*models.Worker, error) {

	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *BookingGormRepository) GetWorkerByUser(
	ctx context.Context,
	userID uint,
) (*models.Worker, error) {

	var w models.Worker
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Transitions
// --------------------------------------------------

// transition applies t to the row only if it is still in t.From and
// matches the extra condition. The status check and the write are a
// single statement, so concurrent callers cannot both succeed.
func (r *BookingGormRepository) transition(
	ctx context.Context,
	bookingID uint,
	t domain.Transition,
	set map[string]any,
	where string,
	args ...any,
) (bool, error) {

	if !domain.CanTransition(t.From, t.To) {
		return false, fmt.Errorf("%w: %s -> %s", domain.ErrIllegalTransition, t.From, t.To)
	}
	set["status"] = string(t.To)

	q := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, string(t.From))
	if where != "" {
		q = q.Where(where, args...)
	}

	res := q.Updates(set)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *BookingGormRepository) AcceptBooking(
	ctx context.Context,
	bookingID, workerID uint,
	at time.Time,
) (bool, error) {
	return r.transition(ctx, bookingID, domain.Accept, map[string]any{
		"worker_id":   workerID,
		"accepted_at": at,
	}, "")
}

func (r *BookingGormRepository) CompleteBooking(
	ctx context.Context,
	bookingID, workerID uint,
	at time.Time,
) (bool, error) {
	return r.transition(ctx, bookingID, domain.Complete, map[string]any{
		"completed_at": at,
	}, "worker_id = ?", workerID)
}

func (r *BookingGormRepository) CancelBooking(
	ctx context.Context,
	bookingID, userID uint,
	at time.Time,
) (bool, error) {
	return r.transition(ctx, bookingID, domain.Cancel, map[string]any{
		"cancelled_at": at,
	}, "user_id = ?", userID)
}

// --------------------------------------------------
// Worker
// --------------------------------------------------

// ToggleWorkerOnline flips the flag in one statement and reads back the
// value it produced.
func (r *BookingGormRepository) ToggleWorkerOnline(
	ctx context.Context,
	workerID uint,
) (bool, error) {

	var online bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Worker{}).
			Where("id = ?", workerID).
			Update("is_online", gorm.Expr("NOT is_online"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.Worker{}).
			Select("is_online").
			Where("id = ?", workerID).
			Row().
			Scan(&online)
	})

	return online, err
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var list []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Service").
		Preload("Worker").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&list).Error

	return list, err
}

func (r *BookingGormRepository) ListBookingsForSalon(
	ctx context.Context,
	salonID uint,
) ([]models.Booking, error) {

	var list []models.Booking
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Preload("Worker").
		Where("salon_id = ?", salonID).
		Order("created_at DESC, id DESC").
		Find(&list).Error

	return list, err
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
