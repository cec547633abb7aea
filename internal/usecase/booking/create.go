package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salongo/internal/audit"
	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	ServiceID uint

	// optional customer preference; not the claimer
	PreferredWorkerID *uint

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	audit    audit.Recorder
	metrics  *metrics.Metrics
	timezone string
	now      func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
	tz string,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		audit:    audit,
		metrics:  m,
		timezone: tz,
		now:      time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Service not found.")
		}
		return nil, err
	}

	// --------------------------------------------------
	// Date / time in the salon clock
	// --------------------------------------------------
	day, err := timezone.ParseDate(uc.timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "date must be YYYY-MM-DD.")
	}
	if _, err := timezone.ParseClock(in.Time); err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "time must be HH:MM.")
	}
	if day.Before(timezone.Today(uc.timezone, uc.now())) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "date is in the past.")
	}

	// --------------------------------------------------
	// Preferred worker
	// --------------------------------------------------
	if in.PreferredWorkerID != nil {
		w, err := uc.repo.GetWorker(ctx, *in.PreferredWorkerID)
		if err != nil && !httperr.IsNotFound(err) {
			return nil, err
		}
		if err != nil || w.SalonID != svc.SalonID {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "worker does not belong to this salon.")
		}
	}

	// --------------------------------------------------
	// Insert
	// --------------------------------------------------
	b := &models.Booking{
		UserID:            in.UserID,
		SalonID:           svc.SalonID,
		ServiceID:         svc.ID,
		PreferredWorkerID: in.PreferredWorkerID,
		Date:              in.Date,
		Time:              in.Time,
		Status:            string(domain.InitialStatus()),
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.metrics.BookingTransition(b.Status)
	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   &in.UserID,
		Action:   audit.ActionBookingCreated,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"service_id": svc.ID, "date": b.Date, "time": b.Time},
	})

	return b, nil
}
