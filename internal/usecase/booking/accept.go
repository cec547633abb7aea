package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salongo/internal/audit"
	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type AcceptBooking struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewAcceptBooking(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *AcceptBooking {
	return &AcceptBooking{
		repo:    repo,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// Execute claims a pending booking for the worker bound to userID. Of
// several concurrent callers exactly one wins; the rest get
// no_longer_available.
func (uc *AcceptBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	worker, err := workerForUser(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Booking not found.")
		}
		return nil, err
	}

	if b.SalonID != worker.SalonID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	ok, err := uc.repo.AcceptBooking(ctx, b.ID, worker.ID, uc.now())
	if err != nil {
		return nil, err
	}

	if !ok {
		uc.metrics.AcceptConflict()
		uc.audit.Dispatch(audit.Event{
			SalonID:  b.SalonID,
			UserID:   &userID,
			Action:   audit.ActionBookingAcceptLost,
			Entity:   "booking",
			EntityID: &b.ID,
		})
		return nil, httperr.ErrBusiness(httperr.CodeNoLongerAvailable)
	}

	uc.metrics.BookingTransition(string(domain.StatusAccepted))
	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   &userID,
		Action:   audit.ActionBookingAccepted,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"worker_id": worker.ID},
	})

	return uc.repo.GetBooking(ctx, b.ID)
}

func workerForUser(ctx context.Context, repo domain.Repository, userID uint) (*models.Worker, error) {
	w, err := repo.GetWorkerByUser(ctx, userID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Worker profile not found.")
		}
		return nil, err
	}
	return w, nil
}
