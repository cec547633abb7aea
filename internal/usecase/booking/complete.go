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

type CompleteBooking struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCompleteBooking(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *CompleteBooking {
	return &CompleteBooking{
		repo:    repo,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	worker, err := workerForUser(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	ok, err := uc.repo.CompleteBooking(ctx, bookingID, worker.ID, uc.now())
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, uc.explain(ctx, bookingID, worker)
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	uc.metrics.BookingTransition(string(domain.StatusCompleted))
	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   &userID,
		Action:   audit.ActionBookingCompleted,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}

// explain classifies a conditional update that matched no row.
func (uc *CompleteBooking) explain(ctx context.Context, bookingID uint, worker *models.Worker) error {
	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return httperr.ErrBusinessf(httperr.CodeNotFound, "Booking not found.")
		}
		return err
	}

	if b.SalonID != worker.SalonID || (b.WorkerID != nil && *b.WorkerID != worker.ID) {
		return httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return httperr.ErrBusinessf(httperr.CodeInvalidState, "Only accepted bookings can be completed.")
}
