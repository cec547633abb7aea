package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salongo/internal/audit"
	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type CancelBooking struct {
	repo    domain.Repository
	audit   audit.Recorder
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit audit.Recorder,
	m *metrics.Metrics,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		audit:   audit,
		metrics: m,
		now:     time.Now,
	}
}

// Execute cancels the customer's own booking while it is still pending.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	ok, err := uc.repo.CancelBooking(ctx, bookingID, userID, uc.now())
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

	if !ok {
		if b.UserID != userID {
			return nil, httperr.ErrBusiness(httperr.CodeForbidden)
		}
		if domain.IsTerminal(domain.Status(b.Status)) {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidState, "Booking is already "+strings.ToLower(b.Status)+".")
		}
		return nil, httperr.ErrBusinessf(httperr.CodeInvalidState, "Only pending bookings can be cancelled.")
	}

	uc.metrics.BookingTransition(string(domain.StatusCancelled))
	uc.audit.Dispatch(audit.Event{
		SalonID:  b.SalonID,
		UserID:   &userID,
		Action:   audit.ActionBookingCancelled,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
