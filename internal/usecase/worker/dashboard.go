package worker

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type Dashboard struct {
	repo booking.Repository
}

func NewDashboard(repo booking.Repository) *Dashboard {
	return &Dashboard{repo: repo}
}

// Execute shows every pending booking of the worker's salon, plus the
// worker's own accepted and completed ones.
func (uc *Dashboard) Execute(ctx context.Context, userID uint) (*dto.WorkerDashboardDTO, error) {
	w, err := workerForUser(ctx, uc.repo, userID)
	if err != nil {
		return nil, err
	}

	list, err := uc.repo.ListBookingsForSalon(ctx, w.SalonID)
	if err != nil {
		return nil, err
	}

	out := &dto.WorkerDashboardDTO{
		Worker:    *w,
		Pending:   []dto.BookingListDTO{},
		Accepted:  []dto.BookingListDTO{},
		Completed: []dto.BookingListDTO{},
	}

	for _, b := range list {
		mine := b.WorkerID != nil && *b.WorkerID == w.ID

		switch booking.Status(b.Status) {
		case booking.StatusPending:
			out.Pending = append(out.Pending, dto.BookingFromModel(b))
		case booking.StatusAccepted:
			if mine {
				out.Accepted = append(out.Accepted, dto.BookingFromModel(b))
			}
		case booking.StatusCompleted:
			if mine {
				out.Completed = append(out.Completed, dto.BookingFromModel(b))
			}
		}
	}

	return out, nil
}

func workerForUser(ctx context.Context, repo booking.Repository, userID uint) (*models.Worker, error) {
	w, err := repo.GetWorkerByUser(ctx, userID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Worker profile not found.")
		}
		return nil, err
	}
	return w, nil
}
