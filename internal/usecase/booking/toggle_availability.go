package booking

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/audit"
	domain "github.com/BruksfildServices01/salongo/internal/domain/booking"
)

type ToggleAvailability struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewToggleAvailability(repo domain.Repository, audit audit.Recorder) *ToggleAvailability {
	return &ToggleAvailability{repo: repo, audit: audit}
}

// Execute flips the worker's online flag and returns the new value.
func (uc *ToggleAvailability) Execute(ctx context.Context, userID uint) (bool, error) {
	worker, err := workerForUser(ctx, uc.repo, userID)
	if err != nil {
		return false, err
	}

	online, err := uc.repo.ToggleWorkerOnline(ctx, worker.ID)
	if err != nil {
		return false, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  worker.SalonID,
		UserID:   &userID,
		Action:   audit.ActionWorkerToggled,
		Entity:   "worker",
		EntityID: &worker.ID,
		Metadata: map[string]any{"is_online": online},
	})

	return online, nil
}
