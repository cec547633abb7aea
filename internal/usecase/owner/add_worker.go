package owner

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type AddWorkerInput struct {
	Name       string
	Role       string
	Phone      string
	Experience int
	Skills     string
	ImageURL   string
}

type AddWorker struct {
	repo  catalog.Repository
	audit audit.Recorder
}

func NewAddWorker(repo catalog.Repository, audit audit.Recorder) *AddWorker {
	return &AddWorker{repo: repo, audit: audit}
}

// Execute adds a worker profile without an account. Staff who need to
// log in join through a signup code instead.
func (uc *AddWorker) Execute(ctx context.Context, ownerID uint, in AddWorkerInput) (*models.Worker, error) {
	salon, err := ownedSalon(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "name is required.")
	}
	if in.Experience < 0 {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "experience cannot be negative.")
	}

	w := &models.Worker{
		Name:       name,
		Role:       strings.TrimSpace(in.Role),
		Phone:      strings.TrimSpace(in.Phone),
		Experience: in.Experience,
		Skills:     strings.TrimSpace(in.Skills),
		ImageURL:   strings.TrimSpace(in.ImageURL),
		SalonID:    salon.ID,
	}

	if err := uc.repo.CreateWorker(ctx, w); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &ownerID,
		Action:   audit.ActionWorkerAdded,
		Entity:   "worker",
		EntityID: &w.ID,
	})

	return w, nil
}
