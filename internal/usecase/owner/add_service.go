package owner

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type AddService struct {
	repo  catalog.Repository
	audit audit.Recorder
}

func NewAddService(repo catalog.Repository, audit audit.Recorder) *AddService {
	return &AddService{repo: repo, audit: audit}
}

func (uc *AddService) Execute(ctx context.Context, ownerID uint, in ServiceInput) (*models.Service, error) {
	salon, err := ownedSalon(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, err
	}

	svc, err := newService(in)
	if err != nil {
		return nil, err
	}
	svc.SalonID = salon.ID

	if err := uc.repo.CreateService(ctx, &svc); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &ownerID,
		Action:   audit.ActionServiceAdded,
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: map[string]any{"name": svc.Name, "price": svc.Price},
	})

	return &svc, nil
}
