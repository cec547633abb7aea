package owner

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/models"
)

// UpdateSalonInput lists the only attributes an owner may change after
// registration. Nil fields are left as they are.
type UpdateSalonInput struct {
	LogoURL   *string
	MapURL    *string
	IsOpen    *bool
	OpenTime  *string
	CloseTime *string

	// replaces LogoURL when present
	Logo *multipart.FileHeader
}

type UpdateSalon struct {
	repo     catalog.Repository
	uploader media.Uploader
	audit    audit.Recorder
}

func NewUpdateSalon(repo catalog.Repository, uploader media.Uploader, audit audit.Recorder) *UpdateSalon {
	return &UpdateSalon{repo: repo, uploader: uploader, audit: audit}
}

func (uc *UpdateSalon) Execute(ctx context.Context, ownerID uint, in UpdateSalonInput) (*models.Salon, error) {
	salon, err := ownedSalon(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.LogoURL != nil {
		fields["logo_url"] = strings.TrimSpace(*in.LogoURL)
	}
	if in.MapURL != nil {
		fields["map_url"] = strings.TrimSpace(*in.MapURL)
	}
	if in.IsOpen != nil {
		fields["is_open"] = *in.IsOpen
	}
	if in.OpenTime != nil {
		if err := validateClock(*in.OpenTime); err != nil {
			return nil, err
		}
		fields["open_time"] = *in.OpenTime
	}
	if in.CloseTime != nil {
		if err := validateClock(*in.CloseTime); err != nil {
			return nil, err
		}
		fields["close_time"] = *in.CloseTime
	}

	if in.Logo != nil {
		if uc.uploader == nil {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "photo uploads are not enabled.")
		}
		url, err := uc.uploader.Upload(ctx, "salons/"+itoa(salon.ID), in.Logo)
		if err != nil {
			return nil, photoError(err)
		}
		fields["logo_url"] = url
	}

	updated, err := uc.repo.UpdateSalon(ctx, salon.ID, fields)
	if err != nil {
		return nil, err
	}

	if len(fields) > 0 {
		changed := make([]string, 0, len(fields))
		for k := range fields {
			changed = append(changed, k)
		}
		uc.audit.Dispatch(audit.Event{
			SalonID:  salon.ID,
			UserID:   &ownerID,
			Action:   audit.ActionSalonUpdated,
			Entity:   "salon",
			EntityID: &salon.ID,
			Metadata: map[string]any{"fields": changed},
		})
	}

	return updated, nil
}
