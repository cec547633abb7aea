package owner

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ServiceInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
	Category string  `json:"category"`
	ImageURL string  `json:"image_url"`
}

type RegisterSalonInput struct {
	OwnerID uint

	Name      string
	Location  string
	Phone     string
	OpenTime  string
	CloseTime string
	MapURL    string

	// first becomes the cover image, second the logo
	Photos   []*multipart.FileHeader
	Services []ServiceInput
}

// ParseServices decodes the services form field, a JSON array.
func ParseServices(raw string) ([]ServiceInput, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var out []ServiceInput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "services must be a JSON array.")
	}
	return out, nil
}

// ======================================================
// USE CASE
// ======================================================

type RegisterSalon struct {
	repo     catalog.Repository
	uploader media.Uploader
	audit    audit.Recorder
}

// NewRegisterSalon takes a nil uploader when photo storage is not configured.
func NewRegisterSalon(
	repo catalog.Repository,
	uploader media.Uploader,
	audit audit.Recorder,
) *RegisterSalon {
	return &RegisterSalon{
		repo:     repo,
		uploader: uploader,
		audit:    audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *RegisterSalon) Execute(
	ctx context.Context,
	in RegisterSalonInput,
) (*models.Salon, error) {

	// --------------------------------------------------
	// One salon per owner
	// --------------------------------------------------
	if _, err := uc.repo.GetSalonByOwner(ctx, in.OwnerID); err == nil {
		return nil, httperr.ErrBusiness(httperr.CodeSalonAlreadyRegistered)
	} else if !httperr.IsNotFound(err) {
		return nil, err
	}

	// --------------------------------------------------
	// Validation
	// --------------------------------------------------
	in.Name = strings.TrimSpace(in.Name)
	in.Location = strings.TrimSpace(in.Location)
	if in.Name == "" || in.Location == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "name and location are required.")
	}
	if err := validateClock(in.OpenTime, in.CloseTime); err != nil {
		return nil, err
	}

	services := make([]models.Service, 0, len(in.Services))
	for _, s := range in.Services {
		svc, err := newService(s)
		if err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	if len(in.Photos) > 0 && uc.uploader == nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "photo uploads are not enabled.")
	}

	// --------------------------------------------------
	// Photos
	// --------------------------------------------------
	urls := make([]string, 0, 2)
	for i, fh := range in.Photos {
		if i == 2 {
			break
		}
		url, err := uc.uploader.Upload(ctx, fmt.Sprintf("salons/owner-%d", in.OwnerID), fh)
		if err != nil {
			return nil, photoError(err)
		}
		urls = append(urls, url)
	}

	// --------------------------------------------------
	// Insert
	// --------------------------------------------------
	ownerID := in.OwnerID
	salon := &models.Salon{
		Name:      in.Name,
		Location:  in.Location,
		Phone:     strings.TrimSpace(in.Phone),
		OpenTime:  in.OpenTime,
		CloseTime: in.CloseTime,
		MapURL:    in.MapURL,
		IsOpen:    true,
		Rating:    4.5,
		OwnerID:   &ownerID,
	}
	if len(urls) > 0 {
		salon.ImageURL = urls[0]
	}
	if len(urls) > 1 {
		salon.LogoURL = urls[1]
	}

	if err := uc.repo.CreateSalonWithServices(ctx, salon, services); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &ownerID,
		Action:   audit.ActionSalonRegistered,
		Entity:   "salon",
		EntityID: &salon.ID,
		Metadata: map[string]any{"services": len(services)},
	})

	return salon, nil
}

// ======================================================
// HELPERS
// ======================================================

func newService(s ServiceInput) (models.Service, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		return models.Service{}, httperr.ErrBusinessf(httperr.CodeValidation, "service name is required.")
	}
	if s.Price <= 0 {
		return models.Service{}, httperr.ErrBusinessf(httperr.CodeValidation, fmt.Sprintf("price of %q must be greater than 0.", name))
	}

	duration := s.Duration
	if duration <= 0 {
		duration = 30
	}

	return models.Service{
		Name:     name,
		Price:    s.Price,
		Duration: duration,
		Category: strings.TrimSpace(s.Category),
		ImageURL: strings.TrimSpace(s.ImageURL),
	}, nil
}

func validateClock(values ...string) error {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := timezone.ParseClock(v); err != nil {
			return httperr.ErrBusinessf(httperr.CodeValidation, "times must be HH:MM.")
		}
	}
	return nil
}
