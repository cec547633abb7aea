package worker

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/validators"
)

type UpdateProfileInput struct {
	Role       *string // specialization label
	Phone      *string
	ImageURL   *string
	Experience *int
	Skills     *string
}

type UpdateProfile struct {
	bookings booking.Repository
	catalog  catalog.Repository
}

func NewUpdateProfile(bookings booking.Repository, catalog catalog.Repository) *UpdateProfile {
	return &UpdateProfile{bookings: bookings, catalog: catalog}
}

func (uc *UpdateProfile) Execute(ctx context.Context, userID uint, in UpdateProfileInput) (*models.Worker, error) {
	w, err := workerForUser(ctx, uc.bookings, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}

	if in.Role != nil {
		fields["role"] = strings.TrimSpace(*in.Role)
	}
	if in.Phone != nil {
		phone := strings.TrimSpace(*in.Phone)
		if phone != "" && !validators.IsPhone10(phone) {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "phone must be exactly 10 digits.")
		}
		fields["phone"] = phone
	}
	if in.ImageURL != nil {
		fields["image_url"] = strings.TrimSpace(*in.ImageURL)
	}
	if in.Experience != nil {
		if *in.Experience < 0 {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "experience cannot be negative.")
		}
		fields["experience"] = *in.Experience
	}
	if in.Skills != nil {
		fields["skills"] = strings.TrimSpace(*in.Skills)
	}

	return uc.catalog.UpdateWorker(ctx, w.ID, fields)
}

// ======================================================
// PHOTO
// ======================================================

type UploadPhoto struct {
	bookings booking.Repository
	catalog  catalog.Repository
	uploader media.Uploader
}

// NewUploadPhoto takes a nil uploader when photo storage is not configured.
func NewUploadPhoto(bookings booking.Repository, catalog catalog.Repository, uploader media.Uploader) *UploadPhoto {
	return &UploadPhoto{bookings: bookings, catalog: catalog, uploader: uploader}
}

func (uc *UploadPhoto) Execute(ctx context.Context, userID uint, fh *multipart.FileHeader) (*models.Worker, error) {
	if uc.uploader == nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "photo uploads are not enabled.")
	}
	if fh == nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "photo is required.")
	}

	w, err := workerForUser(ctx, uc.bookings, userID)
	if err != nil {
		return nil, err
	}

	url, err := uc.uploader.Upload(ctx, "workers/"+strconv.FormatUint(uint64(w.ID), 10), fh)
	if err != nil {
		if errors.Is(err, media.ErrUnsupportedImage) {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "photo must be a JPEG, PNG or WebP image.")
		}
		return nil, err
	}

	return uc.catalog.UpdateWorker(ctx, w.ID, map[string]any{"image_url": url})
}
