package owner

import (
	"context"
	"errors"
	"strconv"

	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/media"
	"github.com/BruksfildServices01/salongo/internal/models"
)

func photoError(err error) error {
	if errors.Is(err, media.ErrUnsupportedImage) {
		return httperr.ErrBusinessf(httperr.CodeValidation, "photos must be JPEG, PNG or WebP images.")
	}
	return err
}

// ownedSalon resolves the caller's salon or not_found.
func ownedSalon(ctx context.Context, repo catalog.Repository, ownerID uint) (*models.Salon, error) {
	s, err := repo.GetSalonByOwner(ctx, ownerID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Register your salon first.")
		}
		return nil, err
	}
	return s, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
