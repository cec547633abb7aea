package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salongo/internal/audit"
	domain "github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/timezone"
)

const maxCommentLength = 500

type CreateReviewInput struct {
	UserID  uint
	SalonID uint
	Rating  int
	Comment string
}

type CreateReviewResult struct {
	Review      *models.Review `json:"review"`
	SalonRating float64        `json:"salon_rating"`
}

type CreateReview struct {
	repo     domain.Repository
	audit    audit.Recorder
	timezone string
	now      func() time.Time
}

func NewCreateReview(repo domain.Repository, audit audit.Recorder, tz string) *CreateReview {
	return &CreateReview{
		repo:     repo,
		audit:    audit,
		timezone: tz,
		now:      time.Now,
	}
}

// Execute stores the review and refreshes the salon's average rating.
func (uc *CreateReview) Execute(ctx context.Context, in CreateReviewInput) (*CreateReviewResult, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "rating must be between 1 and 5.")
	}

	comment := strings.TrimSpace(in.Comment)
	if len(comment) > maxCommentLength {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "comment is too long.")
	}

	if _, err := uc.repo.GetSalonDetails(ctx, in.SalonID); err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Salon not found.")
		}
		return nil, err
	}

	rv := &models.Review{
		Rating:  in.Rating,
		Comment: comment,
		Date:    timezone.Today(uc.timezone, uc.now()).Format(timezone.DateLayout),
		UserID:  in.UserID,
		SalonID: in.SalonID,
	}

	rating, err := uc.repo.CreateReview(ctx, rv)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  rv.SalonID,
		UserID:   audit.Ptr(in.UserID),
		Action:   audit.ActionReviewCreated,
		Entity:   "review",
		EntityID: audit.Ptr(rv.ID),
		Metadata: map[string]any{"rating": rv.Rating, "salon_rating": rating},
	})

	return &CreateReviewResult{Review: rv, SalonRating: rating}, nil
}
