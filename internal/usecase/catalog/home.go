package catalog

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type Home struct {
	repo domain.Repository
}

func NewHome(repo domain.Repository) *Home {
	return &Home{repo: repo}
}

func (uc *Home) Execute(ctx context.Context, f domain.SalonFilter) (*dto.CustomerHomeDTO, error) {
	f.Location = strings.TrimSpace(f.Location)
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)

	salons, err := uc.repo.ListSalons(ctx, f)
	if err != nil {
		return nil, err
	}
	if salons == nil {
		salons = []models.Salon{}
	}

	cats, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CustomerHomeDTO{
		Salons:     salons,
		Categories: domain.OrderCategories(cats),
		Location:   f.Location,
		Query:      f.Query,
	}, nil
}

// ======================================================
// SALON DETAILS
// ======================================================

type SalonDetails struct {
	repo domain.Repository
}

func NewSalonDetails(repo domain.Repository) *SalonDetails {
	return &SalonDetails{repo: repo}
}

func (uc *SalonDetails) Execute(ctx context.Context, id uint) (*models.Salon, error) {
	s, err := uc.repo.GetSalonDetails(ctx, id)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeNotFound, "Salon not found.")
		}
		return nil, err
	}

	if s.Services == nil {
		s.Services = []models.Service{}
	}
	if s.Workers == nil {
		s.Workers = []models.Worker{}
	}
	if s.Reviews == nil {
		s.Reviews = []models.Review{}
	}
	return s, nil
}
