package owner

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/booking"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/dto"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type Dashboard struct {
	catalog  catalog.Repository
	bookings booking.Repository
}

func NewDashboard(catalog catalog.Repository, bookings booking.Repository) *Dashboard {
	return &Dashboard{catalog: catalog, bookings: bookings}
}

func (uc *Dashboard) Execute(ctx context.Context, ownerID uint) (*dto.OwnerDashboardDTO, error) {
	salon, err := ownedSalon(ctx, uc.catalog, ownerID)
	if err != nil {
		return nil, err
	}

	list, err := uc.bookings.ListBookingsForSalon(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	codes, err := uc.catalog.ListUnusedSignupCodes(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	workers, err := uc.catalog.ListWorkers(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	return &dto.OwnerDashboardDTO{
		Salon:       *salon,
		Bookings:    dto.BookingsFromModels(list),
		Earnings:    Earnings(list),
		SignupCodes: nonNil(codes),
		Workers:     nonNil(workers),
	}, nil
}

// Earnings sums service prices over accepted and completed bookings.
// Bookings need their Service preloaded.
func Earnings(list []models.Booking) float64 {
	var total float64
	for _, b := range list {
		if b.Service == nil || !booking.CountsAsEarning(booking.Status(b.Status)) {
			continue
		}
		total += b.Service.Price
	}
	return total
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ======================================================
// AUDIT LOGS
// ======================================================

type ListAuditLogs struct {
	repo   catalog.Repository
	logger *audit.Logger
}

func NewListAuditLogs(repo catalog.Repository, logger *audit.Logger) *ListAuditLogs {
	return &ListAuditLogs{repo: repo, logger: logger}
}

func (uc *ListAuditLogs) Execute(ctx context.Context, ownerID uint, f audit.Filter) (*audit.Page, error) {
	salon, err := ownedSalon(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, err
	}
	return uc.logger.List(ctx, salon.ID, f)
}
