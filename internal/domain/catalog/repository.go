package catalog

import (
	"context"

	"github.com/BruksfildServices01/salongo/internal/models"
)

type SalonFilter struct {
	Location string
	Query    string
	Category string
}

type Repository interface {
	// -------- Salon --------
	ListSalons(ctx context.Context, f SalonFilter) ([]models.Salon, error)
	GetSalonDetails(ctx context.Context, id uint) (*models.Salon, error)
	GetSalonByOwner(ctx context.Context, ownerID uint) (*models.Salon, error)
	CreateSalonWithServices(ctx context.Context, s *models.Salon, services []models.Service) error
	UpdateSalon(ctx context.Context, salonID uint, fields map[string]any) (*models.Salon, error)
	Categories(ctx context.Context) ([]string, error)

	// -------- Service / Worker --------
	CreateService(ctx context.Context, s *models.Service) error
	CreateWorker(ctx context.Context, w *models.Worker) error
	ListWorkers(ctx context.Context, salonID uint) ([]models.Worker, error)
	UpdateWorker(ctx context.Context, workerID uint, fields map[string]any) (*models.Worker, error)

	// -------- Signup codes --------
	SignupCodeExists(ctx context.Context, code string) (bool, error)
	CreateSignupCode(ctx context.Context, sc *models.SignupCode) error
	ListUnusedSignupCodes(ctx context.Context, salonID uint) ([]models.SignupCode, error)

	// -------- Reviews --------
	// CreateReview stores r and returns the salon's recomputed rating.
	CreateReview(ctx context.Context, r *models.Review) (float64, error)
}
