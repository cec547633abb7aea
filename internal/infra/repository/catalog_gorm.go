package repository

import (
	"context"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *CatalogGormRepository) ListSalons(
	ctx context.Context,
	f catalog.SalonFilter,
) ([]models.Salon, error) {

	q := r.db.WithContext(ctx).Model(&models.Salon{})

	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(loc)+"%")
	}

	if term := strings.TrimSpace(f.Query); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR id IN (?)",
			like,
			r.db.Model(&models.Service{}).
				Select("salon_id").
				Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", like, like),
		)
	}

	if cat := strings.TrimSpace(f.Category); cat != "" {
		q = q.Where(
			"id IN (?)",
			r.db.Model(&models.Service{}).
				Select("salon_id").
				Where("LOWER(category) = ?", strings.ToLower(cat)),
		)
	}

	var salons []models.Salon
	err := q.Preload("Services").
		Order("rating DESC, id ASC").
		Find(&salons).Error

	return salons, err
}

func (r *CatalogGormRepository) GetSalonDetails(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var s models.Salon
	err := r.db.WithContext(ctx).
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("category ASC, name ASC") }).
		Preload("Workers", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC, id DESC") }).
		First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) GetSalonByOwner(
	ctx context.Context,
	ownerID uint,
) (*models.Salon, error) {

	var s models.Salon
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) CreateSalonWithServices(
	ctx context.Context,
	s *models.Salon,
	services []models.Service,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Services", "Workers", "Reviews").Create(s).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeSalonAlreadyRegistered)
			}
			return err
		}

		if len(services) == 0 {
			return nil
		}

		for i := range services {
			services[i].SalonID = s.ID
		}
		if err := tx.Create(&services).Error; err != nil {
			return err
		}

		s.Services = services
		return nil
	})
}

func (r *CatalogGormRepository) UpdateSalon(
	ctx context.Context,
	salonID uint,
	fields map[string]any,
) (*models.Salon, error) {

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Salon{}).
			Where("id = ?", salonID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var s models.Salon
	if err := r.db.WithContext(ctx).First(&s, salonID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Distinct("category").
		Where("category <> ''").
		Pluck("category", &cats).Error

	return cats, err
}

// --------------------------------------------------
// Service / Worker
// --------------------------------------------------

func (r *CatalogGormRepository) CreateService(
	ctx context.Context,
	s *models.Service,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) CreateWorker(
	ctx context.Context,
	w *models.Worker,
) error {
	return r.db.WithContext(ctx).Create(w).Error
}

func (r *CatalogGormRepository) ListWorkers(
	ctx context.Context,
	salonID uint,
) ([]models.Worker, error) {

	var list []models.Worker
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("name ASC").
		Find(&list).Error

	return list, err
}

func (r *CatalogGormRepository) UpdateWorker(
	ctx context.Context,
	workerID uint,
	fields map[string]any,
) (*models.Worker, error) {

	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Worker{}).
			Where("id = ?", workerID).
			Updates(fields).Error; err != nil {
			return nil, err
		}
	}

	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, workerID).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// --------------------------------------------------
// Signup codes
// --------------------------------------------------

func (r *CatalogGormRepository) SignupCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.SignupCode{}).
		Where("code = ?", code).
		Count(&count).Error

	return count > 0, err
}

func (r *CatalogGormRepository) CreateSignupCode(
	ctx context.Context,
	sc *models.SignupCode,
) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *CatalogGormRepository) ListUnusedSignupCodes(
	ctx context.Context,
	salonID uint,
) ([]models.SignupCode, error) {

	var list []models.SignupCode
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND is_used = ?", salonID, false).
		Order("created_at DESC, id DESC").
		Find(&list).Error

	return list, err
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *CatalogGormRepository) CreateReview(
	ctx context.Context,
	rv *models.Review,
) (float64, error) {

	var rating float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rv).Error; err != nil {
			return err
		}

		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("salon_id = ?", rv.SalonID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&avg).Error; err != nil {
			return err
		}

		rating = math.Round(avg*10) / 10

		return tx.Model(&models.Salon{}).
			Where("id = ?", rv.SalonID).
			Update("rating", rating).Error
	})

	return rating, err
}

// Compile-time check
var _ catalog.Repository = (*CatalogGormRepository)(nil)
