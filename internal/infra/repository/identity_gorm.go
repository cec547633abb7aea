package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type IdentityGormRepository struct {
	db *gorm.DB
}

func NewIdentityGormRepository(db *gorm.DB) *IdentityGormRepository {
	return &IdentityGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *IdentityGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *IdentityGormRepository) FindUserByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(email)).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *IdentityGormRepository) FindUserByPhone(
	ctx context.Context,
	phone string,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		Order("id ASC").
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *IdentityGormRepository) EmailTakenByOther(
	ctx context.Context,
	email string,
	userID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("LOWER(email) = ? AND id <> ?", strings.ToLower(email), userID).
		Count(&count).Error

	return count > 0, err
}

// --------------------------------------------------
// Writes
// --------------------------------------------------

func (r *IdentityGormRepository) CreateUser(
	ctx context.Context,
	u *models.User,
) error {

	err := r.db.WithContext(ctx).Create(u).Error
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeDuplicateEmail)
	}
	return err
}

func (r *IdentityGormRepository) CreateUserWithCode(
	ctx context.Context,
	u *models.User,
	onboarding identity.WorkerOnboarding,
) (*models.Worker, error) {

	var w *models.Worker
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u.Role = role.Worker
		if err := tx.Create(u).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness(httperr.CodeDuplicateEmail)
			}
			return err
		}

		var err error
		w, err = onboardWorker(tx, u.ID, onboarding)
		return err
	})
	if err != nil {
		return nil, err
	}

	return w, nil
}

func (r *IdentityGormRepository) CompleteProfile(
	ctx context.Context,
	userID uint,
	p identity.ProfileUpdate,
	onboarding *identity.WorkerOnboarding,
) (*models.User, *models.Worker, error) {

	var u models.User
	var w *models.Worker
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND profile_complete = ?", userID, false).
			Updates(map[string]any{
				"name":             p.Name,
				"email":            p.Email,
				"gender":           p.Gender,
				"role":             p.Role,
				"profile_complete": true,
			})
		if res.Error != nil {
			if httperr.IsUniqueViolation(res.Error) {
				return httperr.ErrBusiness(httperr.CodeDuplicateEmail)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return profileNotPending(tx, userID)
		}

		if onboarding != nil {
			var err error
			if w, err = onboardWorker(tx, userID, *onboarding); err != nil {
				return err
			}
		}

		return tx.First(&u, userID).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &u, w, nil
}

// profileNotPending tells a missing user apart from one whose profile
// was already completed.
func profileNotPending(tx *gorm.DB, userID uint) error {
	var n int64
	if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return gorm.ErrRecordNotFound
	}
	return httperr.ErrBusinessf(httperr.CodeForbidden, "profile is already complete.")
}

// onboardWorker redeems the code for userID and creates the worker row in
// the code's salon. The redeem is a conditional update, so a code can be
// claimed by one user only.
func onboardWorker(tx *gorm.DB, userID uint, o identity.WorkerOnboarding) (*models.Worker, error) {
	var sc models.SignupCode
	if err := tx.Where("code = ?", strings.ToUpper(o.Code)).First(&sc).Error; err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSignupCode)
		}
		return nil, err
	}

	res := tx.Model(&models.SignupCode{}).
		Where("id = ? AND is_used = ?", sc.ID, false).
		Updates(map[string]any{
			"is_used":         true,
			"used_by_user_id": userID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSignupCode)
	}

	w := o.Worker
	w.ID = 0
	w.SalonID = sc.SalonID
	w.UserID = &userID

	if err := tx.Create(&w).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusinessf(httperr.CodeInvalidState, "user already has a worker profile")
		}
		return nil, err
	}

	return &w, nil
}

// Compile-time check
var _ identity.Repository = (*IdentityGormRepository)(nil)
