package auth

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SignupInput struct {
	Name     string
	Email    string
	Phone    string
	Password string

	// optional; turns the account into a worker of the issuing salon
	SignupCode string
}

// ======================================================
// USE CASE
// ======================================================

type Signup struct {
	repo  identity.Repository
	audit audit.Recorder
}

func NewSignup(repo identity.Repository, audit audit.Recorder) *Signup {
	return &Signup{repo: repo, audit: audit}
}

func (uc *Signup) Execute(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.SignupCode = strings.ToUpper(strings.TrimSpace(in.SignupCode))

	if in.Name == "" || in.Email == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "name and email are required.")
	}

	if _, err := uc.repo.FindUserByEmail(ctx, in.Email); err == nil {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicateEmail)
	} else if !httperr.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &models.User{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		PasswordHash:    string(hash),
		Role:            role.Customer,
		ProfileComplete: true,
	}

	if in.SignupCode == "" {
		if err := uc.repo.CreateUser(ctx, u); err != nil {
			return nil, err
		}
		return u, nil
	}

	w, err := uc.repo.CreateUserWithCode(ctx, u, identity.WorkerOnboarding{
		Code:   in.SignupCode,
		Worker: models.Worker{Name: u.Name, Phone: u.Phone, Role: "Stylist"},
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  w.SalonID,
		UserID:   &u.ID,
		Action:   audit.ActionSignupCodeUsed,
		Entity:   "worker",
		EntityID: &w.ID,
		Metadata: map[string]any{"code": in.SignupCode},
	})

	return u, nil
}
