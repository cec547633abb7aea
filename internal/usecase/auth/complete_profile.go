package auth

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type CompleteProfileInput struct {
	Name       string
	Email      string
	Role       string
	Gender     string
	SignupCode string
}

type CompleteProfileResult struct {
	User *models.User
	Next string
}

type CompleteProfile struct {
	repo  identity.Repository
	audit audit.Recorder
}

func NewCompleteProfile(repo identity.Repository, audit audit.Recorder) *CompleteProfile {
	return &CompleteProfile{repo: repo, audit: audit}
}

func (uc *CompleteProfile) Execute(
	ctx context.Context,
	userID uint,
	in CompleteProfileInput,
) (*CompleteProfileResult, error) {

	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	code := strings.ToUpper(strings.TrimSpace(in.SignupCode))

	if name == "" || email == "" {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "name and email are required.")
	}

	r, err := role.Parse(strings.TrimSpace(in.Role))
	if err != nil {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "role must be customer, worker or salon_owner.")
	}

	current, err := uc.repo.GetUser(ctx, userID)
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}
	// first-time step only; the role is fixed from here on
	if current.ProfileComplete {
		return nil, httperr.ErrBusinessf(httperr.CodeForbidden, "profile is already complete.")
	}

	taken, err := uc.repo.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrBusiness(httperr.CodeDuplicateEmail)
	}

	var onboarding *identity.WorkerOnboarding
	if r == role.Worker {
		if code == "" {
			return nil, httperr.ErrBusinessf(httperr.CodeValidation, "a signup code from your salon is required.")
		}
		onboarding = &identity.WorkerOnboarding{
			Code:   code,
			Worker: models.Worker{Name: name, Phone: current.Phone, Role: "Stylist"},
		}
	}

	u, w, err := uc.repo.CompleteProfile(ctx, userID, identity.ProfileUpdate{
		Name:   name,
		Email:  email,
		Gender: strings.TrimSpace(in.Gender),
		Role:   r,
	}, onboarding)
	if err != nil {
		return nil, err
	}

	if w != nil {
		uc.audit.Dispatch(audit.Event{
			SalonID:  w.SalonID,
			UserID:   &u.ID,
			Action:   audit.ActionSignupCodeUsed,
			Entity:   "worker",
			EntityID: &w.ID,
			Metadata: map[string]any{"code": code},
		})
	}

	next := NextDashboard
	if r == role.Owner {
		next = NextOwnerOnboarding
	}

	return &CompleteProfileResult{User: u, Next: next}, nil
}
