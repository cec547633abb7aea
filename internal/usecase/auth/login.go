package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
)

type Login struct {
	repo identity.Repository
}

func NewLogin(repo identity.Repository) *Login {
	return &Login{repo: repo}
}

// Execute accepts an email or a phone number as identifier. Every
// failure is reported as invalid_credentials.
func (uc *Login) Execute(
	ctx context.Context,
	identifier string,
	password string,
) (*models.User, error) {

	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	u, err := uc.repo.FindUserByEmail(ctx, identifier)
	if httperr.IsNotFound(err) {
		u, err = uc.repo.FindUserByPhone(ctx, identifier)
	}
	if err != nil {
		if httperr.IsNotFound(err) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidCredentials)
	}

	return u, nil
}
