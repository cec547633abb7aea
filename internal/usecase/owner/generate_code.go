package owner

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"github.com/BruksfildServices01/salongo/internal/audit"
	"github.com/BruksfildServices01/salongo/internal/domain/catalog"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/validators"
)

const (
	codeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	maxCodeAttempts = 10
)

var ErrCodeSpaceExhausted = errors.New("could not generate a unique signup code")

type GenerateSignupCode struct {
	repo     catalog.Repository
	audit    audit.Recorder
	generate func() (string, error)
}

func NewGenerateSignupCode(repo catalog.Repository, audit audit.Recorder) *GenerateSignupCode {
	return &GenerateSignupCode{repo: repo, audit: audit, generate: randomCode}
}

func (uc *GenerateSignupCode) Execute(ctx context.Context, ownerID uint) (*models.SignupCode, error) {
	salon, err := ownedSalon(ctx, uc.repo, ownerID)
	if err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := uc.generate()
		if err != nil {
			return nil, err
		}

		exists, err := uc.repo.SignupCodeExists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		sc := &models.SignupCode{Code: code, SalonID: salon.ID}
		if err := uc.repo.CreateSignupCode(ctx, sc); err != nil {
			// lost a race with another insert of the same code
			if httperr.IsUniqueViolation(err) {
				continue
			}
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			SalonID:  salon.ID,
			UserID:   &ownerID,
			Action:   audit.ActionSignupCodeCreated,
			Entity:   "signup_code",
			EntityID: &sc.ID,
		})

		return sc, nil
	}

	return nil, ErrCodeSpaceExhausted
}

func randomCode() (string, error) {
	limit := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, validators.SignupCodeLength)

	for i := range b {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("generate signup code: %w", err)
		}
		b[i] = codeAlphabet[n.Int64()]
	}
	return string(b), nil
}
