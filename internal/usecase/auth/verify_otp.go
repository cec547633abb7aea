package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/otp"
)

const (
	NextCreateProfile   = "create_profile"
	NextDashboard       = "dashboard"
	NextOwnerOnboarding = "owner_onboarding"
)

type VerifyOTPInput struct {
	VerificationID string
	Phone          string
	Code           string
}

type VerifyOTPResult struct {
	User    *models.User
	Created bool
	Next    string
}

type VerifyOTP struct {
	repo    identity.Repository
	store   otp.Store
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewVerifyOTP(repo identity.Repository, store otp.Store, m *metrics.Metrics) *VerifyOTP {
	return &VerifyOTP{repo: repo, store: store, metrics: m, now: time.Now}
}

// Execute checks the code against the pending verification. A wrong
// code keeps the verification for a retry until otp.MaxAttempts wrong
// codes clear it; a correct one consumes it before any user row is read
// or written.
func (uc *VerifyOTP) Execute(ctx context.Context, in VerifyOTPInput) (*VerifyOTPResult, error) {
	p, err := uc.pending(ctx, in)
	if err != nil {
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(p.Code), []byte(in.Code)) != 1 {
		return nil, uc.wrongCode(ctx, p.ID)
	}

	taken, err := uc.store.Take(ctx, p.ID)
	if err != nil {
		uc.metrics.OTPVerification("mismatch")
		if errors.Is(err, otp.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSessionMismatch)
		}
		return nil, err
	}
	// a resend between Get and Take replaced the code
	if taken.Code != p.Code {
		uc.metrics.OTPVerification("mismatch")
		return nil, httperr.ErrBusiness(httperr.CodeSessionMismatch)
	}

	uc.metrics.OTPVerification("ok")

	u, err := uc.repo.FindUserByPhone(ctx, p.Phone)
	if err == nil {
		return &VerifyOTPResult{User: u, Next: NextFor(u)}, nil
	}
	if !httperr.IsNotFound(err) {
		return nil, err
	}

	u, err = uc.createUser(ctx, p.Phone, in.Code)
	if err != nil {
		return nil, err
	}

	return &VerifyOTPResult{User: u, Created: true, Next: NextCreateProfile}, nil
}

func (uc *VerifyOTP) wrongCode(ctx context.Context, id string) error {
	left, err := uc.store.RecordFailure(ctx, id, otp.MaxAttempts)
	if err != nil && !errors.Is(err, otp.ErrNotFound) {
		return err
	}

	if left == 0 {
		uc.metrics.OTPVerification("exhausted")
	} else {
		uc.metrics.OTPVerification("incorrect")
	}
	return httperr.ErrBusiness(httperr.CodeIncorrectCode)
}

func (uc *VerifyOTP) pending(ctx context.Context, in VerifyOTPInput) (otp.Pending, error) {
	if in.VerificationID == "" {
		return otp.Pending{}, httperr.ErrBusiness(httperr.CodeSessionMismatch)
	}

	p, err := uc.store.Get(ctx, in.VerificationID)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			uc.metrics.OTPVerification("mismatch")
			return otp.Pending{}, httperr.ErrBusiness(httperr.CodeSessionMismatch)
		}
		return otp.Pending{}, err
	}

	if p.Expired(uc.now()) || p.Phone != in.Phone {
		uc.metrics.OTPVerification("mismatch")
		return otp.Pending{}, httperr.ErrBusiness(httperr.CodeSessionMismatch)
	}

	return p, nil
}

func (uc *VerifyOTP) createUser(ctx context.Context, phone, code string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash otp: %w", err)
	}

	u := &models.User{
		Name:         "User " + phone[len(phone)-4:],
		Email:        phone + "@salongo.app",
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role.Customer,
	}

	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// NextFor is the view a freshly signed-in user should land on.
func NextFor(u *models.User) string {
	if !u.ProfileComplete {
		return NextCreateProfile
	}
	return NextDashboard
}
