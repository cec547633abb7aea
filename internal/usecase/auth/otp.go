package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/metrics"
	"github.com/BruksfildServices01/salongo/internal/otp"
	"github.com/BruksfildServices01/salongo/internal/validators"
)

// Challenge is what the client needs to finish an OTP login.
type Challenge struct {
	VerificationID string    `json:"verification_id"`
	Phone          string    `json:"phone"`
	ExpiresAt      time.Time `json:"expires_at"`

	// only filled when codes are logged instead of sent
	DemoCode string `json:"demo_code,omitempty"`
}

type RequestOTP struct {
	store   otp.Store
	sender  otp.Sender
	metrics *metrics.Metrics
	ttl     time.Duration
	demo    bool
	now     func() time.Time
}

func NewRequestOTP(
	store otp.Store,
	sender otp.Sender,
	m *metrics.Metrics,
	ttl time.Duration,
	demo bool,
) *RequestOTP {
	return &RequestOTP{
		store:   store,
		sender:  sender,
		metrics: m,
		ttl:     ttl,
		demo:    demo,
		now:     time.Now,
	}
}

// Execute always issues a fresh code, whether or not the phone already
// has an account.
func (uc *RequestOTP) Execute(ctx context.Context, phone string) (*Challenge, error) {
	if !validators.IsPhone10(phone) {
		return nil, httperr.ErrBusinessf(httperr.CodeValidation, "phone must be exactly 10 digits.")
	}
	return uc.issue(ctx, uuid.NewString(), phone)
}

// Resend replaces the code of an existing verification and restarts its
// TTL and attempt count.
func (uc *RequestOTP) Resend(ctx context.Context, verificationID string) (*Challenge, error) {
	p, err := uc.store.Get(ctx, verificationID)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeSessionMismatch)
		}
		return nil, err
	}
	return uc.issue(ctx, p.ID, p.Phone)
}

func (uc *RequestOTP) issue(ctx context.Context, id, phone string) (*Challenge, error) {
	code, err := otp.GenerateCode()
	if err != nil {
		return nil, err
	}

	p := otp.Pending{
		ID:        id,
		Phone:     phone,
		Code:      code,
		ExpiresAt: uc.now().Add(uc.ttl),
	}

	if err := uc.store.Save(ctx, p, uc.ttl); err != nil {
		return nil, fmt.Errorf("save pending otp: %w", err)
	}

	if err := uc.sender.Send(ctx, phone, code); err != nil {
		return nil, err
	}
	uc.metrics.OTPIssued(uc.sender.Name())

	ch := &Challenge{VerificationID: id, Phone: phone, ExpiresAt: p.ExpiresAt}
	if uc.demo {
		ch.DemoCode = code
	}
	return ch, nil
}
