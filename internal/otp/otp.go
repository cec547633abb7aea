// Package otp issues one-time phone codes and keeps the pending
// verification state between request and verify.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	CodeLength = 6
	// MaxAttempts wrong codes clear a pending verification.
	MaxAttempts = 5
)

var ErrNotFound = errors.New("otp: pending verification not found")

// Pending is the state between an OTP request and its verification.
type Pending struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Attempts  int       `json:"attempts"`
}

func (p Pending) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// Store holds pending verifications until they expire.
type Store interface {
	Save(ctx context.Context, p Pending, ttl time.Duration) error
	Get(ctx context.Context, id string) (Pending, error)
	// Take returns and removes the entry in one step. Only one caller
	// can take a given id.
	Take(ctx context.Context, id string) (Pending, error)
	// RecordFailure counts a wrong code against id and returns how many
	// tries are left. The entry is removed when none are.
	RecordFailure(ctx context.Context, id string, limit int) (int, error)
}

// Sender delivers a code to a phone.
type Sender interface {
	Name() string
	Send(ctx context.Context, phone, code string) error
}

var codeMax = big.NewInt(900000)

// GenerateCode returns a uniformly random 6 digit code without a leading zero.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeMax)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
