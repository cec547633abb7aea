package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Business error codes surfaced to clients.
const (
	CodeInvalidCredentials     = "invalid_credentials"
	CodeSessionMismatch        = "session_mismatch"
	CodeIncorrectCode          = "incorrect_code"
	CodeValidation             = "validation_error"
	CodeDuplicateEmail         = "duplicate_email"
	CodeForbidden              = "forbidden"
	CodeNotFound               = "not_found"
	CodeNoLongerAvailable      = "no_longer_available"
	CodeInvalidSignupCode      = "invalid_signup_code"
	CodeInvalidState           = "invalid_state"
	CodeSalonAlreadyRegistered = "salon_already_registered"
	CodeProfileIncomplete      = "profile_incomplete"
	CodeUnauthenticated        = "unauthenticated"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessf attaches a human readable detail to a business code.
func ErrBusinessf(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsUniqueViolation reports a unique constraint failure from either the
// gorm error translator or the raw postgres driver error.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
