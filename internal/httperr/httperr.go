package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code     string `json:"error_code"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

// WriteRedirect is Write plus the view the client should fall back to.
func WriteRedirect(c *gin.Context, status int, code, message, redirect string) {
	c.AbortWithStatusJSON(status, HTTPError{
		Code:     code,
		Message:  message,
		Redirect: redirect,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

type mapping struct {
	status   int
	message  string
	redirect string
}

var codes = map[string]mapping{
	CodeInvalidCredentials:     {http.StatusUnauthorized, "Invalid credentials, please try again.", "/login"},
	CodeSessionMismatch:        {http.StatusBadRequest, "Session mismatch. Please try again.", "/"},
	CodeIncorrectCode:          {http.StatusBadRequest, "Incorrect OTP. Please try again.", "/verify-otp"},
	CodeValidation:             {http.StatusBadRequest, "Invalid or missing fields.", ""},
	CodeDuplicateEmail:         {http.StatusConflict, "That email is already in use.", ""},
	CodeForbidden:              {http.StatusForbidden, "Access denied.", "/"},
	CodeNotFound:               {http.StatusNotFound, "Not found.", "/"},
	CodeNoLongerAvailable:      {http.StatusConflict, "This booking is no longer available.", "/worker/dashboard"},
	CodeInvalidSignupCode:      {http.StatusBadRequest, "Invalid or used signup code.", ""},
	CodeInvalidState:           {http.StatusConflict, "Operation not allowed in the current state.", ""},
	CodeSalonAlreadyRegistered: {http.StatusForbidden, "You already own a salon.", "/owner/dashboard"},
	CodeProfileIncomplete:      {http.StatusForbidden, "Please complete your profile first.", "/create-profile"},
	CodeUnauthenticated:        {http.StatusUnauthorized, "Please log in.", "/login"},
}

// FromError converts a use case error into the response. Unknown errors
// become a 500 without leaking details.
func FromError(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		_ = c.Error(err)
		WriteRedirect(c, http.StatusInternalServerError, "internal_error", "Something went wrong.", "/")
		return
	}

	m, known := codes[be.Code]
	if !known {
		m = mapping{status: http.StatusBadRequest, message: be.Code}
	}

	message := m.message
	if be.Message != "" {
		message = be.Message
	}

	WriteRedirect(c, m.status, be.Code, message, m.redirect)
}

// StatusOf returns the HTTP status FromError would use.
func StatusOf(err error) int {
	be, ok := AsBusiness(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if m, known := codes[be.Code]; known {
		return m.status
	}
	return http.StatusBadRequest
}
