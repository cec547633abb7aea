package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/session"
	ucAuth "github.com/BruksfildServices01/salongo/internal/usecase/auth"
)

type AuthHandler struct {
	login      *ucAuth.Login
	signup     *ucAuth.Signup
	requestOTP *ucAuth.RequestOTP
	verifyOTP  *ucAuth.VerifyOTP
	sessions   *session.Manager
}

func NewAuthHandler(
	login *ucAuth.Login,
	signup *ucAuth.Signup,
	requestOTP *ucAuth.RequestOTP,
	verifyOTP *ucAuth.VerifyOTP,
	sessions *session.Manager,
) *AuthHandler {
	return &AuthHandler{
		login:      login,
		signup:     signup,
		requestOTP: requestOTP,
		verifyOTP:  verifyOTP,
		sessions:   sessions,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	// email or phone
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

type SignupRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"required,phone10"`
	Password   string `json:"password" binding:"required,min=6"`
	SignupCode string `json:"signup_code" binding:"omitempty,signupcode"`
}

type OTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type OTPResendRequest struct {
	VerificationID string `json:"verification_id"`
}

type OTPVerifyRequest struct {
	VerificationID string `json:"verification_id"`
	Phone          string `json:"phone" binding:"required"`
	Code           string `json:"code" binding:"required"`
}

// --------- Responses ---------

type SessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Next  string       `json:"next"`
}

// startSession issues the session token, sets the cookie and writes the body.
func startSession(c *gin.Context, sessions *session.Manager, status int, u *models.User, next string) {
	token, err := sessions.Issue(u)
	if err != nil {
		httperr.FromError(c, err)
		return
	}
	sessions.SetCookie(c, token)

	c.JSON(status, SessionResponse{Token: token, User: u, Next: next})
}

// verificationID prefers the body and falls back to the otp cookie.
func verificationID(c *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	v, _ := c.Cookie(session.OTPCookieName)
	return v
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeInvalidCredentials))
		return
	}

	u, err := h.login.Execute(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	startSession(c, h.sessions, http.StatusOK, u, ucAuth.NextFor(u))
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.signup.Execute(c.Request.Context(), ucAuth.SignupInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Password:   req.Password,
		SignupCode: req.SignupCode,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	startSession(c, h.sessions, http.StatusCreated, u, ucAuth.NextDashboard)
}

func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req OTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	ch, err := h.requestOTP.Execute(c.Request.Context(), req.Phone)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.sessions.SetOTPCookie(c, ch.VerificationID, time.Until(ch.ExpiresAt))
	httpresp.OK(c, ch)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req OTPResendRequest
	// body is optional; the otp cookie carries the id too
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	id := verificationID(c, req.VerificationID)
	if id == "" {
		httperr.FromError(c, httperr.ErrBusiness(httperr.CodeSessionMismatch))
		return
	}

	ch, err := h.requestOTP.Resend(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.sessions.SetOTPCookie(c, ch.VerificationID, time.Until(ch.ExpiresAt))
	httpresp.OK(c, ch)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.verifyOTP.Execute(c.Request.Context(), ucAuth.VerifyOTPInput{
		VerificationID: verificationID(c, req.VerificationID),
		Phone:          req.Phone,
		Code:           req.Code,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.sessions.ClearOTPCookie(c)

	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	startSession(c, h.sessions, status, res.User, res.Next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	h.sessions.ClearOTPCookie(c)
	httpresp.OK(c, gin.H{"ok": true})
}
