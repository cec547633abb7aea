package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/domain/identity"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/httpresp"
	"github.com/BruksfildServices01/salongo/internal/middleware"
	"github.com/BruksfildServices01/salongo/internal/session"
	ucAuth "github.com/BruksfildServices01/salongo/internal/usecase/auth"
	ucDashboard "github.com/BruksfildServices01/salongo/internal/usecase/dashboard"
)

type MeHandler struct {
	users           identity.Repository
	completeProfile *ucAuth.CompleteProfile
	dashboard       *ucDashboard.Router
	sessions        *session.Manager
}

func NewMeHandler(
	users identity.Repository,
	completeProfile *ucAuth.CompleteProfile,
	dashboard *ucDashboard.Router,
	sessions *session.Manager,
) *MeHandler {
	return &MeHandler{
		users:           users,
		completeProfile: completeProfile,
		dashboard:       dashboard,
		sessions:        sessions,
	}
}

type CompleteProfileRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	Email      string `json:"email" binding:"required,email"`
	Role       string `json:"role" binding:"required,oneof=customer worker salon_owner"`
	Gender     string `json:"gender" binding:"max=20"`
	SignupCode string `json:"signup_code" binding:"omitempty,signupcode"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id := middleware.Identity(c)

	u, err := h.users.GetUser(c.Request.Context(), id.UserID)
	if err != nil {
		if httperr.IsNotFound(err) {
			// account removed after the token was issued
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeUnauthenticated))
			return
		}
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"user": u,
		"next": ucAuth.NextFor(u),
	})
}

// CompleteProfile finishes an OTP signup and re-issues the session so the
// new role takes effect immediately.
func (h *MeHandler) CompleteProfile(c *gin.Context) {
	id := middleware.Identity(c)

	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	res, err := h.completeProfile.Execute(c.Request.Context(), id.UserID, ucAuth.CompleteProfileInput{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Gender:     req.Gender,
		SignupCode: req.SignupCode,
	})
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	startSession(c, h.sessions, http.StatusOK, res.User, res.Next)
}

func (h *MeHandler) Dashboard(c *gin.Context) {
	id := middleware.Identity(c)

	out, err := h.dashboard.Execute(c.Request.Context(), id.UserID, id.Role)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, out)
}
