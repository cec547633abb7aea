package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/session"
)

const ContextIdentity = "identity"

// Auth resolves the session token into a session.Identity for the request.
func Auth(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := session.FromRequest(c)
		if raw == "" {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeUnauthenticated))
			return
		}

		id, err := sessions.Parse(raw)
		if err != nil {
			httperr.FromError(c, httperr.ErrBusinessf(httperr.CodeUnauthenticated, "Your session has expired. Please log in again."))
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

// Identity returns the caller set by Auth. Only valid behind Auth.
func Identity(c *gin.Context) session.Identity {
	return c.MustGet(ContextIdentity).(session.Identity)
}

// RequireRole admits only callers whose role is exactly r.
func RequireRole(r role.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if Identity(c).Role != r {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeForbidden))
			return
		}
		c.Next()
	}
}

// RequireCompleteProfile keeps OTP users out until they finish signup.
func RequireCompleteProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Identity(c).ProfileComplete {
			httperr.FromError(c, httperr.ErrBusiness(httperr.CodeProfileIncomplete))
			return
		}
		c.Next()
	}
}
