package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/httperr"
	"github.com/BruksfildServices01/salongo/internal/models"
	"github.com/BruksfildServices01/salongo/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(sessions *session.Manager, chain ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{Auth(sessions)}, chain...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": Identity(c).UserID})
	})
	r.GET("/x", handlers...)
	return r
}

func token(t *testing.T, m *session.Manager, id uint, r role.Role, complete bool) string {
	t.Helper()
	tok, err := m.Issue(&models.User{ID: id, Role: r, ProfileComplete: complete})
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, w *httptest.ResponseRecorder) httperr.HTTPError {
	t.Helper()
	var e httperr.HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func TestAuthMissingToken(t *testing.T) {
	m := session.NewManager("secret", time.Hour, false)
	w := httptest.NewRecorder()
	newEngine(m).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, httperr.CodeUnauthenticated, decode(t, w).Code)
}

func TestAuthCookieAndBearer(t *testing.T) {
	m := session.NewManager("secret", time.Hour, false)
	tok := token(t, m, 7, role.Customer, true)
	r := newEngine(m)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, session.NewManager("other", time.Hour, false), 7, role.Customer, true))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	m := session.NewManager("secret", time.Hour, false)
	r := newEngine(m, RequireRole(role.Owner))

	cases := []struct {
		role role.Role
		want int
	}{
		{role.Owner, http.StatusOK},
		{role.Worker, http.StatusForbidden},
		{role.Customer, http.StatusForbidden},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, m, 1, tc.role, true))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.want, w.Code, tc.role.String())
		if tc.want == http.StatusForbidden {
			e := decode(t, w)
			assert.Equal(t, httperr.CodeForbidden, e.Code)
			assert.Equal(t, "/", e.Redirect)
		}
	}
}

func TestRequireCompleteProfile(t *testing.T) {
	m := session.NewManager("secret", time.Hour, false)
	r := newEngine(m, RequireCompleteProfile())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, m, 1, role.Customer, false))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	e := decode(t, w)
	assert.Equal(t, httperr.CodeProfileIncomplete, e.Code)
	assert.Equal(t, "/create-profile", e.Redirect)
}

func TestRequestIDPropagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderXRequestID))
	assert.Equal(t, w.Header().Get(HeaderXRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderXRequestID, "abc")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc", w.Body.String())
}

func TestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	r := gin.New()
	r.Use(RequestID(), Logger(log), Recovery(log))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), `"level":"error"`)
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestIPRateLimiter(t *testing.T) {
	l := NewIPRateLimiter(2)

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("2.2.2.2"))

	r := gin.New()
	r.POST("/otp", NewIPRateLimiter(1).Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/otp", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/otp", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
