package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/models"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour, false)

	token, err := m.Issue(&models.User{ID: 42, Role: role.Worker, ProfileComplete: true})
	require.NoError(t, err)

	id, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 42, Role: role.Worker, ProfileComplete: true}, id)
}

func TestParseRejectsOtherSecret(t *testing.T) {
	token, err := NewManager("a", time.Hour, false).Issue(&models.User{ID: 1, Role: role.Customer})
	require.NoError(t, err)

	_, err = NewManager("b", time.Hour, false).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	m := NewManager("s", time.Minute, false)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }

	token, err := m.Issue(&models.User{ID: 1, Role: role.Customer})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestFromRequestPrefersCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "from-cookie"})
	req.Header.Set("Authorization", "Bearer from-header")

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	assert.Equal(t, "from-cookie", FromRequest(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer from-header")
	c.Request = req
	assert.Equal(t, "from-header", FromRequest(c))
}

func TestSetAndClearCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewManager("s", time.Hour, true)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	m.SetCookie(c, "tok")

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	m.ClearCookie(c)
	assert.Equal(t, -1, w.Result().Cookies()[0].MaxAge)
}
