package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"citycare/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, isAdmin bool) string {
	t.Helper()

	now := time.Now().UTC()
	claims := auth.Claims{
		UserID:  uuid.New().String(),
		Email:   "jane@example.com",
		Name:    "Jane Doe",
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "jane@example.com",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(30 * time.Minute)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func protectedRouter(handler gin.HandlerFunc, mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.GET("/protected", mw, handler)
	return r
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	r := protectedRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, RequireAuth(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthRejectsGarbageToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	r := protectedRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, RequireAuth(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuthSetsIdentity(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")

	var gotEmail, gotName string
	var gotAdmin bool
	handler := func(c *gin.Context) {
		gotEmail = c.GetString("user_email")
		gotName = c.GetString("user_name")
		gotAdmin = c.GetBool("is_admin")
		c.Status(http.StatusOK)
	}
	r := protectedRouter(handler, RequireAuth(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "middleware-test-secret", false))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jane@example.com", gotEmail)
	assert.Equal(t, "Jane Doe", gotName)
	assert.False(t, gotAdmin)
}

func TestRequireAuthRejectsForeignSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	r := protectedRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, RequireAuth(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "some-other-secret", false))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminForbidsCitizenToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	r := protectedRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, RequireAdmin(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "middleware-test-secret", false))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAcceptsAdminToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	r := protectedRouter(func(c *gin.Context) { c.Status(http.StatusOK) }, RequireAdmin(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "middleware-test-secret", true))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminAcceptsStaticKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "middleware-test-secret")
	t.Setenv("ADMIN_API_KEYS", "ops-key-1, ops-key-2")

	var gotName string
	handler := func(c *gin.Context) {
		gotName = c.GetString("user_name")
		c.Status(http.StatusOK)
	}
	r := protectedRouter(handler, RequireAdmin(auth.NewService(nil)))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer ops-key-2")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Admin API", gotName)
}
