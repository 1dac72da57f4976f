package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"resto_pos_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProtectedRouter(roles ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/")
	group.Use(AuthMiddleware())
	if len(roles) > 0 {
		group.Use(RoleAuthMiddleware(roles...))
	}
	group.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.MustGet(ContextUserID),
			"username": c.MustGet(ContextUsername),
			"role":     c.MustGet(ContextUserRole),
		})
	})
	return engine
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	engine := setupProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	engine := setupProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	engine := setupProtectedRouter()

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	engine := setupProtectedRouter()

	token, err := utils.GenerateAccessToken(42, "alice", RoleStaff)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alice")
	assert.Contains(t, rec.Body.String(), RoleStaff)
}

func TestRoleAuthMiddleware_Forbidden(t *testing.T) {
	engine := setupProtectedRouter(RoleAdmin)

	token, err := utils.GenerateAccessToken(42, "alice", RoleStaff)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRoleAuthMiddleware_CaseInsensitive(t *testing.T) {
	engine := setupProtectedRouter(RoleAdmin)

	token, err := utils.GenerateAccessToken(42, "alice", "admin")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
