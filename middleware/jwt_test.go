package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"donation/auth"
	"donation/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noAdmins struct{}

func (noAdmins) FindAdminByUsername(ctx context.Context, username string) (*models.Admin, error) {
	return nil, nil
}

func newTestRouter(tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(auth.NewGate(noAdmins{}, tokens)))
	router.POST("/protected", func(c *gin.Context) {
		claims := GetCurrentAdmin(c)
		c.String(200, "id:%d user:%s", GetCurrentAdminID(c), claims.Username)
	})
	return router
}

func doProtected(router *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["error"]
}

func TestJWTAuth(t *testing.T) {
	tokens := auth.NewTokenManager("test-jwt-secret-key", time.Hour)
	router := newTestRouter(tokens)

	// 无 token
	w := doProtected(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorOf(t, w))

	// 非 Bearer
	w = doProtected(router, "Basic xyz")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorOf(t, w))

	// 仅 Bearer 无 token
	w = doProtected(router, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", errorOf(t, w))

	// 无效 token
	w = doProtected(router, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorOf(t, w))

	// 有效 token
	token, err := tokens.Generate(42, "admin")
	require.NoError(t, err)
	w = doProtected(router, "Bearer "+token)
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "id:42 user:admin", w.Body.String())
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	old := auth.NewTokenManager("test-jwt-secret-key", time.Millisecond)
	token, err := old.Generate(1, "admin")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	router := newTestRouter(auth.NewTokenManager("test-jwt-secret-key", time.Hour))
	w := doProtected(router, "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token", errorOf(t, w))
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken("Token abc"))
	assert.Equal(t, "", bearerToken(""))
}

func TestGetCurrentAdminID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, uint(0), GetCurrentAdminID(c))
	assert.Nil(t, GetCurrentAdmin(c))

	c.Set("adminID", uint(99))
	assert.Equal(t, uint(99), GetCurrentAdminID(c))
}
