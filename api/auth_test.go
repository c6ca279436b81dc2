package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"donation/auth"
	"donation/store"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*store.GormStore, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return store.NewGormStore(gormDB), mock, func() {
		sqlDB.Close()
	}
}

func newLoginRouter(s *store.GormStore, tokens *auth.TokenManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/login", NewAuthHandler(auth.NewGate(s, tokens)).Login)
	return router
}

func TestAuthHandler_Login(t *testing.T) {
	s, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `admins` WHERE username = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"}).
			AddRow(1, "admin", hashed, now, now))

	tokens := auth.NewTokenManager("test-secret", 0)
	router := newLoginRouter(s, tokens)

	body := `{"username":"admin","password":"admin123"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 200, w.Code)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)

	claims, err := tokens.Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.AdminID)
	assert.Equal(t, "admin", claims.Username)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	s, mock, cleanup := setupMockDB(t)
	defer cleanup()

	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "created_at", "updated_at"}).
			AddRow(1, "admin", hashed, now, now))

	router := newLoginRouter(s, auth.NewTokenManager("test-secret", 0))

	body := `{"username":"admin","password":"wrong"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid credentials", resp["error"])
	assert.NotContains(t, resp, "token")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	s, mock, cleanup := setupMockDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT \\* FROM `admins`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password"}))

	router := newLoginRouter(s, auth.NewTokenManager("test-secret", 0))

	body := `{"username":"ghost","password":"whatever"}`
	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 401, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandler_Login_BadRequest(t *testing.T) {
	s, _, cleanup := setupMockDB(t)
	defer cleanup()

	router := newLoginRouter(s, auth.NewTokenManager("test-secret", 0))

	req := httptest.NewRequest("POST", "/login", bytes.NewBufferString(`{"username":"admin"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 400, w.Code)
}
