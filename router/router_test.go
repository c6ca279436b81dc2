package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"donation/auth"
	"donation/config"
	"donation/models"
	"donation/store/storetest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: "router-secret", ExpireTime: 24 * time.Hour},
		Ledger:    config.LedgerConfig{Name: "Donation Transparency", Currency: "USD"},
		RateLimit: config.RateLimitConfig{LoginMaxAttempts: 3, LoginWindowSeconds: 60},
	}
}

func newTestRouter(t *testing.T) (*gin.Engine, *storetest.Store) {
	t.Helper()
	s := storetest.New()
	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	require.NoError(t, s.CreateAdmin(context.Background(), &models.Admin{Username: "admin", Password: hashed}))
	return SetupRouter(testConfig(), s), s
}

func send(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := send(r, "POST", "/api/login", `{"username":"admin","password":"admin123"}`, "")
	require.Equal(t, 200, w.Code, w.Body.String())
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp["token"]
}

func TestSetupRouter_Scenario(t *testing.T) {
	r, _ := newTestRouter(t)
	token := login(t, r)

	w := send(r, "POST", "/api/categories", `{"name":"Relief"}`, token)
	require.Equal(t, 200, w.Code, w.Body.String())
	w = send(r, "POST", "/api/projects", `{"name":"Flood Relief","category_id":1,"description":".."}`, token)
	require.Equal(t, 200, w.Code, w.Body.String())
	w = send(r, "POST", "/api/incomes", `{"receipt_number":"R-001","amount":500,"project_id":1,"date":"2024-01-01"}`, token)
	require.Equal(t, 200, w.Code, w.Body.String())
	w = send(r, "POST", "/api/expenses", `{"amount":200,"project_id":1,"description":"Supplies","date":"2024-01-02"}`, token)
	require.Equal(t, 200, w.Code, w.Body.String())

	w = send(r, "GET", "/api/stats", "", "")
	require.Equal(t, 200, w.Code)
	var stats struct {
		TotalIncome  float64 `json:"totalIncome"`
		TotalExpense float64 `json:"totalExpense"`
		Balance      float64 `json:"balance"`
		Projects     []struct {
			ID      uint    `json:"id"`
			Name    string  `json:"name"`
			Income  float64 `json:"income"`
			Expense float64 `json:"expense"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 500.0, stats.TotalIncome)
	assert.Equal(t, 200.0, stats.TotalExpense)
	assert.Equal(t, 300.0, stats.Balance)
	require.Len(t, stats.Projects, 1)
	assert.Equal(t, "Flood Relief", stats.Projects[0].Name)
	assert.Equal(t, 500.0, stats.Projects[0].Income)
	assert.Equal(t, 200.0, stats.Projects[0].Expense)

	// 重复收据编号
	w = send(r, "POST", "/api/incomes", `{"receipt_number":"R-001","amount":1,"project_id":1,"date":"2024-01-03"}`, token)
	assert.Equal(t, 400, w.Code)
}

func TestSetupRouter_AdminRoutesRequireToken(t *testing.T) {
	r, _ := newTestRouter(t)

	routes := []struct{ method, path string }{
		{"POST", "/api/categories"},
		{"PUT", "/api/categories/1"},
		{"POST", "/api/projects"},
		{"PUT", "/api/projects/1"},
		{"POST", "/api/incomes"},
		{"PUT", "/api/incomes/1"},
		{"POST", "/api/expenses"},
		{"PUT", "/api/expenses/1"},
	}
	for _, rt := range routes {
		w := send(r, rt.method, rt.path, `{}`, "")
		assert.Equal(t, 401, w.Code, rt.method+" "+rt.path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())
	}

	expired, err := auth.NewTokenManager("router-secret", time.Nanosecond).Generate(1, "admin")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	w := send(r, "POST", "/api/categories", `{"name":"x"}`, expired)
	assert.Equal(t, 401, w.Code)
	assert.JSONEq(t, `{"error":"Invalid token"}`, w.Body.String())
}

func TestSetupRouter_PublicRoutes(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, path := range []string{"/api/stats", "/api/categories", "/api/projects", "/api/incomes", "/api/expenses", "/api/export/excel"} {
		w := send(r, "GET", path, "", "")
		assert.Equal(t, 200, w.Code, path)
	}

	w := send(r, "GET", "/api/incomes", "", "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = send(r, "GET", "/", "", "")
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "Invalid username or password")
}

func TestSetupRouter_LoginRateLimit(t *testing.T) {
	r, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		w := send(r, "POST", "/api/login", `{"username":"admin","password":"wrong"}`, "")
		assert.Equal(t, 401, w.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	}
	w := send(r, "POST", "/api/login", `{"username":"admin","password":"admin123"}`, "")
	assert.Equal(t, 429, w.Code)
	assert.JSONEq(t, `{"error":"Too many login attempts, please try again later"}`, w.Body.String())
}

func TestSetupRouter_Health(t *testing.T) {
	r, s := newTestRouter(t)

	w := send(r, "GET", "/health", "", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	s.FailWith = errors.New("connection refused")
	w = send(r, "GET", "/health", "", "")
	assert.Equal(t, 503, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r, _ := newTestRouter(t)

	w := send(r, "OPTIONS", "/api/categories", "", "")
	assert.Equal(t, 204, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}
