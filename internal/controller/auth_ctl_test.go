package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/repository"
	"github.com/matinfathi/oo-backend/internal/service"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

// ==================== 测试辅助 ====================

func setupAuthCtlRouter(t *testing.T) *gin.Engine {
	t.Helper()

	store := repository.NewStore(testutil.NewDB(t))
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	tokens := middleware.NewJWTManager(middleware.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "oo-backend-test",
	})

	users := service.NewUserService(store, hasher, zap.NewNop())
	_, err := users.EnsureSuperAdmin(context.Background(), service.AdminAccount{
		Username: "admin", Email: "admin@example.com", Password: "admin",
	})
	require.NoError(t, err)

	ctl := NewAuthController(service.NewAuthService(store, hasher, tokens, zap.NewNop()), zap.NewNop())

	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/api/auth")
	{
		auth.POST("/login", ctl.Login)
		auth.POST("/refresh", ctl.Refresh)
	}
	return r
}

func loginAs(t *testing.T, r *gin.Engine, username, password string) dto.LoginResponse {
	t.Helper()

	w := doJSON(r, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ==================== Login ====================

func TestAuthController_Login(t *testing.T) {
	r := setupAuthCtlRouter(t)

	resp := loginAs(t, r, "admin", "admin")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	require.NotNil(t, resp.User)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestAuthController_LoginFailures(t *testing.T) {
	r := setupAuthCtlRouter(t)

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"wrong password", dto.LoginRequest{Username: "admin", Password: "nope"}, http.StatusUnauthorized},
		{"unknown user", dto.LoginRequest{Username: "ghost", Password: "admin"}, http.StatusUnauthorized},
		{"missing password", map[string]string{"username": "admin"}, http.StatusBadRequest},
		{"malformed json", "{", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/auth/login", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusUnauthorized {
				assert.Equal(t, "Incorrect username or password.", decodeError(t, w).Message)
			}
		})
	}
}

// ==================== Refresh ====================

func TestAuthController_Refresh(t *testing.T) {
	r := setupAuthCtlRouter(t)
	login := loginAs(t, r, "admin", "admin")

	w := doJSON(r, http.MethodPost, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)

	// Access Token 不能当 Refresh Token 用
	w = doJSON(r, http.MethodPost, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = doJSON(r, http.MethodPost, "/api/auth/refresh", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
