package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/matinfathi/oo-backend/internal/api/dto"
	"github.com/matinfathi/oo-backend/internal/middleware"
	"github.com/matinfathi/oo-backend/internal/model"
	"github.com/matinfathi/oo-backend/internal/policy"
	"github.com/matinfathi/oo-backend/internal/repository"
	"github.com/matinfathi/oo-backend/internal/service"
	"github.com/matinfathi/oo-backend/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
	dto.InstallBinding()
}

// ==================== 测试辅助 ====================

// withPrincipal 跳过 JWT，直接注入请求主体
func withPrincipal(p *policy.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p != nil {
			c.Set(middleware.ContextKeyPrincipal, p)
		}
		c.Next()
	}
}

func setupMenuRouter(t *testing.T, p *policy.Principal) *gin.Engine {
	t.Helper()

	store := repository.NewStore(testutil.NewDB(t))
	ctl := NewMenuController(service.NewMenuService(store, zap.NewNop()), zap.NewNop())

	r := gin.New()
	r.Use(withPrincipal(p))
	r.GET("/menus", ctl.List)
	r.POST("/menus", ctl.Create)
	r.GET("/menus/:id", ctl.Get)
	r.PATCH("/menus/:id", ctl.Patch)
	r.DELETE("/menus/:id", ctl.Delete)
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// ==================== 错误映射 ====================

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrForbidden, http.StatusForbidden},
		{&service.Error{Kind: service.ErrNotFound, Msg: "Menu not found."}, http.StatusNotFound},
		{service.ErrEmptyUserLookup, http.StatusBadRequest},
		{service.ErrUsernameExists, http.StatusConflict},
		{service.ErrInvalidToken, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", service.ErrConflict), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusOf(tt.err))
		})
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)

	r := gin.New()
	r.GET("/boom", func(c *gin.Context) {
		respondError(c, zap.New(core), errors.New("db exploded"))
	})

	w := doJSON(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, "Internal server error.", resp.Message)
	assert.NotContains(t, w.Body.String(), "db exploded")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "/boom", logs.All()[0].ContextMap()["route"])
}

func TestRespondError_Unauthenticated(t *testing.T) {
	r := gin.New()
	r.GET("/me", func(c *gin.Context) {
		respondError(c, zap.NewNop(), service.ErrInvalidToken)
	})

	w := doJSON(r, http.MethodGet, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.Equal(t, "Could not validate credentials.", decodeError(t, w).Message)
}

// ==================== MenuController ====================

func TestMenuController_CRUD(t *testing.T) {
	admin := &policy.Principal{UserID: 1, Username: "admin", Role: model.RoleSuperAdmin}
	r := setupMenuRouter(t, admin)

	w := doJSON(r, http.MethodPost, "/menus", map[string]interface{}{"name": "Cafe", "price_unit": "GBP"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var menu map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, "£", menu["currency_sign"])

	w = doJSON(r, http.MethodPatch, "/menus/1", map[string]interface{}{"name": "Bistro"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &menu))
	assert.Equal(t, "Bistro", menu["name"])
	assert.Equal(t, "GBP", menu["price_unit"])

	w = doJSON(r, http.MethodGet, "/menus?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	w = doJSON(r, http.MethodDelete, "/menus/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Menu deleted successfully."}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/menus/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Menu not found.", decodeError(t, w).Message)
}

func TestMenuController_BadRequests(t *testing.T) {
	admin := &policy.Principal{UserID: 1, Username: "admin", Role: model.RoleSuperAdmin}
	r := setupMenuRouter(t, admin)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
	}{
		{"non numeric id", http.MethodGet, "/menus/abc", nil},
		{"zero id", http.MethodDelete, "/menus/0", nil},
		{"malformed json", http.MethodPost, "/menus", "{"},
		{"missing name", http.MethodPost, "/menus", map[string]interface{}{"price_unit": "USD"}},
		{"unknown currency", http.MethodPost, "/menus", map[string]interface{}{"name": "X", "price_unit": "JPY"}},
		{"limit too large", http.MethodGet, "/menus?limit=1000", nil},
		{"negative offset", http.MethodGet, "/menus?offset=-1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, http.StatusBadRequest, decodeError(t, w).Code)
		})
	}
}

func TestMenuController_CustomerForbidden(t *testing.T) {
	customer := &policy.Principal{UserID: 2, Username: "bob", Role: model.RoleCustomer}
	r := setupMenuRouter(t, customer)

	for _, path := range []string{"/menus", "/menus/1"} {
		w := doJSON(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Not enough permission.", decodeError(t, w).Message)
	}
}
