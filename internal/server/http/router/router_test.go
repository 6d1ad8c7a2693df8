package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/app"
	"github.com/polkiloo/campusfood/internal/config"
	"github.com/polkiloo/campusfood/internal/domain/model"
	pkgAuth "github.com/polkiloo/campusfood/internal/pkg/auth"
	"github.com/polkiloo/campusfood/internal/server/http/dto"
	"github.com/polkiloo/campusfood/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/campusfood/internal/test"
	"github.com/polkiloo/campusfood/internal/usecase"
)

type neutralAnalyzer struct{}

func (neutralAnalyzer) Analyze(context.Context, string) model.Sentiment { return model.SentimentNeutral }

func tokenStrategy() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(p model.Principal) (string, error) {
			return fmt.Sprintf("%s-%d", p.Role, p.ID), nil
		},
		ParseFn: func(token string) (model.Principal, error) {
			role, id, ok := strings.Cut(token, "-")
			if !ok {
				return model.Principal{}, pkgAuth.ErrInvalidToken
			}
			n, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return model.Principal{}, pkgAuth.ErrInvalidToken
			}
			return model.Principal{ID: n, Role: model.Role(role)}, nil
		},
	}
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	store := testhelpers.NewMemoryStore()
	facade := app.NewCampusFacade(
		usecase.NewAuthUseCase(store.Students(), store.Vendors(), testhelpers.HasherStub{}, tokenStrategy()),
		usecase.NewVendorUseCase(store.Vendors()),
		usecase.NewMenuUseCase(store.Menu(), store.Vendors()),
		usecase.NewOrderUseCase(store.Orders(), store.Vendors(), store.Menu(), store.Events(), store, zap.NewNop()),
		usecase.NewReviewUseCase(store.Orders(), store.Reviews(), store, neutralAnalyzer{}, zap.NewNop()),
		&testhelpers.PublisherStub{},
	)
	return Setup(facade, cfg, zap.NewNop())
}

func defaultConfig() *config.Config {
	return &config.Config{RateLimitRPS: 100, RateLimitBurst: 100, CORSAllowedOrigins: []string{"*"}}
}

func call(h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func register(t *testing.T, h http.Handler, path string, body map[string]any) dto.AuthResponse {
	t.Helper()
	resp := call(h, http.MethodPost, path, "", body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &auth))
	return auth
}

func TestSetupRoutesByRole(t *testing.T) {
	h := newTestRouter(t, defaultConfig())

	student := register(t, h, "/api/auth/student/register", map[string]any{
		"name": "Karim", "email": "u2104001@student.cuet.ac.bd", "password": "secret1",
	})
	vendor := register(t, h, "/api/auth/vendor/register", map[string]any{
		"email": "stall@cuet.ac.bd", "password": "secret1", "stallName": "Hall Canteen",
	})
	assert.Equal(t, fmt.Sprintf("student-%d", student.Student.ID), student.Token)

	resp := call(h, http.MethodGet, "/api/student/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = call(h, http.MethodGet, "/api/student/orders", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = call(h, http.MethodGet, "/api/student/orders", vendor.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = call(h, http.MethodGet, "/api/vendor/stats", student.Token, nil)
	assert.Equal(t, http.StatusForbidden, resp.Code)

	resp = call(h, http.MethodGet, "/api/student/orders", student.Token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.Header().Get(middleware.RequestIDHeader))

	resp = call(h, http.MethodPost, "/api/vendor/menu", vendor.Token, map[string]any{"name": "Cha", "price": 10})
	require.Equal(t, http.StatusCreated, resp.Code)

	resp = call(h, http.MethodGet, fmt.Sprintf("/api/student/menu/%d", vendor.Vendor.ID), student.Token, nil)
	require.Equal(t, http.StatusOK, resp.Code)
	var menu []dto.MenuItemResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &menu))
	require.Len(t, menu, 1)
	assert.Equal(t, "Cha", menu[0].Name)

	resp = call(h, http.MethodGet, fmt.Sprintf("/api/student/vendors/%d/reviews", vendor.Vendor.ID), student.Token, nil)
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestSetupAuthCookie(t *testing.T) {
	h := newTestRouter(t, defaultConfig())
	register(t, h, "/api/auth/student/register", map[string]any{
		"name": "Karim", "email": "u2104001@student.cuet.ac.bd", "password": "secret1",
	})

	resp := call(h, http.MethodPost, "/api/auth/student/login", "", map[string]any{
		"email": "u2104001@student.cuet.ac.bd", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	cookies := result.Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/student/orders", nil)
	req.AddCookie(cookies[0])
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupNoRoute(t *testing.T) {
	h := newTestRouter(t, defaultConfig())
	resp := call(h, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, resp.Body.String())
}

func TestSetupRateLimit(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	h := newTestRouter(t, cfg)

	assert.Equal(t, http.StatusNotFound, call(h, http.MethodGet, "/api/unknown", "", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, call(h, http.MethodGet, "/api/unknown", "", nil).Code)
}

func TestSetupCompressesResponses(t *testing.T) {
	h := newTestRouter(t, defaultConfig())
	student := register(t, h, "/api/auth/student/register", map[string]any{
		"name": "Karim", "email": "u2104001@student.cuet.ac.bd", "password": "secret1",
	})
	req := httptest.NewRequest(http.MethodGet, "/api/student/orders", nil)
	req.Header.Set("Authorization", "Bearer "+student.Token)
	req.Header.Set("Accept-Encoding", "gzip")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "gzip", resp.Header().Get("Content-Encoding"))
}
