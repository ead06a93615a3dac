package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/greenhouse-labs/catalog/internal/service"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(c *gin.Context) { c.Status(http.StatusOK) }

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestContext_GeneratesAndEchoesID(t *testing.T) {
	r := gin.New()
	var seen string
	r.Use(RequestContext())
	r.GET("/", func(c *gin.Context) {
		seen = ctxutil.GetRequestID(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(constants.HeaderXRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "req-123")
	w = serve(r, req)
	assert.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get(constants.HeaderXRequestID))
}

func TestRecovery_Returns500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), constants.MsgInternalError)
}

func TestRateLimiter_TokenBucket(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	rl := NewRateLimiter(2, time.Minute)
	rl.now = func() time.Time { return now }

	allowed, remaining := rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 1, remaining)
	allowed, remaining = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
	assert.Equal(t, 0, remaining)
	allowed, _ = rl.Allow("1.2.3.4")
	assert.False(t, allowed)

	allowed, _ = rl.Allow("5.6.7.8")
	assert.True(t, allowed, "limits are per key")

	now = now.Add(time.Minute + time.Second)
	allowed, _ = rl.Allow("1.2.3.4")
	assert.True(t, allowed)
}

func TestRateLimit_Handler(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(1, time.Minute))
	r.GET("/", okHandler)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://shop.example.com, https://admin.example.com"))
	r.GET("/", okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://shop.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	r = gin.New()
	r.Use(CORS("*"))
	r.GET("/", okHandler)
	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	store := metrics.NewMetricsStore()
	r := gin.New()
	r.Use(Metrics(store))
	r.GET("/plants/:id", okHandler)

	serve(r, httptest.NewRequest(http.MethodGet, "/plants/7", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/plants/8", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	count, err := testutil.GatherAndCount(store.Registry(), "catalog_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "/plants/:id 200 and unmatched 404")
}

type fakeUsers map[uint]*model.User

func (f fakeUsers) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newAuthEngine(t *testing.T, users fakeUsers) (*gin.Engine, *service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService(config.JWTConfig{Secret: "mw-secret", ExpirationTime: time.Minute})
	mw := NewJWTMiddleware(jwtSvc, users)

	r := gin.New()
	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		id, _ := ctxutil.GetUserID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"id": id, "role": c.GetString(constants.GinKeyRole)})
	})
	r.GET("/admin", mw.RequireAuth(), RequireRole(constants.RoleAdmin), okHandler)
	r.GET("/optional", mw.OptionalAuth(), func(c *gin.Context) {
		_, authed := c.Get(constants.GinKeyUserID)
		c.JSON(http.StatusOK, gin.H{"authenticated": authed})
	})
	return r, jwtSvc
}

func bearer(t *testing.T, jwtSvc *service.JWTService, u *model.User, path string) *http.Request {
	t.Helper()
	token, err := jwtSvc.GenerateToken(u)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set(constants.HeaderAuthorization, constants.AuthSchemeBearer+token)
	return req
}

func TestRequireAuth(t *testing.T) {
	alice := &model.User{Model: gorm.Model{ID: 1}, Email: "alice@example.com", Role: constants.RoleUser, Status: constants.StatusActive, TokenVersion: 1}
	bob := &model.User{Model: gorm.Model{ID: 2}, Email: "bob@example.com", Role: constants.RoleUser, Status: constants.StatusInactive, TokenVersion: 1}
	users := fakeUsers{1: alice, 2: bob}
	r, jwtSvc := newAuthEngine(t, users)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(constants.HeaderAuthorization, "Basic abc")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	w = serve(r, bearer(t, jwtSvc, alice, "/me"))
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		ID   uint   `json:"id"`
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, uint(1), body.ID)
	assert.Equal(t, constants.RoleUser, body.Role)

	assert.Equal(t, http.StatusUnauthorized, serve(r, bearer(t, jwtSvc, bob, "/me")).Code, "inactive user")

	stale := *alice
	stale.TokenVersion = 0
	assert.Equal(t, http.StatusUnauthorized, serve(r, bearer(t, jwtSvc, &stale, "/me")).Code, "old token version")

	ghost := &model.User{Model: gorm.Model{ID: 99}, TokenVersion: 1}
	assert.Equal(t, http.StatusUnauthorized, serve(r, bearer(t, jwtSvc, ghost, "/me")).Code)
}

func TestRequireRole(t *testing.T) {
	user := &model.User{Model: gorm.Model{ID: 1}, Role: constants.RoleUser, Status: constants.StatusActive, TokenVersion: 1}
	admin := &model.User{Model: gorm.Model{ID: 2}, Role: constants.RoleAdmin, Status: constants.StatusActive, TokenVersion: 1}
	r, jwtSvc := newAuthEngine(t, fakeUsers{1: user, 2: admin})

	assert.Equal(t, http.StatusForbidden, serve(r, bearer(t, jwtSvc, user, "/admin")).Code)
	assert.Equal(t, http.StatusOK, serve(r, bearer(t, jwtSvc, admin, "/admin")).Code)
}

func TestOptionalAuth(t *testing.T) {
	user := &model.User{Model: gorm.Model{ID: 1}, Role: constants.RoleUser, Status: constants.StatusActive, TokenVersion: 1}
	r, jwtSvc := newAuthEngine(t, fakeUsers{1: user})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())

	w = serve(r, bearer(t, jwtSvc, user, "/optional"))
	assert.JSONEq(t, `{"authenticated":true}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set(constants.HeaderAuthorization, constants.AuthSchemeBearer+"garbage")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestValidateRequestBody(t *testing.T) {
	mw, err := NewValidationMiddleware()
	require.NoError(t, err)

	r := gin.New()
	r.POST("/categories", mw.ValidateRequestBody(func() interface{} { return &dto.CreateCategoryRequest{} }), func(c *gin.Context) {
		v, _ := c.Get(constants.GinKeyRequestBody)
		req := v.(*dto.CreateCategoryRequest)
		c.JSON(http.StatusOK, gin.H{"name": req.Name})
	})

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/categories", strings.NewReader(body))
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
		return serve(r, req)
	}

	w := post(`{"name":"Ferns"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Ferns"}`, w.Body.String())

	w = post(`{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid JSON format")

	w = post(`{"slug":"Not A Slug"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Success bool     `json:"success"`
		Details []string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Len(t, resp.Details, 2)
}
