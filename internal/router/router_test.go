package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/handler"
	"github.com/greenhouse-labs/catalog/internal/middleware"
	"github.com/greenhouse-labs/catalog/internal/repository"
	"github.com/greenhouse-labs/catalog/internal/service"
	"github.com/greenhouse-labs/catalog/pkg/cache"
	"github.com/greenhouse-labs/catalog/pkg/database"
	"github.com/greenhouse-labs/catalog/pkg/metrics"
	"github.com/greenhouse-labs/catalog/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin12345"
)

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterGinValidations())

	cfg := &config.Config{
		App:       config.AppConfig{Environment: constants.EnvTest, Timeout: 10 * time.Second, CORSOrigins: "*"},
		JWT:       config.JWTConfig{Secret: "router-secret", ExpirationTime: 15 * time.Minute, Issuer: "catalog-test"},
		RateLimit: config.RateLimitConfig{Request: 1000, Duration: 60},
		Query:     config.QueryConfig{DefaultLimit: 10, MaxLimit: 50},
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB(fmt.Sprintf("file:router_%s?mode=memory&cache=shared", name), constants.EnvTest)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedAdmin(context.Background(), db, adminEmail, adminPassword))

	local := cache.NewCache(time.Minute)
	t.Cleanup(local.Close)
	store := metrics.NewMetricsStore()

	userRepo := repository.NewUserRepository(db, store)
	categoryRepo := repository.NewCategoryRepository(db, store)
	plantRepo := repository.NewPlantRepository(db, store)
	favoriteRepo := repository.NewFavoriteRepository(db, store)

	cacheSvc := service.NewCacheService(nil, local, time.Minute)
	jwtSvc := service.NewJWTService(cfg.JWT)
	userSvc := service.NewUserService(userRepo, jwtSvc, cfg.Query)
	plantSvc := service.NewPlantService(plantRepo, categoryRepo, cacheSvc, cfg.Query)

	validMw, err := middleware.NewValidationMiddleware()
	require.NoError(t, err)

	engine := NewRouter(
		Handlers{
			User:     handler.NewUserHandler(userSvc),
			Auth:     handler.NewAuthHandler(userSvc),
			Category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo, plantRepo, cacheSvc, cfg.Query)),
			Plant:    handler.NewPlantHandler(plantSvc),
			Favorite: handler.NewFavoriteHandler(service.NewFavoriteService(favoriteRepo, plantSvc, cfg.Query)),
			Health:   handler.NewHealthHandler(db, nil, "test"),
		},
		validMw,
		middleware.NewJWTMiddleware(jwtSvc, userRepo),
		store,
		cfg,
	).SetupRoutes()

	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if token != "" {
		req.Header.Set(constants.HeaderAuthorization, constants.AuthSchemeBearer+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Details    []string        `json:"details"`
	Pagination struct {
		CurrentPage  int   `json:"currentPage"`
		TotalPages   int   `json:"totalPages"`
		TotalItems   int64 `json:"totalItems"`
		ItemsPerPage int   `json:"itemsPerPage"`
		HasNextPage  bool  `json:"hasNextPage"`
		HasPrevPage  bool  `json:"hasPrevPage"`
	} `json:"pagination"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

type tokens struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		ID uint `json:"id"`
	} `json:"user"`
}

func (s *testServer) login(email, password string) tokens {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var out tokens
	require.NoError(s.t, json.Unmarshal(decode(s.t, w).Data, &out))
	return out
}

func (s *testServer) createID(path, token string, body any) uint {
	s.t.Helper()
	w := s.do(http.MethodPost, path, token, body)
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID uint `json:"id"`
	}
	require.NoError(s.t, json.Unmarshal(decode(s.t, w).Data, &created))
	return created.ID
}

func TestRouter_CatalogFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/categories", "", map[string]string{"name": "Ferns"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ferns := s.createID("/api/v1/categories", admin.Token, map[string]string{"name": "Ferns"})
	succulents := s.createID("/api/v1/categories", admin.Token, map[string]string{"name": "Succulents"})

	w = s.do(http.MethodPost, "/api/v1/categories", admin.Token, map[string]string{"name": "ferns"})
	assert.Equal(t, http.StatusConflict, w.Code)

	plants := []map[string]any{
		{"name": "Boston Fern", "categoryId": ferns, "price": 12.5, "stock": 4, "care": map[string]any{"light": "indirect"}},
		{"name": "Maidenhair Fern", "categoryId": ferns, "price": 18, "stock": 2},
		{"name": "Jade Plant", "categoryId": succulents, "price": 9, "stock": 10},
	}
	for _, p := range plants {
		s.createID("/api/v1/plants", admin.Token, p)
	}

	w = s.do(http.MethodGet, "/api/v1/plants?search=FERN&sort=-price&limit=1", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decode(t, w)
	assert.True(t, env.Success)
	assert.Equal(t, int64(2), env.Pagination.TotalItems)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.True(t, env.Pagination.HasNextPage)

	var page []struct {
		Name     string `json:"name"`
		Category struct {
			Name string `json:"name"`
		} `json:"category"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 1)
	assert.Equal(t, "Maidenhair Fern", page[0].Name)
	assert.Equal(t, "Ferns", page[0].Category.Name)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/plants?categoryId=%d&price_lte=10", succulents), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode(t, w).Pagination.TotalItems)

	w = s.do(http.MethodGet, "/api/v1/plants?sort=password", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, decode(t, w).Success)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/categories/%d", ferns), admin.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code, "category with plants")

	w = s.do(http.MethodGet, "/api/v1/plants/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/plants/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_UsersAndFavorites(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	category := s.createID("/api/v1/categories", admin.Token, map[string]string{"name": "Palms"})
	plant := s.createID("/api/v1/plants", admin.Token, map[string]any{"name": "Kentia Palm", "categoryId": category, "price": 40})

	w := s.do(http.MethodPost, "/api/v1/users", admin.Token, map[string]string{"email": "bad"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w).Details)

	for _, email := range []string{"ann@example.com", "ben@example.com"} {
		s.createID("/api/v1/users", admin.Token, map[string]string{
			"firstName": "Test", "lastName": "User", "email": email, "password": "password123",
		})
	}
	ann := s.login("ann@example.com", "password123")
	ben := s.login("ben@example.com", "password123")

	w = s.do(http.MethodGet, "/api/v1/users", ann.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodPost, "/api/v1/categories", ann.Token, map[string]string{"name": "Cacti"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", ben.User.ID), ann.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d", ann.User.ID), ann.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	favorite := s.createID("/api/v1/favorites", ann.Token, map[string]any{"plantId": plant, "note": "for the hallway"})
	w = s.do(http.MethodPost, "/api/v1/favorites", ann.Token, map[string]any{"plantId": plant})
	assert.Equal(t, http.StatusConflict, w.Code)
	s.createID("/api/v1/favorites", ben.Token, map[string]any{"plantId": plant})

	w = s.do(http.MethodGet, "/api/v1/favorites", ann.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), decode(t, w).Pagination.TotalItems)

	w = s.do(http.MethodGet, "/api/v1/favorites", admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode(t, w).Pagination.TotalItems)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", favorite), ben.Token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/favorites/%d", favorite), ann.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", admin.User.ID), admin.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "self delete")
}

func TestRouter_RefreshAndLogout(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	w := s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": admin.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var rotated tokens
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &rotated))
	assert.NotEqual(t, admin.RefreshToken, rotated.RefreshToken)

	w = s.do(http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refreshToken": admin.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code, "old refresh token is single use")

	w = s.do(http.MethodGet, "/api/v1/users", admin.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "refresh bumps the token version")

	w = s.do(http.MethodPost, "/api/v1/auth/logout", rotated.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, "/api/v1/users", rotated.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))

	w = s.do(http.MethodGet, "/api/v1/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, constants.MsgRouteNotFound, decode(t, w).Message)

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_http_requests_total")
}
