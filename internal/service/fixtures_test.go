package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/dto"
	"github.com/greenhouse-labs/catalog/internal/repository"
	"github.com/greenhouse-labs/catalog/pkg/cache"
	"github.com/greenhouse-labs/catalog/pkg/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testLimits = config.QueryConfig{DefaultLimit: 10, MaxLimit: 100}

type services struct {
	db         *gorm.DB
	jwt        *JWTService
	local      *cache.Cache
	users      *UserService
	categories *CategoryService
	plants     *PlantService
	favorites  *FavoriteService
}

func newServices(t *testing.T) *services {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewSQLiteDB(fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", name), constants.EnvTest)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	local := cache.NewCache(time.Minute)
	t.Cleanup(local.Close)
	cacheSvc := NewCacheService(nil, local, time.Minute)

	jwtSvc := NewJWTService(config.JWTConfig{Secret: "test-secret", ExpirationTime: 15 * time.Minute, Issuer: "test"})

	userRepo := repository.NewUserRepository(db, nil)
	categoryRepo := repository.NewCategoryRepository(db, nil)
	plantRepo := repository.NewPlantRepository(db, nil)
	favoriteRepo := repository.NewFavoriteRepository(db, nil)

	plants := NewPlantService(plantRepo, categoryRepo, cacheSvc, testLimits)
	return &services{
		db:         db,
		jwt:        jwtSvc,
		local:      local,
		users:      NewUserService(userRepo, jwtSvc, testLimits),
		categories: NewCategoryService(categoryRepo, plantRepo, cacheSvc, testLimits),
		plants:     plants,
		favorites:  NewFavoriteService(favoriteRepo, plants, testLimits),
	}
}

func (s *services) createUser(t *testing.T, email, role string) *dto.UserResponse {
	t.Helper()
	u, err := s.users.CreateUser(context.Background(), &dto.CreateUserRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "password123",
		Role:      role,
	})
	require.NoError(t, err)
	return u
}

func (s *services) createCategory(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	c, err := s.categories.Create(context.Background(), &dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c
}

func (s *services) createPlant(t *testing.T, name string, categoryID uint, price float64) *dto.PlantResponse {
	t.Helper()
	p, err := s.plants.Create(context.Background(), &dto.CreatePlantRequest{
		Name:       name,
		CategoryID: categoryID,
		Price:      price,
		Stock:      5,
	})
	require.NoError(t, err)
	return p
}

func strPtr(s string) *string { return &s }
