package database

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/greenhouse-labs/catalog/internal/constants"
	"github.com/greenhouse-labs/catalog/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var seedTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// newTestDB opens a private in-memory SQLite database with the schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := NewSQLiteDB(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), constants.EnvTest)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

// seedCatalog creates two categories and n plants alternating between them.
// Plant i (1-based) costs 10+i and was created i-1 days after seedTime.
func seedCatalog(t *testing.T, db *gorm.DB, n int) ([]model.Category, []model.Plant) {
	t.Helper()

	categories := []model.Category{
		{Name: "Succulents", Slug: "succulents", Status: constants.StatusActive},
		{Name: "Ferns", Slug: "ferns", Status: constants.StatusActive},
	}
	require.NoError(t, db.Create(&categories).Error)

	plants := make([]model.Plant, n)
	for i := range plants {
		status := constants.PlantStatusAvailable
		if i%3 == 2 {
			status = constants.PlantStatusOutOfStock
		}
		created := seedTime.AddDate(0, 0, i)
		plants[i] = model.Plant{
			Model:          gorm.Model{CreatedAt: created, UpdatedAt: created},
			Name:           fmt.Sprintf("Plant %02d", i+1),
			ScientificName: fmt.Sprintf("Planta specimen%02d", i+1),
			CategoryID:     categories[i%2].ID,
			Price:          float64(10 + i + 1),
			Stock:          i,
			Status:         status,
		}
	}
	if n > 0 {
		require.NoError(t, db.Create(&plants).Error)
	}
	return categories, plants
}
