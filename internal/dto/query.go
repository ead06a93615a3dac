package dto

import (
	"github.com/greenhouse-labs/catalog/config"
	qb "github.com/greenhouse-labs/catalog/pkg/querybuilder"
)

// List endpoint configurations. Field names are the camelCase names used in
// query strings and JSON bodies; columns are the database names.

var userSchema = qb.NewSchema(
	qb.Field{Name: "id", Column: "id", Kind: qb.KindInt},
	qb.Field{Name: "firstName", Column: "first_name", Kind: qb.KindString},
	qb.Field{Name: "lastName", Column: "last_name", Kind: qb.KindString},
	qb.Field{Name: "email", Column: "email", Kind: qb.KindString},
	qb.Field{Name: "role", Column: "role", Kind: qb.KindString},
	qb.Field{Name: "status", Column: "status", Kind: qb.KindString},
	qb.Field{Name: "createdAt", Column: "created_at", Kind: qb.KindTime},
)

var categorySchema = qb.NewSchema(
	qb.Field{Name: "id", Column: "id", Kind: qb.KindInt},
	qb.Field{Name: "name", Column: "name", Kind: qb.KindString},
	qb.Field{Name: "slug", Column: "slug", Kind: qb.KindString},
	qb.Field{Name: "description", Column: "description", Kind: qb.KindString},
	qb.Field{Name: "status", Column: "status", Kind: qb.KindString},
	qb.Field{Name: "createdAt", Column: "created_at", Kind: qb.KindTime},
)

var plantSchema = qb.NewSchema(
	qb.Field{Name: "id", Column: "id", Kind: qb.KindInt},
	qb.Field{Name: "name", Column: "name", Kind: qb.KindString},
	qb.Field{Name: "scientificName", Column: "scientific_name", Kind: qb.KindString},
	qb.Field{Name: "description", Column: "description", Kind: qb.KindString},
	qb.Field{Name: "categoryId", Column: "category_id", Kind: qb.KindInt},
	qb.Field{Name: "price", Column: "price", Kind: qb.KindFloat},
	qb.Field{Name: "stock", Column: "stock", Kind: qb.KindInt},
	qb.Field{Name: "status", Column: "status", Kind: qb.KindString},
	qb.Field{Name: "createdAt", Column: "created_at", Kind: qb.KindTime},
)

var favoriteSchema = qb.NewSchema(
	qb.Field{Name: "id", Column: "id", Kind: qb.KindInt},
	qb.Field{Name: "userId", Column: "user_id", Kind: qb.KindInt},
	qb.Field{Name: "plantId", Column: "plant_id", Kind: qb.KindInt},
	qb.Field{Name: "createdAt", Column: "created_at", Kind: qb.KindTime},
)

func UserQueryConfig(limits config.QueryConfig) qb.Config {
	return qb.Config{
		Schema:       userSchema,
		DefaultSort:  "-createdAt",
		SortFields:   []string{"firstName", "lastName", "email", "createdAt"},
		FilterFields: []string{"role", "status"},
		SearchFields: []string{"firstName", "lastName", "email"},
		DateField:    "createdAt",
	}.WithLimits(limits.DefaultLimit, limits.MaxLimit)
}

func CategoryQueryConfig(limits config.QueryConfig) qb.Config {
	return qb.Config{
		Schema:       categorySchema,
		DefaultSort:  "name",
		SortFields:   []string{"name", "createdAt"},
		FilterFields: []string{"status"},
		SearchFields: []string{"name", "description"},
		DateField:    "createdAt",
	}.WithLimits(limits.DefaultLimit, limits.MaxLimit)
}

func PlantQueryConfig(limits config.QueryConfig) qb.Config {
	return qb.Config{
		Schema:       plantSchema,
		DefaultSort:  "-createdAt",
		SortFields:   []string{"name", "price", "stock", "createdAt"},
		FilterFields: []string{"categoryId", "status", "price", "stock"},
		SearchFields: []string{"name", "scientificName", "description"},
		DateField:    "createdAt",
	}.WithLimits(limits.DefaultLimit, limits.MaxLimit)
}

// FavoriteQueryConfig has no search fields, so a search parameter is ignored.
func FavoriteQueryConfig(limits config.QueryConfig) qb.Config {
	return qb.Config{
		Schema:       favoriteSchema,
		DefaultSort:  "-createdAt",
		SortFields:   []string{"createdAt"},
		FilterFields: []string{"userId", "plantId"},
		DateField:    "createdAt",
	}.WithLimits(limits.DefaultLimit, limits.MaxLimit)
}
