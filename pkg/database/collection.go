package database

import (
	"context"
	"strings"

	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollection runs list queries for model T through gorm. Soft deleted
// rows are excluded by gorm's default scope.
type GormCollection[T any] struct {
	db       *gorm.DB
	preloads []string
}

// NewGormCollection returns a collection over T's table. preloads name the
// associations populated on every fetched record, e.g. "Plant.Category".
func NewGormCollection[T any](db *gorm.DB, preloads ...string) *GormCollection[T] {
	return &GormCollection[T]{db: db, preloads: preloads}
}

func (c *GormCollection[T]) Count(ctx context.Context, filter querybuilder.Filter) (int64, error) {
	var total int64
	err := c.db.WithContext(ctx).
		Model(new(T)).
		Scopes(FilterScope(filter)).
		Count(&total).Error
	return total, err
}

func (c *GormCollection[T]) Find(ctx context.Context, filter querybuilder.Filter, sort querybuilder.Sort, window querybuilder.Window) ([]T, error) {
	query := c.db.WithContext(ctx).
		Model(new(T)).
		Scopes(FilterScope(filter), SortScope(sort)).
		Offset(window.Skip).
		Limit(window.Limit)

	for _, p := range c.preloads {
		query = query.Preload(p)
	}

	records := make([]T, 0, window.Limit)
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FilterScope applies filter as a WHERE clause.
func FilterScope(filter querybuilder.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range filter.Conditions {
			db = db.Where(conditionExpr(cond))
		}

		if filter.Search != nil {
			exprs := make([]clause.Expression, 0, len(filter.Search.Fields))
			for _, f := range filter.Search.Fields {
				exprs = append(exprs, containsExpr(column(f), filter.Search.Term))
			}
			// a single OR operand would be joined to the previous condition with OR
			if len(exprs) == 1 {
				db = db.Where(exprs[0])
			} else if len(exprs) > 1 {
				db = db.Where(clause.Or(exprs...))
			}
		}
		return db
	}
}

// SortScope orders by sort, then by primary key so pages are stable.
func SortScope(sort querybuilder.Sort) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: column(sort.Field), Desc: sort.Desc})
		if sort.Field.Column != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: "id"}})
		}
		return db
	}
}

func column(f querybuilder.Field) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: f.Column}
}

func conditionExpr(cond querybuilder.Condition) clause.Expression {
	col := column(cond.Field)
	switch cond.Op {
	case querybuilder.OpGt:
		return clause.Gt{Column: col, Value: cond.Value}
	case querybuilder.OpGte:
		return clause.Gte{Column: col, Value: cond.Value}
	case querybuilder.OpLt:
		return clause.Lt{Column: col, Value: cond.Value}
	case querybuilder.OpLte:
		return clause.Lte{Column: col, Value: cond.Value}
	case querybuilder.OpContains:
		term, _ := cond.Value.(string)
		return containsExpr(col, term)
	default:
		return clause.Eq{Column: col, Value: cond.Value}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsExpr matches rows whose column contains term, ignoring case.
func containsExpr(col clause.Column, term string) clause.Expression {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
	return clause.Expr{SQL: `LOWER(?) LIKE ? ESCAPE '\'`, Vars: []interface{}{col, pattern}}
}
