package querybuilder

import (
	"context"
	"strconv"
	"time"

	"github.com/greenhouse-labs/catalog/internal/constants"
	ctxutil "github.com/greenhouse-labs/catalog/pkg/context"
	"github.com/greenhouse-labs/catalog/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Window is the slice of the ordered result set to fetch.
type Window struct {
	Skip  int
	Limit int
}

// Query is a fully resolved list request.
type Query struct {
	Page   int
	Limit  int
	Skip   int
	Filter Filter
	Sort   Sort
}

func (q *Query) Window() Window {
	return Window{Skip: q.Skip, Limit: q.Limit}
}

// Collection is the data source a list query runs against. Count and Find
// receive the same filter and may be called concurrently.
type Collection[T any] interface {
	Count(ctx context.Context, filter Filter) (int64, error)
	Find(ctx context.Context, filter Filter, sort Sort, window Window) ([]T, error)
}

// Resolve validates the sort, builds the filter and computes pagination.
// Malformed page or limit values fall back to defaults instead of failing.
func Resolve(params Params, cfg Config) (*Query, error) {
	sort, err := ResolveSort(params.Get(constants.QueryParamSort), cfg)
	if err != nil {
		return nil, err
	}

	filter, err := BuildFilter(params, cfg)
	if err != nil {
		return nil, err
	}

	defaultLimit, maxLimit := cfg.limits()
	page := resolvePage(params.Get(constants.QueryParamPage))
	limit := resolveLimit(params.Get(constants.QueryParamLimit), defaultLimit, maxLimit)

	return &Query{
		Page:   page,
		Limit:  limit,
		Skip:   (page - 1) * limit,
		Filter: filter,
		Sort:   sort,
	}, nil
}

func resolvePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < constants.MinPage {
		return constants.MinPage
	}
	return min(page, constants.MaxPage)
}

func resolveLimit(raw string, defaultLimit, maxLimit int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit == 0 {
		limit = defaultLimit
	}
	return max(constants.MinLimit, min(limit, maxLimit))
}

// Execute resolves params and returns one page of coll with its pagination.
// The count and the page fetch run concurrently; the first failure cancels
// the other and is returned as a *DataSourceError.
func Execute[T any](ctx context.Context, coll Collection[T], params Params, cfg Config) (*Result[T], error) {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "querybuilder.Execute")

	query, err := Resolve(params, cfg)
	if err != nil {
		logger.DebugWithContext(ctx, "List query rejected").Err(err).Log()
		return nil, err
	}

	start := time.Now()

	var (
		total int64
		items []T
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := coll.Count(gctx, query.Filter)
		if err != nil {
			return &DataSourceError{Op: "count", Err: err}
		}
		total = n
		return nil
	})
	g.Go(func() error {
		found, err := coll.Find(gctx, query.Filter, query.Sort, query.Window())
		if err != nil {
			return &DataSourceError{Op: "find", Err: err}
		}
		items = found
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.ErrorWithContext(ctx, "List query failed").
			String("sort", query.Sort.String()).
			Int("page", query.Page).
			Int("limit", query.Limit).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "List query executed").
		String("sort", query.Sort.String()).
		Int("page", query.Page).
		Int("limit", query.Limit).
		Int("conditions", len(query.Filter.Conditions)).
		Bool("search", query.Filter.Search != nil).
		Int64("total", total).
		Duration(time.Since(start)).
		Log()

	return NewResult(items, query.Page, query.Limit, total), nil
}
