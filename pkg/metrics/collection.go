package metrics

import (
	"context"
	"time"

	"github.com/greenhouse-labs/catalog/pkg/querybuilder"
)

// InstrumentedCollection times every Count and Find made against the wrapped
// collection.
type InstrumentedCollection[T any] struct {
	next   querybuilder.Collection[T]
	store  MetricsStore
	entity string
}

// Instrument wraps coll. A nil store returns coll unchanged.
func Instrument[T any](store MetricsStore, entity string, coll querybuilder.Collection[T]) querybuilder.Collection[T] {
	if store == nil {
		return coll
	}
	return &InstrumentedCollection[T]{next: coll, store: store, entity: entity}
}

func (c *InstrumentedCollection[T]) Count(ctx context.Context, f querybuilder.Filter) (int64, error) {
	start := time.Now()
	n, err := c.next.Count(ctx, f)
	c.store.ObserveDataSource(c.entity, "count", time.Since(start), err)
	return n, err
}

func (c *InstrumentedCollection[T]) Find(ctx context.Context, f querybuilder.Filter, s querybuilder.Sort, w querybuilder.Window) ([]T, error) {
	start := time.Now()
	items, err := c.next.Find(ctx, f, s, w)
	c.store.ObserveDataSource(c.entity, "find", time.Since(start), err)
	return items, err
}
