package querybuilder

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type plant struct {
	ID        int
	Name      string
	Status    string
	Price     float64
	Stock     int
	CreatedAt time.Time
}

func plantField(p plant, field string) (any, bool) {
	switch field {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "status":
		return p.Status, true
	case "price":
		return p.Price, true
	case "stock":
		return p.Stock, true
	case "createdAt":
		return p.CreatedAt, true
	}
	return nil, false
}

var plantSchema = NewSchema(
	Field{Name: "id", Column: "id", Kind: KindInt},
	Field{Name: "name", Column: "name", Kind: KindString},
	Field{Name: "status", Column: "status", Kind: KindString},
	Field{Name: "price", Column: "price", Kind: KindFloat},
	Field{Name: "stock", Column: "stock", Kind: KindInt},
	Field{Name: "createdAt", Column: "created_at", Kind: KindTime},
)

func plantConfig() Config {
	return Config{
		Schema:       plantSchema,
		DefaultLimit: 10,
		MaxLimit:     100,
		DefaultSort:  "-createdAt",
		SortFields:   []string{"name", "price", "createdAt"},
		FilterFields: []string{"status", "price", "stock", "name"},
		SearchFields: []string{"name"},
		DateField:    "createdAt",
	}
}

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// seedPlants returns n plants with distinct, increasing creation times.
func seedPlants(n int) []plant {
	plants := make([]plant, n)
	for i := range plants {
		status := "available"
		if i%3 == 2 {
			status = "out_of_stock"
		}
		plants[i] = plant{
			ID:        i + 1,
			Name:      fmt.Sprintf("Plant %02d", i+1),
			Status:    status,
			Price:     float64(10 + i),
			Stock:     i,
			CreatedAt: baseTime.AddDate(0, 0, i),
		}
	}
	return plants
}

func memoryPlants(n int) *MemoryCollection[plant] {
	return NewMemoryCollection(seedPlants(n), plantField)
}

// spyCollection records the calls made against an inner collection.
type spyCollection struct {
	inner Collection[plant]

	mu          sync.Mutex
	countCalls  int
	findCalls   int
	countFilter Filter
	findFilter  Filter
	window      Window
	countErr    error
	findErr     error
}

func (s *spyCollection) Count(ctx context.Context, filter Filter) (int64, error) {
	s.mu.Lock()
	s.countCalls++
	s.countFilter = filter
	err := s.countErr
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return s.inner.Count(ctx, filter)
}

func (s *spyCollection) Find(ctx context.Context, filter Filter, sort Sort, window Window) ([]plant, error) {
	s.mu.Lock()
	s.findCalls++
	s.findFilter = filter
	s.window = window
	err := s.findErr
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.inner.Find(ctx, filter, sort, window)
}

func names(plants []plant) []string {
	out := make([]string, len(plants))
	for i, p := range plants {
		out[i] = p.Name
	}
	return out
}
