package querybuilder

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNextPage  bool  `json:"hasNextPage"`
	HasPrevPage  bool  `json:"hasPrevPage"`
}

// Result is the list response envelope.
type Result[T any] struct {
	Success    bool       `json:"success"`
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func NewPagination(page, limit int, total int64) Pagination {
	var totalPages int
	if limit > 0 && total > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   total,
		ItemsPerPage: limit,
		HasNextPage:  page < totalPages,
		HasPrevPage:  page > 1,
	}
}

// NewResult wraps one page of items. Data is never nil so it encodes as [].
func NewResult[T any](items []T, page, limit int, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Success:    true,
		Data:       items,
		Pagination: NewPagination(page, limit, total),
	}
}

// MapResult converts the items of r while keeping its pagination.
func MapResult[T, U any](r *Result[T], fn func(T) U) *Result[U] {
	data := make([]U, len(r.Data))
	for i, item := range r.Data {
		data[i] = fn(item)
	}
	return &Result[U]{
		Success:    r.Success,
		Data:       data,
		Pagination: r.Pagination,
	}
}
