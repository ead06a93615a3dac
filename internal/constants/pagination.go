package constants

// List Query Parameters
const (
	QueryParamPage      = "page"
	QueryParamLimit     = "limit"
	QueryParamSearch    = "search"
	QueryParamSort      = "sort"
	QueryParamStartDate = "startDate"
	QueryParamEndDate   = "endDate"
)

// DefaultLimit applies when neither the request nor the list config sets one.
const DefaultLimit = 10

// Pagination Limits
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
	// MaxPage keeps (page-1)*limit inside the range every SQL driver accepts for OFFSET.
	MaxPage = 1<<31 - 1
)

// Filter key suffixes selecting a range or substring comparison.
const (
	FilterSuffixGt       = "_gt"
	FilterSuffixGte      = "_gte"
	FilterSuffixLt       = "_lt"
	FilterSuffixLte      = "_lte"
	FilterSuffixContains = "_contains"
)

// SortDescPrefix marks a descending sort specification, e.g. "-createdAt".
const SortDescPrefix = "-"
