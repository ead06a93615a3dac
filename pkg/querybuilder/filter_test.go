package querybuilder

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFilter_EqualityAndRange(t *testing.T) {
	filter, err := BuildFilter(Params{
		"status":    "available",
		"price_gte": "12.5",
		"stock_lt":  "4",
		"page":      "3",
	}, plantConfig())
	require.NoError(t, err)

	require.Len(t, filter.Conditions, 3)
	assert.Nil(t, filter.Search)

	// keys are visited in sorted order
	assert.Equal(t, Condition{Field: mustField(t, "price"), Op: OpGte, Value: 12.5}, filter.Conditions[0])
	assert.Equal(t, Condition{Field: mustField(t, "status"), Op: OpEq, Value: "available"}, filter.Conditions[1])
	assert.Equal(t, Condition{Field: mustField(t, "stock"), Op: OpLt, Value: int64(4)}, filter.Conditions[2])
}

func TestBuildFilter_IgnoresUnknownAndEmptyKeys(t *testing.T) {
	filter, err := BuildFilter(Params{
		"passwordHash":   "secret",
		"color_gt":       "5",
		"status":         "  ",
		"_gt":            "1",
		"limit":          "5",
		"createdAt_blah": "x",
	}, plantConfig())
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())
}

func TestBuildFilter_RejectsMalformedTypedValue(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"float", "price", "cheap"},
		{"int range", "stock_gte", "many"},
		{"float range", "price_lte", "1.2.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter(Params{tt.key: tt.value}, plantConfig())

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.key, ve.Param)
			assert.Equal(t, tt.value, ve.Value)
		})
	}
}

func TestBuildFilter_ContainsOnlyOnText(t *testing.T) {
	filter, err := BuildFilter(Params{"name_contains": "Fern"}, plantConfig())
	require.NoError(t, err)
	require.Len(t, filter.Conditions, 1)
	assert.Equal(t, OpContains, filter.Conditions[0].Op)
	assert.Equal(t, "Fern", filter.Conditions[0].Value)

	_, err = BuildFilter(Params{"price_contains": "1"}, plantConfig())
	assert.True(t, IsValidationError(err))
}

func TestBuildFilter_Search(t *testing.T) {
	filter, err := BuildFilter(Params{"search": " monstera "}, plantConfig())
	require.NoError(t, err)
	require.NotNil(t, filter.Search)
	assert.Equal(t, "monstera", filter.Search.Term)
	assert.Equal(t, []Field{mustField(t, "name")}, filter.Search.Fields)

	cfg := plantConfig()
	cfg.SearchFields = nil
	filter, err = BuildFilter(Params{"search": "monstera"}, cfg)
	require.NoError(t, err)
	assert.Nil(t, filter.Search)
}

func TestBuildFilter_DateRange(t *testing.T) {
	filter, err := BuildFilter(Params{"startDate": "2024-03-02", "endDate": "2024-03-04"}, plantConfig())
	require.NoError(t, err)
	require.Len(t, filter.Conditions, 2)

	start := filter.Conditions[0]
	end := filter.Conditions[1]
	assert.Equal(t, OpGte, start.Op)
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), start.Value)
	assert.Equal(t, OpLte, end.Op)
	assert.Equal(t, time.Date(2024, time.March, 4, 23, 59, 59, 999999999, time.UTC), end.Value)
}

func TestBuildFilter_DateRangeTimestampsAreUTC(t *testing.T) {
	filter, err := BuildFilter(Params{"endDate": "2024-03-04T10:00:00+02:00"}, plantConfig())
	require.NoError(t, err)
	require.Len(t, filter.Conditions, 1)

	assert.Equal(t, time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC), filter.Conditions[0].Value)
}

func TestBuildFilter_DateRangeErrors(t *testing.T) {
	tests := []struct {
		name      string
		params    Params
		wantParam string
	}{
		{"bad start", Params{"startDate": "yesterday"}, "startDate"},
		{"bad end", Params{"endDate": "2024-13-45"}, "endDate"},
		{"start after end", Params{"startDate": "2024-05-01", "endDate": "2024-04-01"}, "startDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFilter(tt.params, plantConfig())

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantParam, ve.Param)
		})
	}
}

func TestBuildFilter_DateRangeDisabledWithoutDateField(t *testing.T) {
	cfg := plantConfig()
	cfg.DateField = ""

	filter, err := BuildFilter(Params{"startDate": "not a date"}, cfg)
	require.NoError(t, err)
	assert.True(t, filter.IsEmpty())
}

func TestExecute_DateRangeIsInclusive(t *testing.T) {
	// plants are created at noon on consecutive days from 2024-03-01
	res, err := Execute(context.Background(), memoryPlants(10), Params{
		"startDate": "2024-03-03",
		"endDate":   "2024-03-05",
		"sort":      "createdAt",
	}, plantConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"Plant 03", "Plant 04", "Plant 05"}, names(res.Data))
}

func TestExecute_SearchIsCaseInsensitive(t *testing.T) {
	records := []plant{
		{ID: 1, Name: "Monstera Deliciosa", CreatedAt: baseTime},
		{ID: 2, Name: "Snake Plant", CreatedAt: baseTime.Add(time.Hour)},
		{ID: 3, Name: "monstera adansonii", CreatedAt: baseTime.Add(2 * time.Hour)},
	}
	coll := NewMemoryCollection(records, plantField)

	res, err := Execute(context.Background(), coll, Params{"search": "MONSTERA", "sort": "name"}, plantConfig())
	require.NoError(t, err)

	assert.Equal(t, []string{"Monstera Deliciosa", "monstera adansonii"}, names(res.Data))
	assert.Equal(t, int64(2), res.Pagination.TotalItems)
}

func TestExecute_RangeFilters(t *testing.T) {
	res, err := Execute(context.Background(), memoryPlants(10), Params{
		"price_gt":  "12",
		"price_lte": "15",
		"sort":      "price",
	}, plantConfig())
	require.NoError(t, err)

	// prices run from 10 to 19
	assert.Equal(t, []string{"Plant 04", "Plant 05", "Plant 06"}, names(res.Data))
}

func mustField(t *testing.T, name string) Field {
	t.Helper()
	f, ok := plantSchema.Lookup(name)
	require.True(t, ok, name)
	return f
}
