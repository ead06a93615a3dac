package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, plantConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown sort field", func(c *Config) { c.SortFields = append(c.SortFields, "color") }},
		{"unknown filter field", func(c *Config) { c.FilterFields = []string{"secret"} }},
		{"non text search field", func(c *Config) { c.SearchFields = []string{"price"} }},
		{"date field not a time", func(c *Config) { c.DateField = "name" }},
		{"default sort not allowed", func(c *Config) { c.DefaultSort = "-stock" }},
		{"negative limit", func(c *Config) { c.MaxLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := plantConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestResolveSort(t *testing.T) {
	cfg := plantConfig()

	s, err := ResolveSort("", cfg)
	require.NoError(t, err)
	assert.Equal(t, "createdAt", s.Field.Name)
	assert.True(t, s.Desc)
	assert.Equal(t, "-createdAt", s.String())

	s, err = ResolveSort("price", cfg)
	require.NoError(t, err)
	assert.Equal(t, "price", s.Field.Column)
	assert.False(t, s.Desc)

	_, err = ResolveSort("-", cfg)
	assert.True(t, IsValidationError(err))
}
