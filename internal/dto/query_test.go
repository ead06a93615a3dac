package dto

import (
	"testing"

	"github.com/greenhouse-labs/catalog/config"
	qb "github.com/greenhouse-labs/catalog/pkg/querybuilder"
	"github.com/stretchr/testify/assert"
)

func TestQueryConfigs_AreValid(t *testing.T) {
	limits := config.QueryConfig{DefaultLimit: 10, MaxLimit: 100}

	configs := map[string]qb.Config{
		"users":      UserQueryConfig(limits),
		"categories": CategoryQueryConfig(limits),
		"plants":     PlantQueryConfig(limits),
		"favorites":  FavoriteQueryConfig(limits),
	}

	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, cfg.Validate())
			assert.Equal(t, 10, cfg.DefaultLimit)
			assert.Equal(t, 100, cfg.MaxLimit)
		})
	}
}

func TestUserQueryConfig_PasswordNeverQueryable(t *testing.T) {
	cfg := UserQueryConfig(config.QueryConfig{DefaultLimit: 10, MaxLimit: 100})

	_, ok := cfg.Schema.Lookup("password")
	assert.False(t, ok)

	_, err := qb.Resolve(qb.Params{"sort": "password"}, cfg)
	assert.True(t, qb.IsValidationError(err))

	q, err := qb.Resolve(qb.Params{"password": "hunter2"}, cfg)
	assert.NoError(t, err)
	assert.True(t, q.Filter.IsEmpty())
}
