package redis

import (
	"testing"
	"time"

	"github.com/greenhouse-labs/catalog/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_DisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{Enabled: false}}

	c, err := NewClient(cfg)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestNewClient_UnreachableServer(t *testing.T) {
	cfg := &config.Config{Redis: config.RedisConfig{
		Enabled:     true,
		Host:        "127.0.0.1",
		Port:        1,
		PoolSize:    1,
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: 200 * time.Millisecond,
	}}

	c, err := NewClient(cfg)
	assert.Error(t, err)
	assert.Nil(t, c)
}
