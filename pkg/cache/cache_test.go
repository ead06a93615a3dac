package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGetDelete(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	c.Set("plant:1", []byte(`{"id":1}`), time.Minute)

	got, ok := c.Get("plant:1")
	assert.True(t, ok)
	assert.Equal(t, `{"id":1}`, string(got))

	c.Delete("plant:1")
	_, ok = c.Get("plant:1")
	assert.False(t, ok)
}

func TestCache_ExpiredItemsAreHidden(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	c.Set("k", []byte("v"), -time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.sweep()
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeletePrefix(t *testing.T) {
	c := NewCache(time.Minute)
	defer c.Close()

	c.Set("catalog:plant:1", []byte("a"), time.Minute)
	c.Set("catalog:plant:2", []byte("b"), time.Minute)
	c.Set("catalog:category:1", []byte("c"), time.Minute)

	assert.Equal(t, 2, c.DeletePrefix("catalog:plant:"))
	assert.Equal(t, 1, c.Len())
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Close()
	c.Close()
}
