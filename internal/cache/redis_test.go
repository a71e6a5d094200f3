package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHospitalServicesKey(t *testing.T) {
	assert.Equal(t, "catalog:hospital:42:services", HospitalServicesKey(42))
	assert.NotEqual(t, HospitalsKey, HospitalServicesKey(0))
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	_, err := NewRedisCache("redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	c, err := NewRedisCache(url)
	require.NoError(t, err)
	ctx := context.Background()

	type entry struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	key := "test:" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, c.SetJSON(ctx, key, []entry{{"MRI", 900}}, time.Minute))

	var got []entry
	require.NoError(t, c.GetJSON(ctx, key, &got))
	assert.Equal(t, []entry{{"MRI", 900}}, got)

	require.NoError(t, c.Delete(ctx, key))
	assert.ErrorIs(t, c.GetJSON(ctx, key, &got), ErrMiss)
}
