package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/config"
)

func TestNew_NoURLMeansNoCache(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestOptions(t *testing.T) {
	t.Run("overlays configured values", func(t *testing.T) {
		opts, err := options(config.RedisConfig{
			URL:         "redis://cache:6380/2",
			PoolSize:    7,
			DialTimeout: 2 * time.Second,
			ReadTimeout: time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, "cache:6380", opts.Addr)
		assert.Equal(t, 2, opts.DB)
		assert.Equal(t, 7, opts.PoolSize)
		assert.Equal(t, 2*time.Second, opts.DialTimeout)
		assert.Equal(t, time.Second, opts.ReadTimeout)
	})

	t.Run("zero values keep client defaults", func(t *testing.T) {
		opts, err := options(config.RedisConfig{URL: "redis://localhost:6379"})
		require.NoError(t, err)
		assert.Zero(t, opts.PoolSize)
		assert.Zero(t, opts.WriteTimeout)
	})

	t.Run("rejects a malformed URL", func(t *testing.T) {
		_, err := options(config.RedisConfig{URL: "http://not-redis"})
		assert.Error(t, err)
	})
}
