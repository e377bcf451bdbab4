package redis_test

import (
	"context"
	"testing"
	"time"

	"walletledger/internal/adapter/storage/redis"
	"walletledger/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencyCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	cache := redis.NewCurrencyCache(client)
	ctx := context.Background()

	usd := &domain.Currency{ID: 1, Name: "USD", Title: "US Dollar", IsNational: false}

	t.Run("miss returns nil without error", func(t *testing.T) {
		got, err := cache.Get(ctx, "EUR")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get round-trips the currency", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, usd, time.Minute))

		got, err := cache.Get(ctx, "USD")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, usd.ID, got.ID)
		assert.Equal(t, usd.Name, got.Name)
		assert.Equal(t, usd.Title, got.Title)
	})

	t.Run("entry expires after TTL", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, usd, time.Minute))

		mr.FastForward(61 * time.Second)

		got, err := cache.Get(ctx, "USD")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt payload surfaces an error", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "currency:BAD", "{not json", time.Minute).Err())

		got, err := cache.Get(ctx, "BAD")
		assert.Error(t, err)
		assert.Nil(t, got)
	})
}
