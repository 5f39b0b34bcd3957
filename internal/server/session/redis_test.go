package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/siteback/internal/common"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_CreateResolveDestroy(t *testing.T) {
	s, mr := newRedisStore(t, 0)
	ctx := context.Background()

	token, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, token, 2*TokenBytes)
	assert.True(t, mr.Exists(defaultRedisPrefix+token))
	assert.Equal(t, time.Duration(0), mr.TTL(defaultRedisPrefix+token))

	id, err := s.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	require.NoError(t, s.Destroy(ctx, token))
	require.NoError(t, s.Destroy(ctx, token))

	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	s, mr := newRedisStore(t, 30*time.Minute)
	ctx := context.Background()

	token, err := s.Create(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, mr.TTL(defaultRedisPrefix+token))

	mr.FastForward(31 * time.Minute)

	_, err = s.Resolve(ctx, token)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	n, err := s.Sweep(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStore_LenCountsOnlyPrefix(t *testing.T) {
	s, mr := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, mr.Set("unrelated", "x"))
	for i := 0; i < 3; i++ {
		_, err := s.Create(ctx, int64(i))
		require.NoError(t, err)
	}

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRedisStore_CustomPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s := NewRedisStore(client, 0, WithPrefix("test:"))
	token, err := s.Create(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:"+token))
}

func TestRedisStore_BackendDown(t *testing.T) {
	s, mr := newRedisStore(t, 0)
	mr.Close()

	_, err := s.Resolve(context.Background(), "whatever")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	_ = client.Close()

	addr := mr.Addr()
	mr.Close()
	_, err = NewRedisClient(context.Background(), addr, "", 0)
	assert.Error(t, err)
}
