package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/quicktrace/pkg/adapters/redis"
	"github.com/aretw0/quicktrace/pkg/domain"
	"github.com/aretw0/quicktrace/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newStore(t)
	ports.RunTraceStoreContract(t, store)
}

func TestRedisStore_KeysAndTTL(t *testing.T) {
	store, mr := newStore(t, redis.WithPrefix("test:"), redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	trace := domain.NewTrace("t1", time.Now().UTC(), []int{3, 1}, &domain.SortReport{FinalArray: []int{1, 3}})
	require.NoError(t, store.Save(ctx, trace))

	assert.True(t, mr.Exists("test:trace:t1"))
	assert.Equal(t, time.Minute, mr.TTL("test:trace:t1"))
	assert.True(t, mr.Exists("test:index"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestRedisStore_IndexNamedTrace(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"index", "trace:index", "a"} {
		trace := domain.NewTrace(id, time.Now().UTC(), []int{2, 1}, &domain.SortReport{FinalArray: []int{1, 2}})
		require.NoError(t, store.Save(ctx, trace), id)
	}

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index", "trace:index", "a"}, ids)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, loaded.Report.FinalArray)

	require.NoError(t, store.Delete(ctx, "index"))
	ids, err = store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"trace:index", "a"}, ids)
}
