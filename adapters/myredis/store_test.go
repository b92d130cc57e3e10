package myredis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"facilitator/domain"
	"facilitator/interfaces"
	"facilitator/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRedisAddr = "redis://localhost:6379"
const testPrefix = "facilitator_test"

var _ interfaces.RegistrationStore = (*redisStore)(nil)

func setupTestRedis(t *testing.T) (*redisStore, func()) {
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis is not available at %s: %v", testRedisAddr, err)
	}

	store := NewStore(client, testPrefix)
	require.NoError(t, store.Reset(ctx))

	cleanup := func() {
		_ = store.Reset(context.Background())
		client.Close()
	}
	return store, cleanup
}

func mustParse(t *testing.T, spec string) domain.Endpoint {
	t.Helper()
	e, err := domain.Parse(spec, "", 0)
	require.NoError(t, err)
	return e
}

func TestNewStore_DefaultPrefix(t *testing.T) {
	s := NewStore(nil, "")
	assert.Equal(t, "facilitator:queue", s.queueKey)
	assert.Equal(t, "facilitator:members", s.membersKey)
}

func TestStore_AddAndTake(t *testing.T) {
	ctx := context.Background()
	store, cleanup := setupTestRedis(t)
	defer cleanup()

	first := mustParse(t, "[2001:db8::1]:9000")
	second := mustParse(t, "192.0.2.7:9001")

	added, err := store.Add(ctx, first)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add(ctx, mustParse(t, "[2001:0db8::0001]:9000"))
	require.NoError(t, err)
	assert.False(t, added)

	added, err = store.Add(ctx, second)
	require.NoError(t, err)
	assert.True(t, added)

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, size)

	got, ok, err := store.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok, err = store.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)

	_, ok, err = store.Take(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_TakeRemovesFromIndex(t *testing.T) {
	ctx := context.Background()
	store, cleanup := setupTestRedis(t)
	defer cleanup()

	e := mustParse(t, "10.0.0.1:1")
	_, err := store.Add(ctx, e)
	require.NoError(t, err)
	_, ok, err := store.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	added, err := store.Add(ctx, e)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestStore_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	store, cleanup := setupTestRedis(t)
	defer cleanup()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for d := 0; d < 3; d++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := store.Add(ctx, mustParse(t, fmt.Sprintf("10.2.0.%d:80", i+1)))
				assert.NoError(t, err)
			}(i)
		}
	}
	wg.Wait()

	size, err := store.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, size)
}

func TestStore_Take_UndecodableMember(t *testing.T) {
	ctx := context.Background()
	store, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, store.client.RPush(ctx, store.queueKey, "garbage").Err())

	_, ok, err := store.Take(ctx)
	require.Error(t, err)
	assert.False(t, ok)
	assert.True(t, service.IsInternalServerError(err))
}

func TestStore_ClosedClientReturnsInternalServerError(t *testing.T) {
	ctx := context.Background()
	client, err := NewRedisUniversalClient(testRedisAddr)
	require.NoError(t, err)
	client.Close()
	store := NewStore(client, testPrefix)

	_, err = store.Add(ctx, mustParse(t, "10.0.0.1:1"))
	require.Error(t, err)
	assert.True(t, service.IsInternalServerError(err))

	_, _, err = store.Take(ctx)
	require.Error(t, err)
	assert.True(t, service.IsInternalServerError(err))

	_, err = store.Size(ctx)
	require.Error(t, err)
	assert.True(t, service.IsInternalServerError(err))

	err = store.Reset(ctx)
	require.Error(t, err)
	assert.True(t, service.IsInternalServerError(err))
}
