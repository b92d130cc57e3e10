package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"facilitator/domain"
	"facilitator/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ interfaces.RegistrationStore = (*store)(nil)

func mustParse(t *testing.T, spec string) domain.Endpoint {
	t.Helper()
	e, err := domain.Parse(spec, "", 0)
	require.NoError(t, err)
	return e
}

func TestStore_AddDeduplicates(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	added, err := s.Add(ctx, mustParse(t, "[2001:db8::1]:9000"))
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(ctx, mustParse(t, "[2001:0db8:0::1]:09000"))
	require.NoError(t, err)
	assert.False(t, added)

	size, err := s.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestStore_DuplicateKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	first := mustParse(t, "10.0.0.1:1")
	second := mustParse(t, "10.0.0.2:2")
	for _, e := range []domain.Endpoint{first, second, first} {
		_, err := s.Add(ctx, e)
		require.NoError(t, err)
	}

	got, ok, err := s.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got)

	got, ok, err = s.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)
}

func TestStore_TakeIsFIFO(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	var want []domain.Endpoint
	for i := 1; i <= 10; i++ {
		e := mustParse(t, fmt.Sprintf("192.0.2.%d:%d", i, 1000+i))
		want = append(want, e)
		added, err := s.Add(ctx, e)
		require.NoError(t, err)
		require.True(t, added)
	}

	for _, w := range want {
		got, ok, err := s.Take(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, w, got)
	}

	got, ok, err := s.Take(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.Endpoint{}, got)
}

func TestStore_TakenEndpointCanRegisterAgain(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	e := mustParse(t, "10.0.0.1:1")

	_, err := s.Add(ctx, e)
	require.NoError(t, err)
	_, ok, err := s.Take(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	added, err := s.Add(ctx, e)
	require.NoError(t, err)
	assert.True(t, added)
}

func TestStore_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const n = 500
	const dupes = 4
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		addedOK int
	)
	for i := 0; i < n; i++ {
		for d := 0; d < dupes; d++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				e := domain.Endpoint{Host: fmt.Sprintf("10.0.%d.%d", i/256, i%256), Port: 9000, Family: domain.FamilyIPv4}
				added, err := s.Add(ctx, e)
				assert.NoError(t, err)
				if added {
					mu.Lock()
					addedOK++
					mu.Unlock()
				}
			}(i)
		}
	}
	wg.Wait()

	assert.Equal(t, n, addedOK)
	size, err := s.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, size)

	seen := make(map[domain.Key]bool)
	for {
		e, ok, err := s.Take(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		assert.False(t, seen[e.Key()], "duplicate %s", e)
		seen[e.Key()] = true
	}
	assert.Len(t, seen, n)
}

func TestStore_ConcurrentAddAndTake(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	const n = 200
	var wg sync.WaitGroup
	taken := make(chan domain.Endpoint, n)
	for i := 0; i < n; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, err := s.Add(ctx, domain.Endpoint{Host: "10.1.0.1", Port: 1 + i, Family: domain.FamilyIPv4})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			if e, ok, _ := s.Take(ctx); ok {
				taken <- e
			}
		}()
	}
	wg.Wait()
	close(taken)

	size, err := s.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, size+len(taken))
}
