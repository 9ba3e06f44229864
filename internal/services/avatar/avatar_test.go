package avatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, CacheKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, CacheKey, "data:image/png;base64,abc"))

	v, ok, err := s.Get(ctx, CacheKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,abc", v)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	s := NewRedisStoreFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	_, ok, err := s.Get(ctx, CacheKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing key reads as a cache miss, not an error")

	require.NoError(t, s.Put(ctx, CacheKey, "cached-avatar"))

	v, ok, err := s.Get(ctx, CacheKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "cached-avatar", v)
}

func TestEnsureFallsBackWithoutKey(t *testing.T) {
	g := NewGenerator("", NewMemoryStore())
	assert.Equal(t, FallbackURL, g.Ensure(context.Background()))
}

func TestEnsureGeneratesOnceAndCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"inlineData":{"mimeType":"image/png","data":"QUJD"}}]}}]}`))
	}))
	defer srv.Close()

	store := NewMemoryStore()
	g := NewGenerator("test-key", store)
	g.baseURL = srv.URL

	first := g.Ensure(context.Background())
	assert.Equal(t, "data:image/png;base64,QUJD", first)

	second := g.Ensure(context.Background())
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls, "second call must come from the cache")

	v, ok, err := store.Get(context.Background(), CacheKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, first, v)
}

func TestEnsureFallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := NewGenerator("test-key", NewMemoryStore())
	g.baseURL = srv.URL

	assert.Equal(t, FallbackURL, g.Ensure(context.Background()))
}

func TestParseInlineImage(t *testing.T) {
	got, err := parseInlineImage(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": "Here is your mascot"},
						map[string]interface{}{"inlineData": map[string]interface{}{"data": "ZGF0YQ=="}},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,ZGF0YQ==", got)

	_, err = parseInlineImage(map[string]interface{}{
		"candidates": []interface{}{
			map[string]interface{}{
				"content": map[string]interface{}{
					"parts": []interface{}{
						map[string]interface{}{"text": "text only"},
					},
				},
			},
		},
	})
	assert.Error(t, err)
}
