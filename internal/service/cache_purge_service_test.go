package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alimikegami/point-of-sales/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachePurgeService_Authorize(t *testing.T) {
	cache, _ := newTestCache(t)
	svc := CreateCachePurgeService(cache, newTestConfig())

	t.Run("secret not configured", func(t *testing.T) {
		t.Setenv("CACHE_PURGE_SECRET", "")
		assert.ErrorIs(t, svc.Authorize("Bearer "), errs.ErrUnauthorized)
		assert.ErrorIs(t, svc.Authorize("Bearer anything"), errs.ErrUnauthorized)
	})

	t.Run("token checks", func(t *testing.T) {
		t.Setenv("CACHE_PURGE_SECRET", "s3cret")

		assert.NoError(t, svc.Authorize("Bearer s3cret"))
		assert.ErrorIs(t, svc.Authorize(""), errs.ErrUnauthorized)
		assert.ErrorIs(t, svc.Authorize("s3cret"), errs.ErrUnauthorized)
		assert.ErrorIs(t, svc.Authorize("Basic s3cret"), errs.ErrUnauthorized)
		assert.ErrorIs(t, svc.Authorize("Bearer s3cre"), errs.ErrUnauthorized)
		assert.ErrorIs(t, svc.Authorize("Bearer s3cret2"), errs.ErrUnauthorized)
	})

	t.Run("rotation applies immediately", func(t *testing.T) {
		t.Setenv("CACHE_PURGE_SECRET", "old")
		require.NoError(t, svc.Authorize("Bearer old"))

		t.Setenv("CACHE_PURGE_SECRET", "new")
		assert.ErrorIs(t, svc.Authorize("Bearer old"), errs.ErrUnauthorized)
		assert.NoError(t, svc.Authorize("Bearer new"))
	})
}

func TestCachePurgeService_Purge(t *testing.T) {
	seed := func(t *testing.T) (CachePurgeService, func(string) bool) {
		cache, mr := newTestCache(t)
		mr.Set("storefront:cache:rajaongkir:destinations:bandung:10:0", "[]")
		mr.Set("storefront:cache:rajaongkir:cost:1:2:1000:jne", "[]")
		mr.Set("storefront:cache:pages:home", "<html>")
		mr.Set("storefront:session:abc:shipping", "{}")
		return CreateCachePurgeService(cache, newTestConfig()), mr.Exists
	}

	t.Run("empty store", func(t *testing.T) {
		cache, _ := newTestCache(t)
		n, err := CreateCachePurgeService(cache, newTestConfig()).Purge(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 0, n)
	})

	t.Run("whole namespace", func(t *testing.T) {
		svc, exists := seed(t)

		n, err := svc.Purge(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)
		assert.True(t, exists("storefront:session:abc:shipping"))
	})

	t.Run("narrower prefix", func(t *testing.T) {
		svc, exists := seed(t)

		n, err := svc.Purge(context.Background(), "storefront:cache:rajaongkir:")
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
		assert.True(t, exists("storefront:cache:pages:home"))
	})

	t.Run("outside the namespace", func(t *testing.T) {
		svc, exists := seed(t)

		n, err := svc.Purge(context.Background(), "storefront:session:")
		assert.ErrorIs(t, err, errs.ErrInvalidPrefix)
		assert.EqualValues(t, 0, n)
		assert.True(t, exists("storefront:session:abc:shipping"))
	})

	t.Run("overlapping namespaces keep session keys", func(t *testing.T) {
		cache, mr := newTestCache(t)
		mr.Set("storefront:rajaongkir:cost:1:2:1000:jne", "[]")
		mr.Set("storefront:session:abc:shipping", "{}")
		mr.Set("storefront:session:def:shipping", "{}")

		conf := newTestConfig()
		conf.CacheConfig.KeyPrefix = "storefront:"
		svc := CreateCachePurgeService(cache, conf)

		n, err := svc.Purge(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
		assert.False(t, mr.Exists("storefront:rajaongkir:cost:1:2:1000:jne"))
		assert.True(t, mr.Exists("storefront:session:abc:shipping"))
		assert.True(t, mr.Exists("storefront:session:def:shipping"))

		n, err = svc.Purge(context.Background(), "storefront:session:abc")
		assert.ErrorIs(t, err, errs.ErrInvalidPrefix)
		assert.EqualValues(t, 0, n)
		assert.True(t, mr.Exists("storefront:session:abc:shipping"))
	})

	t.Run("spans several scan pages", func(t *testing.T) {
		cache, mr := newTestCache(t)
		for i := 0; i < 2*PurgePageSize+10; i++ {
			mr.Set(fmt.Sprintf("storefront:cache:pages:%d", i), "x")
		}

		n, err := CreateCachePurgeService(cache, newTestConfig()).Purge(context.Background(), "")
		require.NoError(t, err)
		assert.EqualValues(t, 2*PurgePageSize+10, n)
		assert.Empty(t, mr.Keys())
	})
}

func TestCachePurgeService_PurgeAggregatorCache(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Set("storefront:cache:rajaongkir:cost:1:2:1000:jne", "[]")
	mr.Set("storefront:cache:pages:home", "<html>")

	CreateCachePurgeService(cache, newTestConfig()).PurgeAggregatorCache()

	assert.False(t, mr.Exists("storefront:cache:rajaongkir:cost:1:2:1000:jne"))
	assert.True(t, mr.Exists("storefront:cache:pages:home"))
}

func TestEscapeGlob(t *testing.T) {
	assert.Equal(t, "storefront:cache:", escapeGlob("storefront:cache:"))
	assert.Equal(t, `a\*b\?c\[d\]e\\f`, escapeGlob(`a*b?c[d]e\f`))
}
