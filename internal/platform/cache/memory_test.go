package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

func TestMemoryStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := BalancesKey(domain.PartnerMina)

	var missed map[string]int
	assert.ErrorIs(t, store.Get(ctx, key, &missed), ErrMiss)

	require.NoError(t, store.Set(ctx, key, map[string]int{"7": 3}, 0))

	var got map[string]int
	require.NoError(t, store.Get(ctx, key, &got))
	assert.Equal(t, map[string]int{"7": 3}, got)
}

func TestMemoryStore_InvalidateKeepsStaleCopy(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := BalancesKey(domain.PartnerComprador)

	require.NoError(t, store.Set(ctx, key, "v1", 0))
	require.NoError(t, store.Invalidate(ctx, key))

	var live string
	assert.ErrorIs(t, store.Get(ctx, key, &live), ErrMiss)

	var stale string
	require.NoError(t, store.GetStale(ctx, key, &stale))
	assert.Equal(t, "v1", stale)
}

func TestMemoryStore_InvalidateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := PartnersKey(domain.PartnerTercero)

	require.NoError(t, store.Set(ctx, key, "v", 0))
	require.NoError(t, store.Invalidate(ctx, key))
	require.NoError(t, store.Invalidate(ctx, key))
	assert.False(t, store.Contains(key))
}

func TestMemoryStore_InvalidateMatching(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	scoped1 := Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7", Variant: "p1"}
	scoped2 := Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7", Variant: "p2"}
	other := Key{Resource: ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "8"}

	for _, k := range []Key{scoped1, scoped2, other} {
		require.NoError(t, store.Set(ctx, k, "v", 0))
	}

	require.NoError(t, store.InvalidateMatching(ctx, Key{
		Resource:  ResourceTransacciones,
		Tipo:      domain.PartnerMina,
		PartnerID: "7",
	}))

	assert.False(t, store.Contains(scoped1))
	assert.False(t, store.Contains(scoped2))
	assert.True(t, store.Contains(other), "other partner's views stay cached")
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	key := BalancesKey(domain.PartnerVolquetero)

	require.NoError(t, store.Set(ctx, key, "v", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	var live string
	assert.ErrorIs(t, store.Get(ctx, key, &live), ErrMiss, "live copy expires")

	var stale string
	require.NoError(t, store.GetStale(ctx, key, &stale), "stale copy survives expiry")
	assert.Equal(t, "v", stale)
}
