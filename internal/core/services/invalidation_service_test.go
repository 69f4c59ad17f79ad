package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/core/services"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

func seedAllViews(t *testing.T, store *cache.MemoryStore, refs ...domain.PartnerRef) {
	t.Helper()
	ctx := context.Background()
	for _, tipo := range domain.RegularPartnerTypes {
		require.NoError(t, store.Set(ctx, cache.PartnersKey(tipo), "v", 0))
		require.NoError(t, store.Set(ctx, cache.BalancesKey(tipo), "v", 0))
	}
	for _, tipo := range domain.FixedPartnerTypes {
		require.NoError(t, store.Set(ctx, cache.BalancesKey(tipo), "v", 0))
	}
	for _, ref := range refs {
		require.NoError(t, store.Set(ctx, cache.PartnerTransaccionesKey(ref), "v", 0))
	}
	require.NoError(t, store.Set(ctx, cache.GlobalTransaccionesKey(), "v", 0))
	require.NoError(t, store.Set(ctx, cache.ViajesKey(), "v", 0))
}

func TestInvalidationService_TransactionChanged(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	publisher := &recordingPublisher{}
	svc := services.NewInvalidationService(store, publisher)

	mina := domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"}
	rodmar := domain.FixedRef(domain.PartnerRodMar)
	seedAllViews(t, store, mina, rodmar)

	txn := domain.Transaccion{DeQuien: mina, ParaQuien: rodmar}
	svc.TransactionChanged(ctx, domain.TransactionChange(nil, &txn))

	// Both touched partners lose their derived views, fixed pseudo-partner
	// included, plus the global list.
	assert.False(t, store.Contains(cache.PartnersKey(domain.PartnerMina)))
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerMina)))
	assert.False(t, store.Contains(cache.PartnerTransaccionesKey(mina)))
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerRodMar)))
	assert.False(t, store.Contains(cache.PartnerTransaccionesKey(rodmar)))
	assert.False(t, store.Contains(cache.GlobalTransaccionesKey()))

	// Untouched partner types keep their views.
	assert.True(t, store.Contains(cache.PartnersKey(domain.PartnerComprador)))
	assert.True(t, store.Contains(cache.BalancesKey(domain.PartnerComprador)))
	assert.True(t, store.Contains(cache.PartnersKey(domain.PartnerVolquetero)))
	assert.True(t, store.Contains(cache.BalancesKey(domain.PartnerBanco)))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, realtime.KindTransactionUpdated, publisher.events[0].Kind)
	assert.Equal(t, []domain.PartnerRef{mina, rodmar}, publisher.events[0].Refs)
}

func TestInvalidationService_DeleteCoversSameSetAsCreate(t *testing.T) {
	svc := services.NewInvalidationService(cache.NewMemoryStore(), nil)

	txn := domain.Transaccion{
		DeQuien:   domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"},
		ParaQuien: domain.PartnerRef{Tipo: domain.PartnerVolquetero, ID: "3"},
	}

	createKeys := svc.KeysFor(domain.TransactionChange(nil, &txn))
	deleteKeys := svc.KeysFor(domain.TransactionChange(&txn, nil))
	assert.ElementsMatch(t, createKeys, deleteKeys)
}

func TestInvalidationService_TripChangedInvalidatesTripList(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	publisher := &recordingPublisher{}
	svc := services.NewInvalidationService(store, publisher)

	viaje := domain.Viaje{MinaID: "1", CompradorID: "2", VolqueteroID: "3"}
	seedAllViews(t, store, viaje.Refs()...)

	svc.TripChanged(ctx, domain.TripChange(nil, &viaje))

	assert.False(t, store.Contains(cache.ViajesKey()))
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerMina)))
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerComprador)))
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerVolquetero)))
	assert.True(t, store.Contains(cache.BalancesKey(domain.PartnerTercero)))

	require.Len(t, publisher.events, 1)
	assert.Equal(t, realtime.KindBalanceUpdated, publisher.events[0].Kind)
}

func TestInvalidationService_ScopedVariantsInvalidatedByPredicate(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := services.NewInvalidationService(store, nil)

	mina := domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"}
	variant := cache.Key{Resource: cache.ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "7", Variant: "estado=pendiente"}
	otherPartner := cache.Key{Resource: cache.ResourceTransacciones, Tipo: domain.PartnerMina, PartnerID: "8", Variant: "estado=pendiente"}
	require.NoError(t, store.Set(ctx, variant, "v", 0))
	require.NoError(t, store.Set(ctx, otherPartner, "v", 0))

	txn := domain.Transaccion{DeQuien: mina, ParaQuien: domain.FixedRef(domain.PartnerRodMar)}
	svc.TransactionChanged(ctx, domain.TransactionChange(nil, &txn))

	assert.False(t, store.Contains(variant), "filtered views of the touched partner go too")
	assert.True(t, store.Contains(otherPartner))
}

func TestInvalidationService_HandleRemoteEvents(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := services.NewInvalidationService(store, nil)

	mina := domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"}
	seedAllViews(t, store, mina)

	svc.HandleEvent(ctx, realtime.Event{Kind: realtime.KindTransactionUpdated, Refs: []domain.PartnerRef{mina}})
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerMina)))
	assert.False(t, store.Contains(cache.PartnerTransaccionesKey(mina)))
	assert.False(t, store.Contains(cache.GlobalTransaccionesKey()))

	// Per-type global balance event only drops that type's balance map.
	seedAllViews(t, store, mina)
	svc.HandleEvent(ctx, realtime.Event{Kind: realtime.KindBalanceGlobal, Tipo: domain.PartnerComprador})
	assert.False(t, store.Contains(cache.BalancesKey(domain.PartnerComprador)))
	assert.True(t, store.Contains(cache.BalancesKey(domain.PartnerMina)))
	assert.True(t, store.Contains(cache.GlobalTransaccionesKey()))
}

func TestInvalidationService_PublishFailureDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	svc := services.NewInvalidationService(store, &recordingPublisher{err: assert.AnError})

	txn := domain.Transaccion{
		DeQuien:   domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"},
		ParaQuien: domain.FixedRef(domain.PartnerRodMar),
	}
	assert.NotPanics(t, func() {
		svc.TransactionChanged(ctx, domain.TransactionChange(nil, &txn))
	})
}
