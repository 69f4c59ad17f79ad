package services

import (
	"context"
	"log/slog"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

// EventPublisher is the slice of the realtime hub the coordinator needs.
// Nil disables publishing (single-instance deployments without Redis).
type EventPublisher interface {
	Publish(ctx context.Context, ev realtime.Event) error
}

// invalidationService is the single invalidation coordinator. Local
// mutations and remote push events both funnel through it, so the set of
// cache keys derived from a change is computed in exactly one place.
//
// Invalidation is a superset operation: over-invalidating costs one extra
// fetch, under-invalidating shows stale balances. It runs after the DB write
// commits and its failures are logged, never surfaced; the mutation already
// succeeded and the UI must not be told otherwise.
type invalidationService struct {
	BaseService
	store     cache.Store
	publisher EventPublisher
}

// NewInvalidationService creates the coordinator. publisher may be nil.
func NewInvalidationService(store cache.Store, publisher EventPublisher) portssvc.InvalidatorSvc {
	return &invalidationService{store: store, publisher: publisher}
}

var _ portssvc.InvalidatorSvc = (*invalidationService)(nil)

// KeysFor computes the complete invalidation set for a change: for every
// partner in the old/new union, its type's list and aggregated-balance keys
// plus its scoped transaction views; and always the global transaction list,
// since any mutation can appear there. Fixed pseudo-partners carry their own
// dedicated keys and are handled by the same tuple rules.
func (s *invalidationService) KeysFor(info domain.ChangeInfo) []cache.Key {
	seen := make(map[cache.Key]struct{})
	keys := make([]cache.Key, 0, 8)
	add := func(k cache.Key) {
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}

	for _, ref := range info.Union() {
		add(cache.PartnersKey(ref.Tipo))
		add(cache.BalancesKey(ref.Tipo))
		add(cache.PartnerTransaccionesKey(ref))
	}
	add(cache.GlobalTransaccionesKey())
	return keys
}

// TransactionChanged applies the invalidation set for a transaction
// mutation and announces it on the push channel.
func (s *invalidationService) TransactionChanged(ctx context.Context, info domain.ChangeInfo) {
	s.apply(ctx, info)
	s.announce(ctx, realtime.Event{Kind: realtime.KindTransactionUpdated, Refs: info.Union()})
}

// TripChanged applies the invalidation set for a trip mutation. Trip list
// views are invalidated on top of the per-partner set.
func (s *invalidationService) TripChanged(ctx context.Context, info domain.ChangeInfo) {
	s.apply(ctx, info)
	if err := s.store.Invalidate(ctx, cache.ViajesKey()); err != nil {
		s.LogWarn(ctx, "Cache invalidation failed for trip list", slog.String("error", err.Error()))
	}
	s.announce(ctx, realtime.Event{Kind: realtime.KindBalanceUpdated, Refs: info.Union()})
}

// HandleEvent mirrors a remote push event into the same invalidation the
// originating instance performed locally. Duplicate invalidation between
// the local and remote paths is expected and covered by idempotence.
func (s *invalidationService) HandleEvent(ctx context.Context, ev realtime.Event) {
	switch ev.Kind {
	case realtime.KindTransactionUpdated, realtime.KindBalanceUpdated:
		s.apply(ctx, domain.ChangeInfo{NewRefs: ev.Refs})
	case realtime.KindBalanceGlobal:
		if err := s.store.Invalidate(ctx, cache.BalancesKey(ev.Tipo)); err != nil {
			s.LogWarn(ctx, "Cache invalidation failed for remote balance event",
				slog.String("tipo", string(ev.Tipo)),
				slog.String("error", err.Error()))
		}
	}
}

func (s *invalidationService) apply(ctx context.Context, info domain.ChangeInfo) {
	keys := s.KeysFor(info)
	if err := s.store.Invalidate(ctx, keys...); err != nil {
		s.LogWarn(ctx, "Cache invalidation failed; views may stay stale until next reload",
			slog.Int("keys", len(keys)),
			slog.String("error", err.Error()))
		return
	}

	// Per-partner variants (filtered/paginated views) are matched as a
	// tuple predicate so no enumeration of variants can fall behind.
	for _, ref := range info.Union() {
		pred := cache.Key{Resource: cache.ResourceTransacciones, Tipo: ref.Tipo, PartnerID: ref.ID}
		if err := s.store.InvalidateMatching(ctx, pred); err != nil {
			s.LogWarn(ctx, "Cache predicate invalidation failed",
				slog.String("tipo", string(ref.Tipo)),
				slog.String("partner_id", ref.ID),
				slog.String("error", err.Error()))
		}
	}
}

func (s *invalidationService) announce(ctx context.Context, ev realtime.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.LogWarn(ctx, "Failed to publish push event", slog.String("kind", string(ev.Kind)), slog.String("error", err.Error()))
	}
}
