package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
)

// balanceService serves pre-aggregated balance maps. The aggregation is one
// SQL query per partner type, cached with a freshness window; callers never
// recompute balances from raw transaction lists.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceRepository
	store       cache.Store
	ttl         time.Duration
}

// NewBalanceService creates a BalanceSvcFacade. ttl is the freshness window
// for cached maps.
func NewBalanceService(balanceRepo portsrepo.BalanceRepository, store cache.Store, ttl time.Duration) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo, store: store, ttl: ttl}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// BalancesForTipo returns the balance map and summary for one partner type.
// Cache hit serves directly; on miss the aggregation runs and the result is
// cached. If the aggregation fails, the last cached map is served instead of
// the error so list pages degrade to stale figures rather than blanking out.
func (s *balanceService) BalancesForTipo(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, domain.BalanceSummary, error) {
	if !tipo.IsValid() {
		return nil, domain.BalanceSummary{}, fmt.Errorf("%w: unknown partner type %q", apperrors.ErrValidation, tipo)
	}

	key := cache.BalancesKey(tipo)

	var cached domain.BalanceMap
	err := s.store.Get(ctx, key, &cached)
	if err == nil {
		return cached, cached.Summarize(), nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.LogWarn(ctx, "Balance cache read failed, falling through to aggregation",
			slog.String("tipo", string(tipo)),
			slog.String("error", err.Error()))
	}

	fresh, aggErr := s.balanceRepo.GetBalancesForTipo(ctx, tipo)
	if aggErr != nil {
		s.LogError(ctx, "Balance aggregation failed", slog.String("tipo", string(tipo)), slog.String("error", aggErr.Error()))

		var stale domain.BalanceMap
		if staleErr := s.store.GetStale(ctx, key, &stale); staleErr == nil {
			s.LogWarn(ctx, "Serving stale balance map after aggregation failure", slog.String("tipo", string(tipo)))
			return stale, stale.Summarize(), nil
		}
		return nil, domain.BalanceSummary{}, fmt.Errorf("aggregating balances for %s: %w", tipo, aggErr)
	}

	if setErr := s.store.Set(ctx, key, fresh, s.ttl); setErr != nil {
		s.LogWarn(ctx, "Balance cache write failed", slog.String("tipo", string(tipo)), slog.String("error", setErr.Error()))
	}

	return fresh, fresh.Summarize(), nil
}
