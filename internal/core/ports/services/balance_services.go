package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// BalanceSvcFacade serves the pre-aggregated balance maps. Results are
// cached with a freshness window and refreshed only via invalidation;
// on aggregation failure the last cached map is served (stale-while-error).
type BalanceSvcFacade interface {
	BalancesForTipo(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, domain.BalanceSummary, error)
}
