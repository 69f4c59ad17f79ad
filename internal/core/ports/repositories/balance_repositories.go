package repositories

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// BalanceRepository aggregates balances server-side. The client never
// recomputes these from raw lists.
type BalanceRepository interface {
	// GetBalancesForTipo returns the aggregated balance map for one partner
	// type: signed transaction contributions plus trip-derived flows, with
	// trip counts and trips in the last 30 days.
	GetBalancesForTipo(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, error)
}
