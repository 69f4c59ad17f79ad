package dto

import (
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalancesResponse is the pre-aggregated balance map for one partner type,
// with the derived summary for list page headers.
type BalancesResponse struct {
	Balances map[string]PartnerBalanceDTO `json:"balances"`
	Summary  BalanceSummaryDTO            `json:"summary"`
}

// PartnerBalanceDTO is the figure set served per partner.
type PartnerBalanceDTO struct {
	Balance         decimal.Decimal `json:"balance"`
	ViajesCount     int             `json:"viajesCount"`
	ViajesUltimoMes int             `json:"viajesUltimoMes"`
}

// BalanceSummaryDTO condenses a balance map.
type BalanceSummaryDTO struct {
	Positives decimal.Decimal `json:"positives"`
	Negatives decimal.Decimal `json:"negatives"`
	Net       decimal.Decimal `json:"net"`
}

// ToBalancesResponse converts a domain balance map and summary to the DTO.
func ToBalancesResponse(m domain.BalanceMap, s domain.BalanceSummary) BalancesResponse {
	balances := make(map[string]PartnerBalanceDTO, len(m))
	for id, b := range m {
		balances[id] = PartnerBalanceDTO{
			Balance:         b.Balance,
			ViajesCount:     b.ViajesCount,
			ViajesUltimoMes: b.ViajesUltimoMes,
		}
	}
	return BalancesResponse{
		Balances: balances,
		Summary: BalanceSummaryDTO{
			Positives: s.Positives,
			Negatives: s.Negatives,
			Net:       s.Net,
		},
	}
}
