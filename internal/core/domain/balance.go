package domain

import "github.com/shopspring/decimal"

// PartnerBalance is the pre-aggregated figure set served per partner by the
// /api/balances/:tipo endpoint. Derived server-side, never persisted.
type PartnerBalance struct {
	Balance         decimal.Decimal `json:"balance"`
	ViajesCount     int             `json:"viajesCount"`
	ViajesUltimoMes int             `json:"viajesUltimoMes"`
}

// BalanceMap maps partner ID to its aggregated balance figures.
type BalanceMap map[string]PartnerBalance

// BalanceSummary condenses a BalanceMap for list page headers.
type BalanceSummary struct {
	Positives decimal.Decimal `json:"positives"` // sum of positive balances
	Negatives decimal.Decimal `json:"negatives"` // sum of absolute negative balances
	Net       decimal.Decimal `json:"net"`
}

// Summarize folds a balance map into its summary.
func (m BalanceMap) Summarize() BalanceSummary {
	s := BalanceSummary{
		Positives: decimal.Zero,
		Negatives: decimal.Zero,
		Net:       decimal.Zero,
	}
	for _, b := range m {
		if b.Balance.IsPositive() {
			s.Positives = s.Positives.Add(b.Balance)
		} else {
			s.Negatives = s.Negatives.Add(b.Balance.Abs())
		}
		s.Net = s.Net.Add(b.Balance)
	}
	return s
}
