package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
)

// PgxBalanceRepository aggregates balances in SQL. The sign of each
// transaction contribution comes from domain.SignFor so the convention has
// exactly one implementation; the query only applies the two per-side signs
// it is handed.
type PgxBalanceRepository struct {
	db *pgxpool.Pool
}

func newPgxBalanceRepository(db *pgxpool.Pool) portsrepo.BalanceRepository {
	return &PgxBalanceRepository{db: db}
}

var _ portsrepo.BalanceRepository = (*PgxBalanceRepository)(nil)

// tripFlow describes how completed trips feed a partner type's balance:
// which viajes column references the partner, which money column accrues,
// and with what sign. Positive means the business owes the partner.
type tripFlow struct {
	refColumn  string
	amountExpr string
}

var tripFlows = map[domain.PartnerType]tripFlow{
	domain.PartnerMina:       {refColumn: "mina_id", amountExpr: "v.total_compra"},
	domain.PartnerVolquetero: {refColumn: "volquetero_id", amountExpr: "v.total_flete"},
	domain.PartnerComprador:  {refColumn: "comprador_id", amountExpr: "-v.valor_consignar"},
}

// GetBalancesForTipo returns the aggregated balance map for one partner
// type. Regular partners combine completed-transaction contributions with
// trip-derived accruals plus trip counts; fixed pseudo-partners aggregate
// transactions only.
func (r *PgxBalanceRepository) GetBalancesForTipo(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, error) {
	if tipo.IsFixed() {
		return r.fixedPartnerBalance(ctx, tipo)
	}
	return r.regularPartnerBalances(ctx, tipo)
}

func (r *PgxBalanceRepository) regularPartnerBalances(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, error) {
	originSign := domain.SignFor(tipo, domain.SideOrigin)
	destSign := domain.SignFor(tipo, domain.SideDestination)

	tripJoin := ""
	tripBalance := "0"
	tripCount := "0"
	tripRecent := "0"
	if flow, ok := tripFlows[tipo]; ok {
		tripJoin = fmt.Sprintf(`
		LEFT JOIN LATERAL (
			SELECT
				COALESCE(SUM(CASE WHEN v.estado = 'completado' THEN %s ELSE 0 END), 0) AS trip_sum,
				COUNT(*) AS trip_count,
				COUNT(*) FILTER (WHERE v.fecha_cargue >= NOW() - INTERVAL '30 days') AS trip_recent
			FROM viajes v
			WHERE v.%s = p.partner_id
		) trips ON TRUE`, flow.amountExpr, flow.refColumn)
		tripBalance = "trips.trip_sum"
		tripCount = "trips.trip_count"
		tripRecent = "trips.trip_recent"
	}

	query := fmt.Sprintf(`
		SELECT
			p.partner_id::text,
			COALESCE(txns.txn_sum, 0) + %s AS balance,
			%s AS viajes_count,
			%s AS viajes_ultimo_mes
		FROM partners p
		LEFT JOIN LATERAL (
			SELECT SUM(
				CASE
					WHEN t.de_quien_tipo = $1 AND t.de_quien_id = p.partner_id::text THEN t.monto * $2
					ELSE t.monto * $3
				END
			) AS txn_sum
			FROM transacciones t
			WHERE t.estado = 'completado'
			  AND ((t.de_quien_tipo = $1 AND t.de_quien_id = p.partner_id::text)
			    OR (t.para_quien_tipo = $1 AND t.para_quien_id = p.partner_id::text))
		) txns ON TRUE%s
		WHERE p.tipo = $1 AND p.is_active;
	`, tripBalance, tripCount, tripRecent, tripJoin)

	rows, err := r.db.Query(ctx, query, string(tipo), originSign, destSign)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate %s balances: %w", tipo, err)
	}
	defer rows.Close()

	balances := make(domain.BalanceMap)
	for rows.Next() {
		var (
			partnerID string
			balance   decimal.Decimal
			count     int
			recent    int
		)
		if err := rows.Scan(&partnerID, &balance, &count, &recent); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances[partnerID] = domain.PartnerBalance{
			Balance:         balance,
			ViajesCount:     count,
			ViajesUltimoMes: recent,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating balance rows: %w", err)
	}
	return balances, nil
}

// fixedPartnerBalance aggregates the ledger of one pseudo-partner. There is
// no partners row; the ref's ID is the type name itself.
func (r *PgxBalanceRepository) fixedPartnerBalance(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, error) {
	originSign := domain.SignFor(tipo, domain.SideOrigin)
	destSign := domain.SignFor(tipo, domain.SideDestination)

	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN t.de_quien_tipo = $1 AND t.de_quien_id = $1 THEN t.monto * $2
				ELSE t.monto * $3
			END
		), 0)
		FROM transacciones t
		WHERE t.estado = 'completado'
		  AND ((t.de_quien_tipo = $1 AND t.de_quien_id = $1)
		    OR (t.para_quien_tipo = $1 AND t.para_quien_id = $1));
	`
	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, query, string(tipo), originSign, destSign).Scan(&balance); err != nil {
		return nil, fmt.Errorf("failed to aggregate %s balance: %w", tipo, err)
	}

	return domain.BalanceMap{
		string(tipo): domain.PartnerBalance{Balance: balance},
	}, nil
}
