package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/models"
	"github.com/rodmarapp/rodmar_backend/internal/utils/pagination"
)

type PgxTransaccionRepository struct {
	db *pgxpool.Pool
}

func newPgxTransaccionRepository(db *pgxpool.Pool) portsrepo.TransaccionRepositoryFacade {
	return &PgxTransaccionRepository{db: db}
}

var _ portsrepo.TransaccionRepositoryFacade = (*PgxTransaccionRepository)(nil)

func toModelTransaccion(d domain.Transaccion) models.Transaccion {
	return models.Transaccion{
		TransaccionID:    d.TransaccionID,
		DeQuienTipo:      string(d.DeQuien.Tipo),
		DeQuienID:        d.DeQuien.ID,
		ParaQuienTipo:    string(d.ParaQuien.Tipo),
		ParaQuienID:      d.ParaQuien.ID,
		Concepto:         d.Concepto,
		Monto:            d.Monto,
		Fecha:            d.Fecha,
		MetodoPago:       string(d.MetodoPago),
		Comprobante:      nullString(d.Comprobante),
		Comentario:       nullString(d.Comentario),
		Estado:           string(d.Estado),
		DetalleSolicitud: nullString(d.DetalleSolicitud),
		ViajeID:          nullString(d.ViajeID),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaccion(m models.Transaccion) domain.Transaccion {
	return domain.Transaccion{
		TransaccionID:    m.TransaccionID,
		DeQuien:          domain.PartnerRef{Tipo: domain.PartnerType(m.DeQuienTipo), ID: m.DeQuienID},
		ParaQuien:        domain.PartnerRef{Tipo: domain.PartnerType(m.ParaQuienTipo), ID: m.ParaQuienID},
		Concepto:         m.Concepto,
		Monto:            m.Monto,
		Fecha:            m.Fecha,
		MetodoPago:       domain.MetodoPago(m.MetodoPago),
		Comprobante:      m.Comprobante.String,
		Comentario:       m.Comentario.String,
		Estado:           domain.TransaccionEstado(m.Estado),
		DetalleSolicitud: m.DetalleSolicitud.String,
		ViajeID:          m.ViajeID.String,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

const transaccionColumns = `transaccion_id, de_quien_tipo, de_quien_id, para_quien_tipo, para_quien_id,
	concepto, monto, fecha, metodo_pago, comprobante, comentario, estado, detalle_solicitud, viaje_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaccion(row pgx.Row) (models.Transaccion, error) {
	var m models.Transaccion
	err := row.Scan(
		&m.TransaccionID,
		&m.DeQuienTipo,
		&m.DeQuienID,
		&m.ParaQuienTipo,
		&m.ParaQuienID,
		&m.Concepto,
		&m.Monto,
		&m.Fecha,
		&m.MetodoPago,
		&m.Comprobante,
		&m.Comentario,
		&m.Estado,
		&m.DetalleSolicitud,
		&m.ViajeID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxTransaccionRepository) SaveTransaccion(ctx context.Context, txn domain.Transaccion) error {
	m := toModelTransaccion(txn)
	query := `
		INSERT INTO transacciones (` + transaccionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.db.Exec(ctx, query,
		m.TransaccionID, m.DeQuienTipo, m.DeQuienID, m.ParaQuienTipo, m.ParaQuienID,
		m.Concepto, m.Monto, m.Fecha, m.MetodoPago, m.Comprobante, m.Comentario,
		m.Estado, m.DetalleSolicitud, m.ViajeID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

func (r *PgxTransaccionRepository) FindTransaccionByID(ctx context.Context, transaccionID string) (*domain.Transaccion, error) {
	query := `
		SELECT ` + transaccionColumns + `
		FROM transacciones
		WHERE transaccion_id = $1;
	`
	m, err := scanTransaccion(r.db.QueryRow(ctx, query, transaccionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transaccionID, err)
	}
	txn := toDomainTransaccion(m)
	return &txn, nil
}

// ListTransacciones pages by (fecha DESC, created_at DESC) with an opaque
// cursor. A partner filter matches the partner on either side.
func (r *PgxTransaccionRepository) ListTransacciones(ctx context.Context, params portsrepo.ListTransaccionesParams) ([]domain.Transaccion, *string, error) {
	query := `
		SELECT ` + transaccionColumns + `
		FROM transacciones
		WHERE 1=1`
	args := []any{}
	argN := 1

	if params.Partner != nil {
		query += fmt.Sprintf(`
		AND ((de_quien_tipo = $%d AND de_quien_id = $%d) OR (para_quien_tipo = $%d AND para_quien_id = $%d))`,
			argN, argN+1, argN, argN+1)
		args = append(args, string(params.Partner.Tipo), params.Partner.ID)
		argN += 2
	}
	if params.Estado != "" {
		query += fmt.Sprintf(`
		AND estado = $%d`, argN)
		args = append(args, string(params.Estado))
		argN++
	}
	if params.NextToken != nil {
		fecha, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(`
		AND (fecha, created_at) < ($%d, $%d)`, argN, argN+1)
		args = append(args, fecha, createdAt)
		argN += 2
	}

	// Fetch one extra row to know whether a next page exists.
	query += fmt.Sprintf(`
		ORDER BY fecha DESC, created_at DESC
		LIMIT $%d;`, argN)
	args = append(args, params.Limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	txns := make([]domain.Transaccion, 0, params.Limit)
	for rows.Next() {
		m, err := scanTransaccion(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaccion(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}

	var nextToken *string
	if len(txns) > params.Limit {
		txns = txns[:params.Limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Fecha, last.CreatedAt)
		nextToken = &token
	}
	return txns, nextToken, nil
}

func (r *PgxTransaccionRepository) UpdateTransaccion(ctx context.Context, txn domain.Transaccion) error {
	m := toModelTransaccion(txn)
	query := `
		UPDATE transacciones
		SET de_quien_tipo = $2, de_quien_id = $3, para_quien_tipo = $4, para_quien_id = $5,
			concepto = $6, monto = $7, fecha = $8, metodo_pago = $9, comprobante = $10,
			comentario = $11, estado = $12, detalle_solicitud = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE transaccion_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.TransaccionID, m.DeQuienTipo, m.DeQuienID, m.ParaQuienTipo, m.ParaQuienID,
		m.Concepto, m.Monto, m.Fecha, m.MetodoPago, m.Comprobante, m.Comentario,
		m.Estado, m.DetalleSolicitud, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", txn.TransaccionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransaccionRepository) DeleteTransaccion(ctx context.Context, transaccionID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM transacciones WHERE transaccion_id = $1;`, transaccionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transaccionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
