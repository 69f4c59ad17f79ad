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

type PgxViajeRepository struct {
	db *pgxpool.Pool
}

func newPgxViajeRepository(db *pgxpool.Pool) portsrepo.ViajeRepositoryFacade {
	return &PgxViajeRepository{db: db}
}

var _ portsrepo.ViajeRepositoryFacade = (*PgxViajeRepository)(nil)

func toModelViaje(d domain.Viaje) models.Viaje {
	m := models.Viaje{
		ViajeID:        d.ViajeID,
		Estado:         string(d.Estado),
		FechaCargue:    d.FechaCargue,
		MinaID:         d.MinaID,
		CompradorID:    d.CompradorID,
		VolqueteroID:   d.VolqueteroID,
		Conductor:      d.Conductor,
		Placa:          d.Placa,
		TipoVehiculo:   d.TipoVehiculo,
		PesoCargue:     d.PesoCargue,
		PesoDescargue:  d.PesoDescargue,
		PrecioCompra:   d.PrecioCompra,
		PrecioVenta:    d.PrecioVenta,
		PrecioFlete:    d.PrecioFlete,
		TotalCompra:    d.TotalCompra,
		TotalVenta:     d.TotalVenta,
		TotalFlete:     d.TotalFlete,
		ValorConsignar: d.ValorConsignar,
		Ganancia:       d.Ganancia,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
	if d.FechaDescargue != nil {
		m.FechaDescargue = sql.NullTime{Time: *d.FechaDescargue, Valid: true}
	}
	return m
}

func toDomainViaje(m models.Viaje) domain.Viaje {
	d := domain.Viaje{
		ViajeID:        m.ViajeID,
		Estado:         domain.ViajeEstado(m.Estado),
		FechaCargue:    m.FechaCargue,
		MinaID:         m.MinaID,
		CompradorID:    m.CompradorID,
		VolqueteroID:   m.VolqueteroID,
		Conductor:      m.Conductor,
		Placa:          m.Placa,
		TipoVehiculo:   m.TipoVehiculo,
		PesoCargue:     m.PesoCargue,
		PesoDescargue:  m.PesoDescargue,
		PrecioCompra:   m.PrecioCompra,
		PrecioVenta:    m.PrecioVenta,
		PrecioFlete:    m.PrecioFlete,
		TotalCompra:    m.TotalCompra,
		TotalVenta:     m.TotalVenta,
		TotalFlete:     m.TotalFlete,
		ValorConsignar: m.ValorConsignar,
		Ganancia:       m.Ganancia,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
	if m.FechaDescargue.Valid {
		t := m.FechaDescargue.Time
		d.FechaDescargue = &t
	}
	return d
}

const viajeColumns = `viaje_id, estado, fecha_cargue, fecha_descargue,
	mina_id::text, comprador_id::text, volquetero_id::text,
	conductor, placa, tipo_vehiculo, peso_cargue, peso_descargue,
	precio_compra, precio_venta, precio_flete,
	total_compra, total_venta, total_flete, valor_consignar, ganancia,
	created_at, created_by, last_updated_at, last_updated_by`

func scanViaje(row pgx.Row) (models.Viaje, error) {
	var m models.Viaje
	err := row.Scan(
		&m.ViajeID,
		&m.Estado,
		&m.FechaCargue,
		&m.FechaDescargue,
		&m.MinaID,
		&m.CompradorID,
		&m.VolqueteroID,
		&m.Conductor,
		&m.Placa,
		&m.TipoVehiculo,
		&m.PesoCargue,
		&m.PesoDescargue,
		&m.PrecioCompra,
		&m.PrecioVenta,
		&m.PrecioFlete,
		&m.TotalCompra,
		&m.TotalVenta,
		&m.TotalFlete,
		&m.ValorConsignar,
		&m.Ganancia,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const viajeInsertColumns = `viaje_id, estado, fecha_cargue, fecha_descargue,
	mina_id, comprador_id, volquetero_id,
	conductor, placa, tipo_vehiculo, peso_cargue, peso_descargue,
	precio_compra, precio_venta, precio_flete,
	total_compra, total_venta, total_flete, valor_consignar, ganancia,
	created_at, created_by, last_updated_at, last_updated_by`

func viajeArgs(m models.Viaje) []any {
	return []any{
		m.ViajeID, m.Estado, m.FechaCargue, m.FechaDescargue,
		m.MinaID, m.CompradorID, m.VolqueteroID,
		m.Conductor, m.Placa, m.TipoVehiculo, m.PesoCargue, m.PesoDescargue,
		m.PrecioCompra, m.PrecioVenta, m.PrecioFlete,
		m.TotalCompra, m.TotalVenta, m.TotalFlete, m.ValorConsignar, m.Ganancia,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

const viajeValuePlaceholders = `$1, $2, $3, $4, $5::bigint, $6::bigint, $7::bigint, $8, $9, $10, $11, $12,
	$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24`

func (r *PgxViajeRepository) SaveViaje(ctx context.Context, viaje domain.Viaje) error {
	m := toModelViaje(viaje)
	query := `
		INSERT INTO viajes (` + viajeInsertColumns + `)
		VALUES (` + viajeValuePlaceholders + `);
	`
	if _, err := r.db.Exec(ctx, query, viajeArgs(m)...); err != nil {
		return fmt.Errorf("failed to save trip %s: %w", viaje.ViajeID, err)
	}
	return nil
}

// ReplaceViaje overwrites a trip by ID, inserting when absent. Bulk import
// uses this for the replace conflict strategy.
func (r *PgxViajeRepository) ReplaceViaje(ctx context.Context, viaje domain.Viaje) error {
	m := toModelViaje(viaje)
	query := `
		INSERT INTO viajes (` + viajeInsertColumns + `)
		VALUES (` + viajeValuePlaceholders + `)
		ON CONFLICT (viaje_id) DO UPDATE SET
			estado = EXCLUDED.estado,
			fecha_cargue = EXCLUDED.fecha_cargue,
			fecha_descargue = EXCLUDED.fecha_descargue,
			mina_id = EXCLUDED.mina_id,
			comprador_id = EXCLUDED.comprador_id,
			volquetero_id = EXCLUDED.volquetero_id,
			conductor = EXCLUDED.conductor,
			placa = EXCLUDED.placa,
			tipo_vehiculo = EXCLUDED.tipo_vehiculo,
			peso_cargue = EXCLUDED.peso_cargue,
			peso_descargue = EXCLUDED.peso_descargue,
			precio_compra = EXCLUDED.precio_compra,
			precio_venta = EXCLUDED.precio_venta,
			precio_flete = EXCLUDED.precio_flete,
			total_compra = EXCLUDED.total_compra,
			total_venta = EXCLUDED.total_venta,
			total_flete = EXCLUDED.total_flete,
			valor_consignar = EXCLUDED.valor_consignar,
			ganancia = EXCLUDED.ganancia,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	if _, err := r.db.Exec(ctx, query, viajeArgs(m)...); err != nil {
		return fmt.Errorf("failed to replace trip %s: %w", viaje.ViajeID, err)
	}
	return nil
}

func (r *PgxViajeRepository) FindViajeByID(ctx context.Context, viajeID string) (*domain.Viaje, error) {
	query := `
		SELECT ` + viajeColumns + `
		FROM viajes
		WHERE viaje_id = $1;
	`
	m, err := scanViaje(r.db.QueryRow(ctx, query, viajeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find trip %s: %w", viajeID, err)
	}
	viaje := toDomainViaje(m)
	return &viaje, nil
}

func (r *PgxViajeRepository) FindExistingViajeIDs(ctx context.Context, viajeIDs []string) ([]string, error) {
	if len(viajeIDs) == 0 {
		return []string{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT viaje_id FROM viajes WHERE viaje_id = ANY($1);`, viajeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to probe trip IDs: %w", err)
	}
	defer rows.Close()

	existing := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip ID: %w", err)
		}
		existing = append(existing, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating trip ID rows: %w", err)
	}
	return existing, nil
}

// ListViajes pages by (fecha_cargue DESC, created_at DESC) with an opaque
// cursor.
func (r *PgxViajeRepository) ListViajes(ctx context.Context, params portsrepo.ListViajesParams) ([]domain.Viaje, *string, error) {
	query := `
		SELECT ` + viajeColumns + `
		FROM viajes
		WHERE 1=1`
	args := []any{}
	argN := 1

	addFilter := func(clause string, value any) {
		query += fmt.Sprintf(`
		AND `+clause, argN)
		args = append(args, value)
		argN++
	}
	if params.Estado != "" {
		addFilter("estado = $%d", string(params.Estado))
	}
	if params.MinaID != "" {
		addFilter("mina_id = $%d::bigint", params.MinaID)
	}
	if params.CompradorID != "" {
		addFilter("comprador_id = $%d::bigint", params.CompradorID)
	}
	if params.VolqueteroID != "" {
		addFilter("volquetero_id = $%d::bigint", params.VolqueteroID)
	}
	if params.NextToken != nil {
		fechaCargue, createdAt, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += fmt.Sprintf(`
		AND (fecha_cargue, created_at) < ($%d, $%d)`, argN, argN+1)
		args = append(args, fechaCargue, createdAt)
		argN += 2
	}

	query += fmt.Sprintf(`
		ORDER BY fecha_cargue DESC, created_at DESC
		LIMIT $%d;`, argN)
	args = append(args, params.Limit+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	viajes := make([]domain.Viaje, 0, params.Limit)
	for rows.Next() {
		m, err := scanViaje(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan trip row: %w", err)
		}
		viajes = append(viajes, toDomainViaje(m))
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed iterating trip rows: %w", err)
	}

	var nextToken *string
	if len(viajes) > params.Limit {
		viajes = viajes[:params.Limit]
		last := viajes[len(viajes)-1]
		token := pagination.EncodeToken(last.FechaCargue, last.CreatedAt)
		nextToken = &token
	}
	return viajes, nextToken, nil
}

func (r *PgxViajeRepository) UpdateViaje(ctx context.Context, viaje domain.Viaje) error {
	m := toModelViaje(viaje)
	query := `
		UPDATE viajes
		SET estado = $2, fecha_cargue = $3, fecha_descargue = $4,
			conductor = $5, placa = $6, tipo_vehiculo = $7,
			peso_cargue = $8, peso_descargue = $9,
			precio_compra = $10, precio_venta = $11, precio_flete = $12,
			total_compra = $13, total_venta = $14, total_flete = $15,
			valor_consignar = $16, ganancia = $17,
			last_updated_at = $18, last_updated_by = $19
		WHERE viaje_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ViajeID, m.Estado, m.FechaCargue, m.FechaDescargue,
		m.Conductor, m.Placa, m.TipoVehiculo,
		m.PesoCargue, m.PesoDescargue,
		m.PrecioCompra, m.PrecioVenta, m.PrecioFlete,
		m.TotalCompra, m.TotalVenta, m.TotalFlete,
		m.ValorConsignar, m.Ganancia,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip %s: %w", viaje.ViajeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
