package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/models"
)

type PgxPartnerRepository struct {
	db *pgxpool.Pool
}

func newPgxPartnerRepository(db *pgxpool.Pool) portsrepo.PartnerRepositoryFacade {
	return &PgxPartnerRepository{db: db}
}

var _ portsrepo.PartnerRepositoryFacade = (*PgxPartnerRepository)(nil)

func toDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID: m.PartnerID,
		Tipo:      domain.PartnerType(m.Tipo),
		Nombre:    m.Nombre,
		Telefono:  m.Telefono,
		Balance:   m.Balance,
		IsActive:  m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func scanPartner(row pgx.Row) (models.Partner, error) {
	var m models.Partner
	err := row.Scan(
		&m.PartnerID,
		&m.Tipo,
		&m.Nombre,
		&m.Telefono,
		&m.Balance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

const partnerColumns = `partner_id::text, tipo, nombre, telefono, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) (*domain.Partner, error) {
	query := `
		INSERT INTO partners (tipo, nombre, telefono, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, $5, $6, $7, $8)
		RETURNING ` + partnerColumns + `;
	`
	m, err := scanPartner(r.db.QueryRow(ctx, query,
		string(partner.Tipo),
		partner.Nombre,
		partner.Telefono,
		partner.IsActive,
		partner.CreatedAt,
		partner.CreatedBy,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to save partner: %w", err)
	}
	saved := toDomainPartner(m)
	return &saved, nil
}

func (r *PgxPartnerRepository) FindPartnerByID(ctx context.Context, tipo domain.PartnerType, partnerID string) (*domain.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE partner_id = $1::bigint AND tipo = $2;
	`
	m, err := scanPartner(r.db.QueryRow(ctx, query, partnerID, string(tipo)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find %s %s: %w", tipo, partnerID, err)
	}
	partner := toDomainPartner(m)
	return &partner, nil
}

func (r *PgxPartnerRepository) ListPartners(ctx context.Context, tipo domain.PartnerType) ([]domain.Partner, error) {
	query := `
		SELECT ` + partnerColumns + `
		FROM partners
		WHERE tipo = $1 AND is_active
		ORDER BY nombre;
	`
	rows, err := r.db.Query(ctx, query, string(tipo))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", tipo, err)
	}
	defer rows.Close()

	partners := make([]domain.Partner, 0)
	for rows.Next() {
		m, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan partner row: %w", err)
		}
		partners = append(partners, toDomainPartner(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating partner rows: %w", err)
	}
	return partners, nil
}

func (r *PgxPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	query := `
		UPDATE partners
		SET nombre = $3, telefono = $4, last_updated_at = $5, last_updated_by = $6
		WHERE partner_id = $1::bigint AND tipo = $2;
	`
	tag, err := r.db.Exec(ctx, query,
		partner.PartnerID,
		string(partner.Tipo),
		partner.Nombre,
		partner.Telefono,
		partner.LastUpdatedAt,
		partner.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update partner %s: %w", partner.PartnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPartnerRepository) DeactivatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, userID string, now time.Time) error {
	query := `
		UPDATE partners
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE partner_id = $1::bigint AND tipo = $2 AND is_active;
	`
	tag, err := r.db.Exec(ctx, query, partnerID, string(tipo), now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate partner %s: %w", partnerID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
