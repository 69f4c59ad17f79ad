package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/models"
)

type PgxRoleRepository struct {
	BaseRepository
	db *pgxpool.Pool
}

func newPgxRoleRepository(db *pgxpool.Pool) portsrepo.RoleRepositoryFacade {
	return &PgxRoleRepository{BaseRepository: BaseRepository{Pool: db}, db: db}
}

var _ portsrepo.RoleRepositoryFacade = (*PgxRoleRepository)(nil)

func toDomainRole(m models.Role, permissionKeys []string) domain.Role {
	return domain.Role{
		RoleID:      m.RoleID,
		Name:        m.Name,
		Description: m.Description,
		Permissions: permissionKeys,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toDomainPermission(m models.Permission) domain.Permission {
	return domain.Permission{
		PermissionID: m.PermissionID,
		Key:          m.Key,
		Description:  m.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func (r *PgxRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO roles (role_id, name, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	if _, err := tx.Exec(ctx, query,
		role.RoleID, role.Name, role.Description,
		role.CreatedAt, role.CreatedBy, role.LastUpdatedAt, role.LastUpdatedBy,
	); err != nil {
		return fmt.Errorf("failed to save role: %w", err)
	}

	if err := insertRolePermissions(ctx, tx, role.RoleID, role.Permissions); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}

func insertRolePermissions(ctx context.Context, tx pgx.Tx, roleID string, keys []string) error {
	for _, key := range keys {
		if _, err := tx.Exec(ctx, `
			INSERT INTO role_permissions (role_id, permission_key)
			VALUES ($1, $2);
		`, roleID, key); err != nil {
			return fmt.Errorf("failed to link permission %q: %w", key, err)
		}
	}
	return nil
}

func (r *PgxRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	query := `
		SELECT role_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM roles
		WHERE role_id = $1;
	`
	var m models.Role
	err := r.db.QueryRow(ctx, query, roleID).Scan(
		&m.RoleID, &m.Name, &m.Description,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find role %s: %w", roleID, err)
	}

	keys, err := r.rolePermissionKeys(ctx, roleID)
	if err != nil {
		return nil, err
	}
	role := toDomainRole(m, keys)
	return &role, nil
}

func (r *PgxRoleRepository) rolePermissionKeys(ctx context.Context, roleID string) ([]string, error) {
	rows, err := r.db.Query(ctx, `
		SELECT permission_key FROM role_permissions WHERE role_id = $1 ORDER BY permission_key;
	`, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan permission key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating permission keys: %w", err)
	}
	return keys, nil
}

func (r *PgxRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	rows, err := r.db.Query(ctx, `
		SELECT role_id, name, description, created_at, created_by, last_updated_at, last_updated_by
		FROM roles
		ORDER BY name;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	roleModels := make([]models.Role, 0)
	for rows.Next() {
		var m models.Role
		if err := rows.Scan(
			&m.RoleID, &m.Name, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		roleModels = append(roleModels, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating role rows: %w", err)
	}

	roles := make([]domain.Role, 0, len(roleModels))
	for _, m := range roleModels {
		keys, err := r.rolePermissionKeys(ctx, m.RoleID)
		if err != nil {
			return nil, err
		}
		roles = append(roles, toDomainRole(m, keys))
	}
	return roles, nil
}

func (r *PgxRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE roles
		SET name = $2, description = $3, last_updated_at = $4, last_updated_by = $5
		WHERE role_id = $1;
	`, role.RoleID, role.Name, role.Description, role.LastUpdatedAt, role.LastUpdatedBy)
	if err != nil {
		return fmt.Errorf("failed to update role %s: %w", role.RoleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// The permission set is replaced wholesale.
	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1;`, role.RoleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	if err := insertRolePermissions(ctx, tx, role.RoleID, role.Permissions); err != nil {
		return err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}

func (r *PgxRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1;`, roleID); err != nil {
		return fmt.Errorf("failed to clear role permissions: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM roles WHERE role_id = $1;`, roleID)
	if err != nil {
		return fmt.Errorf("failed to delete role %s: %w", roleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	return nil
}

func (r *PgxRoleRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	rows, err := r.db.Query(ctx, `
		SELECT permission_id, key, description, created_at, created_by, last_updated_at, last_updated_by
		FROM permissions
		ORDER BY key;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	perms := make([]domain.Permission, 0)
	for rows.Next() {
		var m models.Permission
		if err := rows.Scan(
			&m.PermissionID, &m.Key, &m.Description,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan permission row: %w", err)
		}
		perms = append(perms, toDomainPermission(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating permission rows: %w", err)
	}
	return perms, nil
}

func (r *PgxRoleRepository) SavePermission(ctx context.Context, permission domain.Permission) error {
	query := `
		INSERT INTO permissions (permission_id, key, description, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (key) DO NOTHING;
	`
	_, err := r.db.Exec(ctx, query,
		permission.PermissionID, permission.Key, permission.Description,
		permission.CreatedAt, permission.CreatedBy, permission.LastUpdatedAt, permission.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save permission %q: %w", permission.Key, err)
	}
	return nil
}
