package pgsql

import (
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PartnerRepo:     newPgxPartnerRepository(dbPool),
		TransaccionRepo: newPgxTransaccionRepository(dbPool),
		ViajeRepo:       newPgxViajeRepository(dbPool),
		BalanceRepo:     newPgxBalanceRepository(dbPool),
		RoleRepo:        newPgxRoleRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
