package services

import (
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
	"github.com/rodmarapp/rodmar_backend/internal/platform/config"
)

// NewServiceContainer wires all application services. The invalidation
// coordinator is built first: every mutating service routes its cache
// effects through it, and the realtime listener feeds remote events back
// into it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, store cache.Store, publisher EventPublisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Invalidator = NewInvalidationService(store, publisher)

	container.Partner = NewPartnerService(repos.PartnerRepo, store)
	container.Balance = NewBalanceService(repos.BalanceRepo, store, cfg.BalanceCacheTTL)
	container.Transaccion = NewTransaccionService(repos.TransaccionRepo, repos.PartnerRepo, container.Invalidator)
	container.Viaje = NewViajeService(repos.ViajeRepo, repos.TransaccionRepo, repos.PartnerRepo, container.Invalidator)
	container.Import = NewImportService(repos.ViajeRepo, repos.PartnerRepo, container.Invalidator)
	container.Role = NewRoleService(repos.RoleRepo)
	container.User = NewUserService(repos.UserRepo, repos.RoleRepo)

	return container
}
