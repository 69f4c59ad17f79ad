package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// TransaccionSvcFacade exposes the transaction lifecycle. Every mutation
// routes its cache effects through the invalidation coordinator.
type TransaccionSvcFacade interface {
	CreateTransaccion(ctx context.Context, req dto.CreateTransaccionRequest, creatorUserID string) (*domain.Transaccion, error)
	GetTransaccionByID(ctx context.Context, transaccionID string) (*domain.Transaccion, error)
	ListTransacciones(ctx context.Context, params portsrepo.ListTransaccionesParams) (*dto.ListTransaccionesResponse, error)
	UpdateTransaccion(ctx context.Context, transaccionID string, req dto.UpdateTransaccionRequest, userID string) (*domain.Transaccion, error)
	DeleteTransaccion(ctx context.Context, transaccionID string, userID string) error

	// SolicitarTransaccion creates a pending transaction carrying the
	// requested bank-account text.
	SolicitarTransaccion(ctx context.Context, req dto.SolicitarTransaccionRequest, creatorUserID string) (*domain.Transaccion, error)

	// CompletarTransaccion finalizes a pending transaction by supplying the
	// actual origin account.
	CompletarTransaccion(ctx context.Context, transaccionID string, req dto.CompletarTransaccionRequest, userID string) (*domain.Transaccion, error)
}
