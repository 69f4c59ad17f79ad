package repositories

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// ListTransaccionesParams filters a transaction listing. A nil Partner means
// the global list.
type ListTransaccionesParams struct {
	Partner   *domain.PartnerRef
	Estado    domain.TransaccionEstado // empty means any
	Limit     int
	NextToken *string
}

// TransaccionReader defines read operations for transaction data.
type TransaccionReader interface {
	// FindTransaccionByID retrieves one transaction.
	FindTransaccionByID(ctx context.Context, transaccionID string) (*domain.Transaccion, error)

	// ListTransacciones retrieves a token-paginated transaction list,
	// globally or scoped to one partner.
	ListTransacciones(ctx context.Context, params ListTransaccionesParams) ([]domain.Transaccion, *string, error)
}

// TransaccionWriter defines write operations for transaction data.
type TransaccionWriter interface {
	// SaveTransaccion persists a new transaction.
	SaveTransaccion(ctx context.Context, txn domain.Transaccion) error

	// UpdateTransaccion rewrites an existing transaction.
	UpdateTransaccion(ctx context.Context, txn domain.Transaccion) error

	// DeleteTransaccion removes a transaction.
	DeleteTransaccion(ctx context.Context, transaccionID string) error
}

// TransaccionRepositoryFacade combines all transaction repository interfaces.
type TransaccionRepositoryFacade interface {
	TransaccionReader
	TransaccionWriter
}
