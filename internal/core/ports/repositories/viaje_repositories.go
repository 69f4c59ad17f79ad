package repositories

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// ListViajesParams filters a trip listing.
type ListViajesParams struct {
	Estado       domain.ViajeEstado // empty means any
	MinaID       string
	CompradorID  string
	VolqueteroID string
	Limit        int
	NextToken    *string
}

// ViajeReader defines read operations for trip data.
type ViajeReader interface {
	// FindViajeByID retrieves one trip.
	FindViajeByID(ctx context.Context, viajeID string) (*domain.Viaje, error)

	// ListViajes retrieves a token-paginated trip list.
	ListViajes(ctx context.Context, params ListViajesParams) ([]domain.Viaje, *string, error)

	// FindExistingViajeIDs reports which of the given IDs already exist.
	FindExistingViajeIDs(ctx context.Context, viajeIDs []string) ([]string, error)
}

// ViajeWriter defines write operations for trip data.
type ViajeWriter interface {
	// SaveViaje persists a new trip.
	SaveViaje(ctx context.Context, viaje domain.Viaje) error

	// UpdateViaje rewrites an existing trip.
	UpdateViaje(ctx context.Context, viaje domain.Viaje) error

	// ReplaceViaje overwrites a trip by ID, inserting when absent.
	ReplaceViaje(ctx context.Context, viaje domain.Viaje) error
}

// ViajeRepositoryFacade combines all trip repository interfaces.
type ViajeRepositoryFacade interface {
	ViajeReader
	ViajeWriter
}
