package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// ViajeSvcFacade exposes the trip lifecycle. Completing a trip is
// irreversible and creates the implicit settlement transaction.
type ViajeSvcFacade interface {
	CreateViaje(ctx context.Context, req dto.CreateViajeRequest, creatorUserID string) (*domain.Viaje, error)
	GetViajeByID(ctx context.Context, viajeID string) (*domain.Viaje, error)
	ListViajes(ctx context.Context, params portsrepo.ListViajesParams) (*dto.ListViajesResponse, error)
	UpdateViaje(ctx context.Context, viajeID string, req dto.UpdateViajeRequest, userID string) (*domain.Viaje, error)
}
