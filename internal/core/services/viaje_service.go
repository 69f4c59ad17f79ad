package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// viajeService implements the trip lifecycle. A trip is created pending at
// load time; supplying the unload weight and all three unit prices completes
// it, which is irreversible and creates the implicit settlement transaction
// awaiting the buyer's deposit.
type viajeService struct {
	BaseService
	viajeRepo       portsrepo.ViajeRepositoryFacade
	transaccionRepo portsrepo.TransaccionWriter
	partnerRepo     portsrepo.PartnerReader
	invalidator     portssvc.InvalidatorSvc
}

// NewViajeService creates a ViajeSvcFacade.
func NewViajeService(
	viajeRepo portsrepo.ViajeRepositoryFacade,
	transaccionRepo portsrepo.TransaccionWriter,
	partnerRepo portsrepo.PartnerReader,
	invalidator portssvc.InvalidatorSvc,
) portssvc.ViajeSvcFacade {
	return &viajeService{
		viajeRepo:       viajeRepo,
		transaccionRepo: transaccionRepo,
		partnerRepo:     partnerRepo,
		invalidator:     invalidator,
	}
}

var _ portssvc.ViajeSvcFacade = (*viajeService)(nil)

func (s *viajeService) validatePartners(ctx context.Context, minaID, compradorID, volqueteroID string) error {
	for _, ref := range []domain.PartnerRef{
		{Tipo: domain.PartnerMina, ID: minaID},
		{Tipo: domain.PartnerComprador, ID: compradorID},
		{Tipo: domain.PartnerVolquetero, ID: volqueteroID},
	} {
		if ref.ID == "" {
			return fmt.Errorf("%w: %s id is required", apperrors.ErrValidation, ref.Tipo)
		}
		if _, err := s.partnerRepo.FindPartnerByID(ctx, ref.Tipo, ref.ID); err != nil {
			return fmt.Errorf("resolving %s %s: %w", ref.Tipo, ref.ID, err)
		}
	}
	return nil
}

// CreateViaje registers the load leg of a trip.
func (s *viajeService) CreateViaje(ctx context.Context, req dto.CreateViajeRequest, creatorUserID string) (*domain.Viaje, error) {
	if err := s.validatePartners(ctx, req.MinaID, req.CompradorID, req.VolqueteroID); err != nil {
		return nil, err
	}
	if req.PesoCargue.IsZero() || req.PesoCargue.IsNegative() {
		return nil, fmt.Errorf("%w: pesoCargue must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	viaje := domain.Viaje{
		ViajeID:      uuid.NewString(),
		Estado:       domain.ViajePendiente,
		FechaCargue:  req.FechaCargue,
		MinaID:       req.MinaID,
		CompradorID:  req.CompradorID,
		VolqueteroID: req.VolqueteroID,
		Conductor:    req.Conductor,
		Placa:        req.Placa,
		TipoVehiculo: req.TipoVehiculo,
		PesoCargue:   req.PesoCargue,
		PrecioCompra: req.PrecioCompra,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	viaje.ComputeTotals()

	if err := s.viajeRepo.SaveViaje(ctx, viaje); err != nil {
		s.LogError(ctx, "Failed to save trip", slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving trip: %w", err)
	}

	s.invalidator.TripChanged(ctx, domain.TripChange(nil, &viaje))
	return &viaje, nil
}

// GetViajeByID retrieves one trip.
func (s *viajeService) GetViajeByID(ctx context.Context, viajeID string) (*domain.Viaje, error) {
	viaje, err := s.viajeRepo.FindViajeByID(ctx, viajeID)
	if err != nil {
		return nil, fmt.Errorf("finding trip %s: %w", viajeID, err)
	}
	return viaje, nil
}

// ListViajes retrieves a token-paginated trip list.
func (s *viajeService) ListViajes(ctx context.Context, params portsrepo.ListViajesParams) (*dto.ListViajesResponse, error) {
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}
	viajes, nextToken, err := s.viajeRepo.ListViajes(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing trips: %w", err)
	}
	return &dto.ListViajesResponse{
		Viajes:    dto.ToViajeResponses(viajes),
		NextToken: nextToken,
	}, nil
}

// UpdateViaje updates a trip, recomputing derived totals. When the update
// supplies the unload weight and all three unit prices, the trip transitions
// to completed. Completed trips reject further weight or price edits.
func (s *viajeService) UpdateViaje(ctx context.Context, viajeID string, req dto.UpdateViajeRequest, userID string) (*domain.Viaje, error) {
	existing, err := s.viajeRepo.FindViajeByID(ctx, viajeID)
	if err != nil {
		return nil, fmt.Errorf("finding trip %s: %w", viajeID, err)
	}

	old := *existing
	updated := *existing

	if updated.Estado == domain.ViajeCompletado {
		if req.PesoCargue != nil || req.PesoDescargue != nil ||
			req.PrecioCompra != nil || req.PrecioVenta != nil || req.PrecioFlete != nil {
			return nil, fmt.Errorf("%w: trip %s is completed; weights and prices are final", apperrors.ErrConflict, viajeID)
		}
	}

	if req.FechaDescargue != nil {
		updated.FechaDescargue = req.FechaDescargue
	}
	if req.Conductor != nil {
		updated.Conductor = *req.Conductor
	}
	if req.Placa != nil {
		updated.Placa = *req.Placa
	}
	if req.TipoVehiculo != nil {
		updated.TipoVehiculo = *req.TipoVehiculo
	}
	if req.PesoCargue != nil {
		updated.PesoCargue = *req.PesoCargue
	}
	if req.PesoDescargue != nil {
		updated.PesoDescargue = *req.PesoDescargue
	}
	if req.PrecioCompra != nil {
		updated.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		updated.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioFlete != nil {
		updated.PrecioFlete = *req.PrecioFlete
	}

	completing := updated.Estado == domain.ViajePendiente && readyToComplete(&updated)
	if completing {
		updated.Estado = domain.ViajeCompletado
		if updated.FechaDescargue == nil {
			now := time.Now()
			updated.FechaDescargue = &now
		}
	}

	updated.ComputeTotals()
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.viajeRepo.UpdateViaje(ctx, updated); err != nil {
		s.LogError(ctx, "Failed to update trip", slog.String("viaje_id", viajeID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating trip %s: %w", viajeID, err)
	}

	if completing {
		if err := s.createSettlement(ctx, &updated, userID); err != nil {
			// The trip is already completed; the settlement can be created
			// manually from the pending list if this write failed.
			s.LogError(ctx, "Failed to create settlement transaction",
				slog.String("viaje_id", viajeID),
				slog.String("error", err.Error()))
		}
		s.LogInfo(ctx, "Trip completed", slog.String("viaje_id", viajeID), slog.String("user_id", userID))
	}

	s.invalidator.TripChanged(ctx, domain.TripChange(&old, &updated))
	return &updated, nil
}

// readyToComplete reports whether a trip has everything completion needs:
// unload weight and the three unit prices.
func readyToComplete(v *domain.Viaje) bool {
	return v.PesoDescargue.IsPositive() &&
		v.PrecioCompra.IsPositive() &&
		v.PrecioVenta.IsPositive() &&
		v.PrecioFlete.IsPositive()
}

// createSettlement records the implicit transaction a completed trip
// creates: the buyer owes valorConsignar. It starts pending and is completed
// when the deposit lands, so it never double-counts against the trip-derived
// flows in the balance aggregation.
func (s *viajeService) createSettlement(ctx context.Context, v *domain.Viaje, userID string) error {
	now := time.Now()
	txn := domain.Transaccion{
		TransaccionID: uuid.NewString(),
		DeQuien:       domain.PartnerRef{Tipo: domain.PartnerComprador, ID: v.CompradorID},
		ParaQuien:     domain.FixedRef(domain.PartnerRodMar),
		Concepto:      fmt.Sprintf("Consignación viaje %s", v.ViajeID),
		Monto:         v.ValorConsignar,
		Fecha:         now,
		Estado:        domain.TransaccionPendiente,
		ViajeID:       v.ViajeID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	return s.transaccionRepo.SaveTransaccion(ctx, txn)
}
