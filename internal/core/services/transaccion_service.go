package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// transaccionService implements the transaction lifecycle. Every mutation
// reports its before/after partner refs to the invalidation coordinator
// after the write commits.
type transaccionService struct {
	BaseService
	transaccionRepo portsrepo.TransaccionRepositoryFacade
	partnerRepo     portsrepo.PartnerReader
	invalidator     portssvc.InvalidatorSvc
}

// NewTransaccionService creates a TransaccionSvcFacade.
func NewTransaccionService(
	transaccionRepo portsrepo.TransaccionRepositoryFacade,
	partnerRepo portsrepo.PartnerReader,
	invalidator portssvc.InvalidatorSvc,
) portssvc.TransaccionSvcFacade {
	return &transaccionService{
		transaccionRepo: transaccionRepo,
		partnerRepo:     partnerRepo,
		invalidator:     invalidator,
	}
}

var _ portssvc.TransaccionSvcFacade = (*transaccionService)(nil)

// validateRef checks that a partner ref is well-formed and, for regular
// partners, that the partner exists. Fixed pseudo-partners must use their
// type name as ID and have no backing row.
func (s *transaccionService) validateRef(ctx context.Context, ref domain.PartnerRef) error {
	if !ref.Tipo.IsValid() {
		return fmt.Errorf("%w: unknown partner type %q", apperrors.ErrValidation, ref.Tipo)
	}
	if ref.Tipo.IsFixed() {
		if ref.ID != string(ref.Tipo) {
			return fmt.Errorf("%w: fixed partner %s must use its type name as id", apperrors.ErrValidation, ref.Tipo)
		}
		return nil
	}
	if ref.ID == "" {
		return fmt.Errorf("%w: partner id is required", apperrors.ErrValidation)
	}
	if _, err := s.partnerRepo.FindPartnerByID(ctx, ref.Tipo, ref.ID); err != nil {
		return fmt.Errorf("resolving partner %s/%s: %w", ref.Tipo, ref.ID, err)
	}
	return nil
}

func validateMonto(monto decimal.Decimal) error {
	if monto.IsZero() || monto.IsNegative() {
		return fmt.Errorf("%w: monto must be positive", apperrors.ErrValidation)
	}
	return nil
}

// CreateTransaccion creates a completed transaction between two partners.
func (s *transaccionService) CreateTransaccion(ctx context.Context, req dto.CreateTransaccionRequest, creatorUserID string) (*domain.Transaccion, error) {
	deQuien := req.DeQuien.ToDomain()
	paraQuien := req.ParaQuien.ToDomain()

	if err := s.validateRef(ctx, deQuien); err != nil {
		return nil, err
	}
	if err := s.validateRef(ctx, paraQuien); err != nil {
		return nil, err
	}
	if deQuien == paraQuien {
		return nil, fmt.Errorf("%w: deQuien and paraQuien must differ", apperrors.ErrValidation)
	}
	if err := validateMonto(req.Monto); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaccion{
		TransaccionID: uuid.NewString(),
		DeQuien:       deQuien,
		ParaQuien:     paraQuien,
		Concepto:      req.Concepto,
		Monto:         req.Monto,
		Fecha:         req.Fecha,
		MetodoPago:    domain.MetodoPago(req.MetodoPago),
		Comprobante:   req.Comprobante,
		Comentario:    req.Comentario,
		Estado:        domain.TransaccionCompletada,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transaccionRepo.SaveTransaccion(ctx, txn); err != nil {
		s.LogError(ctx, "Failed to save transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving transaction: %w", err)
	}

	s.invalidator.TransactionChanged(ctx, domain.TransactionChange(nil, &txn))
	return &txn, nil
}

// GetTransaccionByID retrieves one transaction.
func (s *transaccionService) GetTransaccionByID(ctx context.Context, transaccionID string) (*domain.Transaccion, error) {
	txn, err := s.transaccionRepo.FindTransaccionByID(ctx, transaccionID)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transaccionID, err)
	}
	return txn, nil
}

// ListTransacciones retrieves a token-paginated transaction list.
func (s *transaccionService) ListTransacciones(ctx context.Context, params portsrepo.ListTransaccionesParams) (*dto.ListTransaccionesResponse, error) {
	if params.Partner != nil {
		if !params.Partner.Tipo.IsValid() {
			return nil, fmt.Errorf("%w: unknown partner type %q", apperrors.ErrValidation, params.Partner.Tipo)
		}
	}
	if params.Limit <= 0 || params.Limit > 100 {
		params.Limit = 50
	}

	txns, nextToken, err := s.transaccionRepo.ListTransacciones(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return &dto.ListTransaccionesResponse{
		Transacciones: dto.ToTransaccionResponses(txns),
		NextToken:     nextToken,
	}, nil
}

// UpdateTransaccion updates transaction fields. When the mutation re-points
// an endpoint, both the old and new partners' views are invalidated.
func (s *transaccionService) UpdateTransaccion(ctx context.Context, transaccionID string, req dto.UpdateTransaccionRequest, userID string) (*domain.Transaccion, error) {
	existing, err := s.transaccionRepo.FindTransaccionByID(ctx, transaccionID)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transaccionID, err)
	}

	old := *existing
	updated := *existing

	if req.DeQuien != nil {
		ref := req.DeQuien.ToDomain()
		if err := s.validateRef(ctx, ref); err != nil {
			return nil, err
		}
		updated.DeQuien = ref
	}
	if req.ParaQuien != nil {
		ref := req.ParaQuien.ToDomain()
		if err := s.validateRef(ctx, ref); err != nil {
			return nil, err
		}
		updated.ParaQuien = ref
	}
	if updated.DeQuien == updated.ParaQuien {
		return nil, fmt.Errorf("%w: deQuien and paraQuien must differ", apperrors.ErrValidation)
	}
	if req.Concepto != nil {
		updated.Concepto = *req.Concepto
	}
	if req.Monto != nil {
		if err := validateMonto(*req.Monto); err != nil {
			return nil, err
		}
		updated.Monto = *req.Monto
	}
	if req.Fecha != nil {
		updated.Fecha = *req.Fecha
	}
	if req.MetodoPago != nil {
		updated.MetodoPago = domain.MetodoPago(*req.MetodoPago)
	}
	if req.Comprobante != nil {
		updated.Comprobante = *req.Comprobante
	}
	if req.Comentario != nil {
		updated.Comentario = *req.Comentario
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.transaccionRepo.UpdateTransaccion(ctx, updated); err != nil {
		s.LogError(ctx, "Failed to update transaction", slog.String("transaccion_id", transaccionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating transaction %s: %w", transaccionID, err)
	}

	s.invalidator.TransactionChanged(ctx, domain.TransactionChange(&old, &updated))
	return &updated, nil
}

// DeleteTransaccion removes a transaction. Implicit trip transactions are
// managed by the trip lifecycle and cannot be deleted directly.
func (s *transaccionService) DeleteTransaccion(ctx context.Context, transaccionID string, userID string) error {
	existing, err := s.transaccionRepo.FindTransaccionByID(ctx, transaccionID)
	if err != nil {
		return fmt.Errorf("finding transaction %s: %w", transaccionID, err)
	}
	if existing.ViajeID != "" {
		return fmt.Errorf("%w: transaction %s belongs to trip %s", apperrors.ErrConflict, transaccionID, existing.ViajeID)
	}

	if err := s.transaccionRepo.DeleteTransaccion(ctx, transaccionID); err != nil {
		s.LogError(ctx, "Failed to delete transaction", slog.String("transaccion_id", transaccionID), slog.String("error", err.Error()))
		return fmt.Errorf("deleting transaction %s: %w", transaccionID, err)
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaccion_id", transaccionID), slog.String("user_id", userID))
	s.invalidator.TransactionChanged(ctx, domain.TransactionChange(existing, nil))
	return nil
}

// SolicitarTransaccion creates a pending transaction. The origin is RodMar
// by convention until completion supplies the actual paying account.
func (s *transaccionService) SolicitarTransaccion(ctx context.Context, req dto.SolicitarTransaccionRequest, creatorUserID string) (*domain.Transaccion, error) {
	paraQuien := req.ParaQuien.ToDomain()
	if err := s.validateRef(ctx, paraQuien); err != nil {
		return nil, err
	}
	if err := validateMonto(req.Monto); err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaccion{
		TransaccionID:    uuid.NewString(),
		DeQuien:          domain.FixedRef(domain.PartnerRodMar),
		ParaQuien:        paraQuien,
		Concepto:         req.Concepto,
		Monto:            req.Monto,
		Fecha:            req.Fecha,
		Comentario:       req.Comentario,
		Estado:           domain.TransaccionPendiente,
		DetalleSolicitud: req.DetalleSolicitud,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.transaccionRepo.SaveTransaccion(ctx, txn); err != nil {
		s.LogError(ctx, "Failed to save requested transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving requested transaction: %w", err)
	}

	s.invalidator.TransactionChanged(ctx, domain.TransactionChange(nil, &txn))
	return &txn, nil
}

// CompletarTransaccion finalizes a pending transaction: the actual origin
// account replaces the placeholder, the request text is cleared and the
// state flips to completed.
func (s *transaccionService) CompletarTransaccion(ctx context.Context, transaccionID string, req dto.CompletarTransaccionRequest, userID string) (*domain.Transaccion, error) {
	existing, err := s.transaccionRepo.FindTransaccionByID(ctx, transaccionID)
	if err != nil {
		return nil, fmt.Errorf("finding transaction %s: %w", transaccionID, err)
	}
	if existing.Estado != domain.TransaccionPendiente {
		return nil, fmt.Errorf("%w: transaction %s is not pending", apperrors.ErrConflict, transaccionID)
	}

	deQuien := req.DeQuien.ToDomain()
	if err := s.validateRef(ctx, deQuien); err != nil {
		return nil, err
	}

	old := *existing
	updated := *existing
	updated.DeQuien = deQuien
	updated.MetodoPago = domain.MetodoPago(req.MetodoPago)
	updated.Comprobante = req.Comprobante
	updated.Estado = domain.TransaccionCompletada
	updated.DetalleSolicitud = ""
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.transaccionRepo.UpdateTransaccion(ctx, updated); err != nil {
		s.LogError(ctx, "Failed to complete transaction", slog.String("transaccion_id", transaccionID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("completing transaction %s: %w", transaccionID, err)
	}

	s.invalidator.TransactionChanged(ctx, domain.TransactionChange(&old, &updated))
	return &updated, nil
}
