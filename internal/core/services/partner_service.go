package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
)

// partnerListTTL bounds how long a cached partner list can outlive a missed
// invalidation.
const partnerListTTL = 5 * time.Minute

// partnerService implements partner CRUD plus the cached per-type lists.
// Only regular partner types are served; fixed pseudo-partners have no rows.
type partnerService struct {
	BaseService
	partnerRepo portsrepo.PartnerRepositoryFacade
	store       cache.Store
}

// NewPartnerService creates a PartnerSvcFacade.
func NewPartnerService(partnerRepo portsrepo.PartnerRepositoryFacade, store cache.Store) portssvc.PartnerSvcFacade {
	return &partnerService{partnerRepo: partnerRepo, store: store}
}

var _ portssvc.PartnerSvcFacade = (*partnerService)(nil)

func validateRegularTipo(tipo domain.PartnerType) error {
	if !tipo.IsValid() || tipo.IsFixed() {
		return fmt.Errorf("%w: %q is not a listable partner type", apperrors.ErrValidation, tipo)
	}
	return nil
}

// CreatePartner creates a partner of the given type and invalidates the
// type's list view.
func (s *partnerService) CreatePartner(ctx context.Context, tipo domain.PartnerType, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error) {
	if err := validateRegularTipo(tipo); err != nil {
		return nil, err
	}

	now := time.Now()
	partner := domain.Partner{
		Tipo:     tipo,
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	saved, err := s.partnerRepo.SavePartner(ctx, partner)
	if err != nil {
		s.LogError(ctx, "Failed to save partner", slog.String("tipo", string(tipo)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("saving partner: %w", err)
	}

	s.invalidateList(ctx, tipo)
	return saved, nil
}

// GetPartnerByID retrieves one partner.
func (s *partnerService) GetPartnerByID(ctx context.Context, tipo domain.PartnerType, partnerID string) (*domain.Partner, error) {
	if err := validateRegularTipo(tipo); err != nil {
		return nil, err
	}
	partner, err := s.partnerRepo.FindPartnerByID(ctx, tipo, partnerID)
	if err != nil {
		return nil, fmt.Errorf("finding %s %s: %w", tipo, partnerID, err)
	}
	return partner, nil
}

// ListPartners serves the cached name-ordered list for one partner type.
func (s *partnerService) ListPartners(ctx context.Context, tipo domain.PartnerType) ([]domain.Partner, error) {
	if err := validateRegularTipo(tipo); err != nil {
		return nil, err
	}

	key := cache.PartnersKey(tipo)

	var cached []domain.Partner
	err := s.store.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		s.LogWarn(ctx, "Partner list cache read failed", slog.String("tipo", string(tipo)), slog.String("error", err.Error()))
	}

	partners, err := s.partnerRepo.ListPartners(ctx, tipo)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", tipo, err)
	}

	if setErr := s.store.Set(ctx, key, partners, partnerListTTL); setErr != nil {
		s.LogWarn(ctx, "Partner list cache write failed", slog.String("tipo", string(tipo)), slog.String("error", setErr.Error()))
	}
	return partners, nil
}

// UpdatePartner updates mutable partner fields.
func (s *partnerService) UpdatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error) {
	if err := validateRegularTipo(tipo); err != nil {
		return nil, err
	}
	existing, err := s.partnerRepo.FindPartnerByID(ctx, tipo, partnerID)
	if err != nil {
		return nil, fmt.Errorf("finding %s %s: %w", tipo, partnerID, err)
	}

	updated := *existing
	if req.Nombre != nil {
		updated.Nombre = *req.Nombre
	}
	if req.Telefono != nil {
		updated.Telefono = *req.Telefono
	}
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	if err := s.partnerRepo.UpdatePartner(ctx, updated); err != nil {
		s.LogError(ctx, "Failed to update partner", slog.String("partner_id", partnerID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("updating %s %s: %w", tipo, partnerID, err)
	}

	s.invalidateList(ctx, tipo)
	return &updated, nil
}

// DeactivatePartner marks a partner inactive. Rows are kept for history;
// the partner just disappears from list views.
func (s *partnerService) DeactivatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, userID string) error {
	if err := validateRegularTipo(tipo); err != nil {
		return err
	}
	if err := s.partnerRepo.DeactivatePartner(ctx, tipo, partnerID, userID, time.Now()); err != nil {
		s.LogError(ctx, "Failed to deactivate partner", slog.String("partner_id", partnerID), slog.String("error", err.Error()))
		return fmt.Errorf("deactivating %s %s: %w", tipo, partnerID, err)
	}

	s.invalidateList(ctx, tipo)
	return nil
}

func (s *partnerService) invalidateList(ctx context.Context, tipo domain.PartnerType) {
	if err := s.store.Invalidate(ctx, cache.PartnersKey(tipo), cache.BalancesKey(tipo)); err != nil {
		s.LogWarn(ctx, "Partner list invalidation failed", slog.String("tipo", string(tipo)), slog.String("error", err.Error()))
	}
}
