package services

import (
	"context"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// PartnerSvcFacade exposes partner CRUD plus the cached list views.
type PartnerSvcFacade interface {
	CreatePartner(ctx context.Context, tipo domain.PartnerType, req dto.CreatePartnerRequest, creatorUserID string) (*domain.Partner, error)
	GetPartnerByID(ctx context.Context, tipo domain.PartnerType, partnerID string) (*domain.Partner, error)
	ListPartners(ctx context.Context, tipo domain.PartnerType) ([]domain.Partner, error)
	UpdatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, req dto.UpdatePartnerRequest, userID string) (*domain.Partner, error)
	DeactivatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, userID string) error
}
