package repositories

import (
	"context"
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
)

// PartnerReader defines read operations for partner data.
type PartnerReader interface {
	// FindPartnerByID retrieves one partner of the given type.
	FindPartnerByID(ctx context.Context, tipo domain.PartnerType, partnerID string) (*domain.Partner, error)

	// ListPartners retrieves all active partners of one type, name-ordered.
	ListPartners(ctx context.Context, tipo domain.PartnerType) ([]domain.Partner, error)
}

// PartnerWriter defines write operations for partner data.
type PartnerWriter interface {
	// SavePartner persists a new partner, assigning its numeric ID, and
	// returns the stored record.
	SavePartner(ctx context.Context, partner domain.Partner) (*domain.Partner, error)

	// UpdatePartner updates mutable partner fields.
	UpdatePartner(ctx context.Context, partner domain.Partner) error

	// DeactivatePartner marks a partner inactive.
	DeactivatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, userID string, now time.Time) error
}

// PartnerRepositoryFacade combines all partner repository interfaces.
type PartnerRepositoryFacade interface {
	PartnerReader
	PartnerWriter
}
