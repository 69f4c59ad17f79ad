package dto

import (
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest creates a partner of the type implied by the route.
type CreatePartnerRequest struct {
	Nombre   string `json:"nombre" binding:"required"`
	Telefono string `json:"telefono"`
}

// UpdatePartnerRequest updates mutable partner fields. Nil means unchanged.
type UpdatePartnerRequest struct {
	Nombre   *string `json:"nombre,omitempty"`
	Telefono *string `json:"telefono,omitempty"`
}

// PartnerResponse defines the data returned for a partner.
type PartnerResponse struct {
	PartnerID string          `json:"id"`
	Tipo      string          `json:"tipo"`
	Nombre    string          `json:"nombre"`
	Telefono  string          `json:"telefono,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListPartnersResponse wraps a partner list.
type ListPartnersResponse struct {
	Partners []PartnerResponse `json:"partners"`
}

// ToPartnerResponse converts a domain.Partner to PartnerResponse DTO.
func ToPartnerResponse(p *domain.Partner) PartnerResponse {
	return PartnerResponse{
		PartnerID: p.PartnerID,
		Tipo:      string(p.Tipo),
		Nombre:    p.Nombre,
		Telefono:  p.Telefono,
		Balance:   p.Balance,
	}
}

// ToPartnerResponses converts a slice of domain.Partner.
func ToPartnerResponses(partners []domain.Partner) []PartnerResponse {
	responses := make([]PartnerResponse, len(partners))
	for i, p := range partners {
		responses[i] = ToPartnerResponse(&p)
	}
	return responses
}
