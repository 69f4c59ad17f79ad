package dto

import (
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PartnerRefDTO is the wire shape of a (tipo, id) pair.
type PartnerRefDTO struct {
	Tipo string `json:"tipo" binding:"required"`
	ID   string `json:"id" binding:"required"`
}

// ToDomain converts the wire ref to its domain form.
func (r PartnerRefDTO) ToDomain() domain.PartnerRef {
	return domain.PartnerRef{Tipo: domain.PartnerType(r.Tipo), ID: r.ID}
}

// CreateTransaccionRequest creates a completed transaction.
type CreateTransaccionRequest struct {
	DeQuien     PartnerRefDTO   `json:"deQuien" binding:"required"`
	ParaQuien   PartnerRefDTO   `json:"paraQuien" binding:"required"`
	Concepto    string          `json:"concepto" binding:"required"`
	Monto       decimal.Decimal `json:"monto" binding:"required"`
	Fecha       time.Time       `json:"fecha" binding:"required"`
	MetodoPago  string          `json:"metodoPago" binding:"required"`
	Comprobante string          `json:"comprobante"`
	Comentario  string          `json:"comentario"`
}

// UpdateTransaccionRequest updates transaction fields. Nil means unchanged.
type UpdateTransaccionRequest struct {
	DeQuien     *PartnerRefDTO   `json:"deQuien,omitempty"`
	ParaQuien   *PartnerRefDTO   `json:"paraQuien,omitempty"`
	Concepto    *string          `json:"concepto,omitempty"`
	Monto       *decimal.Decimal `json:"monto,omitempty"`
	Fecha       *time.Time       `json:"fecha,omitempty"`
	MetodoPago  *string          `json:"metodoPago,omitempty"`
	Comprobante *string          `json:"comprobante,omitempty"`
	Comentario  *string          `json:"comentario,omitempty"`
}

// SolicitarTransaccionRequest requests a pending transaction. The origin
// account is unknown until completion; detalleSolicitud carries the
// requested bank-account text meanwhile.
type SolicitarTransaccionRequest struct {
	ParaQuien        PartnerRefDTO   `json:"paraQuien" binding:"required"`
	Concepto         string          `json:"concepto" binding:"required"`
	Monto            decimal.Decimal `json:"monto" binding:"required"`
	Fecha            time.Time       `json:"fecha" binding:"required"`
	DetalleSolicitud string          `json:"detalleSolicitud" binding:"required"`
	Comentario       string          `json:"comentario"`
}

// CompletarTransaccionRequest finalizes a pending transaction with the
// actual origin account.
type CompletarTransaccionRequest struct {
	DeQuien     PartnerRefDTO `json:"deQuien" binding:"required"`
	MetodoPago  string        `json:"metodoPago" binding:"required"`
	Comprobante string        `json:"comprobante"`
}

// TransaccionResponse defines the data returned for a transaction.
type TransaccionResponse struct {
	TransaccionID    string          `json:"id"`
	DeQuien          PartnerRefDTO   `json:"deQuien"`
	ParaQuien        PartnerRefDTO   `json:"paraQuien"`
	Concepto         string          `json:"concepto"`
	Monto            decimal.Decimal `json:"monto"`
	Fecha            time.Time       `json:"fecha"`
	MetodoPago       string          `json:"metodoPago,omitempty"`
	Comprobante      string          `json:"comprobante,omitempty"`
	Comentario       string          `json:"comentario,omitempty"`
	Estado           string          `json:"estado"`
	DetalleSolicitud string          `json:"detalleSolicitud,omitempty"`
	ViajeID          string          `json:"viajeID,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ListTransaccionesResponse wraps a token-paginated transaction list.
type ListTransaccionesResponse struct {
	Transacciones []TransaccionResponse `json:"transacciones"`
	NextToken     *string               `json:"nextToken,omitempty"`
}

// ToTransaccionResponse converts a domain.Transaccion to its DTO.
func ToTransaccionResponse(t *domain.Transaccion) TransaccionResponse {
	return TransaccionResponse{
		TransaccionID:    t.TransaccionID,
		DeQuien:          PartnerRefDTO{Tipo: string(t.DeQuien.Tipo), ID: t.DeQuien.ID},
		ParaQuien:        PartnerRefDTO{Tipo: string(t.ParaQuien.Tipo), ID: t.ParaQuien.ID},
		Concepto:         t.Concepto,
		Monto:            t.Monto,
		Fecha:            t.Fecha,
		MetodoPago:       string(t.MetodoPago),
		Comprobante:      t.Comprobante,
		Comentario:       t.Comentario,
		Estado:           string(t.Estado),
		DetalleSolicitud: t.DetalleSolicitud,
		ViajeID:          t.ViajeID,
		CreatedAt:        t.CreatedAt,
	}
}

// ToTransaccionResponses converts a slice of domain.Transaccion.
func ToTransaccionResponses(txns []domain.Transaccion) []TransaccionResponse {
	responses := make([]TransaccionResponse, len(txns))
	for i, t := range txns {
		responses[i] = ToTransaccionResponse(&t)
	}
	return responses
}
