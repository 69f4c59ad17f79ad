package dto

import (
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateViajeRequest registers the load leg of a trip. The trip starts in
// "pendiente" state; unload data and pricing arrive with UpdateViajeRequest.
type CreateViajeRequest struct {
	FechaCargue  time.Time       `json:"fechaCargue" binding:"required"`
	MinaID       string          `json:"minaID" binding:"required"`
	CompradorID  string          `json:"compradorID" binding:"required"`
	VolqueteroID string          `json:"volqueteroID" binding:"required"`
	Conductor    string          `json:"conductor" binding:"required"`
	Placa        string          `json:"placa" binding:"required"`
	TipoVehiculo string          `json:"tipoVehiculo"`
	PesoCargue   decimal.Decimal `json:"pesoCargue" binding:"required"`
	PrecioCompra decimal.Decimal `json:"precioCompra"`
}

// UpdateViajeRequest updates a trip. Supplying unload weight and all three
// unit prices completes the trip; completion is irreversible.
type UpdateViajeRequest struct {
	FechaDescargue *time.Time       `json:"fechaDescargue,omitempty"`
	Conductor      *string          `json:"conductor,omitempty"`
	Placa          *string          `json:"placa,omitempty"`
	TipoVehiculo   *string          `json:"tipoVehiculo,omitempty"`
	PesoCargue     *decimal.Decimal `json:"pesoCargue,omitempty"`
	PesoDescargue  *decimal.Decimal `json:"pesoDescargue,omitempty"`
	PrecioCompra   *decimal.Decimal `json:"precioCompra,omitempty"`
	PrecioVenta    *decimal.Decimal `json:"precioVenta,omitempty"`
	PrecioFlete    *decimal.Decimal `json:"precioFlete,omitempty"`
}

// ViajeResponse defines the data returned for a trip.
type ViajeResponse struct {
	ViajeID        string          `json:"id"`
	Estado         string          `json:"estado"`
	FechaCargue    time.Time       `json:"fechaCargue"`
	FechaDescargue *time.Time      `json:"fechaDescargue,omitempty"`
	MinaID         string          `json:"minaID"`
	CompradorID    string          `json:"compradorID"`
	VolqueteroID   string          `json:"volqueteroID"`
	Conductor      string          `json:"conductor"`
	Placa          string          `json:"placa"`
	TipoVehiculo   string          `json:"tipoVehiculo,omitempty"`
	PesoCargue     decimal.Decimal `json:"pesoCargue"`
	PesoDescargue  decimal.Decimal `json:"pesoDescargue"`
	PrecioCompra   decimal.Decimal `json:"precioCompra"`
	PrecioVenta    decimal.Decimal `json:"precioVenta"`
	PrecioFlete    decimal.Decimal `json:"precioFlete"`
	TotalCompra    decimal.Decimal `json:"totalCompra"`
	TotalVenta     decimal.Decimal `json:"totalVenta"`
	TotalFlete     decimal.Decimal `json:"totalFlete"`
	ValorConsignar decimal.Decimal `json:"valorConsignar"`
	Ganancia       decimal.Decimal `json:"ganancia"`
}

// ListViajesResponse wraps a token-paginated trip list.
type ListViajesResponse struct {
	Viajes    []ViajeResponse `json:"viajes"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToViajeResponse converts a domain.Viaje to its DTO.
func ToViajeResponse(v *domain.Viaje) ViajeResponse {
	return ViajeResponse{
		ViajeID:        v.ViajeID,
		Estado:         string(v.Estado),
		FechaCargue:    v.FechaCargue,
		FechaDescargue: v.FechaDescargue,
		MinaID:         v.MinaID,
		CompradorID:    v.CompradorID,
		VolqueteroID:   v.VolqueteroID,
		Conductor:      v.Conductor,
		Placa:          v.Placa,
		TipoVehiculo:   v.TipoVehiculo,
		PesoCargue:     v.PesoCargue,
		PesoDescargue:  v.PesoDescargue,
		PrecioCompra:   v.PrecioCompra,
		PrecioVenta:    v.PrecioVenta,
		PrecioFlete:    v.PrecioFlete,
		TotalCompra:    v.TotalCompra,
		TotalVenta:     v.TotalVenta,
		TotalFlete:     v.TotalFlete,
		ValorConsignar: v.ValorConsignar,
		Ganancia:       v.Ganancia,
	}
}

// ToViajeResponses converts a slice of domain.Viaje.
func ToViajeResponses(viajes []domain.Viaje) []ViajeResponse {
	responses := make([]ViajeResponse, len(viajes))
	for i, v := range viajes {
		responses[i] = ToViajeResponse(&v)
	}
	return responses
}
