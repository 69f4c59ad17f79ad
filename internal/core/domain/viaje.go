package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ViajeEstado is the lifecycle state of a trip.
type ViajeEstado string

const (
	// ViajePendiente is the state at load time: cargo weighed and on the
	// road, unload data and pricing still missing.
	ViajePendiente ViajeEstado = "pendiente"
	// ViajeCompletado is reached once unload data and pricing are supplied.
	// The transition is irreversible in normal flow.
	ViajeCompletado ViajeEstado = "completado"
)

// Viaje is a haul record with a load leg and an unload leg.
type Viaje struct {
	ViajeID        string      `json:"viajeID"`
	Estado         ViajeEstado `json:"estado"`
	FechaCargue    time.Time   `json:"fechaCargue"`
	FechaDescargue *time.Time  `json:"fechaDescargue,omitempty"`

	MinaID       string `json:"minaID"`
	CompradorID  string `json:"compradorID"`
	VolqueteroID string `json:"volqueteroID"`

	Conductor    string `json:"conductor"`
	Placa        string `json:"placa"`
	TipoVehiculo string `json:"tipoVehiculo"`

	// Weights in tonnes; PesoDescargue is zero until completion.
	PesoCargue    decimal.Decimal `json:"pesoCargue"`
	PesoDescargue decimal.Decimal `json:"pesoDescargue"`

	// Unit prices per tonne, supplied at completion.
	PrecioCompra decimal.Decimal `json:"precioCompra"`
	PrecioVenta  decimal.Decimal `json:"precioVenta"`
	PrecioFlete  decimal.Decimal `json:"precioFlete"`

	// Derived totals, recomputed on every write via ComputeTotals.
	TotalCompra    decimal.Decimal `json:"totalCompra"`
	TotalVenta     decimal.Decimal `json:"totalVenta"`
	TotalFlete     decimal.Decimal `json:"totalFlete"`
	ValorConsignar decimal.Decimal `json:"valorConsignar"`
	Ganancia       decimal.Decimal `json:"ganancia"`

	AuditFields
}

// ComputeTotals derives the money fields from weight and unit prices.
// Purchase is settled on the load weight, sale and freight on the unload
// weight. Before completion the unload-side figures stay at zero.
func (v *Viaje) ComputeTotals() {
	v.TotalCompra = v.PrecioCompra.Mul(v.PesoCargue)
	v.TotalVenta = v.PrecioVenta.Mul(v.PesoDescargue)
	v.TotalFlete = v.PrecioFlete.Mul(v.PesoDescargue)
	v.ValorConsignar = v.TotalVenta.Sub(v.TotalFlete)
	v.Ganancia = v.TotalVenta.Sub(v.TotalCompra).Sub(v.TotalFlete)
}

// Refs returns the partner refs a trip touches, for cache invalidation.
func (v Viaje) Refs() []PartnerRef {
	return []PartnerRef{
		{Tipo: PartnerMina, ID: v.MinaID},
		{Tipo: PartnerComprador, ID: v.CompradorID},
		{Tipo: PartnerVolquetero, ID: v.VolqueteroID},
	}
}
