package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransaccionEstado is the lifecycle state of a transaction.
type TransaccionEstado string

const (
	TransaccionCompletada TransaccionEstado = "completado"
	TransaccionPendiente  TransaccionEstado = "pendiente"
)

// MetodoPago is the payment method recorded on a transaction.
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "efectivo"
	PagoTransferencia MetodoPago = "transferencia"
	PagoConsignacion  MetodoPago = "consignacion"
)

// Transaccion is a directed monetary movement between two partners.
// Monto is stored unsigned; the effective sign per viewer is derived with
// SignFor, never persisted.
type Transaccion struct {
	TransaccionID string            `json:"transaccionID"`
	DeQuien       PartnerRef        `json:"deQuien"`
	ParaQuien     PartnerRef        `json:"paraQuien"`
	Concepto      string            `json:"concepto"`
	Monto         decimal.Decimal   `json:"monto"` // always positive
	Fecha         time.Time         `json:"fecha"`
	MetodoPago    MetodoPago        `json:"metodoPago"`
	Comprobante   string            `json:"comprobante,omitempty"` // voucher image URL
	Comentario    string            `json:"comentario,omitempty"`
	Estado        TransaccionEstado `json:"estado"`
	// DetalleSolicitud carries the requested bank-account text while the
	// transaction is pending; cleared when it is completed.
	DetalleSolicitud string `json:"detalleSolicitud,omitempty"`
	// ViajeID links the implicit transaction created when a trip completes.
	ViajeID string `json:"viajeID,omitempty"`
	AuditFields
}

// Refs returns both partner refs of the transaction, origin first.
func (t Transaccion) Refs() []PartnerRef {
	return []PartnerRef{t.DeQuien, t.ParaQuien}
}

// ContributionFor returns the signed amount this transaction contributes to
// the given partner's balance, or zero when the partner is not involved.
func (t Transaccion) ContributionFor(ref PartnerRef) decimal.Decimal {
	switch ref {
	case t.DeQuien:
		return t.Monto.Mul(decimal.NewFromInt(int64(SignFor(ref.Tipo, SideOrigin))))
	case t.ParaQuien:
		return t.Monto.Mul(decimal.NewFromInt(int64(SignFor(ref.Tipo, SideDestination))))
	}
	return decimal.Zero
}
