package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Transaccion is the DB shape of a monetary movement between two partners.
// Monto is stored unsigned; sign is derived per viewer, never persisted.
type Transaccion struct {
	TransaccionID string          `json:"transaccionID" db:"transaccion_id"`
	DeQuienTipo   string          `json:"deQuienTipo" db:"de_quien_tipo"`
	DeQuienID     string          `json:"deQuienId" db:"de_quien_id"`
	ParaQuienTipo string          `json:"paraQuienTipo" db:"para_quien_tipo"`
	ParaQuienID   string          `json:"paraQuienId" db:"para_quien_id"`
	Concepto      string          `json:"concepto" db:"concepto"`
	Monto         decimal.Decimal `json:"monto" db:"monto"` // always positive
	Fecha         time.Time       `json:"fecha" db:"fecha"`
	MetodoPago    string          `json:"metodoPago" db:"metodo_pago"`
	Comprobante   sql.NullString  `json:"-" db:"comprobante"`
	Comentario    sql.NullString  `json:"-" db:"comentario"`
	Estado        string          `json:"estado" db:"estado"`
	// detalle_solicitud holds the requested bank-account text while pending.
	DetalleSolicitud sql.NullString `json:"-" db:"detalle_solicitud"`
	ViajeID          sql.NullString `json:"-" db:"viaje_id"`
	AuditFields
}
