package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Viaje is the DB shape of a haul record.
type Viaje struct {
	ViajeID        string       `json:"viajeID" db:"viaje_id"`
	Estado         string       `json:"estado" db:"estado"`
	FechaCargue    time.Time    `json:"fechaCargue" db:"fecha_cargue"`
	FechaDescargue sql.NullTime `json:"-" db:"fecha_descargue"`

	MinaID       string `json:"minaID" db:"mina_id"`
	CompradorID  string `json:"compradorID" db:"comprador_id"`
	VolqueteroID string `json:"volqueteroID" db:"volquetero_id"`

	Conductor    string `json:"conductor" db:"conductor"`
	Placa        string `json:"placa" db:"placa"`
	TipoVehiculo string `json:"tipoVehiculo" db:"tipo_vehiculo"`

	PesoCargue    decimal.Decimal `json:"pesoCargue" db:"peso_cargue"`
	PesoDescargue decimal.Decimal `json:"pesoDescargue" db:"peso_descargue"`

	PrecioCompra decimal.Decimal `json:"precioCompra" db:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precioVenta" db:"precio_venta"`
	PrecioFlete  decimal.Decimal `json:"precioFlete" db:"precio_flete"`

	TotalCompra    decimal.Decimal `json:"totalCompra" db:"total_compra"`
	TotalVenta     decimal.Decimal `json:"totalVenta" db:"total_venta"`
	TotalFlete     decimal.Decimal `json:"totalFlete" db:"total_flete"`
	ValorConsignar decimal.Decimal `json:"valorConsignar" db:"valor_consignar"`
	Ganancia       decimal.Decimal `json:"ganancia" db:"ganancia"`

	AuditFields
}
