package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportRow is one parsed spreadsheet row of a bulk trip import. ViajeID may
// be empty; the import service then assigns a generated one.
type ImportRow struct {
	ViajeID      string          `json:"viajeID"`
	FechaCargue  time.Time       `json:"fechaCargue" binding:"required"`
	MinaID       string          `json:"minaID" binding:"required"`
	CompradorID  string          `json:"compradorID" binding:"required"`
	VolqueteroID string          `json:"volqueteroID" binding:"required"`
	Conductor    string          `json:"conductor"`
	Placa        string          `json:"placa"`
	TipoVehiculo string          `json:"tipoVehiculo"`
	PesoCargue   decimal.Decimal `json:"pesoCargue"`
	PrecioCompra decimal.Decimal `json:"precioCompra"`
}

// BulkImportRequest commits a bulk trip import. Replace controls conflict
// handling: overwrite existing trips or skip the conflicting rows.
type BulkImportRequest struct {
	Viajes  []ImportRow `json:"viajes" binding:"required"`
	Replace bool        `json:"replace"`
}

// CheckConflictsRequest probes which trip IDs already exist.
type CheckConflictsRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// CheckConflictsResponse lists the IDs that already exist.
type CheckConflictsResponse struct {
	Conflicts []string `json:"conflicts"`
}

// ImportRowError reports one failed row of a bulk import.
type ImportRowError struct {
	ViajeID string `json:"viajeID"`
	Message string `json:"message"`
}

// BulkImportResult reports a bulk import outcome. Partial failure is a
// normal result, not an error: failed rows are listed alongside the
// success count.
type BulkImportResult struct {
	Success    int              `json:"success"`
	Skipped    []string         `json:"skipped,omitempty"`    // conflicting IDs left untouched
	Duplicates []string         `json:"duplicates,omitempty"` // in-file duplicates dropped (first occurrence kept)
	Errors     []ImportRowError `json:"errors,omitempty"`
}
