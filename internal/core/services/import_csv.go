package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// importCSVColumns is the expected header, in order, matching the
// spreadsheet template the office exports.
var importCSVColumns = []string{
	"viaje_id",
	"fecha_cargue",
	"mina_id",
	"comprador_id",
	"volquetero_id",
	"conductor",
	"placa",
	"tipo_vehiculo",
	"peso_cargue",
	"precio_compra",
}

const importDateLayout = "2006-01-02"

// ParseCSV reads spreadsheet rows into import rows. The header row is
// mandatory and column order is fixed; a malformed row fails the whole file
// with its line number so the office can fix the sheet and retry.
func (s *importService) ParseCSV(r io.Reader) ([]dto.ImportRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", apperrors.ErrValidation, err)
	}
	if len(header) != len(importCSVColumns) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", apperrors.ErrValidation, len(importCSVColumns), len(header))
	}
	for i, want := range importCSVColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", apperrors.ErrValidation, i+1, header[i], want)
		}
	}

	var rows []dto.ImportRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, line, err)
		}
		row, err := parseImportRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", apperrors.ErrValidation, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseImportRecord(record []string) (dto.ImportRow, error) {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	fecha, err := time.Parse(importDateLayout, record[1])
	if err != nil {
		return dto.ImportRow{}, fmt.Errorf("fecha_cargue %q is not a YYYY-MM-DD date", record[1])
	}
	for offset, col := range []string{"mina_id", "comprador_id", "volquetero_id"} {
		if record[2+offset] == "" {
			return dto.ImportRow{}, fmt.Errorf("%s is required", col)
		}
	}
	peso, err := csvDecimal(record[8])
	if err != nil {
		return dto.ImportRow{}, fmt.Errorf("peso_cargue %q is not a number", record[8])
	}
	precio, err := csvDecimal(record[9])
	if err != nil {
		return dto.ImportRow{}, fmt.Errorf("precio_compra %q is not a number", record[9])
	}

	return dto.ImportRow{
		ViajeID:      record[0],
		FechaCargue:  fecha,
		MinaID:       record[2],
		CompradorID:  record[3],
		VolqueteroID: record[4],
		Conductor:    record[5],
		Placa:        record[6],
		TipoVehiculo: record[7],
		PesoCargue:   peso,
		PrecioCompra: precio,
	}, nil
}

// csvDecimal parses an optional numeric cell; blank means zero.
func csvDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
