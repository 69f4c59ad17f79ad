package services

import (
	"context"
	"io"

	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// ImportSvcFacade drives the bulk trip import: in-file de-duplication,
// conflict probe against existing IDs, then commit with replace or skip.
type ImportSvcFacade interface {
	// ParseCSV reads spreadsheet rows exported by the office template into
	// import rows. Parsing is strict; a malformed row fails the whole file
	// with its line number.
	ParseCSV(r io.Reader) ([]dto.ImportRow, error)

	// CheckConflicts reports which of the given trip IDs already exist.
	CheckConflicts(ctx context.Context, viajeIDs []string) ([]string, error)

	// BulkImport commits parsed rows. Partial failure is not an error: the
	// result distinguishes imported, skipped and failed rows.
	BulkImport(ctx context.Context, req dto.BulkImportRequest, userID string) (*dto.BulkImportResult, error)
}
