package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

// generatedIDCap is the last ID of the TRP series; rows beyond it fall into
// the A overflow series.
const generatedIDCap = 999

// importService drives the bulk trip import. The pipeline is fixed: in-file
// de-duplication (first occurrence wins), ID generation for blank rows,
// conflict resolution against existing trips (replace or skip), then per-row
// commit where individual failures do not abort the batch.
type importService struct {
	BaseService
	viajeRepo   portsrepo.ViajeRepositoryFacade
	partnerRepo portsrepo.PartnerReader
	invalidator portssvc.InvalidatorSvc
}

// NewImportService creates an ImportSvcFacade.
func NewImportService(
	viajeRepo portsrepo.ViajeRepositoryFacade,
	partnerRepo portsrepo.PartnerReader,
	invalidator portssvc.InvalidatorSvc,
) portssvc.ImportSvcFacade {
	return &importService{
		viajeRepo:   viajeRepo,
		partnerRepo: partnerRepo,
		invalidator: invalidator,
	}
}

var _ portssvc.ImportSvcFacade = (*importService)(nil)

// CheckConflicts reports which of the given trip IDs already exist. The
// client calls this between parsing and committing so the user can choose
// replace or skip.
func (s *importService) CheckConflicts(ctx context.Context, viajeIDs []string) ([]string, error) {
	if len(viajeIDs) == 0 {
		return []string{}, nil
	}
	conflicts, err := s.viajeRepo.FindExistingViajeIDs(ctx, viajeIDs)
	if err != nil {
		return nil, fmt.Errorf("probing trip IDs: %w", err)
	}
	if conflicts == nil {
		conflicts = []string{}
	}
	return conflicts, nil
}

// GeneratedViajeID renders the nth generated trip ID: TRP001 through TRP999,
// then the A-prefixed overflow series.
func GeneratedViajeID(n int) string {
	if n <= generatedIDCap {
		return fmt.Sprintf("TRP%03d", n)
	}
	return fmt.Sprintf("A%03d", n-generatedIDCap)
}

// BulkImport commits parsed spreadsheet rows.
func (s *importService) BulkImport(ctx context.Context, req dto.BulkImportRequest, userID string) (*dto.BulkImportResult, error) {
	if len(req.Viajes) == 0 {
		return nil, fmt.Errorf("%w: no rows to import", apperrors.ErrValidation)
	}

	result := &dto.BulkImportResult{}

	// In-file de-duplication by explicit trip ID, first occurrence wins.
	rows := make([]dto.ImportRow, 0, len(req.Viajes))
	usedIDs := make(map[string]struct{})
	for _, row := range req.Viajes {
		if row.ViajeID != "" {
			if _, dup := usedIDs[row.ViajeID]; dup {
				result.Duplicates = append(result.Duplicates, row.ViajeID)
				continue
			}
			usedIDs[row.ViajeID] = struct{}{}
		}
		rows = append(rows, row)
	}

	if err := s.assignGeneratedIDs(ctx, rows, usedIDs); err != nil {
		return nil, err
	}

	// Conflict resolution against existing trips.
	allIDs := make([]string, len(rows))
	for i, row := range rows {
		allIDs[i] = row.ViajeID
	}
	existing, err := s.viajeRepo.FindExistingViajeIDs(ctx, allIDs)
	if err != nil {
		return nil, fmt.Errorf("probing trip IDs: %w", err)
	}
	conflicting := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		conflicting[id] = struct{}{}
	}

	var change domain.ChangeInfo
	for _, row := range rows {
		_, conflicts := conflicting[row.ViajeID]
		if conflicts && !req.Replace {
			result.Skipped = append(result.Skipped, row.ViajeID)
			continue
		}

		viaje, err := s.rowToViaje(ctx, row, userID)
		if err != nil {
			result.Errors = append(result.Errors, dto.ImportRowError{ViajeID: row.ViajeID, Message: err.Error()})
			continue
		}

		if conflicts {
			err = s.viajeRepo.ReplaceViaje(ctx, *viaje)
		} else {
			err = s.viajeRepo.SaveViaje(ctx, *viaje)
		}
		if err != nil {
			s.LogError(ctx, "Import row failed", slog.String("viaje_id", row.ViajeID), slog.String("error", err.Error()))
			result.Errors = append(result.Errors, dto.ImportRowError{ViajeID: row.ViajeID, Message: err.Error()})
			continue
		}

		result.Success++
		change.NewRefs = append(change.NewRefs, viaje.Refs()...)
	}

	if result.Success > 0 {
		s.invalidator.TripChanged(ctx, change)
	}

	s.LogInfo(ctx, "Bulk import finished",
		slog.Int("success", result.Success),
		slog.Int("skipped", len(result.Skipped)),
		slog.Int("duplicates", len(result.Duplicates)),
		slog.Int("errors", len(result.Errors)),
		slog.String("user_id", userID))
	return result, nil
}

// assignGeneratedIDs fills blank trip IDs from the TRP/A series, skipping
// IDs already used in the file or already present in the database.
func (s *importService) assignGeneratedIDs(ctx context.Context, rows []dto.ImportRow, usedIDs map[string]struct{}) error {
	blanks := 0
	for i := range rows {
		if rows[i].ViajeID == "" {
			blanks++
		}
	}
	if blanks == 0 {
		return nil
	}

	next := 1
	for i := range rows {
		if rows[i].ViajeID != "" {
			continue
		}
		for {
			candidate := GeneratedViajeID(next)
			next++
			if _, taken := usedIDs[candidate]; taken {
				continue
			}
			existing, err := s.viajeRepo.FindExistingViajeIDs(ctx, []string{candidate})
			if err != nil {
				return fmt.Errorf("probing generated trip ID: %w", err)
			}
			if len(existing) > 0 {
				continue
			}
			rows[i].ViajeID = candidate
			usedIDs[candidate] = struct{}{}
			break
		}
	}
	return nil
}

// rowToViaje validates one import row and builds the pending trip.
func (s *importService) rowToViaje(ctx context.Context, row dto.ImportRow, userID string) (*domain.Viaje, error) {
	for _, ref := range []domain.PartnerRef{
		{Tipo: domain.PartnerMina, ID: row.MinaID},
		{Tipo: domain.PartnerComprador, ID: row.CompradorID},
		{Tipo: domain.PartnerVolquetero, ID: row.VolqueteroID},
	} {
		if ref.ID == "" {
			return nil, fmt.Errorf("%w: %s id is required", apperrors.ErrValidation, ref.Tipo)
		}
		if _, err := s.partnerRepo.FindPartnerByID(ctx, ref.Tipo, ref.ID); err != nil {
			return nil, fmt.Errorf("resolving %s %s: %w", ref.Tipo, ref.ID, err)
		}
	}
	if row.PesoCargue.IsNegative() {
		return nil, fmt.Errorf("%w: pesoCargue cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	viaje := domain.Viaje{
		ViajeID:      row.ViajeID,
		Estado:       domain.ViajePendiente,
		FechaCargue:  row.FechaCargue,
		MinaID:       row.MinaID,
		CompradorID:  row.CompradorID,
		VolqueteroID: row.VolqueteroID,
		Conductor:    row.Conductor,
		Placa:        row.Placa,
		TipoVehiculo: row.TipoVehiculo,
		PesoCargue:   row.PesoCargue,
		PrecioCompra: row.PrecioCompra,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	viaje.ComputeTotals()
	return &viaje, nil
}
