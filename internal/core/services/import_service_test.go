package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	"github.com/rodmarapp/rodmar_backend/internal/core/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

func TestGeneratedViajeID(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 1, want: "TRP001"},
		{n: 42, want: "TRP042"},
		{n: 999, want: "TRP999"},
		{n: 1000, want: "A001"},
		{n: 1011, want: "A012"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.GeneratedViajeID(tt.n))
	}
}

func importRow(viajeID string) dto.ImportRow {
	return dto.ImportRow{
		ViajeID:      viajeID,
		FechaCargue:  time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC),
		MinaID:       "1",
		CompradorID:  "2",
		VolqueteroID: "3",
		PesoCargue:   decimal.NewFromInt(30),
		PrecioCompra: decimal.NewFromInt(100),
	}
}

func newImportFixture() (*MockViajeRepository, *MockPartnerReader, *recordingInvalidator) {
	viajeRepo := new(MockViajeRepository)
	partnerRepo := new(MockPartnerReader)
	invalidator := &recordingInvalidator{}
	partnerRepo.On("FindPartnerByID", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Partner{PartnerID: "1"}, nil).Maybe()
	return viajeRepo, partnerRepo, invalidator
}

func TestImportService_CheckConflicts(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	viajeRepo.On("FindExistingViajeIDs", mock.Anything, []string{"TRP001", "TRP002"}).
		Return([]string{"TRP002"}, nil)

	conflicts, err := svc.CheckConflicts(context.Background(), []string{"TRP001", "TRP002"})
	require.NoError(t, err)
	assert.Equal(t, []string{"TRP002"}, conflicts)

	conflicts, err = svc.CheckConflicts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
}

func TestImportService_DedupeAndSkip(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	// File carries A twice plus B; B already exists and replace is off.
	req := dto.BulkImportRequest{
		Viajes:  []dto.ImportRow{importRow("A001"), importRow("A001"), importRow("B001")},
		Replace: false,
	}
	viajeRepo.On("FindExistingViajeIDs", mock.Anything, []string{"A001", "B001"}).
		Return([]string{"B001"}, nil)
	viajeRepo.On("SaveViaje", mock.Anything, mock.MatchedBy(func(v domain.Viaje) bool {
		return v.ViajeID == "A001" && v.Estado == domain.ViajePendiente
	})).Return(nil).Once()

	result, err := svc.BulkImport(context.Background(), req, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	assert.Equal(t, []string{"A001"}, result.Duplicates)
	assert.Equal(t, []string{"B001"}, result.Skipped)
	assert.Empty(t, result.Errors)

	viajeRepo.AssertExpectations(t)
	viajeRepo.AssertNotCalled(t, "ReplaceViaje", mock.Anything, mock.Anything)
	require.Len(t, invalidator.tripChanges, 1)
}

func TestImportService_ReplaceOverwritesConflicts(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	req := dto.BulkImportRequest{
		Viajes:  []dto.ImportRow{importRow("TRP001"), importRow("TRP002")},
		Replace: true,
	}
	viajeRepo.On("FindExistingViajeIDs", mock.Anything, []string{"TRP001", "TRP002"}).
		Return([]string{"TRP001"}, nil)
	viajeRepo.On("ReplaceViaje", mock.Anything, mock.MatchedBy(func(v domain.Viaje) bool {
		return v.ViajeID == "TRP001"
	})).Return(nil).Once()
	viajeRepo.On("SaveViaje", mock.Anything, mock.MatchedBy(func(v domain.Viaje) bool {
		return v.ViajeID == "TRP002"
	})).Return(nil).Once()

	result, err := svc.BulkImport(context.Background(), req, "u1")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Success)
	assert.Empty(t, result.Skipped)
	viajeRepo.AssertExpectations(t)
}

func TestImportService_GeneratesIDsForBlankRows(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	// One explicit TRP001 plus two blank rows: the generator must skip the
	// explicit ID and hand out TRP002 and TRP003.
	req := dto.BulkImportRequest{
		Viajes: []dto.ImportRow{importRow("TRP001"), importRow(""), importRow("")},
	}
	viajeRepo.On("FindExistingViajeIDs", mock.Anything, mock.Anything).Return([]string{}, nil)

	var savedIDs []string
	viajeRepo.On("SaveViaje", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		savedIDs = append(savedIDs, args.Get(1).(domain.Viaje).ViajeID)
	}).Return(nil).Times(3)

	result, err := svc.BulkImport(context.Background(), req, "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, result.Success)
	assert.Equal(t, []string{"TRP001", "TRP002", "TRP003"}, savedIDs)
}

func TestImportService_RowErrorDoesNotAbortBatch(t *testing.T) {
	viajeRepo := new(MockViajeRepository)
	partnerRepo := new(MockPartnerReader)
	invalidator := &recordingInvalidator{}
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	badRow := importRow("TRP002")
	badRow.MinaID = "999"

	partnerRepo.On("FindPartnerByID", mock.Anything, domain.PartnerMina, "999").
		Return(nil, apperrors.ErrNotFound)
	partnerRepo.On("FindPartnerByID", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Partner{PartnerID: "1"}, nil)

	viajeRepo.On("FindExistingViajeIDs", mock.Anything, []string{"TRP001", "TRP002"}).
		Return([]string{}, nil)
	viajeRepo.On("SaveViaje", mock.Anything, mock.MatchedBy(func(v domain.Viaje) bool {
		return v.ViajeID == "TRP001"
	})).Return(nil).Once()

	result, err := svc.BulkImport(context.Background(), dto.BulkImportRequest{
		Viajes: []dto.ImportRow{importRow("TRP001"), badRow},
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "TRP002", result.Errors[0].ViajeID)
}

const importCSVHeader = "viaje_id,fecha_cargue,mina_id,comprador_id,volquetero_id,conductor,placa,tipo_vehiculo,peso_cargue,precio_compra\n"

func TestImportService_ParseCSV(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	sheet := importCSVHeader +
		"TRP001,2025-03-10,1,2,3,Luis,ABC123,doble troque,30,100\n" +
		",2025-03-11,1,2,3,Pedro,XYZ789,,28.5,\n"

	rows, err := svc.ParseCSV(strings.NewReader(sheet))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TRP001", rows[0].ViajeID)
	assert.Equal(t, "doble troque", rows[0].TipoVehiculo)
	assert.True(t, decimal.NewFromInt(30).Equal(rows[0].PesoCargue))

	// Blank ID and blank price cells are allowed; the pipeline fills them in.
	assert.Empty(t, rows[1].ViajeID)
	assert.True(t, decimal.RequireFromString("28.5").Equal(rows[1].PesoCargue))
	assert.True(t, rows[1].PrecioCompra.IsZero())
}

func TestImportService_ParseCSVRejectsMalformedRows(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	tests := []struct {
		name  string
		sheet string
	}{
		{
			name:  "wrong header",
			sheet: "id,fecha,mina\nTRP001,2025-03-10,1\n",
		},
		{
			name:  "bad date",
			sheet: importCSVHeader + "TRP001,10/03/2025,1,2,3,Luis,ABC123,,30,100\n",
		},
		{
			name:  "missing mina",
			sheet: importCSVHeader + "TRP001,2025-03-10,,2,3,Luis,ABC123,,30,100\n",
		},
		{
			name:  "non-numeric weight",
			sheet: importCSVHeader + "TRP001,2025-03-10,1,2,3,Luis,ABC123,,treinta,100\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ParseCSV(strings.NewReader(tt.sheet))
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestImportService_EmptyBatchRejected(t *testing.T) {
	viajeRepo, partnerRepo, invalidator := newImportFixture()
	svc := services.NewImportService(viajeRepo, partnerRepo, invalidator)

	_, err := svc.BulkImport(context.Background(), dto.BulkImportRequest{}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
