package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rodmarapp/rodmar_backend/internal/apperrors"
	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	portssvc "github.com/rodmarapp/rodmar_backend/internal/core/ports/services"
	"github.com/rodmarapp/rodmar_backend/internal/core/services"
	"github.com/rodmarapp/rodmar_backend/internal/dto"
)

func newTransaccionFixture() (*MockTransaccionRepository, *MockPartnerReader, *recordingInvalidator, portssvc.TransaccionSvcFacade) {
	txnRepo := new(MockTransaccionRepository)
	partnerRepo := new(MockPartnerReader)
	invalidator := &recordingInvalidator{}
	svc := services.NewTransaccionService(txnRepo, partnerRepo, invalidator)
	return txnRepo, partnerRepo, invalidator, svc
}

func createTransaccionRequest() dto.CreateTransaccionRequest {
	return dto.CreateTransaccionRequest{
		DeQuien:    dto.PartnerRefDTO{Tipo: "mina", ID: "7"},
		ParaQuien:  dto.PartnerRefDTO{Tipo: "rodmar", ID: "rodmar"},
		Concepto:   "Anticipo carbón",
		Monto:      decimal.NewFromInt(500),
		Fecha:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		MetodoPago: "transferencia",
	}
}

func TestTransaccionService_Create(t *testing.T) {
	txnRepo, partnerRepo, invalidator, svc := newTransaccionFixture()

	partnerRepo.On("FindPartnerByID", mock.Anything, domain.PartnerMina, "7").
		Return(&domain.Partner{PartnerID: "7"}, nil)
	txnRepo.On("SaveTransaccion", mock.Anything, mock.MatchedBy(func(txn domain.Transaccion) bool {
		return txn.Estado == domain.TransaccionCompletada && txn.TransaccionID != ""
	})).Return(nil).Once()

	txn, err := svc.CreateTransaccion(context.Background(), createTransaccionRequest(), "u1")
	require.NoError(t, err)

	assert.Equal(t, domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"}, txn.DeQuien)
	assert.Equal(t, domain.FixedRef(domain.PartnerRodMar), txn.ParaQuien)
	require.Len(t, invalidator.transactionChanges, 1)
	assert.Empty(t, invalidator.transactionChanges[0].OldRefs)
	txnRepo.AssertExpectations(t)
}

func TestTransaccionService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.CreateTransaccionRequest)
	}{
		{
			name:   "unknown partner type",
			mutate: func(r *dto.CreateTransaccionRequest) { r.DeQuien.Tipo = "camiones" },
		},
		{
			name: "fixed partner with a foreign id",
			mutate: func(r *dto.CreateTransaccionRequest) {
				r.ParaQuien = dto.PartnerRefDTO{Tipo: "rodmar", ID: "42"}
			},
		},
		{
			name: "same partner on both sides",
			mutate: func(r *dto.CreateTransaccionRequest) {
				r.DeQuien = dto.PartnerRefDTO{Tipo: "rodmar", ID: "rodmar"}
			},
		},
		{
			name:   "zero monto",
			mutate: func(r *dto.CreateTransaccionRequest) { r.Monto = decimal.Zero },
		},
		{
			name:   "negative monto",
			mutate: func(r *dto.CreateTransaccionRequest) { r.Monto = decimal.NewFromInt(-5) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txnRepo, partnerRepo, _, svc := newTransaccionFixture()
			partnerRepo.On("FindPartnerByID", mock.Anything, mock.Anything, mock.Anything).
				Return(&domain.Partner{PartnerID: "7"}, nil).Maybe()

			req := createTransaccionRequest()
			tt.mutate(&req)

			_, err := svc.CreateTransaccion(context.Background(), req, "u1")
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			txnRepo.AssertNotCalled(t, "SaveTransaccion", mock.Anything, mock.Anything)
		})
	}
}

func TestTransaccionService_UpdateRepointingCarriesBothRefs(t *testing.T) {
	txnRepo, partnerRepo, invalidator, svc := newTransaccionFixture()

	existing := &domain.Transaccion{
		TransaccionID: "t1",
		DeQuien:       domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"},
		ParaQuien:     domain.FixedRef(domain.PartnerRodMar),
		Monto:         decimal.NewFromInt(500),
		Estado:        domain.TransaccionCompletada,
	}
	txnRepo.On("FindTransaccionByID", mock.Anything, "t1").Return(existing, nil)
	partnerRepo.On("FindPartnerByID", mock.Anything, domain.PartnerMina, "8").
		Return(&domain.Partner{PartnerID: "8"}, nil)
	txnRepo.On("UpdateTransaccion", mock.Anything, mock.Anything).Return(nil).Once()

	updated, err := svc.UpdateTransaccion(context.Background(), "t1", dto.UpdateTransaccionRequest{
		DeQuien: &dto.PartnerRefDTO{Tipo: "mina", ID: "8"},
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, "8", updated.DeQuien.ID)
	require.Len(t, invalidator.transactionChanges, 1)
	info := invalidator.transactionChanges[0]
	assert.Contains(t, info.OldRefs, domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"})
	assert.Contains(t, info.NewRefs, domain.PartnerRef{Tipo: domain.PartnerMina, ID: "8"})
}

func TestTransaccionService_DeleteRejectsTripTransactions(t *testing.T) {
	txnRepo, _, invalidator, svc := newTransaccionFixture()

	txnRepo.On("FindTransaccionByID", mock.Anything, "t1").Return(&domain.Transaccion{
		TransaccionID: "t1",
		ViajeID:       "TRP010",
	}, nil)

	err := svc.DeleteTransaccion(context.Background(), "t1", "u1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	txnRepo.AssertNotCalled(t, "DeleteTransaccion", mock.Anything, mock.Anything)
	assert.Empty(t, invalidator.transactionChanges)
}

func TestTransaccionService_Delete(t *testing.T) {
	txnRepo, _, invalidator, svc := newTransaccionFixture()

	existing := &domain.Transaccion{
		TransaccionID: "t1",
		DeQuien:       domain.PartnerRef{Tipo: domain.PartnerMina, ID: "7"},
		ParaQuien:     domain.FixedRef(domain.PartnerBanco),
	}
	txnRepo.On("FindTransaccionByID", mock.Anything, "t1").Return(existing, nil)
	txnRepo.On("DeleteTransaccion", mock.Anything, "t1").Return(nil).Once()

	require.NoError(t, svc.DeleteTransaccion(context.Background(), "t1", "u1"))

	// Deletion invalidates the same partner set as creation did.
	require.Len(t, invalidator.transactionChanges, 1)
	assert.Equal(t, existing.Refs(), invalidator.transactionChanges[0].OldRefs)
	assert.Empty(t, invalidator.transactionChanges[0].NewRefs)
}

func TestTransaccionService_SolicitarCreatesPending(t *testing.T) {
	txnRepo, partnerRepo, _, svc := newTransaccionFixture()

	partnerRepo.On("FindPartnerByID", mock.Anything, domain.PartnerVolquetero, "3").
		Return(&domain.Partner{PartnerID: "3"}, nil)
	txnRepo.On("SaveTransaccion", mock.Anything, mock.MatchedBy(func(txn domain.Transaccion) bool {
		return txn.Estado == domain.TransaccionPendiente &&
			txn.DeQuien == domain.FixedRef(domain.PartnerRodMar) &&
			txn.DetalleSolicitud == "Bancolombia 123-456"
	})).Return(nil).Once()

	txn, err := svc.SolicitarTransaccion(context.Background(), dto.SolicitarTransaccionRequest{
		ParaQuien:        dto.PartnerRefDTO{Tipo: "volquetero", ID: "3"},
		Concepto:         "Pago flete",
		Monto:            decimal.NewFromInt(800),
		Fecha:            time.Now(),
		DetalleSolicitud: "Bancolombia 123-456",
	}, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.TransaccionPendiente, txn.Estado)
}

func TestTransaccionService_CompletarFlipsStateAndClearsRequest(t *testing.T) {
	txnRepo, partnerRepo, invalidator, svc := newTransaccionFixture()

	pending := &domain.Transaccion{
		TransaccionID:    "t1",
		DeQuien:          domain.FixedRef(domain.PartnerRodMar),
		ParaQuien:        domain.PartnerRef{Tipo: domain.PartnerVolquetero, ID: "3"},
		Monto:            decimal.NewFromInt(800),
		Estado:           domain.TransaccionPendiente,
		DetalleSolicitud: "Bancolombia 123-456",
	}
	txnRepo.On("FindTransaccionByID", mock.Anything, "t1").Return(pending, nil)
	partnerRepo.On("FindPartnerByID", mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.Partner{PartnerID: "1"}, nil).Maybe()
	txnRepo.On("UpdateTransaccion", mock.Anything, mock.MatchedBy(func(txn domain.Transaccion) bool {
		return txn.Estado == domain.TransaccionCompletada &&
			txn.DetalleSolicitud == "" &&
			txn.DeQuien == domain.FixedRef(domain.PartnerBanco)
	})).Return(nil).Once()

	updated, err := svc.CompletarTransaccion(context.Background(), "t1", dto.CompletarTransaccionRequest{
		DeQuien:    dto.PartnerRefDTO{Tipo: "banco", ID: "banco"},
		MetodoPago: "transferencia",
	}, "u1")
	require.NoError(t, err)

	assert.Equal(t, domain.TransaccionCompletada, updated.Estado)
	require.Len(t, invalidator.transactionChanges, 1)
	txnRepo.AssertExpectations(t)
}

func TestTransaccionService_CompletarRejectsNonPending(t *testing.T) {
	txnRepo, _, _, svc := newTransaccionFixture()

	txnRepo.On("FindTransaccionByID", mock.Anything, "t1").Return(&domain.Transaccion{
		TransaccionID: "t1",
		Estado:        domain.TransaccionCompletada,
	}, nil)

	_, err := svc.CompletarTransaccion(context.Background(), "t1", dto.CompletarTransaccionRequest{
		DeQuien:    dto.PartnerRefDTO{Tipo: "banco", ID: "banco"},
		MetodoPago: "efectivo",
	}, "u1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	txnRepo.AssertNotCalled(t, "UpdateTransaccion", mock.Anything, mock.Anything)
}

func TestTransaccionService_ListClampsLimit(t *testing.T) {
	txnRepo, _, _, svc := newTransaccionFixture()

	txnRepo.On("ListTransacciones", mock.Anything, mock.MatchedBy(func(p portsrepo.ListTransaccionesParams) bool {
		return p.Limit == 50
	})).Return([]domain.Transaccion{}, nil, nil).Twice()

	_, err := svc.ListTransacciones(context.Background(), portsrepo.ListTransaccionesParams{Limit: 0})
	require.NoError(t, err)
	_, err = svc.ListTransacciones(context.Background(), portsrepo.ListTransaccionesParams{Limit: 500})
	require.NoError(t, err)
	txnRepo.AssertExpectations(t)
}
