package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/rodmarapp/rodmar_backend/internal/core/domain"
	portsrepo "github.com/rodmarapp/rodmar_backend/internal/core/ports/repositories"
	"github.com/rodmarapp/rodmar_backend/internal/platform/cache"
	"github.com/rodmarapp/rodmar_backend/internal/platform/realtime"
)

// --- Mock ViajeRepository ---

type MockViajeRepository struct {
	mock.Mock
}

func (m *MockViajeRepository) FindViajeByID(ctx context.Context, viajeID string) (*domain.Viaje, error) {
	args := m.Called(ctx, viajeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Viaje), args.Error(1)
}

func (m *MockViajeRepository) ListViajes(ctx context.Context, params portsrepo.ListViajesParams) ([]domain.Viaje, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Viaje), token, args.Error(2)
}

func (m *MockViajeRepository) FindExistingViajeIDs(ctx context.Context, viajeIDs []string) ([]string, error) {
	args := m.Called(ctx, viajeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockViajeRepository) SaveViaje(ctx context.Context, viaje domain.Viaje) error {
	return m.Called(ctx, viaje).Error(0)
}

func (m *MockViajeRepository) UpdateViaje(ctx context.Context, viaje domain.Viaje) error {
	return m.Called(ctx, viaje).Error(0)
}

func (m *MockViajeRepository) ReplaceViaje(ctx context.Context, viaje domain.Viaje) error {
	return m.Called(ctx, viaje).Error(0)
}

// --- Mock TransaccionRepository ---

type MockTransaccionRepository struct {
	mock.Mock
}

func (m *MockTransaccionRepository) FindTransaccionByID(ctx context.Context, transaccionID string) (*domain.Transaccion, error) {
	args := m.Called(ctx, transaccionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaccion), args.Error(1)
}

func (m *MockTransaccionRepository) ListTransacciones(ctx context.Context, params portsrepo.ListTransaccionesParams) ([]domain.Transaccion, *string, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Transaccion), token, args.Error(2)
}

func (m *MockTransaccionRepository) SaveTransaccion(ctx context.Context, txn domain.Transaccion) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransaccionRepository) UpdateTransaccion(ctx context.Context, txn domain.Transaccion) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransaccionRepository) DeleteTransaccion(ctx context.Context, transaccionID string) error {
	return m.Called(ctx, transaccionID).Error(0)
}

// --- Mock TransaccionWriter ---

type MockTransaccionWriter struct {
	mock.Mock
}

func (m *MockTransaccionWriter) SaveTransaccion(ctx context.Context, txn domain.Transaccion) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransaccionWriter) UpdateTransaccion(ctx context.Context, txn domain.Transaccion) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockTransaccionWriter) DeleteTransaccion(ctx context.Context, transaccionID string) error {
	return m.Called(ctx, transaccionID).Error(0)
}

// --- Mock PartnerReader ---

type MockPartnerReader struct {
	mock.Mock
}

func (m *MockPartnerReader) FindPartnerByID(ctx context.Context, tipo domain.PartnerType, partnerID string) (*domain.Partner, error) {
	args := m.Called(ctx, tipo, partnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerReader) ListPartners(ctx context.Context, tipo domain.PartnerType) ([]domain.Partner, error) {
	args := m.Called(ctx, tipo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Partner), args.Error(1)
}

// --- Mock PartnerRepository ---

type MockPartnerRepository struct {
	MockPartnerReader
}

func (m *MockPartnerRepository) SavePartner(ctx context.Context, partner domain.Partner) (*domain.Partner, error) {
	args := m.Called(ctx, partner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Partner), args.Error(1)
}

func (m *MockPartnerRepository) UpdatePartner(ctx context.Context, partner domain.Partner) error {
	return m.Called(ctx, partner).Error(0)
}

func (m *MockPartnerRepository) DeactivatePartner(ctx context.Context, tipo domain.PartnerType, partnerID string, userID string, now time.Time) error {
	return m.Called(ctx, tipo, partnerID, userID, now).Error(0)
}

// --- Mock RoleRepository ---

type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) FindRoleByID(ctx context.Context, roleID string) (*domain.Role, error) {
	args := m.Called(ctx, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Role), args.Error(1)
}

func (m *MockRoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Role), args.Error(1)
}

func (m *MockRoleRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Permission), args.Error(1)
}

func (m *MockRoleRepository) SaveRole(ctx context.Context, role domain.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) UpdateRole(ctx context.Context, role domain.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *MockRoleRepository) DeleteRole(ctx context.Context, roleID string) error {
	return m.Called(ctx, roleID).Error(0)
}

func (m *MockRoleRepository) SavePermission(ctx context.Context, permission domain.Permission) error {
	return m.Called(ctx, permission).Error(0)
}

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

// --- Mock BalanceRepository ---

type MockBalanceRepository struct {
	mock.Mock
}

func (m *MockBalanceRepository) GetBalancesForTipo(ctx context.Context, tipo domain.PartnerType) (domain.BalanceMap, error) {
	args := m.Called(ctx, tipo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.BalanceMap), args.Error(1)
}

// --- Recording fakes ---

// recordingInvalidator records coordinator calls without touching a store.
type recordingInvalidator struct {
	tripChanges        []domain.ChangeInfo
	transactionChanges []domain.ChangeInfo
}

func (r *recordingInvalidator) KeysFor(domain.ChangeInfo) []cache.Key { return nil }

func (r *recordingInvalidator) TransactionChanged(_ context.Context, info domain.ChangeInfo) {
	r.transactionChanges = append(r.transactionChanges, info)
}

func (r *recordingInvalidator) TripChanged(_ context.Context, info domain.ChangeInfo) {
	r.tripChanges = append(r.tripChanges, info)
}

func (r *recordingInvalidator) HandleEvent(context.Context, realtime.Event) {}

// recordingPublisher captures push events.
type recordingPublisher struct {
	events []realtime.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev realtime.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}
