package points

import (
	"context"
	"sync"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// ===========================
// Mocks
// ===========================

// MockUserRepository mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx shared.TransactionContext, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) UpdateProfile(ctx shared.TransactionContext, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByID(ctx shared.TransactionContext, id user.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByIDForUpdate(ctx shared.TransactionContext, id user.UserID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx shared.TransactionContext, externalID user.ExternalID) (*user.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByDisplayName(ctx shared.TransactionContext, displayName string) (*user.User, error) {
	args := m.Called(ctx, displayName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Leaderboard(ctx shared.TransactionContext, limit int) ([]*user.User, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]*user.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx shared.TransactionContext) ([]*user.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*user.User), args.Error(1)
}

// MockLedgerRepository mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) GetBalance(ctx shared.TransactionContext, userID user.UserID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Credit(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (int, error) {
	args := m.Called(ctx, userID, amount)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) Debit(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (points.DebitResult, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(points.DebitResult), args.Error(1)
}

func (m *MockLedgerRepository) Adjust(ctx shared.TransactionContext, userID user.UserID, delta int) (points.AdjustResult, error) {
	args := m.Called(ctx, userID, delta)
	return args.Get(0).(points.AdjustResult), args.Error(1)
}

func (m *MockLedgerRepository) SetBalance(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (points.AdjustResult, error) {
	args := m.Called(ctx, userID, amount)
	return args.Get(0).(points.AdjustResult), args.Error(1)
}

func (m *MockLedgerRepository) Transfer(ctx shared.TransactionContext, fromUserID, toUserID user.UserID, amount points.PointsAmount) (points.TransferResult, error) {
	args := m.Called(ctx, fromUserID, toUserID, amount)
	return args.Get(0).(points.TransferResult), args.Error(1)
}

// MockTransactionLogRepository 記錄寫入的審計記錄
type MockTransactionLogRepository struct {
	mock.Mock
	entries []*points.PointTransaction
}

func (m *MockTransactionLogRepository) Append(ctx shared.TransactionContext, entry *points.PointTransaction) error {
	args := m.Called(ctx, entry)
	if args.Error(0) == nil {
		m.entries = append(m.entries, entry)
	}
	return args.Error(0)
}

func (m *MockTransactionLogRepository) History(ctx shared.TransactionContext, userID user.UserID) ([]*points.PointTransaction, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*points.PointTransaction), args.Error(1)
}

func (m *MockTransactionLogRepository) SumByUser(ctx shared.TransactionContext, userID user.UserID) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// MockTransactionManager mock implementation of TransactionManager
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) InTransaction(_ context.Context, fn func(ctx shared.TransactionContext) error) error {
	// Directly execute the function with nil context (for unit tests)
	return fn(nil)
}

func (m *MockTransactionManager) InSavepoint(parent shared.TransactionContext, fn func(ctx shared.TransactionContext) error) error {
	return fn(parent)
}

// recordingPublisher 記錄已發布的事件
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(event shared.DomainEvent) error {
	return p.PublishBatch([]shared.DomainEvent{event})
}

func (p *recordingPublisher) PublishBatch(events []shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Events() []shared.DomainEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.DomainEvent(nil), p.events...)
}

// mockDeps 組合 mock 依賴
type mockDeps struct {
	users     *MockUserRepository
	ledger    *MockLedgerRepository
	txLog     *MockTransactionLogRepository
	publisher *recordingPublisher
}

func newMockDeps() (*mockDeps, Dependencies) {
	m := &mockDeps{
		users:     new(MockUserRepository),
		ledger:    new(MockLedgerRepository),
		txLog:     new(MockTransactionLogRepository),
		publisher: &recordingPublisher{},
	}
	return m, Dependencies{
		Users:     m.users,
		Ledger:    m.ledger,
		TxLog:     m.txLog,
		TxManager: new(MockTransactionManager),
		Publisher: m.publisher,
	}
}

func newTestUser(name string) *user.User {
	ext, _ := user.NewExternalID("ext-" + name)
	u, _ := user.NewUser(ext, user.Email{}, name)
	return u
}
