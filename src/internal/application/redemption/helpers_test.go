package redemption

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/persistence/persistencetest"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ===========================
// 測試輔助
// ===========================

// stubExecutor 固定回報的動作執行器
type stubExecutor struct {
	mu     sync.Mutex
	result action.Result
	err    error
	block  chan struct{} // 非 nil 時阻塞直到關閉
	calls  int
}

func (s *stubExecutor) Execute(_ context.Context, _ *user.User, _ *reward.Reward, _ *redemption.Redemption) (action.Result, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()

	if block != nil {
		<-block
	}
	return s.result, s.err
}

func (s *stubExecutor) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

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

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.EventType())
	}
	return types
}

type fixture struct {
	db        *gorm.DB
	deps      Dependencies
	executor  *stubExecutor
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	executor := &stubExecutor{result: action.Result{Success: true, Message: "done"}}
	publisher := &recordingPublisher{}

	return &fixture{
		db:        db,
		executor:  executor,
		publisher: publisher,
		deps: Dependencies{
			Users:         persistence.NewUserRepository(db),
			Rewards:       persistence.NewRewardRepository(db),
			Ledger:        persistence.NewLedgerRepository(db),
			TxLog:         persistence.NewTransactionLogRepository(db),
			Redemptions:   persistence.NewRedemptionRepository(db),
			TxManager:     persistence.NewGORMTransactionManager(db),
			Publisher:     publisher,
			Actions:       executor,
			ActionTimeout: time.Second,
		},
	}
}

// userWithBalance 建立使用者並以 earned 記錄入帳
func (f *fixture) userWithBalance(t *testing.T, name string, balance int) *user.User {
	t.Helper()

	u := persistencetest.NewUser(t, f.db, name)
	if balance == 0 {
		return u
	}
	amount, err := points.NewPositivePointsAmount(balance)
	require.NoError(t, err)
	desc, err := points.NewDescription("seed")
	require.NoError(t, err)

	err = f.deps.TxManager.InTransaction(context.Background(), func(tx shared.TransactionContext) error {
		if _, err := f.deps.Ledger.Credit(tx, u.UserID(), amount); err != nil {
			return err
		}
		entry, err := points.EarnedEntry(u.UserID(), amount, desc)
		if err != nil {
			return err
		}
		return f.deps.TxLog.Append(tx, entry)
	})
	require.NoError(t, err)
	return u
}

type rewardOption func(*reward.RewardSpec)

func premium() rewardOption { return func(s *reward.RewardSpec) { s.Tier = reward.TierPremium } }
func inactive() rewardOption { return func(s *reward.RewardSpec) { s.IsActive = false } }

func (f *fixture) reward(t *testing.T, title string, cost int, opts ...rewardOption) *reward.Reward {
	t.Helper()

	spec := reward.RewardSpec{
		Title:        title,
		Cost:         cost,
		ActionType:   string(action.TypeChatMessage),
		ActionConfig: json.RawMessage(`{"message":"{{username}} redeemed {{reward}}"}`),
		Tier:         reward.TierCommon,
		IsActive:     true,
	}
	for _, opt := range opts {
		opt(&spec)
	}
	rw, err := reward.NewReward(spec)
	require.NoError(t, err)
	require.NoError(t, f.deps.Rewards.Save(nil, rw))
	return rw
}

func (f *fixture) balance(t *testing.T, u *user.User) int {
	t.Helper()
	balance, err := f.deps.Ledger.GetBalance(nil, u.UserID())
	require.NoError(t, err)
	return balance
}

func (f *fixture) history(t *testing.T, u *user.User) []*points.PointTransaction {
	t.Helper()
	entries, err := f.deps.TxLog.History(nil, u.UserID())
	require.NoError(t, err)
	return entries
}
