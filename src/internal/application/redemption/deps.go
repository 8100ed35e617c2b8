package redemption

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// DefaultActionTimeout 動作執行的預設時限
const DefaultActionTimeout = 5 * time.Second

// ActionExecutor 執行獎勵動作（由 *action.Registry 實作）
type ActionExecutor interface {
	Execute(ctx context.Context, u *user.User, rw *reward.Reward, rd *redemption.Redemption) (action.Result, error)
}

// Dependencies 兌換流程的協作者
type Dependencies struct {
	Users       user.UserRepository
	Rewards     reward.RewardRepository
	Ledger      points.LedgerRepository
	TxLog       points.TransactionLogRepository
	Redemptions redemption.Repository
	TxManager   shared.TransactionManager
	Publisher   shared.EventPublisher
	Actions     ActionExecutor

	// ActionTimeout 為 0 時使用 DefaultActionTimeout
	ActionTimeout time.Duration
	Logger        *slog.Logger
}

func (d Dependencies) actionTimeout() time.Duration {
	if d.ActionTimeout <= 0 {
		return DefaultActionTimeout
	}
	return d.ActionTimeout
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

// publishAfterCommit 發布事件；失敗只記錄
func (d Dependencies) publishAfterCommit(events ...shared.DomainEvent) {
	if d.Publisher == nil || len(events) == 0 {
		return
	}
	if err := d.Publisher.PublishBatch(events); err != nil {
		d.logger().Warn("publish events failed", "error", err, "count", len(events))
	}
}
