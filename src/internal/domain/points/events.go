package points

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// EventTypeBalanceChanged 餘額異動事件
const EventTypeBalanceChanged = "points.balance_changed"

// BalanceChangedEvent 餘額異動（事務提交後發布，供即時介面更新）
type BalanceChangedEvent struct {
	shared.BaseEvent
	userID  user.UserID
	delta   int
	balance int
	txType  TransactionType
}

// NewBalanceChangedEvent 建立餘額異動事件
func NewBalanceChangedEvent(userID user.UserID, delta, balance int, txType TransactionType) *BalanceChangedEvent {
	return &BalanceChangedEvent{
		BaseEvent: shared.NewBaseEvent(EventTypeBalanceChanged, userID.String()),
		userID:    userID,
		delta:     delta,
		balance:   balance,
		txType:    txType,
	}
}

func (e *BalanceChangedEvent) UserID() user.UserID   { return e.userID }
func (e *BalanceChangedEvent) Delta() int            { return e.delta }
func (e *BalanceChangedEvent) Balance() int          { return e.balance }
func (e *BalanceChangedEvent) Type() TransactionType { return e.txType }
