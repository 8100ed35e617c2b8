package redemption

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

const (
	EventTypeRedemptionCreated       = "redemption.created"
	EventTypeRedemptionStatusChanged = "redemption.status_changed"
)

// RedemptionCreatedEvent 兌換已建立（扣款已提交）
type RedemptionCreatedEvent struct {
	shared.BaseEvent
	Redemption Snapshot
}

// RedemptionStatusChangedEvent 兌換狀態已變更
type RedemptionStatusChangedEvent struct {
	shared.BaseEvent
	Redemption Snapshot
	Previous   Status
}

// Snapshot 事件中攜帶的兌換狀態（事件發布時聚合可能已再被修改）
type Snapshot struct {
	RedemptionID string `json:"redemptionId"`
	UserID       string `json:"userId"`
	RewardID     string `json:"rewardId"`
	Cost         int    `json:"cost"`
	Status       Status `json:"status"`
	Message      string `json:"message,omitempty"`
}

func snapshotOf(r *Redemption) Snapshot {
	return Snapshot{
		RedemptionID: r.redemptionID.String(),
		UserID:       r.userID.String(),
		RewardID:     r.rewardID.String(),
		Cost:         r.cost,
		Status:       r.status,
		Message:      r.message,
	}
}

func NewRedemptionCreatedEvent(r *Redemption) *RedemptionCreatedEvent {
	return &RedemptionCreatedEvent{
		BaseEvent:  shared.NewBaseEvent(EventTypeRedemptionCreated, r.redemptionID.String()),
		Redemption: snapshotOf(r),
	}
}

func NewRedemptionStatusChangedEvent(r *Redemption, previous Status) *RedemptionStatusChangedEvent {
	return &RedemptionStatusChangedEvent{
		BaseEvent:  shared.NewBaseEvent(EventTypeRedemptionStatusChanged, r.redemptionID.String()),
		Redemption: snapshotOf(r),
		Previous:   previous,
	}
}
