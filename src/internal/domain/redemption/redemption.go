package redemption

import (
	"encoding/json"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// Redemption Aggregate Root
// ===========================

// Redemption 一次兌換
//
// 不變量：
// 1. 一筆兌換對應恰好一次扣款（cost 為兌換當下的獎勵價格）
// 2. redeemedAt 建立後不可變
// 3. 狀態只能依狀態機前進，進入終結狀態時設定 processedAt
// 4. version 用於樂觀鎖，避免並發的狀態更新互相覆蓋
type Redemption struct {
	redemptionID RedemptionID
	userID       user.UserID
	rewardID     reward.RewardID
	cost         int
	status       Status
	message      string
	resultData   json.RawMessage
	redeemedAt   time.Time
	processedAt  *time.Time
	version      int

	events []shared.DomainEvent
}

// NewRedemption 建立 pending 狀態的兌換
func NewRedemption(userID user.UserID, rewardID reward.RewardID, cost int) *Redemption {
	r := &Redemption{
		redemptionID: NewRedemptionID(),
		userID:       userID,
		rewardID:     rewardID,
		cost:         cost,
		status:       StatusPending,
		redeemedAt:   time.Now(),
		version:      1,
	}
	r.addEvent(NewRedemptionCreatedEvent(r))
	return r
}

// ReconstructRedemption 從資料庫重建
func ReconstructRedemption(
	redemptionID RedemptionID,
	userID user.UserID,
	rewardID reward.RewardID,
	cost int,
	status Status,
	message string,
	resultData json.RawMessage,
	redeemedAt time.Time,
	processedAt *time.Time,
	version int,
) *Redemption {
	return &Redemption{
		redemptionID: redemptionID,
		userID:       userID,
		rewardID:     rewardID,
		cost:         cost,
		status:       status,
		message:      message,
		resultData:   resultData,
		redeemedAt:   redeemedAt,
		processedAt:  processedAt,
		version:      version,
	}
}

// TransitionTo 推進狀態
//
// 不允許停留在原狀態，也不允許離開終結狀態。
// message 與 resultData 記錄處理器回報的結果，空值時保留原值。
func (r *Redemption) TransitionTo(next Status, message string, resultData json.RawMessage) error {
	if !r.status.CanTransitionTo(next) {
		return ErrInvalidTransition.WithContext(
			"redemption_id", r.redemptionID.String(),
			"from", string(r.status),
			"to", string(next),
		)
	}

	previous := r.status
	r.status = next
	if message != "" {
		r.message = message
	}
	if len(resultData) > 0 {
		r.resultData = resultData
	}
	if next.IsTerminal() {
		now := time.Now()
		r.processedAt = &now
	}
	r.version++

	r.addEvent(NewRedemptionStatusChangedEvent(r, previous))
	return nil
}

func (r *Redemption) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// PullEvents 取出並清空尚未發布的事件
func (r *Redemption) PullEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

// ===========================
// Getters
// ===========================

func (r *Redemption) RedemptionID() RedemptionID  { return r.redemptionID }
func (r *Redemption) UserID() user.UserID         { return r.userID }
func (r *Redemption) RewardID() reward.RewardID   { return r.rewardID }
func (r *Redemption) Cost() int                   { return r.cost }
func (r *Redemption) Status() Status              { return r.status }
func (r *Redemption) Message() string             { return r.message }
func (r *Redemption) ResultData() json.RawMessage { return r.resultData }
func (r *Redemption) RedeemedAt() time.Time       { return r.redeemedAt }
func (r *Redemption) ProcessedAt() *time.Time     { return r.processedAt }
func (r *Redemption) Version() int                { return r.version }
