package redemption

import (
	"context"
	"fmt"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// RedeemReward Use Case
// ===========================

// RedeemRewardCommand 兌換獎勵指令
type RedeemRewardCommand struct {
	UserID   string
	RewardID string
}

// RedeemRewardResult 兌換結果
//
// Redemption 的狀態是動作執行後的最終狀態；
// 動作失敗時狀態為 failed，但扣款已成立，呼叫本身仍視為成功。
type RedeemRewardResult struct {
	Redemption *dto.RedemptionDTO `json:"redemption"`
	NewBalance int                `json:"newBalance"`
	ActionType string             `json:"actionType"`
}

// RedeemRewardUseCase 兌換獎勵
//
// 業務流程：
// 1. 事務內：讀取獎勵 → 讀取並鎖定使用者 → premium 檢查 → 條件扣款
//    → 建立 pending 兌換 → 寫入 spent 記錄 → 提交
// 2. 提交後：執行獎勵動作，依結果推進兌換狀態
//
// 錯誤處理（步驟 1 的任何失敗都不留下任何寫入）：
// - 獎勵不存在 → reward.ErrRewardNotFound
// - 獎勵未開放 → reward.ErrRewardInactive
// - 使用者不存在 → user.ErrUserNotFound
// - 非 premium 使用者兌換 premium 獎勵 → reward.ErrPremiumRequired
// - 餘額不足 → points.ErrInsufficientPoints
//
// 動作失敗或逾時只會讓兌換變成 failed，不退款、不返回錯誤。
type RedeemRewardUseCase interface {
	Execute(ctx context.Context, cmd RedeemRewardCommand) (*RedeemRewardResult, error)
}

// RedeemRewardUseCaseImpl 兌換獎勵實作
type RedeemRewardUseCaseImpl struct {
	deps Dependencies
}

// NewRedeemRewardUseCase 創建 RedeemRewardUseCase 實例
func NewRedeemRewardUseCase(deps Dependencies) RedeemRewardUseCase {
	return &RedeemRewardUseCaseImpl{deps: deps}
}

// Execute 執行兌換
func (uc *RedeemRewardUseCaseImpl) Execute(ctx context.Context, cmd RedeemRewardCommand) (*RedeemRewardResult, error) {
	userID, err := user.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, err
	}
	rewardID, err := reward.RewardIDFromString(cmd.RewardID)
	if err != nil {
		return nil, err
	}

	var (
		u       *user.User
		rw      *reward.Reward
		rd      *redemption.Redemption
		balance int
	)

	err = uc.deps.TxManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error

		// Step 1: 讀取獎勵
		rw, err = uc.deps.Rewards.FindByID(tx, rewardID)
		if err != nil {
			return err
		}
		if !rw.IsActive() {
			return reward.ErrRewardInactive.WithContext("reward_id", cmd.RewardID)
		}

		// Step 2: 讀取使用者（鎖定列，premium 檢查與扣款看到同一份狀態）
		u, err = uc.deps.Users.FindByIDForUpdate(tx, userID)
		if err != nil {
			return err
		}

		// Step 3: premium 檢查
		if err := rw.CheckRedeemable(u); err != nil {
			return err
		}

		// Step 4: 條件扣款
		debited, err := uc.deps.Ledger.Debit(tx, userID, rw.Cost())
		if err != nil {
			return err
		}
		balance = debited.Balance

		// Step 5: 建立 pending 兌換
		rd = redemption.NewRedemption(userID, rw.RewardID(), rw.Cost().Value())
		if err := uc.deps.Redemptions.Save(tx, rd); err != nil {
			return err
		}

		// Step 6: spent 記錄
		entry, err := points.SpentEntry(userID, rw.Cost(), rw.Title())
		if err != nil {
			return err
		}
		return uc.deps.TxLog.Append(tx, entry)
	})
	// Step 7: 提交（或整體回滾）
	if err != nil {
		return nil, err
	}

	uc.deps.publishAfterCommit(append(
		rd.PullEvents(),
		points.NewBalanceChangedEvent(userID, rw.Cost().Negated(), balance, points.TransactionTypeSpent),
	)...)

	// Step 8: 提交後執行動作
	uc.completeWithAction(ctx, u, rw, rd)

	return &RedeemRewardResult{
		Redemption: dto.FromRedemption(rd),
		NewBalance: balance,
		ActionType: rw.ActionType(),
	}, nil
}

// completeWithAction 執行動作並推進兌換狀態
//
// 扣款已提交：請求被取消不影響動作執行，動作本身受 ActionTimeout 限制。
// 狀態無法寫回時 rd 保持 pending。
func (uc *RedeemRewardUseCaseImpl) completeWithAction(
	ctx context.Context,
	u *user.User,
	rw *reward.Reward,
	rd *redemption.Redemption,
) {
	logger := uc.deps.logger().With(
		"redemption_id", rd.RedemptionID().String(),
		"user_id", u.UserID().String(),
		"reward_id", rw.RewardID().String(),
		"action_type", rw.ActionType(),
	)

	result, err := uc.runAction(ctx, u, rw, rd)
	if err == nil {
		// 執行器不一定是 Registry，狀態在這裡再正規化一次
		result, err = action.NormalizeResult(rw.ActionType(), result)
	}

	next := result.NextStatus
	message := result.Message
	data := result.ResultData()
	if err != nil {
		next = redemption.StatusFailed
		message = "Action execution failed: " + action.Reason(err)
		data = nil
		logger.Warn("reward action failed", "error", err)
	}

	updated := *rd
	if err := updated.TransitionTo(next, message, data); err != nil {
		logger.Error("redemption transition rejected", "error", err, "next_status", next)
		return
	}
	if err := uc.deps.Redemptions.Update(nil, &updated); err != nil {
		logger.Error("persist redemption status failed", "error", err, "next_status", next)
		return
	}

	*rd = updated
	logger.Info("redemption processed", "status", rd.Status())
	uc.deps.publishAfterCommit(rd.PullEvents()...)
}

type actionOutcome struct {
	result action.Result
	err    error
}

// runAction 在時限內執行動作；逾時視為失敗（處理器可能仍在背景完成）
func (uc *RedeemRewardUseCaseImpl) runAction(
	ctx context.Context,
	u *user.User,
	rw *reward.Reward,
	rd *redemption.Redemption,
) (action.Result, error) {
	timeout := uc.deps.actionTimeout()
	actionCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	// 處理器只讀取副本
	view := *rd
	done := make(chan actionOutcome, 1)
	go func() {
		result, err := uc.deps.Actions.Execute(actionCtx, u, rw, &view)
		done <- actionOutcome{result: result, err: err}
	}()

	select {
	case outcome := <-done:
		return outcome.result, outcome.err
	case <-actionCtx.Done():
		return action.Result{}, action.ErrHandlerExecutionFailure.WithContext(
			"action_type", rw.ActionType(),
			"reason", fmt.Sprintf("action timed out after %s", timeout),
		)
	}
}
