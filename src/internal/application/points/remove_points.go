package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// RemovePoints Use Case
// ===========================

// RemovePointsCommand 管理員扣點指令
type RemovePointsCommand struct {
	UserID      string
	Amount      int // 必須 > 0
	Description string
}

// RemovePointsUseCase 管理員扣點
//
// 扣點在零截斷（不會因餘額不足而失敗），
// admin_removed 記錄的是實際扣除量，可能小於要求的金額。
// 兌換扣款則是餘額不足即拒絕，兩者刻意不同。
type RemovePointsUseCase interface {
	Execute(ctx context.Context, cmd RemovePointsCommand) (*dto.UserDTO, error)
}

type RemovePointsUseCaseImpl struct {
	deps Dependencies
}

// NewRemovePointsUseCase 創建 RemovePointsUseCase 實例
func NewRemovePointsUseCase(deps Dependencies) RemovePointsUseCase {
	return &RemovePointsUseCaseImpl{deps: deps}
}

// Execute 執行扣點
func (uc *RemovePointsUseCaseImpl) Execute(ctx context.Context, cmd RemovePointsCommand) (*dto.UserDTO, error) {
	userID, err := user.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, err
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	desc, err := points.NewDescription(cmd.Description)
	if err != nil {
		return nil, err
	}

	var (
		updated *user.User
		result  points.AdjustResult
	)

	err = uc.deps.TxManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		result, err = uc.deps.Ledger.Adjust(tx, userID, amount.Negated())
		if err != nil {
			return err
		}

		entry, err := points.AdminRemovedEntry(userID, result, desc)
		if err != nil {
			return err
		}
		if err := uc.deps.TxLog.Append(tx, entry); err != nil {
			return err
		}

		updated, err = uc.deps.Users.FindByID(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(uc.deps.Publisher, points.NewBalanceChangedEvent(
		userID, result.Applied(), result.Balance, points.TransactionTypeAdminRemoved,
	))
	return dto.FromUser(updated), nil
}
