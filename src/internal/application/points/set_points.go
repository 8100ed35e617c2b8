package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// SetPoints Use Case
// ===========================

// SetPointsCommand 直接設定餘額指令
type SetPointsCommand struct {
	UserID      string
	Amount      int // 必須 >= 0
	Description string
}

// SetPointsUseCase 直接設定餘額
//
// difference = 新餘額 - 舊餘額，記一筆 admin_added（>= 0）或 admin_removed（< 0）。
// 例：餘額 300 設為 100 → 一筆 admin_removed -200。
type SetPointsUseCase interface {
	Execute(ctx context.Context, cmd SetPointsCommand) (*dto.UserDTO, error)
}

type SetPointsUseCaseImpl struct {
	deps Dependencies
}

// NewSetPointsUseCase 創建 SetPointsUseCase 實例
func NewSetPointsUseCase(deps Dependencies) SetPointsUseCase {
	return &SetPointsUseCaseImpl{deps: deps}
}

// Execute 執行設定
func (uc *SetPointsUseCaseImpl) Execute(ctx context.Context, cmd SetPointsCommand) (*dto.UserDTO, error) {
	userID, err := user.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, err
	}
	amount, err := points.NewPointsAmount(cmd.Amount)
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
		result, err = uc.deps.Ledger.SetBalance(tx, userID, amount)
		if err != nil {
			return err
		}

		entry, err := points.SetPointsEntry(userID, result, desc)
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

	txType := points.TransactionTypeAdminAdded
	if result.Applied() < 0 {
		txType = points.TransactionTypeAdminRemoved
	}
	publishAfterCommit(uc.deps.Publisher, points.NewBalanceChangedEvent(
		userID, result.Applied(), result.Balance, txType,
	))
	return dto.FromUser(updated), nil
}
