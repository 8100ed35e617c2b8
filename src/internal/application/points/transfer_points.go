package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// TransferPoints Use Case
// ===========================

// TransferPointsCommand 轉帳指令
type TransferPointsCommand struct {
	FromUserID  string
	ToUserID    string
	Amount      int // 必須 > 0
	Description string
}

// TransferPointsResult 轉帳結果（雙方最新狀態）
type TransferPointsResult struct {
	FromUser *dto.UserDTO `json:"fromUser"`
	ToUser   *dto.UserDTO `json:"toUser"`
}

// TransferPointsUseCase 管理員轉帳
//
// 業務規則：
// 1. 不可轉給自己（ErrSameUserTransfer）
// 2. 任一方不存在 → ErrUserNotFound，整筆回滾
// 3. 來源餘額不足 → ErrInsufficientPoints，整筆回滾
// 4. 兩筆 transfer 記錄（來源為負、目的為正）與轉帳同一事務
type TransferPointsUseCase interface {
	Execute(ctx context.Context, cmd TransferPointsCommand) (*TransferPointsResult, error)
}

type TransferPointsUseCaseImpl struct {
	deps Dependencies
}

// NewTransferPointsUseCase 創建 TransferPointsUseCase 實例
func NewTransferPointsUseCase(deps Dependencies) TransferPointsUseCase {
	return &TransferPointsUseCaseImpl{deps: deps}
}

// Execute 執行轉帳
func (uc *TransferPointsUseCaseImpl) Execute(ctx context.Context, cmd TransferPointsCommand) (*TransferPointsResult, error) {
	// Step 1: 驗證輸入
	fromID, err := user.UserIDFromString(cmd.FromUserID)
	if err != nil {
		return nil, err
	}
	toID, err := user.UserIDFromString(cmd.ToUserID)
	if err != nil {
		return nil, err
	}
	if fromID.Equals(toID) {
		return nil, points.ErrSameUserTransfer.WithContext("user_id", cmd.FromUserID)
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	desc, err := points.NewDescription(cmd.Description)
	if err != nil {
		return nil, err
	}

	// Step 2: 轉帳 + 兩筆審計記錄
	var (
		from, to *user.User
		result   points.TransferResult
	)

	err = uc.deps.TxManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		// 2a. 雙方都必須存在（說明文字需要對方的顯示名稱）
		if from, err = uc.deps.Users.FindByID(tx, fromID); err != nil {
			return err
		}
		if to, err = uc.deps.Users.FindByID(tx, toID); err != nil {
			return err
		}

		// 2b. 帳本轉帳
		result, err = uc.deps.Ledger.Transfer(tx, fromID, toID, amount)
		if err != nil {
			return err
		}

		// 2c. 配對記錄
		debitEntry, creditEntry, err := points.TransferEntries(from, to, amount, desc)
		if err != nil {
			return err
		}
		if err := appendAll(tx, uc.deps.TxLog, debitEntry, creditEntry); err != nil {
			return err
		}

		// 2d. 重新讀取雙方餘額
		if from, err = uc.deps.Users.FindByID(tx, fromID); err != nil {
			return err
		}
		to, err = uc.deps.Users.FindByID(tx, toID)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(uc.deps.Publisher,
		points.NewBalanceChangedEvent(fromID, amount.Negated(), result.FromBalance, points.TransactionTypeTransfer),
		points.NewBalanceChangedEvent(toID, amount.Value(), result.ToBalance, points.TransactionTypeTransfer),
	)

	return &TransferPointsResult{
		FromUser: dto.FromUser(from),
		ToUser:   dto.FromUser(to),
	}, nil
}
