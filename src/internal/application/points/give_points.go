package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// GivePoints Use Case
// ===========================

// GivePointsCommand 管理員加點指令
type GivePointsCommand struct {
	UserID      string
	Amount      int // 必須 > 0
	Description string
}

// GivePointsUseCase 管理員加點
//
// 業務規則：
// 1. 金額必須為正整數
// 2. 說明 1..500 字
// 3. 入帳與 admin_added 記錄在同一事務
type GivePointsUseCase interface {
	Execute(ctx context.Context, cmd GivePointsCommand) (*dto.UserDTO, error)
}

// GivePointsUseCaseImpl 管理員加點實作
type GivePointsUseCaseImpl struct {
	deps Dependencies
}

// NewGivePointsUseCase 創建 GivePointsUseCase 實例
func NewGivePointsUseCase(deps Dependencies) GivePointsUseCase {
	return &GivePointsUseCaseImpl{deps: deps}
}

// Execute 執行加點
func (uc *GivePointsUseCaseImpl) Execute(ctx context.Context, cmd GivePointsCommand) (*dto.UserDTO, error) {
	// Step 1: 驗證輸入
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

	return credit(ctx, uc.deps, userID, amount, desc)
}

// credit 入帳 + admin_added 記錄（GivePoints 與依顯示名稱加點共用）
func credit(
	ctx context.Context,
	deps Dependencies,
	userID user.UserID,
	amount points.PointsAmount,
	desc points.Description,
) (*dto.UserDTO, error) {
	var (
		updated *user.User
		balance int
	)

	err := deps.TxManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		var err error
		balance, err = deps.Ledger.Credit(tx, userID, amount)
		if err != nil {
			return err
		}

		entry, err := points.AdminAddedEntry(userID, amount, desc)
		if err != nil {
			return err
		}
		if err := deps.TxLog.Append(tx, entry); err != nil {
			return err
		}

		updated, err = deps.Users.FindByID(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(deps.Publisher, points.NewBalanceChangedEvent(
		userID, amount.Value(), balance, points.TransactionTypeAdminAdded,
	))
	return dto.FromUser(updated), nil
}
