package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// GetPointsBalance Query
// ===========================

// GetPointsBalanceQuery 查詢積分餘額
type GetPointsBalanceQuery struct {
	UserID string
}

// GetPointsBalanceResult 積分餘額結果
//
// Reconciled：審計記錄總和等於目前餘額（帳目一致）。
type GetPointsBalanceResult struct {
	UserID     string `json:"userId"`
	Balance    int    `json:"balance"`
	Reconciled bool   `json:"reconciled"`
}

// GetPointsBalanceUseCase 查詢積分餘額
//
// 設計原則：
// - 讀操作：不需要事務（auto-commit）
// - 也可在調用者的事務中執行（ExecuteWithContext）
type GetPointsBalanceUseCase interface {
	Execute(ctx context.Context, query GetPointsBalanceQuery) (*GetPointsBalanceResult, error)
	ExecuteWithContext(tx shared.TransactionContext, query GetPointsBalanceQuery) (*GetPointsBalanceResult, error)
}

type GetPointsBalanceUseCaseImpl struct {
	deps Dependencies
}

// NewGetPointsBalanceUseCase 創建 GetPointsBalanceUseCase 實例
func NewGetPointsBalanceUseCase(deps Dependencies) GetPointsBalanceUseCase {
	return &GetPointsBalanceUseCaseImpl{deps: deps}
}

// Execute 執行查詢（auto-commit）
func (uc *GetPointsBalanceUseCaseImpl) Execute(_ context.Context, query GetPointsBalanceQuery) (*GetPointsBalanceResult, error) {
	return uc.ExecuteWithContext(nil, query)
}

// ExecuteWithContext 在指定的事務上下文中查詢
func (uc *GetPointsBalanceUseCaseImpl) ExecuteWithContext(
	tx shared.TransactionContext,
	query GetPointsBalanceQuery,
) (*GetPointsBalanceResult, error) {
	userID, err := user.UserIDFromString(query.UserID)
	if err != nil {
		return nil, err
	}

	balance, err := uc.deps.Ledger.GetBalance(tx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.deps.TxLog.SumByUser(tx, userID)
	if err != nil {
		return nil, err
	}

	return &GetPointsBalanceResult{
		UserID:     userID.String(),
		Balance:    balance,
		Reconciled: sum == balance,
	}, nil
}
