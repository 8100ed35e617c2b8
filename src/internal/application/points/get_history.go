package points

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// GetHistoryQuery 查詢使用者的積分異動（新到舊）
type GetHistoryQuery struct {
	UserID string
}

// GetHistoryUseCase 積分歷史查詢
type GetHistoryUseCase interface {
	Execute(ctx context.Context, query GetHistoryQuery) ([]*dto.TransactionDTO, error)
}

type GetHistoryUseCaseImpl struct {
	deps Dependencies
}

// NewGetHistoryUseCase 創建 GetHistoryUseCase 實例
func NewGetHistoryUseCase(deps Dependencies) GetHistoryUseCase {
	return &GetHistoryUseCaseImpl{deps: deps}
}

// Execute 不存在的使用者返回 ErrUserNotFound（而非空清單）
func (uc *GetHistoryUseCaseImpl) Execute(_ context.Context, query GetHistoryQuery) ([]*dto.TransactionDTO, error) {
	userID, err := user.UserIDFromString(query.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.deps.Users.FindByID(nil, userID); err != nil {
		return nil, err
	}

	entries, err := uc.deps.TxLog.History(nil, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromTransactions(entries), nil
}
