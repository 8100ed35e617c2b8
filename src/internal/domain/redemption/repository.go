package redemption

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// Repository 兌換記錄倉儲
type Repository interface {
	// Save 新增兌換（必須與扣款、審計記錄在同一事務）
	Save(ctx shared.TransactionContext, r *Redemption) error

	// Update 以樂觀鎖寫回狀態
	//
	// 以 r.Version()-1 作為預期版本；不符時返回 shared.ErrConcurrentModification。
	Update(ctx shared.TransactionContext, r *Redemption) error

	// FindByID 找不到時返回 ErrRedemptionNotFound
	FindByID(ctx shared.TransactionContext, id RedemptionID) (*Redemption, error)

	// FindPending 所有 pending / processing 的兌換，依 redeemedAt 由舊到新
	FindPending(ctx shared.TransactionContext) ([]*Redemption, error)

	// FindByUser 使用者的兌換記錄，依 redeemedAt 由新到舊
	FindByUser(ctx shared.TransactionContext, userID user.UserID) ([]*Redemption, error)

	// CountByUser 使用者兌換次數（對帳測試與統計用）
	CountByUser(ctx shared.TransactionContext, userID user.UserID) (int64, error)
}
