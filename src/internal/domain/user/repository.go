package user

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// ===========================
// UserRepository Interface
// ===========================

// UserRepository 使用者倉儲接口
//
// 事務管理策略：
//   - Create / UpdateProfile：寫操作，ctx 可為 nil（單筆自足）
//   - FindByID 系列：讀操作，ctx 可為 nil
//   - FindByIDForUpdate：必須在事務中，鎖定列直到事務結束
//
// 注意：本倉儲不寫入 points 欄位。餘額變更一律經由 points.LedgerRepository。
type UserRepository interface {
	// Create 新增使用者，外部 ID 重複時返回 ErrUserAlreadyExists
	Create(ctx shared.TransactionContext, u *User) error

	// UpdateProfile 更新顯示名稱、電子郵件與角色旗標（不含 points）
	UpdateProfile(ctx shared.TransactionContext, u *User) error

	// FindByID 找不到時返回 ErrUserNotFound
	FindByID(ctx shared.TransactionContext, id UserID) (*User, error)

	// FindByIDForUpdate 在事務中讀取並鎖定使用者列
	//
	// 兌換流程用來保證 premium 檢查與扣款看到一致的使用者狀態。
	FindByIDForUpdate(ctx shared.TransactionContext, id UserID) (*User, error)

	// FindByExternalID 依外部身分 ID 查找
	FindByExternalID(ctx shared.TransactionContext, externalID ExternalID) (*User, error)

	// FindByDisplayName 依顯示名稱查找（不分大小寫）
	FindByDisplayName(ctx shared.TransactionContext, displayName string) (*User, error)

	// Leaderboard 依積分由高到低列出前 limit 名，同分依顯示名稱排序
	Leaderboard(ctx shared.TransactionContext, limit int) ([]*User, error)

	// List 列出所有使用者（依顯示名稱排序），供管理介面使用
	List(ctx shared.TransactionContext) ([]*User, error)
}
