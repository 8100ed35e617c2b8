package reward

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

// RewardFilter 獎勵清單篩選條件
type RewardFilter struct {
	ActiveOnly     bool
	IncludePremium bool
	CategoryID     *CategoryID
}

// RewardRepository 獎勵倉儲
//
// 獎勵與分類是讀多寫少的資料，管理員修改時以列為單位最後寫入者勝出，
// 不需要額外協調。
type RewardRepository interface {
	Save(ctx shared.TransactionContext, r *Reward) error
	Update(ctx shared.TransactionContext, r *Reward) error

	// FindByID 找不到時返回 ErrRewardNotFound
	FindByID(ctx shared.TransactionContext, id RewardID) (*Reward, error)

	// List 依 cost、title 排序
	List(ctx shared.TransactionContext, filter RewardFilter) ([]*Reward, error)
}

// CategoryRepository 分類倉儲
type CategoryRepository interface {
	// Save 名稱重複時返回 ErrCategoryAlreadyExists
	Save(ctx shared.TransactionContext, c *Category) error

	FindByID(ctx shared.TransactionContext, id CategoryID) (*Category, error)

	// List 依 sortOrder、name 排序
	List(ctx shared.TransactionContext) ([]*Category, error)
}
