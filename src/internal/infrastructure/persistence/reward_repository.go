package persistence

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM RewardRepository 實作
// ===========================

// GORMRewardRepository 獎勵倉儲
type GORMRewardRepository struct {
	db *gorm.DB
}

// NewRewardRepository 創建獎勵倉儲
func NewRewardRepository(db *gorm.DB) reward.RewardRepository {
	return &GORMRewardRepository{db: db}
}

// Save 新增獎勵
func (r *GORMRewardRepository) Save(ctx shared.TransactionContext, rw *reward.Reward) error {
	if err := dbFrom(ctx, r.db).Create(rewardToGORM(rw)).Error; err != nil {
		return mapError(err, nil, nil)
	}
	return nil
}

// Update 覆寫可編輯欄位（最後寫入者勝出）
func (r *GORMRewardRepository) Update(ctx shared.TransactionContext, rw *reward.Reward) error {
	model := rewardToGORM(rw)
	result := dbFrom(ctx, r.db).Model(&RewardGORM{}).
		Where("reward_id = ?", model.RewardID).
		Select("title", "description", "cost", "action_type", "action_config",
			"tier", "is_active", "category_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return reward.ErrRewardNotFound.WithContext("reward_id", model.RewardID)
	}
	return nil
}

// FindByID 找不到時返回 ErrRewardNotFound
func (r *GORMRewardRepository) FindByID(ctx shared.TransactionContext, id reward.RewardID) (*reward.Reward, error) {
	var model RewardGORM
	if err := dbFrom(ctx, r.db).Where("reward_id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, mapError(err, reward.ErrRewardNotFound, nil)
	}
	return rewardToDomain(&model)
}

// List 依 cost、title 排序
func (r *GORMRewardRepository) List(ctx shared.TransactionContext, filter reward.RewardFilter) ([]*reward.Reward, error) {
	query := dbFrom(ctx, r.db).Model(&RewardGORM{})
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if !filter.IncludePremium {
		query = query.Where("tier = ?", string(reward.TierCommon))
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", filter.CategoryID.String())
	}

	var models []RewardGORM
	if err := query.Order("cost ASC").Order("title ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, nil, nil)
	}

	rewards := make([]*reward.Reward, 0, len(models))
	for i := range models {
		rw, err := rewardToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		rewards = append(rewards, rw)
	}
	return rewards, nil
}

// ===========================
// GORM CategoryRepository 實作
// ===========================

// GORMCategoryRepository 獎勵分類倉儲
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 創建分類倉儲
func NewCategoryRepository(db *gorm.DB) reward.CategoryRepository {
	return &GORMCategoryRepository{db: db}
}

// Save 名稱重複時返回 ErrCategoryAlreadyExists
func (r *GORMCategoryRepository) Save(ctx shared.TransactionContext, c *reward.Category) error {
	if err := dbFrom(ctx, r.db).Create(categoryToGORM(c)).Error; err != nil {
		return mapError(err, nil, reward.ErrCategoryAlreadyExists)
	}
	return nil
}

func (r *GORMCategoryRepository) FindByID(ctx shared.TransactionContext, id reward.CategoryID) (*reward.Category, error) {
	var model RewardCategoryGORM
	if err := dbFrom(ctx, r.db).Where("category_id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, mapError(err, reward.ErrCategoryNotFound, nil)
	}
	return categoryToDomain(&model)
}

// List 依 sortOrder、name 排序
func (r *GORMCategoryRepository) List(ctx shared.TransactionContext) ([]*reward.Category, error) {
	var models []RewardCategoryGORM
	if err := dbFrom(ctx, r.db).Order("sort_order ASC").Order("name ASC").Find(&models).Error; err != nil {
		return nil, mapError(err, nil, nil)
	}

	categories := make([]*reward.Category, 0, len(models))
	for i := range models {
		c, err := categoryToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, nil
}
