package persistence

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"gorm.io/gorm"
)

// ===========================
// GORM RedemptionRepository 實作
// ===========================

// GORMRedemptionRepository 兌換記錄倉儲
//
// 狀態推進使用 version 欄位做樂觀鎖：
// UPDATE ... SET version = n WHERE redemption_id = ? AND version = n-1
type GORMRedemptionRepository struct {
	db *gorm.DB
}

// NewRedemptionRepository 創建兌換記錄倉儲
func NewRedemptionRepository(db *gorm.DB) redemption.Repository {
	return &GORMRedemptionRepository{db: db}
}

// Save 新增兌換
func (r *GORMRedemptionRepository) Save(ctx shared.TransactionContext, rd *redemption.Redemption) error {
	if err := dbFrom(ctx, r.db).Create(redemptionToGORM(rd)).Error; err != nil {
		return mapError(err, nil, nil)
	}
	return nil
}

// Update 以樂觀鎖寫回狀態
func (r *GORMRedemptionRepository) Update(ctx shared.TransactionContext, rd *redemption.Redemption) error {
	db := dbFrom(ctx, r.db)
	model := redemptionToGORM(rd)
	expected := rd.Version() - 1

	result := db.Model(&RedemptionGORM{}).
		Where("redemption_id = ? AND version = ?", model.RedemptionID, expected).
		Select("status", "message", "result_data", "processed_at", "version").
		Updates(model)
	if result.Error != nil {
		return mapError(result.Error, nil, nil)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&RedemptionGORM{}).Where("redemption_id = ?", model.RedemptionID).Count(&count).Error; err != nil {
			return mapError(err, nil, nil)
		}
		if count == 0 {
			return redemption.ErrRedemptionNotFound.WithContext("redemption_id", model.RedemptionID)
		}
		return shared.ErrConcurrentModification.WithContext(
			"redemption_id", model.RedemptionID,
			"expected_version", expected,
		)
	}
	return nil
}

// FindByID 找不到時返回 ErrRedemptionNotFound
func (r *GORMRedemptionRepository) FindByID(ctx shared.TransactionContext, id redemption.RedemptionID) (*redemption.Redemption, error) {
	var model RedemptionGORM
	if err := dbFrom(ctx, r.db).Where("redemption_id = ?", id.String()).Take(&model).Error; err != nil {
		return nil, mapError(err, redemption.ErrRedemptionNotFound, nil)
	}
	return redemptionToDomain(&model)
}

// FindPending pending / processing，依 redeemedAt 由舊到新
func (r *GORMRedemptionRepository) FindPending(ctx shared.TransactionContext) ([]*redemption.Redemption, error) {
	var models []RedemptionGORM
	err := dbFrom(ctx, r.db).
		Where("status IN ?", []string{string(redemption.StatusPending), string(redemption.StatusProcessing)}).
		Order("redeemed_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err, nil, nil)
	}
	return redemptionsToDomain(models)
}

// FindByUser 依 redeemedAt 由新到舊
func (r *GORMRedemptionRepository) FindByUser(ctx shared.TransactionContext, userID user.UserID) ([]*redemption.Redemption, error) {
	var models []RedemptionGORM
	err := dbFrom(ctx, r.db).
		Where("user_id = ?", userID.String()).
		Order("redeemed_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err, nil, nil)
	}
	return redemptionsToDomain(models)
}

// CountByUser 使用者兌換次數
func (r *GORMRedemptionRepository) CountByUser(ctx shared.TransactionContext, userID user.UserID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&RedemptionGORM{}).Where("user_id = ?", userID.String()).Count(&count).Error
	if err != nil {
		return 0, mapError(err, nil, nil)
	}
	return count, nil
}

func redemptionsToDomain(models []RedemptionGORM) ([]*redemption.Redemption, error) {
	out := make([]*redemption.Redemption, 0, len(models))
	for i := range models {
		rd, err := redemptionToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, nil
}
