package persistence

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"gorm.io/gorm"
)

// GORMTransactionLogRepository 只追加的審計記錄
//
// 沒有 Update / Delete 方法；記錄一旦寫入就不會再修改。
type GORMTransactionLogRepository struct {
	db *gorm.DB
}

// NewTransactionLogRepository 創建審計記錄倉儲
func NewTransactionLogRepository(db *gorm.DB) points.TransactionLogRepository {
	return &GORMTransactionLogRepository{db: db}
}

// Append 追加一筆記錄
func (r *GORMTransactionLogRepository) Append(ctx shared.TransactionContext, entry *points.PointTransaction) error {
	if err := dbFrom(ctx, r.db).Create(transactionToGORM(entry)).Error; err != nil {
		return mapError(err, nil, nil)
	}
	return nil
}

// History 依寫入順序由新到舊
func (r *GORMTransactionLogRepository) History(ctx shared.TransactionContext, userID user.UserID) ([]*points.PointTransaction, error) {
	var models []PointTransactionGORM
	err := dbFrom(ctx, r.db).
		Where("user_id = ?", userID.String()).
		Order("seq DESC").
		Find(&models).Error
	if err != nil {
		return nil, mapError(err, nil, nil)
	}

	entries := make([]*points.PointTransaction, 0, len(models))
	for i := range models {
		entry, err := transactionToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// SumByUser 使用者所有記錄的金額總和
func (r *GORMTransactionLogRepository) SumByUser(ctx shared.TransactionContext, userID user.UserID) (int, error) {
	var sum int64
	err := dbFrom(ctx, r.db).
		Model(&PointTransactionGORM{}).
		Where("user_id = ?", userID.String()).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, mapError(err, nil, nil)
	}
	return int(sum), nil
}
