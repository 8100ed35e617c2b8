package persistence

import (
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"gorm.io/gorm"
)

// ===========================
// GORM LedgerRepository 實作
// ===========================

// maxCASAttempts Adjust / SetBalance 比較並交換的最大重試次數
const maxCASAttempts = 5

// GORMLedgerRepository 以 users.points 欄位為帳本的原子原語
//
// 實作策略：
//   - Credit / Debit：單一條件 UPDATE（points >= ? 由資料庫判斷），
//     影響列數為 0 時才讀取目前餘額決定錯誤類型
//   - Adjust / SetBalance：讀取（PostgreSQL 加 FOR UPDATE）後以
//     WHERE points = 舊值 做比較並交換，失敗時重試
//   - 每個原語包在 db.Transaction 中：沒有外層事務時開新事務，
//     有外層事務時 GORM 會建立保存點，原語失敗不會留下部分寫入
//
// 不使用行程內鎖；多個行程共用同一資料庫時仍然正確。
type GORMLedgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 創建帳本倉儲
func NewLedgerRepository(db *gorm.DB) points.LedgerRepository {
	return &GORMLedgerRepository{db: db}
}

func (r *GORMLedgerRepository) atomically(ctx shared.TransactionContext, fn func(db *gorm.DB) error) error {
	return dbFrom(ctx, r.db).Transaction(fn)
}

// GetBalance 讀取目前餘額
func (r *GORMLedgerRepository) GetBalance(ctx shared.TransactionContext, userID user.UserID) (int, error) {
	return currentBalance(dbFrom(ctx, r.db), userID)
}

// Credit 原子加值
func (r *GORMLedgerRepository) Credit(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (int, error) {
	var balance int
	err := r.atomically(ctx, func(db *gorm.DB) error {
		var err error
		balance, err = credit(db, userID, amount.Value())
		return err
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// Debit 條件扣款
func (r *GORMLedgerRepository) Debit(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (points.DebitResult, error) {
	var result points.DebitResult
	err := r.atomically(ctx, func(db *gorm.DB) error {
		var err error
		result, err = debit(db, userID, amount.Value())
		return err
	})
	return result, err
}

// Adjust 套用帶正負號的變動，結果低於 0 時截斷為 0
func (r *GORMLedgerRepository) Adjust(ctx shared.TransactionContext, userID user.UserID, delta int) (points.AdjustResult, error) {
	return r.compareAndSet(ctx, userID, func(previous int) int {
		next := previous + delta
		if next < 0 {
			return 0
		}
		return next
	})
}

// SetBalance 直接設定餘額
func (r *GORMLedgerRepository) SetBalance(ctx shared.TransactionContext, userID user.UserID, amount points.PointsAmount) (points.AdjustResult, error) {
	return r.compareAndSet(ctx, userID, func(int) int {
		return amount.Value()
	})
}

// Transfer 來源扣款與目的入帳在同一原子單元中完成
func (r *GORMLedgerRepository) Transfer(
	ctx shared.TransactionContext,
	fromUserID, toUserID user.UserID,
	amount points.PointsAmount,
) (points.TransferResult, error) {
	if fromUserID.Equals(toUserID) {
		return points.TransferResult{}, points.ErrSameUserTransfer.WithContext("user_id", fromUserID.String())
	}

	var result points.TransferResult
	err := r.atomically(ctx, func(db *gorm.DB) error {
		if err := lockUsers(db, fromUserID, toUserID); err != nil {
			return err
		}

		debited, err := debit(db, fromUserID, amount.Value())
		if err != nil {
			result.FromBalance = debited.Balance
			return err
		}

		toBalance, err := credit(db, toUserID, amount.Value())
		if err != nil {
			return err
		}

		result = points.TransferResult{
			Success:     true,
			FromBalance: debited.Balance,
			ToBalance:   toBalance,
		}
		return nil
	})
	if err != nil {
		return points.TransferResult{FromBalance: result.FromBalance}, err
	}
	return result, nil
}

// ===========================
// SQL 層輔助函數（皆在傳入的 db 上執行）
// ===========================

func currentBalance(db *gorm.DB, userID user.UserID) (int, error) {
	var model UserGORM
	err := db.Select("points").Where("user_id = ?", userID.String()).Take(&model).Error
	if err != nil {
		return 0, mapError(err, userNotFound(userID), nil)
	}
	return model.Points, nil
}

func credit(db *gorm.DB, userID user.UserID, amount int) (int, error) {
	result := db.Model(&UserGORM{}).
		Where("user_id = ?", userID.String()).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, mapError(result.Error, nil, nil)
	}
	if result.RowsAffected == 0 {
		return 0, userNotFound(userID)
	}
	return currentBalance(db, userID)
}

// debit 單一條件 UPDATE：只有 points >= amount 的列會被修改
func debit(db *gorm.DB, userID user.UserID, amount int) (points.DebitResult, error) {
	result := db.Model(&UserGORM{}).
		Where("user_id = ? AND points >= ?", userID.String(), amount).
		Updates(map[string]interface{}{
			"points":     gorm.Expr("points - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return points.DebitResult{}, mapError(result.Error, nil, nil)
	}

	balance, err := currentBalance(db, userID)
	if err != nil {
		return points.DebitResult{}, err
	}

	if result.RowsAffected == 0 {
		return points.DebitResult{Success: false, Balance: balance}, points.ErrInsufficientPoints.WithContext(
			"user_id", userID.String(),
			"balance", balance,
			"required", amount,
		)
	}
	return points.DebitResult{Success: true, Balance: balance}, nil
}

func (r *GORMLedgerRepository) compareAndSet(
	ctx shared.TransactionContext,
	userID user.UserID,
	next func(previous int) int,
) (points.AdjustResult, error) {
	var result points.AdjustResult
	err := r.atomically(ctx, func(db *gorm.DB) error {
		for attempt := 0; attempt < maxCASAttempts; attempt++ {
			previous, err := currentBalance(forUpdate(db), userID)
			if err != nil {
				return err
			}

			target := next(previous)
			if target == previous {
				result = points.AdjustResult{Previous: previous, Balance: target}
				return nil
			}

			updated := db.Model(&UserGORM{}).
				Where("user_id = ? AND points = ?", userID.String(), previous).
				Updates(map[string]interface{}{
					"points":     target,
					"updated_at": time.Now(),
				})
			if updated.Error != nil {
				return mapError(updated.Error, nil, nil)
			}
			if updated.RowsAffected == 1 {
				result = points.AdjustResult{Previous: previous, Balance: target}
				return nil
			}
		}
		return shared.ErrConcurrentModification.WithContext(
			"user_id", userID.String(),
			"attempts", maxCASAttempts,
		)
	})
	return result, err
}

// lockUsers 依 user_id 排序鎖定多個使用者（僅 PostgreSQL），避免對向轉帳死鎖
func lockUsers(db *gorm.DB, ids ...user.UserID) error {
	if db.Dialector.Name() != DriverPostgres {
		return nil
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, id.String())
	}

	var locked []UserGORM
	err := forUpdate(db).
		Select("user_id").
		Where("user_id IN ?", keys).
		Order("user_id").
		Find(&locked).Error
	if err != nil {
		return mapError(err, nil, nil)
	}
	return nil
}

func userNotFound(userID user.UserID) *shared.DomainError {
	return user.ErrUserNotFound.WithMessage("找不到使用者 " + userID.String())
}
