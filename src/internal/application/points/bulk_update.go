package points

import (
	"context"
	"fmt"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// BulkUpdatePoints Use Case
// ===========================

const (
	maxBulkItems           = 1000
	defaultBulkDescription = "Points earned from streaming"
)

// BulkUpdateItem 單筆直播積分
type BulkUpdateItem struct {
	UserID       string
	PointsEarned int // 必須 >= 0
	Description  string
}

// BulkUpdateCommand 批次入帳指令（1..1000 筆）
type BulkUpdateCommand struct {
	Updates []BulkUpdateItem
}

// BulkUpdateResult 批次結果：部分成功是正常結果
type BulkUpdateResult struct {
	Successful int      `json:"successful"`
	Failed     int      `json:"failed"`
	Errors     []string `json:"errors"`
}

// BulkUpdatePointsUseCase 直播結束後批次發放 earned 積分
//
// 整批在一個事務內，每筆各自一個保存點：
// 單筆失敗只回滾該筆的入帳與記錄，其餘照常提交。
type BulkUpdatePointsUseCase interface {
	Execute(ctx context.Context, cmd BulkUpdateCommand) (*BulkUpdateResult, error)
}

type BulkUpdatePointsUseCaseImpl struct {
	deps Dependencies
}

// NewBulkUpdatePointsUseCase 創建 BulkUpdatePointsUseCase 實例
func NewBulkUpdatePointsUseCase(deps Dependencies) BulkUpdatePointsUseCase {
	return &BulkUpdatePointsUseCaseImpl{deps: deps}
}

// Execute 執行批次入帳
//
// 只有批次本身不合法（筆數）或事務無法提交時返回 error。
func (uc *BulkUpdatePointsUseCaseImpl) Execute(ctx context.Context, cmd BulkUpdateCommand) (*BulkUpdateResult, error) {
	if n := len(cmd.Updates); n == 0 || n > maxBulkItems {
		return nil, points.ErrInvalidBatch.WithContext("size", n, "max", maxBulkItems)
	}

	result := &BulkUpdateResult{Errors: []string{}}
	var events []shared.DomainEvent

	err := uc.deps.TxManager.InTransaction(ctx, func(tx shared.TransactionContext) error {
		for i, item := range cmd.Updates {
			event, err := uc.apply(tx, item)
			if err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("item %d (%s): %v", i, item.UserID, err))
				continue
			}
			result.Successful++
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	publishAfterCommit(uc.deps.Publisher, events...)
	return result, nil
}

// apply 在保存點內處理單筆
func (uc *BulkUpdatePointsUseCaseImpl) apply(tx shared.TransactionContext, item BulkUpdateItem) (shared.DomainEvent, error) {
	userID, err := user.UserIDFromString(item.UserID)
	if err != nil {
		return nil, err
	}
	amount, err := points.NewPointsAmount(item.PointsEarned)
	if err != nil {
		return nil, err
	}
	desc, err := points.DescriptionOrDefault(item.Description, defaultBulkDescription)
	if err != nil {
		return nil, err
	}

	var balance int
	err = uc.deps.TxManager.InSavepoint(tx, func(sp shared.TransactionContext) error {
		var err error
		balance, err = uc.deps.Ledger.Credit(sp, userID, amount)
		if err != nil {
			return err
		}
		entry, err := points.EarnedEntry(userID, amount, desc)
		if err != nil {
			return err
		}
		return uc.deps.TxLog.Append(sp, entry)
	})
	if err != nil {
		return nil, err
	}

	return points.NewBalanceChangedEvent(userID, amount.Value(), balance, points.TransactionTypeEarned), nil
}
