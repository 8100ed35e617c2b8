package points

import (
	"log/slog"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// Dependencies 積分管理 Use Case 共用的協作者
//
// 每個 Use Case 都在一個事務內完成「餘額異動 + 審計記錄」，
// 事件在提交之後才發布。
type Dependencies struct {
	Users     user.UserRepository
	Ledger    points.LedgerRepository
	TxLog     points.TransactionLogRepository
	TxManager shared.TransactionManager
	Publisher shared.EventPublisher
}

// publishAfterCommit 發布已提交異動的事件；失敗只記錄，不影響結果
func publishAfterCommit(publisher shared.EventPublisher, events ...shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.PublishBatch(events); err != nil {
		slog.Warn("publish events failed", "error", err, "count", len(events))
	}
}

// appendAll 依序寫入審計記錄
func appendAll(tx shared.TransactionContext, txLog points.TransactionLogRepository, entries ...*points.PointTransaction) error {
	for _, entry := range entries {
		if err := txLog.Append(tx, entry); err != nil {
			return err
		}
	}
	return nil
}
