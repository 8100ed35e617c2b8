package persistence

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionManager
// ===========================

// GORMTransactionManager 以 GORM 實作 shared.TransactionManager
//
// fn 返回 error 時回滾；fn panic 時回滾後重新 panic（由 gorm.DB.Transaction 處理）。
type GORMTransactionManager struct {
	db *gorm.DB
}

// NewGORMTransactionManager 創建事務管理器
func NewGORMTransactionManager(db *gorm.DB) *GORMTransactionManager {
	return &GORMTransactionManager{db: db}
}

// InTransaction 開啟事務執行 fn
//
// ctx 控制語句的取消；提交後 ctx 再被取消不影響已提交的資料。
func (m *GORMTransactionManager) InTransaction(ctx context.Context, fn func(tx shared.TransactionContext) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}

// InSavepoint 在 parent 事務中建立保存點執行 fn
//
// fn 失敗只回滾到保存點，parent 事務可以繼續。
// parent 為 nil 時等同開啟一個獨立事務。
func (m *GORMTransactionManager) InSavepoint(parent shared.TransactionContext, fn func(tx shared.TransactionContext) error) error {
	return dbFrom(parent, m.db).Transaction(func(tx *gorm.DB) error {
		return fn(NewGORMTransactionContext(tx))
	})
}
