package persistence

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"gorm.io/gorm"
)

// ===========================
// GORM TransactionContext 實作
// ===========================

// gormTransactionContext GORM 事務上下文實作
// 設計原則：
// 1. 實作 shared.TransactionContext 介面（標記介面）
// 2. 封裝 *gorm.DB，避免洩漏到 Domain Layer
// 3. 提供 GetDB() 方法供 Infrastructure Layer 內部使用
type gormTransactionContext struct {
	db *gorm.DB
}

// NewGORMTransactionContext 創建 GORM 事務上下文
func NewGORMTransactionContext(db *gorm.DB) shared.TransactionContext {
	return &gormTransactionContext{db: db}
}

// GetDB 獲取 GORM DB 連接（僅供 Infrastructure Layer 內部使用）
func (ctx *gormTransactionContext) GetDB() *gorm.DB {
	return ctx.db
}

// dbFrom 從 TransactionContext 取出 *gorm.DB
//
// ctx 是 gormTransactionContext 時返回事務 DB，否則返回 fallback（auto-commit）。
// 在事務中絕不可改用 fallback：SQLite 只有一條連線，會互相等待。
func dbFrom(ctx shared.TransactionContext, fallback *gorm.DB) *gorm.DB {
	if gormCtx, ok := ctx.(*gormTransactionContext); ok && gormCtx != nil {
		return gormCtx.GetDB()
	}
	return fallback
}
