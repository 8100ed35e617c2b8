package shared

import "context"

// TransactionContext 事務上下文介面
//
// 設計決策：可選事務參與模式（Optional Transaction Participation）
//
// 行為約定：
// - ctx != nil: 在調用者的事務中執行（事務傳播）
// - ctx == nil: 使用 auto-commit 模式（適用於單一讀操作）
//
// Repository 方法約束指南：
//
// ✅ ctx 應為 non-nil（寫操作需要與審計記錄組合在同一事務）：
//    - Ledger.Debit / Credit / Adjust / Transfer / SetBalance
//    - TransactionLog.Append
//    - Redemption.Save
//
// ✅ ctx 可為 nil（讀操作或單筆自足的寫操作）：
//    - FindByID / History / FindPending
//    - Redemption.Update（狀態推進，樂觀鎖保護）
//
// 帳本原語在 ctx == nil 時會自行開啟一個事務，保證單一原語本身仍是原子的，
// 但無法與審計記錄配對。應用層所有面向使用者的操作都必須傳入 ctx。
//
// 範例：
//
//   txManager.InTransaction(ctx, func(tx TransactionContext) error {
//       res, err := ledger.Debit(tx, userID, cost)
//       if err != nil {
//           return err
//       }
//       _, err = txLog.Append(tx, entry)
//       return err
//   })
//
// 架構原則：
// - 這是一個標記介面（Marker Interface），不暴露任何方法
// - Infrastructure Layer 負責實作具體的事務封裝（GORM）
// - 事務句柄只以參數傳遞，不存放於任何全域狀態
type TransactionContext interface {
	// 標記介面：僅用於傳遞上下文，不暴露方法
}

// TransactionManager 事務管理器介面
//
// InTransaction：fn 返回 error 或 panic 時整體回滾，否則提交。
// InSavepoint：在既有事務內建立保存點，fn 失敗只回滾保存點之後的寫入，
// 外層事務仍可繼續（批次操作中隔離單筆失敗）。
type TransactionManager interface {
	InTransaction(ctx context.Context, fn func(tx TransactionContext) error) error
	InSavepoint(parent TransactionContext, fn func(tx TransactionContext) error) error
}
