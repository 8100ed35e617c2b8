package points

import (
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// 帳本原語結果
// ===========================

// DebitResult 條件扣款結果
//
// Success=false 時 Balance 為目前餘額（未變動）。
type DebitResult struct {
	Success bool
	Balance int
}

// AdjustResult 調整結果（Adjust、SetBalance）
type AdjustResult struct {
	Previous int
	Balance  int
}

// Applied 實際套用的變動量（可能因歸零截斷而小於請求值）
func (r AdjustResult) Applied() int {
	return r.Balance - r.Previous
}

// TransferResult 轉帳結果
type TransferResult struct {
	Success     bool
	FromBalance int
	ToBalance   int
}

// ===========================
// LedgerRepository 帳本
// ===========================

// LedgerRepository 使用者積分餘額的原子原語
//
// 併發約定：
// - 對同一使用者的 Debit / Credit / Adjust / SetBalance / Transfer
//   必須可線性化（結果等同某個循序執行順序）
// - 檢查並扣款在儲存層以單一條件更新完成，不得先讀再寫
// - 不使用任何行程內鎖，多個行程共用同一資料庫時仍然正確
//
// 事務：
// - ctx != nil：參與調用者事務（與審計記錄一起提交或回滾）
// - ctx == nil：原語自行開啟並提交一個事務
//
// 錯誤：
// - user.ErrUserNotFound：使用者不存在
// - ErrInsufficientPoints：Debit / Transfer 餘額不足
type LedgerRepository interface {
	// GetBalance 讀取目前餘額
	GetBalance(ctx shared.TransactionContext, userID user.UserID) (int, error)

	// Credit 原子加值，返回新餘額
	Credit(ctx shared.TransactionContext, userID user.UserID, amount PointsAmount) (int, error)

	// Debit 條件扣款：balance >= amount 才扣，否則不做任何修改
	//
	// 餘額不足時返回 DebitResult{Success:false, Balance:目前餘額} 與 ErrInsufficientPoints。
	Debit(ctx shared.TransactionContext, userID user.UserID, amount PointsAmount) (DebitResult, error)

	// Adjust 套用帶正負號的變動，結果低於 0 時截斷為 0
	Adjust(ctx shared.TransactionContext, userID user.UserID, delta int) (AdjustResult, error)

	// SetBalance 直接設定餘額，返回設定前後的值
	SetBalance(ctx shared.TransactionContext, userID user.UserID, amount PointsAmount) (AdjustResult, error)

	// Transfer 來源扣款與目的入帳在同一原子單元中完成
	//
	// 目的使用者不存在時整體回滾（來源扣款不會留下）。
	Transfer(ctx shared.TransactionContext, fromUserID, toUserID user.UserID, amount PointsAmount) (TransferResult, error)
}

// ===========================
// TransactionLogRepository 審計記錄
// ===========================

// TransactionLogRepository 只能追加的審計記錄
type TransactionLogRepository interface {
	// Append 追加一筆記錄，只會因儲存層不可用而失敗
	Append(ctx shared.TransactionContext, entry *PointTransaction) error

	// History 依時間由新到舊列出使用者的記錄
	History(ctx shared.TransactionContext, userID user.UserID) ([]*PointTransaction, error)

	// SumByUser 使用者所有記錄的金額總和（對帳用）
	SumByUser(ctx shared.TransactionContext, userID user.UserID) (int, error)
}
