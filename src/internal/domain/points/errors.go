package points

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

// ===========================
// 錯誤代碼定義
// ===========================

const (
	// 積分數量相關
	ErrCodeNegativePointsAmount shared.ErrorCode = "POINTS_NEGATIVE"
	ErrCodeInvalidPointsAmount  shared.ErrorCode = "POINTS_INVALID"
	ErrCodeInsufficientPoints   shared.ErrorCode = "POINTS_INSUFFICIENT"

	// 審計記錄相關
	ErrCodeInvalidDescription     shared.ErrorCode = "DESCRIPTION_INVALID"
	ErrCodeInvalidTransactionType shared.ErrorCode = "TRANSACTION_TYPE_INVALID"
	ErrCodeInvalidTransactionID   shared.ErrorCode = "TRANSACTION_ID_INVALID"

	// 轉帳相關
	ErrCodeSameUserTransfer shared.ErrorCode = "TRANSFER_SAME_USER"

	// 批次相關
	ErrCodeInvalidBatch shared.ErrorCode = "BATCH_INVALID"
)

// ===========================
// 預定義錯誤
// ===========================

// 積分數量相關錯誤
var (
	ErrNegativePointsAmount = shared.NewDomainError(
		shared.KindValidation, ErrCodeNegativePointsAmount, "積分數量不能為負數")

	ErrInvalidPointsAmount = shared.NewDomainError(
		shared.KindValidation, ErrCodeInvalidPointsAmount, "積分數量必須為正整數")

	ErrInsufficientPoints = shared.NewDomainError(
		shared.KindInsufficientFunds, ErrCodeInsufficientPoints, "積分餘額不足")
)

// 審計記錄相關錯誤
var (
	ErrInvalidDescription = shared.NewDomainError(
		shared.KindValidation, ErrCodeInvalidDescription, "說明長度必須在 1-500 字之間")

	ErrInvalidTransactionType = shared.NewDomainError(
		shared.KindValidation, ErrCodeInvalidTransactionType, "無效的交易類型")

	ErrInvalidTransactionID = shared.NewDomainError(
		shared.KindValidation, ErrCodeInvalidTransactionID, "無效的交易 ID")
)

var (
	ErrSameUserTransfer = shared.NewDomainError(
		shared.KindPolicyViolation, ErrCodeSameUserTransfer, "不能轉帳給自己")

	ErrInvalidBatch = shared.NewDomainError(
		shared.KindValidation, ErrCodeInvalidBatch, "批次更新必須包含 1-1000 筆")
)
