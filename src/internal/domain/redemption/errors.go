package redemption

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

const (
	ErrCodeRedemptionNotFound  shared.ErrorCode = "REDEMPTION_NOT_FOUND"
	ErrCodeInvalidRedemptionID shared.ErrorCode = "INVALID_REDEMPTION_ID"
	ErrCodeInvalidStatus       shared.ErrorCode = "INVALID_REDEMPTION_STATUS"
	ErrCodeInvalidTransition   shared.ErrorCode = "INVALID_STATUS_TRANSITION"
)

var (
	ErrRedemptionNotFound = shared.NewDomainError(shared.KindNotFound, ErrCodeRedemptionNotFound, "找不到兌換記錄")

	ErrInvalidRedemptionID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRedemptionID, "無效的兌換記錄 ID")

	ErrInvalidStatus = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidStatus, "無效的兌換狀態")

	// ErrInvalidTransition 狀態只能前進，終結狀態不可離開
	ErrInvalidTransition = shared.NewDomainError(shared.KindInvalidState, ErrCodeInvalidTransition, "兌換狀態無法如此變更")
)
