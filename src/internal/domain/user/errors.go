package user

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

// ===========================
// User Domain 錯誤定義
// ===========================

const (
	ErrCodeUserNotFound       shared.ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserAlreadyExists  shared.ErrorCode = "USER_ALREADY_EXISTS"
	ErrCodeInvalidUserID      shared.ErrorCode = "INVALID_USER_ID"
	ErrCodeInvalidExternalID  shared.ErrorCode = "INVALID_EXTERNAL_ID"
	ErrCodeInvalidEmail       shared.ErrorCode = "INVALID_EMAIL"
	ErrCodeInvalidDisplayName shared.ErrorCode = "INVALID_DISPLAY_NAME"
)

var (
	ErrUserNotFound = shared.NewDomainError(shared.KindNotFound, ErrCodeUserNotFound, "找不到使用者")

	ErrUserAlreadyExists = shared.NewDomainError(shared.KindConflict, ErrCodeUserAlreadyExists, "使用者已存在")

	ErrInvalidUserID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidUserID, "無效的使用者 ID")

	ErrInvalidExternalID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidExternalID, "無效的外部身分 ID")

	ErrInvalidEmail = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidEmail, "無效的電子郵件格式")

	ErrInvalidDisplayName = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidDisplayName, "顯示名稱不能為空且不得超過 100 字")
)
