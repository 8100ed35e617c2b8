package reward

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

const (
	ErrCodeRewardNotFound        shared.ErrorCode = "REWARD_NOT_FOUND"
	ErrCodeRewardInactive        shared.ErrorCode = "REWARD_INACTIVE"
	ErrCodePremiumRequired       shared.ErrorCode = "PREMIUM_REQUIRED"
	ErrCodeInvalidRewardID       shared.ErrorCode = "INVALID_REWARD_ID"
	ErrCodeInvalidRewardTitle    shared.ErrorCode = "INVALID_REWARD_TITLE"
	ErrCodeInvalidRewardCost     shared.ErrorCode = "INVALID_REWARD_COST"
	ErrCodeInvalidTier           shared.ErrorCode = "INVALID_TIER"
	ErrCodeCategoryNotFound      shared.ErrorCode = "CATEGORY_NOT_FOUND"
	ErrCodeCategoryAlreadyExists shared.ErrorCode = "CATEGORY_ALREADY_EXISTS"
	ErrCodeInvalidCategoryID     shared.ErrorCode = "INVALID_CATEGORY_ID"
	ErrCodeInvalidCategoryName   shared.ErrorCode = "INVALID_CATEGORY_NAME"
	ErrCodeInvalidCategoryColor  shared.ErrorCode = "INVALID_CATEGORY_COLOR"
)

// 獎勵相關錯誤
var (
	ErrRewardNotFound = shared.NewDomainError(shared.KindNotFound, ErrCodeRewardNotFound, "找不到獎勵")

	ErrRewardInactive = shared.NewDomainError(shared.KindInvalidState, ErrCodeRewardInactive, "獎勵目前未開放兌換")

	ErrPremiumRequired = shared.NewDomainError(shared.KindPolicyViolation, ErrCodePremiumRequired, "此獎勵僅限 premium 使用者兌換")

	ErrInvalidRewardID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRewardID, "無效的獎勵 ID")

	ErrInvalidRewardTitle = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRewardTitle, "獎勵名稱長度必須在 1-100 字之間")

	ErrInvalidRewardCost = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidRewardCost, "獎勵所需積分必須為正整數")

	ErrInvalidTier = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidTier, "獎勵等級必須是 common 或 premium")
)

// 分類相關錯誤
var (
	ErrCategoryNotFound = shared.NewDomainError(shared.KindNotFound, ErrCodeCategoryNotFound, "找不到獎勵分類")

	ErrCategoryAlreadyExists = shared.NewDomainError(shared.KindConflict, ErrCodeCategoryAlreadyExists, "分類名稱已存在")

	ErrInvalidCategoryID = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCategoryID, "無效的分類 ID")

	ErrInvalidCategoryName = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCategoryName, "分類名稱長度必須在 1-100 字之間")

	ErrInvalidCategoryColor = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidCategoryColor, "分類顏色必須是 #RRGGBB 格式")
)
