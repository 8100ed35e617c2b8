package action

import "github.com/jackyeh168/channel_points/src/internal/domain/shared"

const (
	ErrCodeUnknownActionType       shared.ErrorCode = "UNKNOWN_ACTION_TYPE"
	ErrCodeInvalidActionConfig     shared.ErrorCode = "INVALID_ACTION_CONFIG"
	ErrCodeHandlerExecutionFailure shared.ErrorCode = "HANDLER_EXECUTION_FAILURE"
	ErrCodeRegistrySealed          shared.ErrorCode = "ACTION_REGISTRY_SEALED"
	ErrCodeDuplicateHandler        shared.ErrorCode = "ACTION_HANDLER_DUPLICATE"
)

var (
	ErrUnknownActionType = shared.NewDomainError(shared.KindUnknownActionType, ErrCodeUnknownActionType, "未知的動作類型")

	ErrInvalidActionConfig = shared.NewDomainError(shared.KindValidation, ErrCodeInvalidActionConfig, "動作設定無效")

	ErrHandlerExecutionFailure = shared.NewDomainError(shared.KindHandlerExecutionFailure, ErrCodeHandlerExecutionFailure, "動作執行失敗")

	ErrRegistrySealed = shared.NewDomainError(shared.KindInternal, ErrCodeRegistrySealed, "動作註冊表已封存，無法再註冊")

	ErrDuplicateHandler = shared.NewDomainError(shared.KindInternal, ErrCodeDuplicateHandler, "動作類型已註冊")
)

// invalidConfig 建立帶原因的設定錯誤
func invalidConfig(actionType Type, reason string) error {
	return ErrInvalidActionConfig.WithContext(
		"action_type", string(actionType),
		"reason", reason,
	)
}

// Reason 取出設定錯誤或未知類型錯誤的人類可讀原因
func Reason(err error) string {
	domainErr, ok := shared.AsDomainError(err)
	if !ok {
		return err.Error()
	}
	if reason, ok := domainErr.Context["reason"].(string); ok {
		return reason
	}
	return domainErr.Message
}
