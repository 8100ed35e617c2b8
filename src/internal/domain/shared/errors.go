package shared

import (
	"errors"
	"fmt"
)

// ===========================
// 錯誤分類（Error Kind）
// ===========================

// ErrorKind 錯誤分類
//
// 每個 DomainError 屬於一個分類，由介面層映射為 HTTP 狀態碼。
// 分類數量固定，新增業務錯誤時只新增 ErrorCode，不新增 Kind。
type ErrorKind string

const (
	KindNotFound                ErrorKind = "NOT_FOUND"
	KindInvalidState            ErrorKind = "INVALID_STATE"
	KindPolicyViolation         ErrorKind = "POLICY_VIOLATION"
	KindInsufficientFunds       ErrorKind = "INSUFFICIENT_FUNDS"
	KindUnknownActionType       ErrorKind = "UNKNOWN_ACTION_TYPE"
	KindValidation              ErrorKind = "VALIDATION_ERROR"
	KindHandlerExecutionFailure ErrorKind = "HANDLER_EXECUTION_FAILURE"
	KindConflict                ErrorKind = "CONFLICT"
	KindInternal                ErrorKind = "INTERNAL"
)

// ErrorCode 錯誤代碼（同一 Kind 下可有多個 Code）
type ErrorCode string

// ===========================
// DomainError 結構
// ===========================

// DomainError 領域錯誤
// 設計原則：
// 1. 包含結構化的錯誤代碼與分類（用於 HTTP 狀態碼映射）
// 2. 支持上下文信息（用於調試和日誌）
// 3. 不可變性（創建後不可修改）
type DomainError struct {
	Code    ErrorCode
	Kind    ErrorKind
	Message string
	Context map[string]interface{}
}

// NewDomainError 建立預定義錯誤
func NewDomainError(kind ErrorKind, code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Kind: kind, Message: message}
}

// Error 實現 error 接口
func (e *DomainError) Error() string {
	if len(e.Context) == 0 {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s (context: %+v)", e.Code, e.Message, e.Context)
}

// WithContext 添加上下文信息（返回新的錯誤實例，保持不可變性）
func (e *DomainError) WithContext(keyValues ...interface{}) error {
	if len(keyValues)%2 != 0 {
		panic("WithContext requires even number of arguments (key-value pairs)")
	}

	ctx := make(map[string]interface{}, len(e.Context)+len(keyValues)/2)

	// 複製現有上下文
	for k, v := range e.Context {
		ctx[k] = v
	}

	for i := 0; i < len(keyValues); i += 2 {
		key, ok := keyValues[i].(string)
		if !ok {
			panic(fmt.Sprintf("context key must be string, got %T", keyValues[i]))
		}
		ctx[key] = keyValues[i+1]
	}

	return &DomainError{
		Code:    e.Code,
		Kind:    e.Kind,
		Message: e.Message,
		Context: ctx,
	}
}

// WithMessage 以新的描述取代預設訊息（用於驗證錯誤的具體原因）
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Kind:    e.Kind,
		Message: message,
		Context: e.Context,
	}
}

// Is 實現 errors.Is 接口（依 Code 判斷）
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// KindOf 取出錯誤鏈上第一個 DomainError 的分類
// 非領域錯誤一律視為 KindInternal
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// AsDomainError 取出錯誤鏈上的 DomainError
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	ok := errors.As(err, &domainErr)
	return domainErr, ok
}

// ===========================
// 共用錯誤
// ===========================

var (
	ErrRepository = NewDomainError(KindInternal, "REPOSITORY_ERROR", "資料存取失敗")

	ErrConcurrentModification = NewDomainError(KindConflict, "CONCURRENT_MODIFICATION", "資料已被其他請求修改")
)
