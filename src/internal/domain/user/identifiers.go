package user

import (
	"strings"

	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// ===========================
// UserID Value Object
// ===========================

// UserMarker 使用者 ID 標記類型
type UserMarker struct{}

// UserID 使用者 ID 值對象（基於泛型 EntityID）
type UserID = shared.EntityID[UserMarker]

// NewUserID 生成新的使用者 ID
func NewUserID() UserID {
	return shared.NewEntityID[UserMarker]()
}

// UserIDFromString 從字串解析使用者 ID
func UserIDFromString(value string) (UserID, error) {
	return shared.EntityIDFromString[UserMarker](value, ErrInvalidUserID)
}

// ===========================
// ExternalID Value Object
// ===========================

// ExternalID 身分提供者給出的使用者識別字串（token subject）
//
// 業務規則：
// 1. 不能為空白
// 2. 長度不超過 255
//
// 身分驗證本身由外部協作者負責，這裡只保證格式可存入資料庫。
type ExternalID struct {
	value string
}

// NewExternalID 創建外部身分 ID（Checked Constructor）
func NewExternalID(value string) (ExternalID, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ExternalID{}, ErrInvalidExternalID.WithContext(
			"external_id", value,
			"reason", "cannot be empty",
		)
	}
	if len(trimmed) > 255 {
		return ExternalID{}, ErrInvalidExternalID.WithContext(
			"external_id", value,
			"reason", "must be at most 255 characters",
		)
	}
	return ExternalID{value: trimmed}, nil
}

// String 返回字串表示
func (e ExternalID) String() string {
	return e.value
}

// Equals 值相等
func (e ExternalID) Equals(other ExternalID) bool {
	return e.value == other.value
}

// IsZero 檢查是否為零值
func (e ExternalID) IsZero() bool {
	return e.value == ""
}
