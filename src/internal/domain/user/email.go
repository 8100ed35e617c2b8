package user

import (
	"regexp"
	"strings"
)

// ===========================
// Email Value Object
// ===========================

// Email 電子郵件值對象
//
// 空字串代表未提供（部分身分提供者不回傳 email）。
type Email struct {
	value string
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NewEmail 創建電子郵件（Checked Constructor），統一轉為小寫
func NewEmail(value string) (Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Email{}, nil
	}
	if !emailPattern.MatchString(normalized) {
		return Email{}, ErrInvalidEmail.WithContext(
			"email", value,
		)
	}
	return Email{value: normalized}, nil
}

// String 返回電子郵件字串
func (e Email) String() string {
	return e.value
}

// IsZero 是否未提供
func (e Email) IsZero() bool {
	return e.value == ""
}
