package points

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ===========================
// PointsAmount 值對象
// ===========================

// PointsAmount 積分數量值對象
// 設計原則：值對象不可變、自我驗證
//
// 建構約束：積分數量必須 >= 0（沒有小數積分，也沒有負數積分）
type PointsAmount struct {
	value int
}

// NewPointsAmount 建構函數（允許 0）
func NewPointsAmount(value int) (PointsAmount, error) {
	if value < 0 {
		return PointsAmount{}, fmt.Errorf(
			"%w: attempted to create PointsAmount with value %d",
			ErrNegativePointsAmount,
			value,
		)
	}
	return PointsAmount{value: value}, nil
}

// NewPositivePointsAmount 建構函數（必須 > 0）
//
// 用於扣款、入帳、轉帳與管理員增減，0 點操作沒有意義。
func NewPositivePointsAmount(value int) (PointsAmount, error) {
	if value <= 0 {
		return PointsAmount{}, ErrInvalidPointsAmount.WithContext("value", value)
	}
	return PointsAmount{value: value}, nil
}

// Value 獲取積分數量
func (p PointsAmount) Value() int {
	return p.value
}

// IsZero 是否為 0
func (p PointsAmount) IsZero() bool {
	return p.value == 0
}

// Negated 返回帶負號的整數（寫入審計記錄用）
func (p PointsAmount) Negated() int {
	return -p.value
}

// Equals 比較兩個 PointsAmount 是否相等
func (p PointsAmount) Equals(other PointsAmount) bool {
	return p.value == other.value
}

// ===========================
// TransactionType 交易類型
// ===========================

// TransactionType 審計記錄類型
type TransactionType string

const (
	TransactionTypeEarned       TransactionType = "earned"
	TransactionTypeSpent        TransactionType = "spent"
	TransactionTypeAdminAdded   TransactionType = "admin_added"
	TransactionTypeAdminRemoved TransactionType = "admin_removed"
	TransactionTypeTransfer     TransactionType = "transfer"
)

// ParseTransactionType 解析交易類型
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", ErrInvalidTransactionType.WithContext("type", s)
	}
	return t, nil
}

// IsValid 是否為已知類型
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeEarned, TransactionTypeSpent,
		TransactionTypeAdminAdded, TransactionTypeAdminRemoved,
		TransactionTypeTransfer:
		return true
	}
	return false
}

// allowsAmount 金額正負號必須與類型一致
//
//   earned, admin_added   : >= 0
//   spent, admin_removed  : <= 0
//   transfer              : != 0（轉出為負，轉入為正）
func (t TransactionType) allowsAmount(amount int) bool {
	switch t {
	case TransactionTypeEarned, TransactionTypeAdminAdded:
		return amount >= 0
	case TransactionTypeSpent, TransactionTypeAdminRemoved:
		return amount <= 0
	case TransactionTypeTransfer:
		return amount != 0
	}
	return false
}

// ===========================
// Description 值對象
// ===========================

const maxDescriptionLength = 500

// Description 審計說明（1..500 字）
type Description struct {
	value string
}

// NewDescription 建構審計說明
func NewDescription(value string) (Description, error) {
	trimmed := strings.TrimSpace(value)
	n := utf8.RuneCountInString(trimmed)
	if n == 0 || n > maxDescriptionLength {
		return Description{}, ErrInvalidDescription.WithContext("length", n)
	}
	return Description{value: trimmed}, nil
}

// DescriptionOrDefault 空白時使用預設說明
func DescriptionOrDefault(value, fallback string) (Description, error) {
	if strings.TrimSpace(value) == "" {
		return NewDescription(fallback)
	}
	return NewDescription(value)
}

// String 返回說明文字
func (d Description) String() string {
	return d.value
}

// truncateDescription 組合出的說明超過上限時截斷（轉帳說明會加上對方名稱前綴）
func truncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= maxDescriptionLength {
		return s
	}
	return string([]rune(s)[:maxDescriptionLength])
}
