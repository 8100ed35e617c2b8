package user

import (
	"strings"
	"time"
	"unicode/utf8"
)

// ===========================
// User Aggregate Root
// ===========================

// User 使用者聚合根
//
// 不變量（Invariants）：
// 1. 使用者必須有外部身分 ID（首次登入時建立）
// 2. 顯示名稱 1..100 字
// 3. points 是帳本的讀取快照，聚合本身不提供任何修改積分的方法，
//    餘額只能透過 points.LedgerRepository 的原子原語改變
// 4. 不做實體刪除
//
// 角色旗標（isAdmin, isPremium, isOwner）可由管理操作修改。
type User struct {
	userID      UserID
	externalID  ExternalID
	email       Email
	displayName string

	points int

	isAdmin   bool
	isPremium bool
	isOwner   bool

	createdAt time.Time
	updatedAt time.Time
}

const maxDisplayNameLength = 100

func validateDisplayName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || utf8.RuneCountInString(trimmed) > maxDisplayNameLength {
		return "", ErrInvalidDisplayName.WithContext("display_name", name)
	}
	return trimmed, nil
}

// NewUser 創建新使用者（餘額 0，無任何角色）
func NewUser(externalID ExternalID, email Email, displayName string) (*User, error) {
	if externalID.IsZero() {
		return nil, ErrInvalidExternalID.WithContext("reason", "missing external id")
	}
	name, err := validateDisplayName(displayName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		userID:      NewUserID(),
		externalID:  externalID,
		email:       email,
		displayName: name,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructUser 從資料庫載入時重建聚合（不執行業務規則驗證）
func ReconstructUser(
	userID UserID,
	externalID ExternalID,
	email Email,
	displayName string,
	points int,
	isAdmin, isPremium, isOwner bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		userID:      userID,
		externalID:  externalID,
		email:       email,
		displayName: displayName,
		points:      points,
		isAdmin:     isAdmin,
		isPremium:   isPremium,
		isOwner:     isOwner,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ===========================
// Behavior Methods
// ===========================

// Rename 修改顯示名稱
func (u *User) Rename(displayName string) error {
	name, err := validateDisplayName(displayName)
	if err != nil {
		return err
	}
	u.displayName = name
	u.touch()
	return nil
}

// ChangeEmail 修改電子郵件
func (u *User) ChangeEmail(email Email) {
	u.email = email
	u.touch()
}

// SetPremium 設定 premium 身分
func (u *User) SetPremium(premium bool) {
	u.isPremium = premium
	u.touch()
}

// SetAdmin 設定管理員身分
func (u *User) SetAdmin(admin bool) {
	u.isAdmin = admin
	u.touch()
}

// SetOwner 設定頻道擁有者身分（擁有者同時具備管理員身分）
func (u *User) SetOwner(owner bool) {
	u.isOwner = owner
	if owner {
		u.isAdmin = true
	}
	u.touch()
}

// CanAccessTier 判斷是否可兌換指定等級的獎勵
func (u *User) CanAccessTier(premiumOnly bool) bool {
	return !premiumOnly || u.isPremium
}

func (u *User) touch() {
	u.updatedAt = time.Now()
}

// ===========================
// Getters
// ===========================

func (u *User) UserID() UserID         { return u.userID }
func (u *User) ExternalID() ExternalID { return u.externalID }
func (u *User) Email() Email           { return u.email }
func (u *User) DisplayName() string    { return u.displayName }

// Points 返回載入時的餘額快照
func (u *User) Points() int { return u.points }

func (u *User) IsAdmin() bool        { return u.isAdmin }
func (u *User) IsPremium() bool      { return u.isPremium }
func (u *User) IsOwner() bool        { return u.isOwner }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
