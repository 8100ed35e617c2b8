package user

import (
	"context"
	"errors"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// EnsureUser Use Case
// ===========================

// EnsureUserCommand 身分驗證通過後確保使用者存在
//
// ExternalID 是身分提供者給出的 subject；驗證本身由外部協作者完成。
type EnsureUserCommand struct {
	ExternalID  string
	Email       string
	DisplayName string
}

// EnsureUserResult Created 表示本次呼叫新建了使用者
type EnsureUserResult struct {
	User    *dto.UserDTO `json:"user"`
	Created bool         `json:"created"`
}

// EnsureUserUseCase 首次登入建立使用者（餘額 0），之後同步顯示名稱與電子郵件
//
// 冪等：同一 ExternalID 重複呼叫只會有一位使用者。
type EnsureUserUseCase interface {
	Execute(ctx context.Context, cmd EnsureUserCommand) (*EnsureUserResult, error)
}

type EnsureUserUseCaseImpl struct {
	users user.UserRepository
}

// NewEnsureUserUseCase 創建 EnsureUserUseCase 實例
func NewEnsureUserUseCase(users user.UserRepository) EnsureUserUseCase {
	return &EnsureUserUseCaseImpl{users: users}
}

// Execute 執行
//
// 業務流程：
// 1. 驗證輸入並轉換為 Value Object
// 2. 依 ExternalID 查詢；存在則同步資料後返回
// 3. 不存在則建立；並發建立撞到唯一索引時改為讀取既有的使用者
func (uc *EnsureUserUseCaseImpl) Execute(_ context.Context, cmd EnsureUserCommand) (*EnsureUserResult, error) {
	// Step 1: 驗證輸入
	externalID, err := user.NewExternalID(cmd.ExternalID)
	if err != nil {
		return nil, err
	}
	email, err := user.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}

	// Step 2: 已存在
	existing, err := uc.users.FindByExternalID(nil, externalID)
	switch {
	case err == nil:
		return uc.sync(existing, email, cmd.DisplayName)
	case !errors.Is(err, user.ErrUserNotFound):
		return nil, err
	}

	// Step 3: 建立
	u, err := user.NewUser(externalID, email, cmd.DisplayName)
	if err != nil {
		return nil, err
	}
	if err := uc.users.Create(nil, u); err != nil {
		if !errors.Is(err, user.ErrUserAlreadyExists) {
			return nil, err
		}
		existing, err := uc.users.FindByExternalID(nil, externalID)
		if err != nil {
			return nil, err
		}
		return &EnsureUserResult{User: dto.FromUser(existing)}, nil
	}

	return &EnsureUserResult{User: dto.FromUser(u), Created: true}, nil
}

// sync 顯示名稱或電子郵件有變更時寫回
func (uc *EnsureUserUseCaseImpl) sync(u *user.User, email user.Email, displayName string) (*EnsureUserResult, error) {
	changed := false
	if displayName != "" && displayName != u.DisplayName() {
		if err := u.Rename(displayName); err != nil {
			return nil, err
		}
		changed = true
	}
	if !email.IsZero() && email != u.Email() {
		u.ChangeEmail(email)
		changed = true
	}

	if changed {
		if err := uc.users.UpdateProfile(nil, u); err != nil {
			return nil, err
		}
	}
	return &EnsureUserResult{User: dto.FromUser(u)}, nil
}
