package user

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// UpdateRolesCommand 設定使用者身分；nil 欄位不變更
type UpdateRolesCommand struct {
	UserID    string
	IsAdmin   *bool
	IsPremium *bool
	IsOwner   *bool
}

// UpdateRolesUseCase 管理員設定 premium、管理員與擁有者身分
//
// 擁有者同時具備管理員身分（見 User.SetOwner）。
// 呼叫者是否有權限由外部協作者判斷。
type UpdateRolesUseCase interface {
	Execute(ctx context.Context, cmd UpdateRolesCommand) (*dto.UserDTO, error)
}

type UpdateRolesUseCaseImpl struct {
	users user.UserRepository
}

// NewUpdateRolesUseCase 創建 UpdateRolesUseCase 實例
func NewUpdateRolesUseCase(users user.UserRepository) UpdateRolesUseCase {
	return &UpdateRolesUseCaseImpl{users: users}
}

func (uc *UpdateRolesUseCaseImpl) Execute(_ context.Context, cmd UpdateRolesCommand) (*dto.UserDTO, error) {
	userID, err := user.UserIDFromString(cmd.UserID)
	if err != nil {
		return nil, err
	}
	u, err := uc.users.FindByID(nil, userID)
	if err != nil {
		return nil, err
	}

	if cmd.IsPremium != nil {
		u.SetPremium(*cmd.IsPremium)
	}
	if cmd.IsAdmin != nil {
		u.SetAdmin(*cmd.IsAdmin)
	}
	if cmd.IsOwner != nil {
		u.SetOwner(*cmd.IsOwner)
	}

	if err := uc.users.UpdateProfile(nil, u); err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}
