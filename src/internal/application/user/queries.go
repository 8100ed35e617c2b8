package user

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// GetUserUseCase 查詢單一使用者
type GetUserUseCase interface {
	Execute(ctx context.Context, userID string) (*dto.UserDTO, error)
}

type GetUserUseCaseImpl struct {
	users user.UserRepository
}

// NewGetUserUseCase 創建 GetUserUseCase 實例
func NewGetUserUseCase(users user.UserRepository) GetUserUseCase {
	return &GetUserUseCaseImpl{users: users}
}

func (uc *GetUserUseCaseImpl) Execute(_ context.Context, userID string) (*dto.UserDTO, error) {
	id, err := user.UserIDFromString(userID)
	if err != nil {
		return nil, err
	}
	u, err := uc.users.FindByID(nil, id)
	if err != nil {
		return nil, err
	}
	return dto.FromUser(u), nil
}

// LeaderboardUseCase 積分排行榜（points 高到低，同分依顯示名稱）
//
// limit <= 0 時為 10，上限 100。
type LeaderboardUseCase interface {
	Execute(ctx context.Context, limit int) ([]*dto.UserDTO, error)
}

type LeaderboardUseCaseImpl struct {
	users user.UserRepository
}

// NewLeaderboardUseCase 創建 LeaderboardUseCase 實例
func NewLeaderboardUseCase(users user.UserRepository) LeaderboardUseCase {
	return &LeaderboardUseCaseImpl{users: users}
}

func (uc *LeaderboardUseCaseImpl) Execute(_ context.Context, limit int) ([]*dto.UserDTO, error) {
	switch {
	case limit <= 0:
		limit = defaultLeaderboardLimit
	case limit > maxLeaderboardLimit:
		limit = maxLeaderboardLimit
	}

	users, err := uc.users.Leaderboard(nil, limit)
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(users), nil
}

// ListUsersUseCase 管理員的使用者清單
type ListUsersUseCase interface {
	Execute(ctx context.Context) ([]*dto.UserDTO, error)
}

type ListUsersUseCaseImpl struct {
	users user.UserRepository
}

// NewListUsersUseCase 創建 ListUsersUseCase 實例
func NewListUsersUseCase(users user.UserRepository) ListUsersUseCase {
	return &ListUsersUseCaseImpl{users: users}
}

func (uc *ListUsersUseCaseImpl) Execute(_ context.Context) ([]*dto.UserDTO, error) {
	users, err := uc.users.List(nil)
	if err != nil {
		return nil, err
	}
	return dto.FromUsers(users), nil
}
