package reward

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ListRewardsQuery 查詢獎勵清單
//
// UserID 有值時只列出該使用者可兌換的獎勵（已開放；非 premium 只看到 common）；
// 空值時為管理員視角，列出全部。
type ListRewardsQuery struct {
	UserID     string
	CategoryID string
}

// ListRewardsUseCase 獎勵清單（依 cost、title 排序）
type ListRewardsUseCase interface {
	Execute(ctx context.Context, query ListRewardsQuery) ([]*dto.RewardDTO, error)
}

type ListRewardsUseCaseImpl struct {
	deps Dependencies
}

// NewListRewardsUseCase 創建 ListRewardsUseCase 實例
func NewListRewardsUseCase(deps Dependencies) ListRewardsUseCase {
	return &ListRewardsUseCaseImpl{deps: deps}
}

func (uc *ListRewardsUseCaseImpl) Execute(_ context.Context, query ListRewardsQuery) ([]*dto.RewardDTO, error) {
	filter := reward.RewardFilter{IncludePremium: true}

	if query.CategoryID != "" {
		id, err := reward.CategoryIDFromString(query.CategoryID)
		if err != nil {
			return nil, err
		}
		filter.CategoryID = &id
	}

	if query.UserID != "" {
		userID, err := user.UserIDFromString(query.UserID)
		if err != nil {
			return nil, err
		}
		u, err := uc.deps.Users.FindByID(nil, userID)
		if err != nil {
			return nil, err
		}
		filter.ActiveOnly = true
		filter.IncludePremium = u.IsPremium()
	}

	rewards, err := uc.deps.Rewards.List(nil, filter)
	if err != nil {
		return nil, err
	}
	return dto.FromRewards(rewards), nil
}
