package redemption

import (
	"context"
	"errors"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// 兌換查詢
// ===========================

// PendingRedemptionDTO 待處理兌換（附上使用者與獎勵摘要）
type PendingRedemptionDTO struct {
	*dto.RedemptionDTO
	User   *UserSummary   `json:"user,omitempty"`
	Reward *RewardSummary `json:"reward,omitempty"`
}

// UserSummary 待處理清單中的使用者
type UserSummary struct {
	UserID      string `json:"id"`
	DisplayName string `json:"displayName"`
}

// RewardSummary 待處理清單中的獎勵
type RewardSummary struct {
	RewardID   string `json:"id"`
	Title      string `json:"title"`
	ActionType string `json:"actionType"`
}

// GetPendingRedemptionsUseCase 待處理（pending、processing）兌換，舊到新
type GetPendingRedemptionsUseCase interface {
	Execute(ctx context.Context) ([]*PendingRedemptionDTO, error)
}

type GetPendingRedemptionsUseCaseImpl struct {
	deps Dependencies
}

// NewGetPendingRedemptionsUseCase 創建 GetPendingRedemptionsUseCase 實例
func NewGetPendingRedemptionsUseCase(deps Dependencies) GetPendingRedemptionsUseCase {
	return &GetPendingRedemptionsUseCaseImpl{deps: deps}
}

// Execute 查詢並附上摘要；使用者或獎勵已不存在時摘要為空
func (uc *GetPendingRedemptionsUseCaseImpl) Execute(_ context.Context) ([]*PendingRedemptionDTO, error) {
	pending, err := uc.deps.Redemptions.FindPending(nil)
	if err != nil {
		return nil, err
	}

	users := make(map[string]*UserSummary)
	rewards := make(map[string]*RewardSummary)

	out := make([]*PendingRedemptionDTO, 0, len(pending))
	for _, rd := range pending {
		item := &PendingRedemptionDTO{RedemptionDTO: dto.FromRedemption(rd)}

		item.User, err = uc.userSummary(users, rd.UserID())
		if err != nil {
			return nil, err
		}
		item.Reward, err = uc.rewardSummary(rewards, rd.RewardID())
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (uc *GetPendingRedemptionsUseCaseImpl) userSummary(cache map[string]*UserSummary, id user.UserID) (*UserSummary, error) {
	if s, ok := cache[id.String()]; ok {
		return s, nil
	}
	u, err := uc.deps.Users.FindByID(nil, id)
	switch {
	case err == nil:
		cache[id.String()] = &UserSummary{UserID: id.String(), DisplayName: u.DisplayName()}
	case errors.Is(err, user.ErrUserNotFound):
		cache[id.String()] = nil
	default:
		return nil, err
	}
	return cache[id.String()], nil
}

func (uc *GetPendingRedemptionsUseCaseImpl) rewardSummary(cache map[string]*RewardSummary, id reward.RewardID) (*RewardSummary, error) {
	if s, ok := cache[id.String()]; ok {
		return s, nil
	}
	rw, err := uc.deps.Rewards.FindByID(nil, id)
	switch {
	case err == nil:
		cache[id.String()] = &RewardSummary{RewardID: id.String(), Title: rw.Title(), ActionType: rw.ActionType()}
	case errors.Is(err, reward.ErrRewardNotFound):
		cache[id.String()] = nil
	default:
		return nil, err
	}
	return cache[id.String()], nil
}

// GetUserRedemptionsQuery 使用者的兌換記錄（新到舊）
type GetUserRedemptionsQuery struct {
	UserID string
}

// GetUserRedemptionsUseCase 使用者兌換記錄查詢
type GetUserRedemptionsUseCase interface {
	Execute(ctx context.Context, query GetUserRedemptionsQuery) ([]*dto.RedemptionDTO, error)
}

type GetUserRedemptionsUseCaseImpl struct {
	deps Dependencies
}

// NewGetUserRedemptionsUseCase 創建 GetUserRedemptionsUseCase 實例
func NewGetUserRedemptionsUseCase(deps Dependencies) GetUserRedemptionsUseCase {
	return &GetUserRedemptionsUseCaseImpl{deps: deps}
}

func (uc *GetUserRedemptionsUseCaseImpl) Execute(_ context.Context, query GetUserRedemptionsQuery) ([]*dto.RedemptionDTO, error) {
	userID, err := user.UserIDFromString(query.UserID)
	if err != nil {
		return nil, err
	}
	items, err := uc.deps.Redemptions.FindByUser(nil, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromRedemptions(items), nil
}
