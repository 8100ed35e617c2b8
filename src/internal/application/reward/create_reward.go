package reward

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
)

// ===========================
// CreateReward Use Case
// ===========================

// CreateRewardCommand 建立獎勵指令
type CreateRewardCommand struct {
	RewardFields
}

// CreateRewardUseCase 建立獎勵
//
// 業務規則：
// 1. 名稱 1..100 字，所需積分為正整數
// 2. 動作設定在寫入前由對應的處理器驗證，未知類型 → action.ErrUnknownActionType
// 3. 指定的分類必須存在
type CreateRewardUseCase interface {
	Execute(ctx context.Context, cmd CreateRewardCommand) (*dto.RewardDTO, error)
}

type CreateRewardUseCaseImpl struct {
	deps Dependencies
}

// NewCreateRewardUseCase 創建 CreateRewardUseCase 實例
func NewCreateRewardUseCase(deps Dependencies) CreateRewardUseCase {
	return &CreateRewardUseCaseImpl{deps: deps}
}

func (uc *CreateRewardUseCaseImpl) Execute(_ context.Context, cmd CreateRewardCommand) (*dto.RewardDTO, error) {
	spec, err := uc.deps.toSpec(nil, cmd.RewardFields)
	if err != nil {
		return nil, err
	}

	rw, err := reward.NewReward(spec)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.Rewards.Save(nil, rw); err != nil {
		return nil, err
	}
	return dto.FromReward(rw), nil
}

// ===========================
// UpdateReward Use Case
// ===========================

// UpdateRewardCommand 修改獎勵指令（整筆取代）
type UpdateRewardCommand struct {
	RewardID string
	RewardFields
}

// UpdateRewardUseCase 修改獎勵（最後寫入者勝出）
//
// 已建立的兌換保留兌換當下的 cost，不受修改影響。
type UpdateRewardUseCase interface {
	Execute(ctx context.Context, cmd UpdateRewardCommand) (*dto.RewardDTO, error)
}

type UpdateRewardUseCaseImpl struct {
	deps Dependencies
}

// NewUpdateRewardUseCase 創建 UpdateRewardUseCase 實例
func NewUpdateRewardUseCase(deps Dependencies) UpdateRewardUseCase {
	return &UpdateRewardUseCaseImpl{deps: deps}
}

func (uc *UpdateRewardUseCaseImpl) Execute(_ context.Context, cmd UpdateRewardCommand) (*dto.RewardDTO, error) {
	id, err := reward.RewardIDFromString(cmd.RewardID)
	if err != nil {
		return nil, err
	}
	rw, err := uc.deps.Rewards.FindByID(nil, id)
	if err != nil {
		return nil, err
	}

	spec, err := uc.deps.toSpec(nil, cmd.RewardFields)
	if err != nil {
		return nil, err
	}
	if err := rw.Update(spec); err != nil {
		return nil, err
	}
	if err := uc.deps.Rewards.Update(nil, rw); err != nil {
		return nil, err
	}
	return dto.FromReward(rw), nil
}
