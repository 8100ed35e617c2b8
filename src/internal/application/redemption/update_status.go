package redemption

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
)

// UpdateRedemptionStatusCommand 管理員推進兌換狀態
type UpdateRedemptionStatusCommand struct {
	RedemptionID string
	Status       string
	Message      string
}

// UpdateRedemptionStatusUseCase 推進兌換狀態
//
// 業務規則：
// 1. 只能依狀態機前進（pending → processing → completed|failed）
// 2. 終結狀態不可再變更 → redemption.ErrInvalidTransition
// 3. 並發更新以版本號保護 → shared.ErrConcurrentModification
//
// 標記為 failed 不會退款。
type UpdateRedemptionStatusUseCase interface {
	Execute(ctx context.Context, cmd UpdateRedemptionStatusCommand) (*dto.RedemptionDTO, error)
}

type UpdateRedemptionStatusUseCaseImpl struct {
	deps Dependencies
}

// NewUpdateRedemptionStatusUseCase 創建 UpdateRedemptionStatusUseCase 實例
func NewUpdateRedemptionStatusUseCase(deps Dependencies) UpdateRedemptionStatusUseCase {
	return &UpdateRedemptionStatusUseCaseImpl{deps: deps}
}

func (uc *UpdateRedemptionStatusUseCaseImpl) Execute(
	_ context.Context,
	cmd UpdateRedemptionStatusCommand,
) (*dto.RedemptionDTO, error) {
	id, err := redemption.RedemptionIDFromString(cmd.RedemptionID)
	if err != nil {
		return nil, err
	}
	next, err := redemption.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	rd, err := uc.deps.Redemptions.FindByID(nil, id)
	if err != nil {
		return nil, err
	}
	if err := rd.TransitionTo(next, cmd.Message, nil); err != nil {
		return nil, err
	}
	if err := uc.deps.Redemptions.Update(nil, rd); err != nil {
		return nil, err
	}

	uc.deps.logger().Info("redemption status updated",
		"redemption_id", cmd.RedemptionID,
		"status", next,
	)
	uc.deps.publishAfterCommit(rd.PullEvents()...)
	return dto.FromRedemption(rd), nil
}
