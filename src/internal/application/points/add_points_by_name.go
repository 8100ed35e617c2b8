package points

import (
	"context"
	"strings"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// AddPointsByDisplayNameCommand 實況主依觀眾顯示名稱加點
type AddPointsByDisplayNameCommand struct {
	DisplayName string
	Amount      int
	Description string
}

// AddPointsByDisplayNameUseCase 實況主加點（名稱比對不分大小寫）
type AddPointsByDisplayNameUseCase interface {
	Execute(ctx context.Context, cmd AddPointsByDisplayNameCommand) (*dto.UserDTO, error)
}

type AddPointsByDisplayNameUseCaseImpl struct {
	deps Dependencies
}

// NewAddPointsByDisplayNameUseCase 創建 AddPointsByDisplayNameUseCase 實例
func NewAddPointsByDisplayNameUseCase(deps Dependencies) AddPointsByDisplayNameUseCase {
	return &AddPointsByDisplayNameUseCaseImpl{deps: deps}
}

func (uc *AddPointsByDisplayNameUseCaseImpl) Execute(ctx context.Context, cmd AddPointsByDisplayNameCommand) (*dto.UserDTO, error) {
	name := strings.TrimSpace(cmd.DisplayName)
	if name == "" {
		return nil, user.ErrInvalidDisplayName
	}
	amount, err := points.NewPositivePointsAmount(cmd.Amount)
	if err != nil {
		return nil, err
	}
	desc, err := points.NewDescription(cmd.Description)
	if err != nil {
		return nil, err
	}

	target, err := uc.deps.Users.FindByDisplayName(nil, name)
	if err != nil {
		return nil, err
	}

	return credit(ctx, uc.deps, target.UserID(), amount, desc)
}
