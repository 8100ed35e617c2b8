package reward

import (
	"context"

	"github.com/jackyeh168/channel_points/src/internal/application/dto"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
)

// CreateCategoryCommand 建立獎勵分類
type CreateCategoryCommand struct {
	Name      string
	Icon      string
	Color     string // #RRGGBB，空白時使用預設色
	SortOrder int
}

// CreateCategoryUseCase 建立分類（名稱不可重複 → reward.ErrCategoryAlreadyExists）
type CreateCategoryUseCase interface {
	Execute(ctx context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error)
}

type CreateCategoryUseCaseImpl struct {
	deps Dependencies
}

// NewCreateCategoryUseCase 創建 CreateCategoryUseCase 實例
func NewCreateCategoryUseCase(deps Dependencies) CreateCategoryUseCase {
	return &CreateCategoryUseCaseImpl{deps: deps}
}

func (uc *CreateCategoryUseCaseImpl) Execute(_ context.Context, cmd CreateCategoryCommand) (*dto.CategoryDTO, error) {
	c, err := reward.NewCategory(cmd.Name, cmd.Icon, cmd.Color, cmd.SortOrder)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.Categories.Save(nil, c); err != nil {
		return nil, err
	}
	return dto.FromCategory(c), nil
}

// ListCategoriesUseCase 分類清單（依 sortOrder、name 排序）
type ListCategoriesUseCase interface {
	Execute(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type ListCategoriesUseCaseImpl struct {
	deps Dependencies
}

// NewListCategoriesUseCase 創建 ListCategoriesUseCase 實例
func NewListCategoriesUseCase(deps Dependencies) ListCategoriesUseCase {
	return &ListCategoriesUseCaseImpl{deps: deps}
}

func (uc *ListCategoriesUseCaseImpl) Execute(_ context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := uc.deps.Categories.List(nil)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}
