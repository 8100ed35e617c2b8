package reward

import (
	"context"
	"encoding/json"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
)

// ValidateActionConfigQuery 驗證某一動作類型的設定
type ValidateActionConfigQuery struct {
	ActionType string
	Config     json.RawMessage
}

// ValidateActionConfigResult Valid 為 false 時 Reason 說明原因
type ValidateActionConfigResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// ValidateActionConfigUseCase 在編輯獎勵前預先檢查設定
//
// 設定不合法或類型未知都是正常結果，不返回 error。
type ValidateActionConfigUseCase interface {
	Execute(ctx context.Context, query ValidateActionConfigQuery) *ValidateActionConfigResult
}

type ValidateActionConfigUseCaseImpl struct {
	deps Dependencies
}

// NewValidateActionConfigUseCase 創建 ValidateActionConfigUseCase 實例
func NewValidateActionConfigUseCase(deps Dependencies) ValidateActionConfigUseCase {
	return &ValidateActionConfigUseCaseImpl{deps: deps}
}

func (uc *ValidateActionConfigUseCaseImpl) Execute(_ context.Context, query ValidateActionConfigQuery) *ValidateActionConfigResult {
	if _, err := uc.deps.Validator.ValidateConfig(query.ActionType, query.Config); err != nil {
		return &ValidateActionConfigResult{Valid: false, Reason: action.Reason(err)}
	}
	return &ValidateActionConfigResult{Valid: true}
}
