package reward

import (
	"encoding/json"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ConfigValidator 驗證動作設定（由 *action.Registry 實作）
type ConfigValidator interface {
	ValidateConfig(actionType string, raw json.RawMessage) (action.Config, error)
}

// Dependencies 獎勵管理 Use Case 的協作者
type Dependencies struct {
	Rewards    reward.RewardRepository
	Categories reward.CategoryRepository
	Users      user.UserRepository
	Validator  ConfigValidator
}

// RewardFields 建立與修改共用的輸入欄位
type RewardFields struct {
	Title        string
	Description  string
	Cost         int
	ActionType   string
	ActionConfig json.RawMessage
	Tier         string
	IsActive     *bool // nil 視為 true
	CategoryID   *string
}

// toSpec 驗證輸入並轉換為 RewardSpec
//
// 1. tier 合法
// 2. 分類存在（有指定時）
// 3. 動作類型已註冊且設定通過處理器驗證
//
// 寫入的設定是解碼後（已套用預設值）的版本。
func (d Dependencies) toSpec(tx shared.TransactionContext, f RewardFields) (reward.RewardSpec, error) {
	tier, err := reward.ParseTier(f.Tier)
	if err != nil {
		return reward.RewardSpec{}, err
	}

	var categoryID *reward.CategoryID
	if f.CategoryID != nil && *f.CategoryID != "" {
		id, err := reward.CategoryIDFromString(*f.CategoryID)
		if err != nil {
			return reward.RewardSpec{}, err
		}
		if _, err := d.Categories.FindByID(tx, id); err != nil {
			return reward.RewardSpec{}, err
		}
		categoryID = &id
	}

	cfg, err := d.Validator.ValidateConfig(f.ActionType, f.ActionConfig)
	if err != nil {
		return reward.RewardSpec{}, err
	}
	normalized, err := json.Marshal(cfg)
	if err != nil {
		return reward.RewardSpec{}, err
	}

	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}

	return reward.RewardSpec{
		Title:        f.Title,
		Description:  f.Description,
		Cost:         f.Cost,
		ActionType:   f.ActionType,
		ActionConfig: normalized,
		Tier:         tier,
		IsActive:     active,
		CategoryID:   categoryID,
	}, nil
}
