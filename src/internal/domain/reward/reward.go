package reward

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// Reward Aggregate Root
// ===========================

// Reward 可兌換的獎勵
//
// 行為由資料驅動：actionType 選擇處理器，actionConfig 是該處理器的設定。
// 設定內容在建立或修改前由處理器驗證（見 action.Registry），
// 聚合本身只保存原始 JSON，不解讀其結構。
//
// 兌換時讀取的 cost 與 tier 就是實際扣款依據。
type Reward struct {
	rewardID     RewardID
	title        string
	description  string
	cost         points.PointsAmount
	actionType   string
	actionConfig json.RawMessage
	tier         Tier
	isActive     bool
	categoryID   *CategoryID
	createdAt    time.Time
	updatedAt    time.Time
}

// RewardSpec 建立或修改獎勵的欄位
type RewardSpec struct {
	Title        string
	Description  string
	Cost         int
	ActionType   string
	ActionConfig json.RawMessage
	Tier         Tier
	IsActive     bool
	CategoryID   *CategoryID
}

const maxTitleLength = 100

func (s RewardSpec) validate() (string, points.PointsAmount, error) {
	title := strings.TrimSpace(s.Title)
	if n := utf8.RuneCountInString(title); n == 0 || n > maxTitleLength {
		return "", points.PointsAmount{}, ErrInvalidRewardTitle.WithContext("title", s.Title)
	}
	cost, err := points.NewPositivePointsAmount(s.Cost)
	if err != nil {
		return "", points.PointsAmount{}, ErrInvalidRewardCost.WithContext("cost", s.Cost)
	}
	if _, err := ParseTier(string(s.Tier)); err != nil {
		return "", points.PointsAmount{}, err
	}
	return title, cost, nil
}

func normalizeConfig(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage(`{}`)
	}
	return append(json.RawMessage(nil), raw...)
}

// NewReward 建立獎勵
//
// actionConfig 的語意驗證由調用者（應用層）透過處理器完成。
func NewReward(spec RewardSpec) (*Reward, error) {
	title, cost, err := spec.validate()
	if err != nil {
		return nil, err
	}
	tier, _ := ParseTier(string(spec.Tier))

	now := time.Now()
	return &Reward{
		rewardID:     NewRewardID(),
		title:        title,
		description:  strings.TrimSpace(spec.Description),
		cost:         cost,
		actionType:   spec.ActionType,
		actionConfig: normalizeConfig(spec.ActionConfig),
		tier:         tier,
		isActive:     spec.IsActive,
		categoryID:   spec.CategoryID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructReward 從資料庫重建
func ReconstructReward(
	rewardID RewardID,
	spec RewardSpec,
	createdAt, updatedAt time.Time,
) *Reward {
	cost, _ := points.NewPointsAmount(spec.Cost)
	return &Reward{
		rewardID:     rewardID,
		title:        spec.Title,
		description:  spec.Description,
		cost:         cost,
		actionType:   spec.ActionType,
		actionConfig: spec.ActionConfig,
		tier:         spec.Tier,
		isActive:     spec.IsActive,
		categoryID:   spec.CategoryID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// Update 以管理員編輯的內容取代目前欄位（最後寫入者勝出）
func (r *Reward) Update(spec RewardSpec) error {
	title, cost, err := spec.validate()
	if err != nil {
		return err
	}
	tier, _ := ParseTier(string(spec.Tier))

	r.title = title
	r.description = strings.TrimSpace(spec.Description)
	r.cost = cost
	r.actionType = spec.ActionType
	r.actionConfig = normalizeConfig(spec.ActionConfig)
	r.tier = tier
	r.isActive = spec.IsActive
	r.categoryID = spec.CategoryID
	r.updatedAt = time.Now()
	return nil
}

// CheckRedeemable 檢查使用者目前能否兌換此獎勵
//
// 檢查順序：未開放 → premium 限制。
// 餘額是否足夠不在此檢查，由帳本的條件扣款負責。
func (r *Reward) CheckRedeemable(u *user.User) error {
	if !r.isActive {
		return ErrRewardInactive.WithContext("reward_id", r.rewardID.String())
	}
	if !u.CanAccessTier(r.tier.IsPremium()) {
		return ErrPremiumRequired.WithContext(
			"reward_id", r.rewardID.String(),
			"user_id", u.UserID().String(),
		)
	}
	return nil
}

// VisibleTo 使用者可在清單中看到此獎勵（未開放的獎勵不顯示）
func (r *Reward) VisibleTo(isPremium bool) bool {
	return r.isActive && (isPremium || !r.tier.IsPremium())
}

// ===========================
// Getters
// ===========================

func (r *Reward) RewardID() RewardID            { return r.rewardID }
func (r *Reward) Title() string                 { return r.title }
func (r *Reward) Description() string           { return r.description }
func (r *Reward) Cost() points.PointsAmount     { return r.cost }
func (r *Reward) ActionType() string            { return r.actionType }
func (r *Reward) ActionConfig() json.RawMessage { return r.actionConfig }
func (r *Reward) Tier() Tier                    { return r.tier }
func (r *Reward) IsActive() bool                { return r.isActive }
func (r *Reward) CategoryID() *CategoryID       { return r.categoryID }
func (r *Reward) CreatedAt() time.Time          { return r.createdAt }
func (r *Reward) UpdatedAt() time.Time          { return r.updatedAt }

// Spec 返回目前欄位（供修改時以現值為基礎）
func (r *Reward) Spec() RewardSpec {
	return RewardSpec{
		Title:        r.title,
		Description:  r.description,
		Cost:         r.cost.Value(),
		ActionType:   r.actionType,
		ActionConfig: r.actionConfig,
		Tier:         r.tier,
		IsActive:     r.isActive,
		CategoryID:   r.categoryID,
	}
}
