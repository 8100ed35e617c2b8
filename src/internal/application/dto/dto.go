package dto

import (
	"encoding/json"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// Output DTO
// ===========================
//
// 應用層對外的資料形狀：只用原始類型，不暴露 Domain 對象。
// JSON tag 即 HTTP API 的回應欄位。

// UserDTO 使用者
type UserDTO struct {
	UserID      string    `json:"id"`
	ExternalID  string    `json:"externalId"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName"`
	Points      int       `json:"points"`
	IsAdmin     bool      `json:"isAdmin"`
	IsPremium   bool      `json:"isPremium"`
	IsOwner     bool      `json:"isOwner"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromUser 轉換使用者
func FromUser(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		UserID:      u.UserID().String(),
		ExternalID:  u.ExternalID().String(),
		Email:       u.Email().String(),
		DisplayName: u.DisplayName(),
		Points:      u.Points(),
		IsAdmin:     u.IsAdmin(),
		IsPremium:   u.IsPremium(),
		IsOwner:     u.IsOwner(),
		CreatedAt:   u.CreatedAt(),
		UpdatedAt:   u.UpdatedAt(),
	}
}

// FromUsers 轉換使用者清單（保持順序）
func FromUsers(users []*user.User) []*UserDTO {
	out := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, FromUser(u))
	}
	return out
}

// TransactionDTO 積分異動記錄
type TransactionDTO struct {
	TransactionID string    `json:"id"`
	UserID        string    `json:"userId"`
	Amount        int       `json:"amount"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromTransactions 轉換異動記錄清單
func FromTransactions(entries []*points.PointTransaction) []*TransactionDTO {
	out := make([]*TransactionDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, &TransactionDTO{
			TransactionID: e.ID().String(),
			UserID:        e.UserID().String(),
			Amount:        e.Amount(),
			Type:          string(e.Type()),
			Description:   e.Description(),
			CreatedAt:     e.CreatedAt(),
		})
	}
	return out
}

// RewardDTO 獎勵
type RewardDTO struct {
	RewardID     string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Cost         int             `json:"cost"`
	ActionType   string          `json:"actionType"`
	ActionConfig json.RawMessage `json:"actionConfig"`
	Tier         string          `json:"tier"`
	IsActive     bool            `json:"isActive"`
	CategoryID   *string         `json:"categoryId,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// FromReward 轉換獎勵
func FromReward(r *reward.Reward) *RewardDTO {
	if r == nil {
		return nil
	}
	out := &RewardDTO{
		RewardID:     r.RewardID().String(),
		Title:        r.Title(),
		Description:  r.Description(),
		Cost:         r.Cost().Value(),
		ActionType:   r.ActionType(),
		ActionConfig: r.ActionConfig(),
		Tier:         string(r.Tier()),
		IsActive:     r.IsActive(),
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
	if id := r.CategoryID(); id != nil {
		s := id.String()
		out.CategoryID = &s
	}
	return out
}

// FromRewards 轉換獎勵清單
func FromRewards(rewards []*reward.Reward) []*RewardDTO {
	out := make([]*RewardDTO, 0, len(rewards))
	for _, r := range rewards {
		out = append(out, FromReward(r))
	}
	return out
}

// CategoryDTO 獎勵分類
type CategoryDTO struct {
	CategoryID string    `json:"id"`
	Name       string    `json:"name"`
	Icon       string    `json:"icon,omitempty"`
	Color      string    `json:"color,omitempty"`
	SortOrder  int       `json:"sortOrder"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FromCategory 轉換分類
func FromCategory(c *reward.Category) *CategoryDTO {
	return &CategoryDTO{
		CategoryID: c.CategoryID().String(),
		Name:       c.Name(),
		Icon:       c.Icon(),
		Color:      c.Color(),
		SortOrder:  c.SortOrder(),
		CreatedAt:  c.CreatedAt(),
	}
}

// RedemptionDTO 兌換記錄
type RedemptionDTO struct {
	RedemptionID string          `json:"id"`
	UserID       string          `json:"userId"`
	RewardID     string          `json:"rewardId"`
	Cost         int             `json:"cost"`
	Status       string          `json:"status"`
	Message      string          `json:"message,omitempty"`
	ResultData   json.RawMessage `json:"resultData,omitempty"`
	RedeemedAt   time.Time       `json:"redeemedAt"`
	ProcessedAt  *time.Time      `json:"processedAt,omitempty"`
}

// FromRedemption 轉換兌換記錄
func FromRedemption(r *redemption.Redemption) *RedemptionDTO {
	if r == nil {
		return nil
	}
	return &RedemptionDTO{
		RedemptionID: r.RedemptionID().String(),
		UserID:       r.UserID().String(),
		RewardID:     r.RewardID().String(),
		Cost:         r.Cost(),
		Status:       string(r.Status()),
		Message:      r.Message(),
		ResultData:   r.ResultData(),
		RedeemedAt:   r.RedeemedAt(),
		ProcessedAt:  r.ProcessedAt(),
	}
}

// FromRedemptions 轉換兌換記錄清單
func FromRedemptions(items []*redemption.Redemption) []*RedemptionDTO {
	out := make([]*RedemptionDTO, 0, len(items))
	for _, r := range items {
		out = append(out, FromRedemption(r))
	}
	return out
}
