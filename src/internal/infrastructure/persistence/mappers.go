package persistence

import (
	"encoding/json"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"gorm.io/datatypes"
)

// ===========================
// Domain ↔ GORM Model 轉換函數
// ===========================
//
// toDomain 系列：資料庫資料違反格式時返回錯誤而非 panic，
// 由上層決定如何處理（記錄日誌、告警、數據修復等）。
// toGORM 系列：Domain 聚合已保證數據有效性，不再驗證。

func corrupted(table, column, value string) error {
	return shared.ErrRepository.WithContext(
		"table", table,
		"column", column,
		"value", value,
		"reason", "invalid value in database",
	)
}

// ---------- User ----------

func userToDomain(m *UserGORM) (*user.User, error) {
	id, err := user.UserIDFromString(m.UserID)
	if err != nil {
		return nil, corrupted("users", "user_id", m.UserID)
	}
	ext, err := user.NewExternalID(m.ExternalID)
	if err != nil {
		return nil, corrupted("users", "external_id", m.ExternalID)
	}
	email, err := user.NewEmail(m.Email)
	if err != nil {
		return nil, corrupted("users", "email", m.Email)
	}

	return user.ReconstructUser(
		id, ext, email, m.DisplayName, m.Points,
		m.IsAdmin, m.IsPremium, m.IsOwner,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func userToGORM(u *user.User) *UserGORM {
	return &UserGORM{
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

// ---------- PointTransaction ----------

func transactionToDomain(m *PointTransactionGORM) (*points.PointTransaction, error) {
	id, err := points.TransactionIDFromString(m.TransactionID)
	if err != nil {
		return nil, corrupted("point_transactions", "transaction_id", m.TransactionID)
	}
	userID, err := user.UserIDFromString(m.UserID)
	if err != nil {
		return nil, corrupted("point_transactions", "user_id", m.UserID)
	}
	txType, err := points.ParseTransactionType(m.Type)
	if err != nil {
		return nil, corrupted("point_transactions", "type", m.Type)
	}

	return points.ReconstructPointTransaction(id, userID, m.Amount, txType, m.Description, m.CreatedAt), nil
}

func transactionToGORM(t *points.PointTransaction) *PointTransactionGORM {
	return &PointTransactionGORM{
		TransactionID: t.ID().String(),
		UserID:        t.UserID().String(),
		Amount:        t.Amount(),
		Type:          string(t.Type()),
		Description:   t.Description(),
		CreatedAt:     t.CreatedAt(),
	}
}

// ---------- Reward ----------

func rewardToDomain(m *RewardGORM) (*reward.Reward, error) {
	id, err := reward.RewardIDFromString(m.RewardID)
	if err != nil {
		return nil, corrupted("rewards", "reward_id", m.RewardID)
	}
	tier, err := reward.ParseTier(m.Tier)
	if err != nil {
		return nil, corrupted("rewards", "tier", m.Tier)
	}

	var categoryID *reward.CategoryID
	if m.CategoryID != nil {
		cid, err := reward.CategoryIDFromString(*m.CategoryID)
		if err != nil {
			return nil, corrupted("rewards", "category_id", *m.CategoryID)
		}
		categoryID = &cid
	}

	spec := reward.RewardSpec{
		Title:        m.Title,
		Description:  m.Description,
		Cost:         m.Cost,
		ActionType:   m.ActionType,
		ActionConfig: json.RawMessage(m.ActionConfig),
		Tier:         tier,
		IsActive:     m.IsActive,
		CategoryID:   categoryID,
	}
	return reward.ReconstructReward(id, spec, m.CreatedAt, m.UpdatedAt), nil
}

func rewardToGORM(r *reward.Reward) *RewardGORM {
	var categoryID *string
	if r.CategoryID() != nil {
		s := r.CategoryID().String()
		categoryID = &s
	}

	return &RewardGORM{
		RewardID:     r.RewardID().String(),
		Title:        r.Title(),
		Description:  r.Description(),
		Cost:         r.Cost().Value(),
		ActionType:   r.ActionType(),
		ActionConfig: datatypes.JSON(r.ActionConfig()),
		Tier:         string(r.Tier()),
		IsActive:     r.IsActive(),
		CategoryID:   categoryID,
		CreatedAt:    r.CreatedAt(),
		UpdatedAt:    r.UpdatedAt(),
	}
}

// ---------- Category ----------

func categoryToDomain(m *RewardCategoryGORM) (*reward.Category, error) {
	id, err := reward.CategoryIDFromString(m.CategoryID)
	if err != nil {
		return nil, corrupted("reward_categories", "category_id", m.CategoryID)
	}
	return reward.ReconstructCategory(id, m.Name, m.Icon, m.Color, m.SortOrder, m.CreatedAt), nil
}

func categoryToGORM(c *reward.Category) *RewardCategoryGORM {
	return &RewardCategoryGORM{
		CategoryID: c.CategoryID().String(),
		Name:       c.Name(),
		Icon:       c.Icon(),
		Color:      c.Color(),
		SortOrder:  c.SortOrder(),
		CreatedAt:  c.CreatedAt(),
	}
}

// ---------- Redemption ----------

func redemptionToDomain(m *RedemptionGORM) (*redemption.Redemption, error) {
	id, err := redemption.RedemptionIDFromString(m.RedemptionID)
	if err != nil {
		return nil, corrupted("redemptions", "redemption_id", m.RedemptionID)
	}
	userID, err := user.UserIDFromString(m.UserID)
	if err != nil {
		return nil, corrupted("redemptions", "user_id", m.UserID)
	}
	rewardID, err := reward.RewardIDFromString(m.RewardID)
	if err != nil {
		return nil, corrupted("redemptions", "reward_id", m.RewardID)
	}
	status, err := redemption.ParseStatus(m.Status)
	if err != nil {
		return nil, corrupted("redemptions", "status", m.Status)
	}

	return redemption.ReconstructRedemption(
		id, userID, rewardID, m.Cost, status, m.Message,
		json.RawMessage(m.ResultData), m.RedeemedAt, m.ProcessedAt, m.Version,
	), nil
}

func redemptionToGORM(r *redemption.Redemption) *RedemptionGORM {
	return &RedemptionGORM{
		RedemptionID: r.RedemptionID().String(),
		UserID:       r.UserID().String(),
		RewardID:     r.RewardID().String(),
		Cost:         r.Cost(),
		Status:       string(r.Status()),
		Message:      r.Message(),
		ResultData:   datatypes.JSON(r.ResultData()),
		RedeemedAt:   r.RedeemedAt(),
		ProcessedAt:  r.ProcessedAt(),
		Version:      r.Version(),
	}
}
