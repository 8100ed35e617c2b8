package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	rewardapp "github.com/jackyeh168/channel_points/src/internal/application/reward"
)

type rewardRequest struct {
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Cost         int             `json:"cost"`
	ActionType   string          `json:"actionType"`
	ActionConfig json.RawMessage `json:"actionConfig"`
	Tier         string          `json:"tier"`
	IsActive     *bool           `json:"isActive,omitempty"`
	CategoryID   *string         `json:"categoryId,omitempty"`
}

func (req rewardRequest) fields() rewardapp.RewardFields {
	return rewardapp.RewardFields{
		Title:        req.Title,
		Description:  req.Description,
		Cost:         req.Cost,
		ActionType:   req.ActionType,
		ActionConfig: req.ActionConfig,
		Tier:         req.Tier,
		IsActive:     req.IsActive,
		CategoryID:   req.CategoryID,
	}
}

type validateConfigRequest struct {
	ActionType string          `json:"actionType"`
	Config     json.RawMessage `json:"config"`
}

type categoryRequest struct {
	Name      string `json:"name"`
	Icon      string `json:"icon,omitempty"`
	Color     string `json:"color,omitempty"`
	SortOrder int    `json:"sortOrder"`
}

// ListRewards handles GET /api/admin/rewards?categoryId=
func (h *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	h.listRewards(w, r, "")
}

// ListRewardsForUser handles GET /api/users/{userID}/rewards?categoryId=
func (h *Handler) ListRewardsForUser(w http.ResponseWriter, r *http.Request) {
	h.listRewards(w, r, chi.URLParam(r, "userID"))
}

func (h *Handler) listRewards(w http.ResponseWriter, r *http.Request, userID string) {
	out, err := h.uc.ListRewards.Execute(r.Context(), rewardapp.ListRewardsQuery{
		UserID:     userID,
		CategoryID: r.URL.Query().Get("categoryId"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateReward handles POST /api/admin/rewards
func (h *Handler) CreateReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.CreateReward.Execute(r.Context(), rewardapp.CreateRewardCommand{RewardFields: req.fields()})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

// UpdateReward handles PUT /api/admin/rewards/{rewardID}
func (h *Handler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	var req rewardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.UpdateReward.Execute(r.Context(), rewardapp.UpdateRewardCommand{
		RewardID:     chi.URLParam(r, "rewardID"),
		RewardFields: req.fields(),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ValidateActionConfig handles POST /api/admin/rewards/validate-config
//
// 設定不合法仍回 200，valid=false 並附上原因。
func (h *Handler) ValidateActionConfig(w http.ResponseWriter, r *http.Request) {
	var req validateConfigRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out := h.uc.ValidateConfig.Execute(r.Context(), rewardapp.ValidateActionConfigQuery{
		ActionType: req.ActionType,
		Config:     req.Config,
	})
	writeJSON(w, http.StatusOK, out)
}

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.ListCategories.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /api/admin/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.CreateCategory.Execute(r.Context(), rewardapp.CreateCategoryCommand{
		Name:      req.Name,
		Icon:      req.Icon,
		Color:     req.Color,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}
