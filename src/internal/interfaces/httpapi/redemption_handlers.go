package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	redemptionapp "github.com/jackyeh168/channel_points/src/internal/application/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/metrics"
)

type redeemRequest struct {
	RewardID string `json:"rewardId"`
}

type updateStatusRequest struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Redeem handles POST /api/users/{userID}/redemptions
//
// 動作失敗不影響回應狀態碼：扣款已成立，redemption.status 為 failed。
func (h *Handler) Redeem(w http.ResponseWriter, r *http.Request) {
	var req redeemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.Redeem.Execute(r.Context(), redemptionapp.RedeemRewardCommand{
		UserID:   chi.URLParam(r, "userID"),
		RewardID: req.RewardID,
	})
	if err != nil {
		metrics.RedemptionRejections.WithLabelValues(string(shared.KindOf(err))).Inc()
		h.writeDomainError(w, r, err)
		return
	}

	metrics.Redemptions.WithLabelValues(out.Redemption.Status, out.ActionType).Inc()
	writeJSON(w, http.StatusCreated, out)
}

// UserRedemptions handles GET /api/users/{userID}/redemptions
func (h *Handler) UserRedemptions(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.UserRedemptions.Execute(r.Context(), redemptionapp.GetUserRedemptionsQuery{
		UserID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// PendingRedemptions handles GET /api/admin/redemptions/pending
func (h *Handler) PendingRedemptions(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.PendingRedemptions.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateRedemptionStatus handles PATCH /api/admin/redemptions/{redemptionID}/status
func (h *Handler) UpdateRedemptionStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.UpdateStatus.Execute(r.Context(), redemptionapp.UpdateRedemptionStatusCommand{
		RedemptionID: chi.URLParam(r, "redemptionID"),
		Status:       req.Status,
		Message:      req.Message,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
