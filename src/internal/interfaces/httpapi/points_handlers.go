package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	pointsapp "github.com/jackyeh168/channel_points/src/internal/application/points"
	"github.com/jackyeh168/channel_points/src/internal/infrastructure/metrics"
)

// ===========================
// 管理員積分操作
// ===========================

type adjustPointsRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

type transferPointsRequest struct {
	FromUserID  string `json:"fromUserId"`
	ToUserID    string `json:"toUserId"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

type bulkUpdateRequest struct {
	Updates []struct {
		UserID       string `json:"userId"`
		PointsEarned int    `json:"pointsEarned"`
		Description  string `json:"description,omitempty"`
	} `json:"updates"`
}

type addPointsByNameRequest struct {
	DisplayName string `json:"displayName"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// GivePoints handles POST /api/admin/users/{userID}/points/give
func (h *Handler) GivePoints(w http.ResponseWriter, r *http.Request) {
	var req adjustPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.GivePoints.Execute(r.Context(), pointsapp.GivePointsCommand{
		UserID:      chi.URLParam(r, "userID"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	metrics.LedgerOperations.WithLabelValues("give", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// RemovePoints handles POST /api/admin/users/{userID}/points/remove
func (h *Handler) RemovePoints(w http.ResponseWriter, r *http.Request) {
	var req adjustPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.RemovePoints.Execute(r.Context(), pointsapp.RemovePointsCommand{
		UserID:      chi.URLParam(r, "userID"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	metrics.LedgerOperations.WithLabelValues("remove", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// SetPoints handles POST /api/admin/users/{userID}/points/set
func (h *Handler) SetPoints(w http.ResponseWriter, r *http.Request) {
	var req adjustPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.SetPoints.Execute(r.Context(), pointsapp.SetPointsCommand{
		UserID:      chi.URLParam(r, "userID"),
		Amount:      req.Amount,
		Description: req.Description,
	})
	metrics.LedgerOperations.WithLabelValues("set", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// TransferPoints handles POST /api/admin/points/transfer
func (h *Handler) TransferPoints(w http.ResponseWriter, r *http.Request) {
	var req transferPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.TransferPoints.Execute(r.Context(), pointsapp.TransferPointsCommand{
		FromUserID:  req.FromUserID,
		ToUserID:    req.ToUserID,
		Amount:      req.Amount,
		Description: req.Description,
	})
	metrics.LedgerOperations.WithLabelValues("transfer", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// BulkUpdatePoints handles POST /api/admin/points/bulk
//
// 部分成功回 200，失敗明細在 errors。
func (h *Handler) BulkUpdatePoints(w http.ResponseWriter, r *http.Request) {
	var req bulkUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	cmd := pointsapp.BulkUpdateCommand{Updates: make([]pointsapp.BulkUpdateItem, 0, len(req.Updates))}
	for _, u := range req.Updates {
		cmd.Updates = append(cmd.Updates, pointsapp.BulkUpdateItem{
			UserID:       u.UserID,
			PointsEarned: u.PointsEarned,
			Description:  u.Description,
		})
	}

	out, err := h.uc.BulkUpdate.Execute(r.Context(), cmd)
	metrics.LedgerOperations.WithLabelValues("bulk", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// AddPointsByName handles POST /api/admin/points/by-name
func (h *Handler) AddPointsByName(w http.ResponseWriter, r *http.Request) {
	var req addPointsByNameRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.AddPointsByName.Execute(r.Context(), pointsapp.AddPointsByDisplayNameCommand{
		DisplayName: req.DisplayName,
		Amount:      req.Amount,
		Description: req.Description,
	})
	metrics.LedgerOperations.WithLabelValues("give_by_name", metrics.Outcome(err)).Inc()
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ===========================
// 查詢
// ===========================

// GetBalance handles GET /api/users/{userID}/balance
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetBalance.Execute(r.Context(), pointsapp.GetPointsBalanceQuery{
		UserID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GetHistory handles GET /api/users/{userID}/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetHistory.Execute(r.Context(), pointsapp.GetHistoryQuery{
		UserID: chi.URLParam(r, "userID"),
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
