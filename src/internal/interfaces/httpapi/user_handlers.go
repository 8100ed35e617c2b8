package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	userapp "github.com/jackyeh168/channel_points/src/internal/application/user"
)

type ensureUserRequest struct {
	ExternalID  string `json:"externalId"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName"`
}

type updateRolesRequest struct {
	IsAdmin   *bool `json:"isAdmin,omitempty"`
	IsPremium *bool `json:"isPremium,omitempty"`
	IsOwner   *bool `json:"isOwner,omitempty"`
}

// EnsureUser handles POST /api/users/ensure
//
// 由身分驗證代理在登入成功後呼叫。新建時回 201，已存在回 200。
func (h *Handler) EnsureUser(w http.ResponseWriter, r *http.Request) {
	var req ensureUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.EnsureUser.Execute(r.Context(), userapp.EnsureUserCommand{
		ExternalID:  req.ExternalID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, out)
}

// GetUser handles GET /api/users/{userID}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.GetUser.Execute(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Leaderboard handles GET /api/leaderboard?limit=
func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	out, err := h.uc.Leaderboard.Execute(r.Context(), limit)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// ListUsers handles GET /api/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	out, err := h.uc.ListUsers.Execute(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// UpdateRoles handles PATCH /api/admin/users/{userID}/roles
func (h *Handler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	var req updateRolesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.uc.UpdateRoles.Execute(r.Context(), userapp.UpdateRolesCommand{
		UserID:    chi.URLParam(r, "userID"),
		IsAdmin:   req.IsAdmin,
		IsPremium: req.IsPremium,
		IsOwner:   req.IsOwner,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
