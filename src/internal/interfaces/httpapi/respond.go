package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
)

// maxBodyBytes 請求本文上限
const maxBodyBytes = 1 << 20

// errorResponse 錯誤回應
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
	Kind  string `json:"kind,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor 錯誤分類 → HTTP 狀態碼
func statusFor(err error) int {
	switch shared.KindOf(err) {
	case shared.KindNotFound:
		return http.StatusNotFound
	case shared.KindValidation,
		shared.KindInvalidState,
		shared.KindInsufficientFunds,
		shared.KindUnknownActionType:
		return http.StatusBadRequest
	case shared.KindPolicyViolation:
		// 轉給自己是輸入錯誤，不是權限問題
		if errors.Is(err, points.ErrSameUserTransfer) {
			return http.StatusBadRequest
		}
		return http.StatusForbidden
	case shared.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError 寫出錯誤；內部錯誤只記錄，不回傳原始內容
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, status, "internal error")
		return
	}

	resp := errorResponse{Error: err.Error(), Kind: string(shared.KindOf(err))}
	if domainErr, ok := shared.AsDomainError(err); ok {
		resp.Error = domainErr.Message
		resp.Code = string(domainErr.Code)
	}
	writeJSON(w, status, resp)
}

// decodeJSON 讀取 JSON 本文（限制大小、拒絕未知欄位）
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("empty body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
