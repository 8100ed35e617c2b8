package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/points"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/shared"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

// Test 1: 錯誤分類對應狀態碼
func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"使用者不存在", user.ErrUserNotFound, http.StatusNotFound},
		{"獎勵未開放", reward.ErrRewardInactive, http.StatusBadRequest},
		{"需要 premium", reward.ErrPremiumRequired, http.StatusForbidden},
		{"轉給自己", points.ErrSameUserTransfer, http.StatusBadRequest},
		{"餘額不足", points.ErrInsufficientPoints, http.StatusBadRequest},
		{"未知動作類型", action.ErrUnknownActionType, http.StatusBadRequest},
		{"輸入錯誤", user.ErrInvalidUserID, http.StatusBadRequest},
		{"狀態不可回退", redemption.ErrInvalidTransition, http.StatusBadRequest},
		{"名稱重複", reward.ErrCategoryAlreadyExists, http.StatusConflict},
		{"包裝後仍可辨識", fmt.Errorf("load: %w", user.ErrUserNotFound), http.StatusNotFound},
		{"非領域錯誤", errors.New("disk full"), http.StatusInternalServerError},
		{"資料存取失敗", shared.ErrRepository, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

// Test 2: 內部錯誤不回傳原始訊息
func TestWriteDomainError_HidesInternalErrors(t *testing.T) {
	// Arrange
	h := NewHandler(UseCases{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)

	// Act
	h.writeDomainError(rec, req, errors.New("pq: connection refused at 10.0.0.3"))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

type fakeLimiter struct {
	allowed bool
	err     error
	idents  []string
}

func (f *fakeLimiter) Allow(_ context.Context, ident string) (bool, error) {
	f.idents = append(f.idents, ident)
	return f.allowed, f.err
}

func limitedRouter(l Limiter) http.Handler {
	r := chi.NewRouter()
	r.With(rateLimitByParam(l, "userID", "redeem", slog.New(slog.NewTextHandler(io.Discard, nil)))).
		Post("/users/{userID}/redemptions", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusCreated)
		})
	return r
}

// Test 3: 超過額度回 429，以使用者為單位
func TestRateLimitByParam_Blocks(t *testing.T) {
	// Arrange
	limiter := &fakeLimiter{allowed: false}
	rec := httptest.NewRecorder()

	// Act
	limitedRouter(limiter).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/u-1/redemptions", nil))

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, []string{"redeem:u-1"}, limiter.idents)
}

// Test 4: 限流器出錯時放行
func TestRateLimitByParam_FailOpen(t *testing.T) {
	// Arrange
	limiter := &fakeLimiter{allowed: true, err: errors.New("redis down")}
	rec := httptest.NewRecorder()

	// Act
	limitedRouter(limiter).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/users/u-1/redemptions", nil))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}
