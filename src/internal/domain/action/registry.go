package action

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// Registry 動作註冊表
// ===========================

// Registry 動作類型 → 處理器
//
// 生命週期：
// 1. 啟動時 NewRegistry 並 Register 所有內建處理器
// 2. Seal 之後不可再註冊，之後只讀
// 3. 以參數傳給需要它的 use case，不使用套件層級的全域變數
//
// 新的獎勵種類只需要註冊新的處理器，兌換流程不必修改。
type Registry struct {
	mu       sync.RWMutex
	handlers map[Type]Handler
	sealed   bool
}

// NewRegistry 建立空的註冊表
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Type]Handler)}
}

// Register 註冊處理器
func (r *Registry) Register(actionType Type, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return ErrRegistrySealed.WithContext("action_type", string(actionType))
	}
	if _, exists := r.handlers[actionType]; exists {
		return ErrDuplicateHandler.WithContext("action_type", string(actionType))
	}
	r.handlers[actionType] = handler
	return nil
}

// Seal 封存註冊表（開始服務請求前呼叫）
func (r *Registry) Seal() {
	r.mu.Lock()
	r.sealed = true
	r.mu.Unlock()
}

// Types 已註冊的類型（排序後）
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]Type, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (r *Registry) lookup(actionType string) (Handler, error) {
	r.mu.RLock()
	handler, ok := r.handlers[Type(actionType)]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrUnknownActionType.WithContext(
			"action_type", actionType,
			"reason", "Unknown action type: "+actionType,
		)
	}
	return handler, nil
}

// ValidateConfig 驗證獎勵的動作設定
//
// 錯誤：
// - ErrUnknownActionType：類型未註冊
// - ErrInvalidActionConfig：設定不符合處理器要求（Reason(err) 取得原因）
func (r *Registry) ValidateConfig(actionType string, raw json.RawMessage) (Config, error) {
	handler, err := r.lookup(actionType)
	if err != nil {
		return nil, err
	}
	return handler.DecodeConfig(raw)
}

// Execute 執行獎勵的動作
//
// 處理器返回錯誤或 panic 時包裝為 ErrHandlerExecutionFailure；
// 回報的 NextStatus 不合法時同樣視為失敗。
func (r *Registry) Execute(
	ctx context.Context,
	u *user.User,
	rw *reward.Reward,
	rd *redemption.Redemption,
) (result Result, err error) {
	handler, err := r.lookup(rw.ActionType())
	if err != nil {
		return Result{}, err
	}

	cfg, err := handler.DecodeConfig(rw.ActionConfig())
	if err != nil {
		return Result{}, err
	}

	defer func() {
		if p := recover(); p != nil {
			result = Result{}
			err = ErrHandlerExecutionFailure.WithContext(
				"action_type", rw.ActionType(),
				"reason", fmt.Sprintf("handler panic: %v", p),
			)
		}
	}()

	result, err = handler.Execute(ctx, Request{
		User:       u,
		Reward:     rw,
		Redemption: rd,
		Config:     cfg,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrHandlerExecutionFailure.WithContext(
			"action_type", rw.ActionType(),
			"reason", err.Error(),
		), err)
	}

	return NormalizeResult(rw.ActionType(), result)
}

// NormalizeResult 決定兌換應前往的狀態
//
// Success 為 false → failed；NextStatus 空白 → completed；
// 其他不合法的狀態返回 ErrHandlerExecutionFailure。
func NormalizeResult(actionType string, result Result) (Result, error) {
	if !result.Success {
		result.NextStatus = redemption.StatusFailed
		return result, nil
	}
	switch result.NextStatus {
	case "":
		result.NextStatus = redemption.StatusCompleted
	case redemption.StatusProcessing, redemption.StatusCompleted, redemption.StatusFailed:
	default:
		return Result{}, ErrHandlerExecutionFailure.WithContext(
			"action_type", actionType,
			"reason", fmt.Sprintf("handler returned invalid next status %q", result.NextStatus),
		)
	}
	return result, nil
}
