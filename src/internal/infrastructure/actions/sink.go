// Package actions 內建的獎勵動作處理器
//
// 每個處理器把設定轉成一則 overlay 特效（或一個外部 HTTP 呼叫），
// 並回報兌換應前往的狀態。處理器在扣款提交後執行，不接觸帳本。
package actions

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
)

// EffectSink 特效輸出端（overlay hub）
type EffectSink interface {
	Emit(ctx context.Context, kind string, payload any) error
}

// Dependencies 處理器共用的依賴
type Dependencies struct {
	Sink       EffectSink
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// RegisterBuiltins 註冊五個內建處理器
func RegisterBuiltins(registry *action.Registry, deps Dependencies) error {
	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	handlers := map[action.Type]action.Handler{
		action.TypeChatMessage:  &ChatMessageHandler{sink: deps.Sink},
		action.TypeSoundEffect:  &SoundEffectHandler{sink: deps.Sink},
		action.TypeScreenEffect: &ScreenEffectHandler{sink: deps.Sink},
		action.TypeMusicControl: &MusicControlHandler{sink: deps.Sink},
		action.TypeCustom: &CustomHandler{
			sink:   deps.Sink,
			client: deps.HTTPClient,
			logger: deps.Logger.With("component", "custom_action"),
		},
	}

	for _, t := range []action.Type{
		action.TypeChatMessage,
		action.TypeSoundEffect,
		action.TypeScreenEffect,
		action.TypeMusicControl,
		action.TypeCustom,
	} {
		if err := registry.Register(t, handlers[t]); err != nil {
			return err
		}
	}
	return nil
}

// basePayload 所有特效都帶上的兌換資訊
func basePayload(req action.Request) map[string]any {
	return map[string]any{
		"redemptionId": req.Redemption.RedemptionID().String(),
		"username":     req.User.DisplayName(),
		"reward":       req.Reward.Title(),
	}
}

// decode 包裝 action.Decode，避免把 nil 指標包進非 nil 的介面值
func decode[T any, PT interface {
	*T
	action.Config
}](raw json.RawMessage) (action.Config, error) {
	cfg, err := action.Decode[T, PT](raw)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func merge(dst map[string]any, src map[string]any) map[string]any {
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
