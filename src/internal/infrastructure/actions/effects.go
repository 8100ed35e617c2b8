package actions

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
)

// ===========================
// chat_message
// ===========================

// ChatMessageHandler 在直播畫面顯示聊天訊息
type ChatMessageHandler struct {
	sink EffectSink
}

func (h *ChatMessageHandler) DecodeConfig(raw json.RawMessage) (action.Config, error) {
	return decode[action.ChatMessageConfig](raw)
}

func (h *ChatMessageHandler) Execute(ctx context.Context, req action.Request) (action.Result, error) {
	cfg := req.Config.(*action.ChatMessageConfig)
	message := cfg.Render(req.User.DisplayName(), req.Reward.Title())

	data := merge(basePayload(req), map[string]any{
		"message":   message,
		"color":     cfg.Color,
		"highlight": cfg.Highlight,
		"duration":  cfg.Duration,
	})
	if err := h.sink.Emit(ctx, string(action.TypeChatMessage), data); err != nil {
		return action.Result{}, fmt.Errorf("emit chat message: %w", err)
	}

	return action.Result{
		Success: true,
		Message: "Chat message displayed: " + message,
		Data:    data,
	}, nil
}

// ===========================
// sound_effect
// ===========================

// SoundEffectHandler 播放音效
type SoundEffectHandler struct {
	sink EffectSink
}

func (h *SoundEffectHandler) DecodeConfig(raw json.RawMessage) (action.Config, error) {
	return decode[action.SoundEffectConfig](raw)
}

func (h *SoundEffectHandler) Execute(ctx context.Context, req action.Request) (action.Result, error) {
	cfg := req.Config.(*action.SoundEffectConfig)

	volume, _ := cfg.Volume.Float64()
	data := merge(basePayload(req), map[string]any{
		"soundUrl": cfg.SoundURL,
		"volume":   volume,
		"duration": cfg.Duration,
	})
	if err := h.sink.Emit(ctx, string(action.TypeSoundEffect), data); err != nil {
		return action.Result{}, fmt.Errorf("emit sound effect: %w", err)
	}

	return action.Result{
		Success: true,
		Message: "Sound effect triggered: " + cfg.SoundURL,
		Data:    data,
	}, nil
}

// ===========================
// screen_effect
// ===========================

// ScreenEffectHandler 畫面特效
type ScreenEffectHandler struct {
	sink EffectSink
}

func (h *ScreenEffectHandler) DecodeConfig(raw json.RawMessage) (action.Config, error) {
	return decode[action.ScreenEffectConfig](raw)
}

func (h *ScreenEffectHandler) Execute(ctx context.Context, req action.Request) (action.Result, error) {
	cfg := req.Config.(*action.ScreenEffectConfig)

	data := merge(basePayload(req), map[string]any{
		"effect":    cfg.Effect,
		"intensity": cfg.Intensity,
		"color":     cfg.Color,
		"duration":  cfg.Duration,
	})
	if err := h.sink.Emit(ctx, string(action.TypeScreenEffect), data); err != nil {
		return action.Result{}, fmt.Errorf("emit screen effect: %w", err)
	}

	return action.Result{
		Success: true,
		Message: "Screen effect triggered: " + cfg.Effect,
		Data:    data,
	}, nil
}

// ===========================
// music_control
// ===========================

var musicMessages = map[string]string{
	"skip":         "Skipped current song",
	"play":         "Started music playback",
	"pause":        "Paused music playback",
	"volume_up":    "Increased volume",
	"volume_down":  "Decreased volume",
	"request_song": "Song request submitted for review",
}

// MusicControlHandler 控制直播音樂
//
// 點歌或 requiresConfirmation 時停在 processing，由實況主手動完成。
type MusicControlHandler struct {
	sink EffectSink
}

func (h *MusicControlHandler) DecodeConfig(raw json.RawMessage) (action.Config, error) {
	return decode[action.MusicControlConfig](raw)
}

func (h *MusicControlHandler) Execute(ctx context.Context, req action.Request) (action.Result, error) {
	cfg := req.Config.(*action.MusicControlConfig)
	next := cfg.NextStatus()

	data := merge(basePayload(req), map[string]any{
		"action":               cfg.Action,
		"requiresConfirmation": cfg.RequiresConfirmation,
	})
	if err := h.sink.Emit(ctx, string(action.TypeMusicControl), data); err != nil {
		return action.Result{}, fmt.Errorf("emit music control: %w", err)
	}

	return action.Result{
		Success:    true,
		Message:    musicMessages[cfg.Action],
		Data:       data,
		NextStatus: next,
	}, nil
}
