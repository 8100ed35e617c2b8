package action

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/shopspring/decimal"
)

// ===========================
// 設定解碼
// ===========================

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type defaulter interface {
	applyDefaults()
}

// Decode 解碼並驗證某一動作類型的設定
//
// 設定必須是 JSON 物件；未知欄位忽略。
//
//   cfg, err := action.Decode[action.ChatMessageConfig](raw)
func Decode[T any, PT interface {
	*T
	Config
}](raw json.RawMessage) (PT, error) {
	cfg := PT(new(T))

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, invalidConfig(cfg.ActionType(), "config must be an object")
	}
	if err := json.Unmarshal(trimmed, cfg); err != nil {
		return nil, invalidConfig(cfg.ActionType(), fmt.Sprintf("malformed config: %v", err))
	}
	if d, ok := any(cfg).(defaulter); ok {
		d.applyDefaults()
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func checkDuration(t Type, d int) error {
	if d < 0 {
		return invalidConfig(t, "duration must be a non-negative number of milliseconds")
	}
	return nil
}

func checkColor(t Type, c string) error {
	if c != "" && !hexColorPattern.MatchString(c) {
		return invalidConfig(t, "color must be a hex color (#RRGGBB)")
	}
	return nil
}

// ===========================
// chat_message
// ===========================

// ChatMessageConfig 聊天室訊息
//
// message 支援 {{username}} 與 {{reward}} 佔位符。
type ChatMessageConfig struct {
	Message   string `json:"message"`
	Color     string `json:"color,omitempty"`
	Highlight bool   `json:"highlight,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

func (*ChatMessageConfig) ActionType() Type { return TypeChatMessage }

func (c *ChatMessageConfig) applyDefaults() {
	if strings.TrimSpace(c.Message) == "" {
		c.Message = "Reward redeemed!"
	}
}

func (c *ChatMessageConfig) validate() error {
	if err := checkColor(TypeChatMessage, c.Color); err != nil {
		return err
	}
	return checkDuration(TypeChatMessage, c.Duration)
}

// Render 代入使用者名稱與獎勵名稱
func (c *ChatMessageConfig) Render(username, rewardTitle string) string {
	return strings.NewReplacer(
		"{{username}}", username,
		"{{reward}}", rewardTitle,
	).Replace(c.Message)
}

// ===========================
// sound_effect
// ===========================

// SoundEffectConfig 播放音效
type SoundEffectConfig struct {
	SoundURL string           `json:"soundUrl"`
	Volume   *decimal.Decimal `json:"volume,omitempty"`
	Duration int              `json:"duration,omitempty"`
}

var (
	volumeMin     = decimal.Zero
	volumeMax     = decimal.NewFromInt(1)
	defaultVolume = decimal.NewFromFloat(0.8)
)

func (*SoundEffectConfig) ActionType() Type { return TypeSoundEffect }

func (c *SoundEffectConfig) applyDefaults() {
	if c.Volume == nil {
		v := defaultVolume
		c.Volume = &v
	}
	if c.Duration == 0 {
		c.Duration = 3000
	}
}

func (c *SoundEffectConfig) validate() error {
	if strings.TrimSpace(c.SoundURL) == "" {
		return invalidConfig(TypeSoundEffect, "soundUrl is required")
	}
	if c.Volume.LessThan(volumeMin) || c.Volume.GreaterThan(volumeMax) {
		return invalidConfig(TypeSoundEffect, "volume must be between 0 and 1")
	}
	return checkDuration(TypeSoundEffect, c.Duration)
}

// ===========================
// screen_effect
// ===========================

var (
	screenEffects = []string{"confetti", "fireworks", "rain", "snow", "hearts", "stars", "explosion"}
	intensities   = []string{"low", "medium", "high", "extreme"}
)

// ScreenEffectConfig 畫面特效
type ScreenEffectConfig struct {
	Effect    string `json:"effect"`
	Intensity string `json:"intensity,omitempty"`
	Color     string `json:"color,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

func (*ScreenEffectConfig) ActionType() Type { return TypeScreenEffect }

func (c *ScreenEffectConfig) applyDefaults() {
	if c.Intensity == "" {
		c.Intensity = "medium"
	}
	if c.Duration == 0 {
		c.Duration = 5000
	}
}

func (c *ScreenEffectConfig) validate() error {
	if !contains(screenEffects, c.Effect) {
		return invalidConfig(TypeScreenEffect, "effect must be one of: "+strings.Join(screenEffects, ", "))
	}
	if !contains(intensities, c.Intensity) {
		return invalidConfig(TypeScreenEffect, "intensity must be one of: "+strings.Join(intensities, ", "))
	}
	if err := checkColor(TypeScreenEffect, c.Color); err != nil {
		return err
	}
	return checkDuration(TypeScreenEffect, c.Duration)
}

// ===========================
// music_control
// ===========================

var musicActions = []string{"skip", "play", "pause", "volume_up", "volume_down", "request_song"}

// MusicControlConfig 控制直播音樂
type MusicControlConfig struct {
	Action               string `json:"action"`
	RequiresConfirmation bool   `json:"requiresConfirmation,omitempty"`
}

func (*MusicControlConfig) ActionType() Type { return TypeMusicControl }

func (c *MusicControlConfig) validate() error {
	if !contains(musicActions, c.Action) {
		return invalidConfig(TypeMusicControl, "action must be one of: "+strings.Join(musicActions, ", "))
	}
	return nil
}

// NextStatus 點歌或需要實況主確認時停在 processing
func (c *MusicControlConfig) NextStatus() redemption.Status {
	if c.Action == "request_song" || c.RequiresConfirmation {
		return redemption.StatusProcessing
	}
	return redemption.StatusCompleted
}

// ===========================
// custom
// ===========================

var customTypes = []string{"webhook", "api_call", "notification", "script"}

// CustomConfig 自訂動作
type CustomConfig struct {
	Type         string         `json:"type"`
	Name         string         `json:"name,omitempty"`
	Parameters   map[string]any `json:"parameters,omitempty"`
	AutoComplete *bool          `json:"autoComplete,omitempty"`
}

func (*CustomConfig) ActionType() Type { return TypeCustom }

func (c *CustomConfig) applyDefaults() {
	if c.AutoComplete == nil {
		v := true
		c.AutoComplete = &v
	}
}

func (c *CustomConfig) validate() error {
	if !contains(customTypes, c.Type) {
		return invalidConfig(TypeCustom, "type must be one of: "+strings.Join(customTypes, ", "))
	}
	if c.Type == "webhook" {
		raw, _ := c.Parameters["url"].(string)
		u, err := url.Parse(raw)
		if raw == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalidConfig(TypeCustom, "webhook requires parameters.url (http or https)")
		}
	}
	return nil
}

// WebhookURL webhook 目標網址
func (c *CustomConfig) WebhookURL() string {
	raw, _ := c.Parameters["url"].(string)
	return raw
}

// WebhookMethod webhook 方法，預設 POST
func (c *CustomConfig) WebhookMethod() string {
	if m, ok := c.Parameters["method"].(string); ok && m != "" {
		return strings.ToUpper(m)
	}
	return "POST"
}

// NextStatus autoComplete=false 時停在 processing 等待人工完成
func (c *CustomConfig) NextStatus() redemption.Status {
	if c.AutoComplete != nil && !*c.AutoComplete {
		return redemption.StatusProcessing
	}
	return redemption.StatusCompleted
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
