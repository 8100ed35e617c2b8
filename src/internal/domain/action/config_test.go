package action_test

import (
	"encoding/json"
	"testing"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test 1: 設定必須是物件
func TestDecode_NonObject_ReturnsInvalidConfig(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `"text"`, `42`} {
		_, err := action.Decode[action.ChatMessageConfig](json.RawMessage(raw))
		assert.ErrorIs(t, err, action.ErrInvalidActionConfig, "raw=%q", raw)
		assert.Equal(t, "config must be an object", action.Reason(err))
	}
}

// Test 2: chat_message 預設訊息與模板
func TestChatMessageConfig_DefaultsAndRender(t *testing.T) {
	// Act
	empty, err := action.Decode[action.ChatMessageConfig](json.RawMessage(`{}`))
	require.NoError(t, err)
	cfg, err := action.Decode[action.ChatMessageConfig](json.RawMessage(`{"message":"{{username}} redeemed {{reward}}!","color":"#FF00aa"}`))
	require.NoError(t, err)

	// Assert
	assert.Equal(t, "Reward redeemed!", empty.Message)
	assert.Equal(t, "alice redeemed Hydrate!", cfg.Render("alice", "Hydrate"))
}

// Test 3: chat_message 欄位驗證
func TestChatMessageConfig_Invalid(t *testing.T) {
	_, err := action.Decode[action.ChatMessageConfig](json.RawMessage(`{"color":"red"}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)

	_, err = action.Decode[action.ChatMessageConfig](json.RawMessage(`{"duration":-1}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)
}

// Test 4: sound_effect 音量 0..1
func TestSoundEffectConfig_Volume(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{`{"soundUrl":"https://cdn.example/airhorn.mp3"}`, false},
		{`{"soundUrl":"https://cdn.example/airhorn.mp3","volume":0}`, false},
		{`{"soundUrl":"https://cdn.example/airhorn.mp3","volume":1}`, false},
		{`{"soundUrl":"https://cdn.example/airhorn.mp3","volume":1.01}`, true},
		{`{"soundUrl":"https://cdn.example/airhorn.mp3","volume":-0.1}`, true},
		{`{"volume":0.5}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			cfg, err := action.Decode[action.SoundEffectConfig](json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, action.ErrInvalidActionConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3000, cfg.Duration)
		})
	}
}

// Test 5: screen_effect 列舉值
func TestScreenEffectConfig_Enums(t *testing.T) {
	cfg, err := action.Decode[action.ScreenEffectConfig](json.RawMessage(`{"effect":"confetti"}`))
	require.NoError(t, err)
	assert.Equal(t, "medium", cfg.Intensity)

	_, err = action.Decode[action.ScreenEffectConfig](json.RawMessage(`{"effect":"lasers"}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)

	_, err = action.Decode[action.ScreenEffectConfig](json.RawMessage(`{"effect":"snow","intensity":"max"}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)
}

// Test 6: music_control 下一個狀態
func TestMusicControlConfig_NextStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want redemption.Status
	}{
		{`{"action":"skip"}`, redemption.StatusCompleted},
		{`{"action":"request_song"}`, redemption.StatusProcessing},
		{`{"action":"pause","requiresConfirmation":true}`, redemption.StatusProcessing},
	}

	for _, tt := range tests {
		cfg, err := action.Decode[action.MusicControlConfig](json.RawMessage(tt.raw))
		require.NoError(t, err)
		assert.Equal(t, tt.want, cfg.NextStatus(), tt.raw)
	}

	_, err := action.Decode[action.MusicControlConfig](json.RawMessage(`{"action":"rewind"}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)
}

// Test 7: custom webhook 需要網址
func TestCustomConfig_Webhook(t *testing.T) {
	_, err := action.Decode[action.CustomConfig](json.RawMessage(`{"type":"webhook"}`))
	assert.ErrorIs(t, err, action.ErrInvalidActionConfig)

	cfg, err := action.Decode[action.CustomConfig](json.RawMessage(`{"type":"webhook","parameters":{"url":"https://hooks.example/x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "POST", cfg.WebhookMethod())
	assert.Equal(t, redemption.StatusCompleted, cfg.NextStatus())

	manual, err := action.Decode[action.CustomConfig](json.RawMessage(`{"type":"notification","autoComplete":false}`))
	require.NoError(t, err)
	assert.Equal(t, redemption.StatusProcessing, manual.NextStatus())
}
