package action

import (
	"context"
	"encoding/json"

	"github.com/jackyeh168/channel_points/src/internal/domain/redemption"
	"github.com/jackyeh168/channel_points/src/internal/domain/reward"
	"github.com/jackyeh168/channel_points/src/internal/domain/user"
)

// ===========================
// 動作類型與處理器契約
// ===========================

// Type 動作類型標籤（reward.actionType）
type Type string

const (
	TypeChatMessage  Type = "chat_message"
	TypeSoundEffect  Type = "sound_effect"
	TypeScreenEffect Type = "screen_effect"
	TypeMusicControl Type = "music_control"
	TypeCustom       Type = "custom"
)

// Config 各動作類型的設定（tagged union 的一個變體）
//
// 只有本套件定義的設定型別實作此介面。
type Config interface {
	ActionType() Type
	validate() error
}

// Request 執行動作所需的資料
//
// 執行時扣款已經提交，處理器不可嘗試修改餘額。
type Request struct {
	User       *user.User
	Reward     *reward.Reward
	Redemption *redemption.Redemption
	Config     Config
}

// Result 處理器回報
//
// NextStatus 只能是 processing、completed 或 failed。
type Result struct {
	Success    bool
	Message    string
	Data       map[string]any
	NextStatus redemption.Status
}

// ResultData 將 Data 序列化（寫入兌換記錄）
func (r Result) ResultData() json.RawMessage {
	if len(r.Data) == 0 {
		return nil
	}
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return nil
	}
	return raw
}

// Handler 動作處理器
//
// DecodeConfig 是純函數，在建立或修改獎勵前驗證設定。
// Execute 在扣款提交後呼叫，執行（或模擬）副作用並決定兌換的下一個狀態。
type Handler interface {
	DecodeConfig(raw json.RawMessage) (Config, error)
	Execute(ctx context.Context, req Request) (Result, error)
}
