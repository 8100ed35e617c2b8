package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackyeh168/channel_points/src/internal/domain/action"
)

// maxWebhookResponseBody 讀取 webhook 回應的上限（只用於錯誤訊息）
const maxWebhookResponseBody = 1024

// CustomHandler 自訂動作
//
//   - webhook：對 parameters.url 發出真實 HTTP 請求，非 2xx 視為失敗
//   - notification：推送到 overlay
//   - api_call / script：只記錄日誌，不執行任何外部程式
type CustomHandler struct {
	sink   EffectSink
	client *http.Client
	logger *slog.Logger
}

func (h *CustomHandler) DecodeConfig(raw json.RawMessage) (action.Config, error) {
	return decode[action.CustomConfig](raw)
}

func (h *CustomHandler) Execute(ctx context.Context, req action.Request) (action.Result, error) {
	cfg := req.Config.(*action.CustomConfig)

	var (
		message string
		err     error
	)
	switch cfg.Type {
	case "webhook":
		message, err = h.webhook(ctx, cfg, req)
	case "notification":
		message, err = h.notification(ctx, cfg, req)
	case "api_call":
		service, _ := cfg.Parameters["service"].(string)
		if service == "" {
			service = "external service"
		}
		h.logger.Info("custom api call", "service", service,
			"redemption_id", req.Redemption.RedemptionID().String())
		message = "API call made to " + service
	case "script":
		script, _ := cfg.Parameters["scriptName"].(string)
		h.logger.Info("custom script", "script", script,
			"redemption_id", req.Redemption.RedemptionID().String())
		message = "Script executed: " + script
	}
	if err != nil {
		return action.Result{
			Success: false,
			Message: "Custom action failed: " + err.Error(),
		}, nil
	}

	return action.Result{
		Success: true,
		Message: message,
		Data: map[string]any{
			"customType": cfg.Type,
			"name":       cfg.Name,
			"parameters": cfg.Parameters,
		},
		NextStatus: cfg.NextStatus(),
	}, nil
}

type webhookPayload struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
		Email       string `json:"email,omitempty"`
	} `json:"user"`
	Reward struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Cost  int    `json:"cost"`
	} `json:"reward"`
	Redemption struct {
		ID         string    `json:"id"`
		RedeemedAt time.Time `json:"redeemedAt"`
	} `json:"redemption"`
}

func (h *CustomHandler) webhook(ctx context.Context, cfg *action.CustomConfig, req action.Request) (string, error) {
	var payload webhookPayload
	payload.User.ID = req.User.UserID().String()
	payload.User.DisplayName = req.User.DisplayName()
	payload.User.Email = req.User.Email().String()
	payload.Reward.ID = req.Reward.RewardID().String()
	payload.Reward.Title = req.Reward.Title()
	payload.Reward.Cost = req.Reward.Cost().Value()
	payload.Redemption.ID = req.Redemption.RedemptionID().String()
	payload.Redemption.RedeemedAt = req.Redemption.RedeemedAt()

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal webhook payload: %w", err)
	}

	url := cfg.WebhookURL()
	httpReq, err := http.NewRequestWithContext(ctx, cfg.WebhookMethod(), url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if headers, ok := cfg.Parameters["headers"].(map[string]any); ok {
		for k, v := range headers {
			if s, ok := v.(string); ok {
				httpReq.Header.Set(k, s)
			}
		}
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxWebhookResponseBody))
		return "", fmt.Errorf("webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	h.logger.Info("webhook sent", "url", url, "status", resp.StatusCode,
		"redemption_id", req.Redemption.RedemptionID().String())
	return "Webhook sent to " + url, nil
}

func (h *CustomHandler) notification(ctx context.Context, cfg *action.CustomConfig, req action.Request) (string, error) {
	text, _ := cfg.Parameters["message"].(string)
	if text == "" {
		text = fmt.Sprintf("%s redeemed %s", req.User.DisplayName(), req.Reward.Title())
	}

	data := merge(basePayload(req), map[string]any{
		"name":    cfg.Name,
		"message": text,
	})
	if err := h.sink.Emit(ctx, "notification", data); err != nil {
		return "", fmt.Errorf("emit notification: %w", err)
	}
	return "Notification sent: " + text, nil
}
