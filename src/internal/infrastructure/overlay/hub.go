// Package overlay 將兌換產生的特效推送給直播畫面（OBS 瀏覽器來源）的 websocket 連線
package overlay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrHubClosed Hub 已關閉，不再接受廣播
var ErrHubClosed = errors.New("overlay hub closed")

// Message 推送給 overlay 的訊息
type Message struct {
	Type      string    `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub 管理所有 overlay 連線並廣播訊息
//
// 送出緩衝滿的連線會被直接斷開，廣播本身不會因慢速客戶端阻塞。
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	closed  bool
	logger  *slog.Logger
}

// NewHub 建立 Hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger.With("component", "overlay"),
	}
}

func (h *Hub) register(c *Client) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}
	h.clients[c] = struct{}{}
	h.logger.Info("overlay client connected", "remote_addr", c.remoteAddr, "clients", len(h.clients))
	return nil
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("overlay client disconnected", "remote_addr", c.remoteAddr, "clients", len(h.clients))
	}
}

// ClientCount 目前連線數
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Emit 廣播一則訊息
//
// 沒有任何連線時直接成功（直播畫面尚未開啟不算失敗）。
func (h *Hub) Emit(ctx context.Context, kind string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(Message{Type: kind, Payload: payload, Timestamp: time.Now()})
	if err != nil {
		return fmt.Errorf("marshal overlay message %s: %w", kind, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrHubClosed
	}

	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			h.logger.Warn("overlay client too slow, dropped", "remote_addr", c.remoteAddr)
		}
	}
	return nil
}

// Close 關閉所有連線
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
