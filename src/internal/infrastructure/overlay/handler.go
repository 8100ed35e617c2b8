package overlay

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler 將 HTTP 連線升級為 overlay websocket
//
// allowedOrigins 為空時接受任何來源（OBS 瀏覽器來源通常沒有 Origin）。
func Handler(hub *Hub, allowedOrigins []string) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if len(allowedOrigins) == 0 || origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn("overlay upgrade failed", "error", err)
			return
		}

		client := newClient(hub, conn)
		if err := hub.register(client); err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, err.Error()))
			conn.Close()
			return
		}

		go client.writePump()
		go client.readPump()
	}
}
