package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	model "github.com/zhouzirui/flight-insights/backend/internal/model/insights"
	"github.com/zhouzirui/flight-insights/backend/pkg/utils"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// handleWebSocket answers one query per text frame, in arrival order.
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if h.answerer == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "insights backend unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	go h.pingLoop(ctx, conn)

	for {
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		if typ != websocket.TextMessage {
			h.send(conn, model.ErrorResponse{Error: "unsupported frame type"})
			continue
		}

		var req model.QueryRequest
		if err := json.Unmarshal(data, &req); err != nil {
			h.send(conn, model.ErrorResponse{Error: "invalid request body"})
			continue
		}

		query := strings.TrimSpace(req.Query)
		if query == "" {
			continue
		}

		h.send(conn, h.answer(ctx, query))
	}
}

func (h *Handler) send(conn *websocket.Conn, payload any) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(payload); err != nil {
		h.logger.Warn("websocket write failed", zap.Error(err))
	}
}

// pingLoop keeps the connection alive until ctx is done.
func (h *Handler) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
