package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	model "github.com/zhouzirui/flight-insights/backend/internal/model/insights"
	insightsService "github.com/zhouzirui/flight-insights/backend/internal/service/insights"
	"github.com/zhouzirui/flight-insights/backend/pkg/utils"
)

// Handler answers insights queries over HTTP and websocket.
type Handler struct {
	answerer insightsService.Answerer
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// New creates the handler. With a nil answerer both routes return 503.
func New(answerer insightsService.Answerer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		answerer: answerer,
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts POST /insights and GET /insights/ws.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/insights", h.handleInsights)
	r.Get("/insights/ws", h.handleWebSocket)
}

type queryPayload struct {
	Query *string `json:"query"`
}

// handleInsights answers a single query.
func (h *Handler) handleInsights(w http.ResponseWriter, r *http.Request) {
	if h.answerer == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "insights backend unavailable")
		return
	}

	var payload queryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Query == nil {
		utils.RespondError(w, http.StatusUnprocessableEntity, "query is required")
		return
	}

	utils.RespondJSON(w, http.StatusOK, h.answer(r.Context(), *payload.Query))
}

// answer never fails: backend errors become the answer text so the page
// shows them like any other reply.
func (h *Handler) answer(ctx context.Context, query string) model.AnswerResponse {
	h.logger.Info("received query", zap.String("query", query))

	text, err := h.answerer.Answer(ctx, query)
	if err != nil {
		h.logger.Error("error processing query", zap.String("query", query), zap.Error(err))
		return model.NewAnswer(fmt.Sprintf("An error occurred while fetching the answer. Error: %v", err))
	}

	h.logger.Info("query processed successfully")
	return model.NewAnswer(text)
}
