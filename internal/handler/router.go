package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/flight-insights/backend/internal/handler/insights"
	"github.com/zhouzirui/flight-insights/backend/internal/handler/page"
	"github.com/zhouzirui/flight-insights/backend/internal/logging"
	insightsService "github.com/zhouzirui/flight-insights/backend/internal/service/insights"
	"github.com/zhouzirui/flight-insights/backend/pkg/utils"
)

// NewRouter wires HTTP routes to the page and the insights answerer. A nil
// answerer keeps the page up while /insights reports 503.
func NewRouter(pageHandler *page.Handler, answerer insightsService.Answerer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger.Named("http")))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	pageHandler.RegisterRoutes(r)
	insights.New(answerer, logger.Named("insights")).RegisterRoutes(r)

	return r
}
