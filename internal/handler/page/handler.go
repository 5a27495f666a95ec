package page

import (
	"errors"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/flight-insights/backend/pkg/utils"
)

const indexFile = "index.html"

// Handler serves the static chat page.
type Handler struct {
	pages  fs.FS
	logger *zap.Logger
}

// New serves index.html from pages. Callers pass web.Pages() for the
// embedded page or os.DirFS(dir) for an on-disk override.
func New(pages fs.FS, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{pages: pages, logger: logger}
}

// FromDir is New over a directory on disk.
func FromDir(dir string, logger *zap.Logger) *Handler {
	return New(os.DirFS(dir), logger)
}

// RegisterRoutes mounts GET /.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handleIndex)
}

// handleIndex reads the page on every request so on-disk edits show up
// without a restart.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	content, err := fs.ReadFile(h.pages, indexFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.logger.Error("index.html file not found")
			utils.RespondError(w, http.StatusNotFound, "Index page not found.")
			return
		}
		h.logger.Error("error reading index.html", zap.Error(err))
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(content); err != nil {
		h.logger.Warn("write index page", zap.Error(err))
		return
	}
	h.logger.Info("index page served successfully")
}
