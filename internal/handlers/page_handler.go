package handlers

import (
	"io/fs"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/web"
)

// PageHandler serves the embedded browser chat client.
type PageHandler struct {
	logger arbor.ILogger
	static http.Handler
}

// NewPageHandler creates a handler over the embedded static assets.
func NewPageHandler(logger arbor.ILogger) *PageHandler {
	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		// The embed directive guarantees the directory exists
		panic(err)
	}

	return &PageHandler{
		logger: logger,
		static: http.FileServer(http.FS(staticFS)),
	}
}

// IndexHandler serves the chat page at the site root.
func (h *PageHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data, err := web.Static.ReadFile("static/index.html")
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to read chat page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

// StaticHandler serves CSS and JS assets under /static/.
func (h *PageHandler) StaticHandler(w http.ResponseWriter, r *http.Request) {
	http.StripPrefix("/static/", h.static).ServeHTTP(w, r)
}
