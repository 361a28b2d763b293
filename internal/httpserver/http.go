package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"warroom-monitor/internal/store"
	"warroom-monitor/internal/types"
)

// NewServer creates a read-only HTTP server over the monitor's data files.
// It never writes, so the monitor stays the sole writer of every document.
func NewServer(port string, paths store.Paths) *http.Server {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	r.Get("/state", serveDocument(paths.State(), func() any {
		return &types.MonitorState{LastTweetIDs: map[string]string{}}
	}))
	r.Get("/alerts", serveDocument(paths.Alerts(), func() any {
		return &[]types.Alert{}
	}))
	r.Get("/batches", serveDocument(paths.Tweets(), func() any {
		return &[]types.FetchBatch{}
	}))

	return &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}
}

// serveDocument returns the JSON document at path, or the zero value when
// the file does not exist yet.
func serveDocument(path string, zero func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out := zero()
		if _, err := store.ReadJSON(path, out); err != nil {
			http.Error(w, "document unreadable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(out)
	}
}
