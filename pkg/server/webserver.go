package server

import (
	"context"
	"net/http"
	"time"

	"github.com/matst80/listing-filters/pkg/common"
	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/logger"
	"github.com/matst80/listing-filters/pkg/tracking"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// HandoffStore keeps states handed between pages.
type HandoffStore interface {
	Save(ctx context.Context, s filter.State) (string, error)
	Load(ctx context.Context, token string, fallback filter.Status) (filter.State, error)
	Ping(ctx context.Context) error
}

type WebServer struct {
	Sessions       *Registry
	Handoff        HandoffStore
	Tracking       tracking.Tracking
	Log            logger.Logger
	DefaultStatus  filter.Status
	AllowedOrigins []string
}

func NewWebServer(sessions *Registry, handoff HandoffStore, trk tracking.Tracking, log logger.Logger, defaultStatus filter.Status) *WebServer {
	if trk == nil {
		trk = tracking.NopTracking{}
	}
	if !defaultStatus.Valid() {
		defaultStatus = filter.ForSale
	}
	return &WebServer{
		Sessions:      sessions,
		Handoff:       handoff,
		Tracking:      trk,
		Log:           log,
		DefaultStatus: defaultStatus,
	}
}

func (ws *WebServer) Handler() http.Handler {
	srv := http.NewServeMux()

	srv.HandleFunc("GET /health", ws.Health)
	srv.Handle("GET /metrics", promhttp.Handler())

	srv.HandleFunc("POST /api/sessions", common.JsonHandler(ws.Log, ws.CreateSession))
	srv.HandleFunc("GET /api/sessions/{id}", common.JsonHandler(ws.Log, ws.GetSession))
	srv.HandleFunc("DELETE /api/sessions/{id}/filters", common.JsonHandler(ws.Log, ws.ClearFilters))
	srv.HandleFunc("POST /api/sessions/{id}/actions", common.JsonHandler(ws.Log, ws.DispatchAction))
	srv.HandleFunc("POST /api/sessions/{id}/advanced", common.JsonHandler(ws.Log, ws.ApplyAdvanced))
	srv.HandleFunc("POST /api/sessions/{id}/quick/{label...}", common.JsonHandler(ws.Log, ws.ToggleQuick))
	srv.HandleFunc("DELETE /api/sessions/{id}/chips/{key...}", common.JsonHandler(ws.Log, ws.RemoveChip))
	srv.HandleFunc("POST /api/sessions/{id}/handoff", common.JsonHandler(ws.Log, ws.SaveHandoff))
	srv.HandleFunc("GET /api/handoff/{token}", common.JsonHandler(ws.Log, ws.LoadHandoff))
	srv.HandleFunc("GET /api/query", common.JsonHandler(ws.Log, ws.NormalizeQuery))

	c := cors.New(cors.Options{
		AllowedOrigins:   ws.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowCredentials: true,
		AllowedHeaders:   []string{"Content-Type"},
	})
	return c.Handler(srv)
}

func (ws *WebServer) Health(w http.ResponseWriter, r *http.Request) {
	if ws.Handoff != nil {
		if err := ws.Handoff.Ping(r.Context()); err != nil {
			ws.Log.WithError(err).Warn("handoff store unavailable", nil)
			http.Error(w, "handoff store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// EvictIdle removes idle sessions every interval until ctx is done.
func (ws *WebServer) EvictIdle(ctx context.Context, idle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := ws.Sessions.Evict(idle); removed > 0 {
				ws.Log.Info("evicted idle sessions", logger.Fields{"removed": removed})
			}
			activeSessions.Set(float64(ws.Sessions.Len()))
		}
	}
}
