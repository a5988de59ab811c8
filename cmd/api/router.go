package api

import (
	"encoding/json"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/hqtran/billscan/pkg/db"
	"github.com/hqtran/billscan/pkg/middleware"
)

// SetupRouter configures all routes and returns the HTTP handler.
func SetupRouter(deps *Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/scan", deps.ScanHandler.Scan)
	mux.HandleFunc("POST /v1/analyze", deps.ScanHandler.Analyze)
	mux.HandleFunc("POST /v1/transactions", deps.TxHandler.Create)
	mux.HandleFunc("GET /v1/transactions", deps.TxHandler.List)
	mux.HandleFunc("GET /v1/transactions/{id}", deps.TxHandler.Get)

	registerUtilityRoutes(mux, deps)

	handler := middleware.Chain(mux,
		middleware.RequestID,
		middleware.Tracing,
		middleware.Recovery(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.RateLimit(deps.Config.RateLimit.RequestsPerSecond, deps.Config.RateLimit.Burst),
		middleware.Metrics,
	)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           7200,
	})
	return corsHandler.Handler(handler)
}

func registerUtilityRoutes(mux *http.ServeMux, deps *Dependencies) {
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context(), deps.Pool); err != nil {
			deps.Logger.WarnContext(r.Context(), "readiness check failed", "error", err)
			writeStatus(w, http.StatusServiceUnavailable, map[string]string{"status": "database unavailable"})
			return
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	if deps.Config.Server.EnableMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
		deps.Logger.Info("metrics endpoint enabled", "path", "/metrics")
	}
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
