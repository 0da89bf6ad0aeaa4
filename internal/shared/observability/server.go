package observability

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatsFunc supplies the diagnostic payload served at /stats, typically
// the pipeline's cache statistics.
type StatsFunc func() any

// MetricsServer exposes prometheus metrics and cache diagnostics over
// HTTP. Optional; generation is fully functional without it.
type MetricsServer struct {
	addr   string
	stats  StatsFunc
	server *http.Server
}

func NewMetricsServer(addr string, stats StatsFunc) *MetricsServer {
	return &MetricsServer{addr: addr, stats: stats}
}

func (s *MetricsServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		payload := any(map[string]string{})
		if s.stats != nil {
			payload = s.stats()
		}
		json.NewEncoder(w).Encode(payload)
	})

	s.server = &http.Server{
		Addr:    s.addr,
		Handler: mux,
	}

	slog.Info("metrics server starting", "addr", s.addr)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return nil
}

func (s *MetricsServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
