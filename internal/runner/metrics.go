package runner

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nhl-schedule-service/internal/config"
	"github.com/preston-bernstein/nhl-schedule-service/internal/metrics"
)

var metricsSetup = metrics.Setup

// buildMetrics returns the recorder, an optional /metrics server and the
// telemetry shutdown hook. Telemetry failures degrade to an in-memory recorder.
func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:        cfg.Metrics.Addr,
				Handler:     mux,
				ReadTimeout: metricsReadTimeout,
				IdleTimeout: metricsIdleTimeout,
			},
		}
	}
	return rec, metricsSrv, shutdown
}
