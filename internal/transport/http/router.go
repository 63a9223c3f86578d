package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/metrics"
	"github.com/yvesls/ethicalsoft-compliance-sub000/internal/platform/middleware"
	dErrors "github.com/yvesls/ethicalsoft-compliance-sub000/pkg/domain-errors"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/httputil"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/metadata"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/requestid"
	"github.com/yvesls/ethicalsoft-compliance-sub000/pkg/platform/middleware/requesttime"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// RouterDeps collects what the HTTP surface needs.
type RouterDeps struct {
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Health  map[string]HealthCheck
	Modules []Registrar
}

// NewRouter wires the shared middleware chain, the operational endpoints and
// every module's routes.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(requestid.Middleware)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Latency(deps.Metrics))

	r.Get("/healthz", healthHandler(deps.Health))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}
	for _, m := range deps.Modules {
		m.Register(r)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	return r
}

func healthHandler(checks map[string]HealthCheck) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		report := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				status = http.StatusServiceUnavailable
				report[name] = err.Error()
				continue
			}
			report[name] = "ok"
		}
		httputil.WriteJSON(w, status, map[string]any{"status": http.StatusText(status), "checks": report})
	}
}
