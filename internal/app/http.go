package app

import (
	httpx "github.com/yungbote/competence-backend/internal/http"
	"github.com/yungbote/competence-backend/internal/observability"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

func wireServer(cfg Config, log *logger.Logger, handlerset Handlers, metrics *observability.Metrics) *httpx.Server {
	log.Info("Wiring http server...", "addr", cfg.HTTP.Addr)
	return httpx.NewServer(cfg.HTTP, httpx.RouterConfig{
		Log:               log.With("component", "http"),
		ServiceName:       cfg.Tracing.ServiceName,
		CORSOrigins:       cfg.CORSOrigins,
		Tracing:           cfg.Tracing.Enabled,
		Metrics:           metrics,
		HealthHandler:     handlerset.Health,
		CategoryHandler:   handlerset.Category,
		EmployeeHandler:   handlerset.Employee,
		CompetenceHandler: handlerset.Competence,
	})
}
