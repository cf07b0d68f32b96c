package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/competence-backend/internal/http/handlers"
	httpMW "github.com/yungbote/competence-backend/internal/http/middleware"
	"github.com/yungbote/competence-backend/internal/observability"
	"github.com/yungbote/competence-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Tracing     bool
	Metrics     *observability.Metrics

	CategoryHandler   *httpH.CategoryHandler
	EmployeeHandler   *httpH.EmployeeHandler
	CompetenceHandler *httpH.CompetenceHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Tracing {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Metrics (503 when disabled)
	r.GET("/metrics", gin.WrapH(cfg.Metrics))

	api := r.Group("/api")
	{
		// Categories
		if h := cfg.CategoryHandler; h != nil {
			api.POST("/categories", h.Create)
			api.PUT("/categories/:id", h.Update)
			api.PATCH("/categories/:id", h.PartialUpdate)
			api.GET("/categories", h.List)
			api.GET("/categories/:id", h.Get)
			api.DELETE("/categories/:id", h.Delete)
		}

		// Employees
		if h := cfg.EmployeeHandler; h != nil {
			api.POST("/employees", h.Create)
			api.PUT("/employees/:id", h.Update)
			api.PATCH("/employees/:id", h.PartialUpdate)
			api.GET("/employees", h.List)
			api.GET("/employees/:id", h.Get)
			api.DELETE("/employees/:id", h.Delete)
		}

		// Competences
		if h := cfg.CompetenceHandler; h != nil {
			api.POST("/competences", h.Create)
			api.PUT("/competences/:id", h.Update)
			api.PATCH("/competences/:id", h.PartialUpdate)
			api.GET("/competences", h.List)
			api.GET("/competences/:id", h.Get)
			api.DELETE("/competences/:id", h.Delete)
		}
	}

	return r
}
