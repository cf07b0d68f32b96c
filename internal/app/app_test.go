package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/competence-backend/internal/data/db"
	"github.com/yungbote/competence-backend/internal/data/repos/testutil"
)

func TestNewWithConfigWiresRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	cfg.DB = db.Config{
		Driver:       db.DriverSQLite,
		DSN:          "file:app_wiring?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}
	cfg.Metrics.Enabled = true

	a, err := NewWithConfig(context.Background(), cfg, testutil.Logger(t))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Cloud"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("X-competenceApp-alert"); got == "" {
		t.Fatalf("expected alert header")
	}

	rec = httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), `competence_entity_events_total{entity="category",action="created",result="ok"} 1`) {
		t.Fatalf("expected entity event counted:\n%s", rec.Body.String())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := defaultConfig()
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.DB = db.Config{
		Driver:       db.DriverSQLite,
		DSN:          "file:app_run?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}
	// The pool collector runs in the same group as the server.
	cfg.Metrics.Enabled = true
	cfg.Metrics.ScrapeInterval = 5 * time.Millisecond

	a, err := NewWithConfig(context.Background(), cfg, testutil.Logger(t))
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run after cancel: %v", err)
	}
}
