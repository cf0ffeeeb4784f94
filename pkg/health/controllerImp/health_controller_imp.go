package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Readiness is implemented by optional components; they show up in the
// report but never fail the check.
type Readiness interface {
	Ready() bool
}

type readyFunc func() bool

func (f readyFunc) Ready() bool { return f() }

type HealthCtrl struct {
	db         *gorm.DB
	classifier Readiness
	llm        Readiness
}

func NewHealthCtrl(db *gorm.DB, classifier Readiness, llmConfigured func() bool) *HealthCtrl {
	return &HealthCtrl{db: db, classifier: classifier, llm: readyFunc(llmConfigured)}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := h.pingDB(ctx)
	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":       db,
			"classifier":     sub{OK: h.classifier != nil && h.classifier.Ready()},
			"llm_configured": sub{OK: h.llm.Ready()},
		},
		"time": time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}

func (h *HealthCtrl) pingDB(ctx context.Context) sub {
	if h.db == nil {
		return sub{Err: "gorm db is nil"}
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return sub{Err: "db.DB(): " + err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return sub{Err: "ping: " + err.Error()}
	}
	return sub{OK: true}
}
