package handler

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/txrecon/internal/adapter/http/dto"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	reportDir   string
	redisClient *redis.Client
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil when the cache is disabled.
func NewHealthHandler(reportPath string, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		reportDir:   filepath.Dir(reportPath),
		redisClient: redisClient,
	}
}

// Liveness returns 200 if the service is alive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewHealthResponse("ok", nil))
}

// Readiness returns 200 if the service is ready to serve the report.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]string{}

	if err := checkDir(h.reportDir); err != nil {
		writeError(w, http.StatusServiceUnavailable, "report directory unavailable", err.Error())
		return
	}
	checks["report_dir"] = "ok"

	if h.redisClient != nil {
		if err := h.redisClient.Ping(ctx).Err(); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unhealthy", err.Error())
			return
		}
		checks["redis"] = "ok"
	}

	writeJSON(w, http.StatusOK, dto.NewHealthResponse("ready", checks))
}

func checkDir(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	f, err := os.Open(dir)
	if err != nil {
		return err
	}

	return f.Close()
}
