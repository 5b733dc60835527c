package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/response"
)

const redisCheckTimeout = 2 * time.Second

// SystemHandler reports process health.
type SystemHandler struct {
	rdb       *redis.Client // nil when rate limiting is in-memory
	backend   string
	startTime time.Time
	log       zerolog.Logger
}

func NewSystemHandler(rdb *redis.Client, backend string, log zerolog.Logger) *SystemHandler {
	return &SystemHandler{
		rdb:       rdb,
		backend:   backend,
		startTime: time.Now(),
		log:       log.With().Str("component", "system_handler").Logger(),
	}
}

type healthStatus struct {
	Status     string `json:"status"`
	Uptime     string `json:"uptime"`
	Generator  string `json:"generator"`
	Redis      string `json:"redis"`
	Goroutines int    `json:"goroutines"`
	GoVersion  string `json:"go_version"`
}

// Health godoc
// GET /health
// Responds 503 when a configured Redis does not answer.
func (h *SystemHandler) Health(c *gin.Context) {
	status := healthStatus{
		Status:     "ok",
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Generator:  h.backend,
		Redis:      "disabled",
		Goroutines: runtime.NumGoroutine(),
		GoVersion:  runtime.Version(),
	}

	code := http.StatusOK
	if h.rdb != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), redisCheckTimeout)
		defer cancel()
		if err := h.rdb.Ping(ctx).Err(); err != nil {
			h.log.Warn().Err(err).Msg("Redis health check failed")
			status.Status = "degraded"
			status.Redis = "unreachable"
			code = http.StatusServiceUnavailable
		} else {
			status.Redis = "ok"
		}
	}

	response.Success(c, code, status)
}
