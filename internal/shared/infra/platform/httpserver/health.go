package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/process"
	"golang.org/x/sync/errgroup"
)

const checkTimeout = 2 * time.Second

// Checker es una comprobación de readiness.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckResult es el resultado de un Checker en la respuesta de /health/ready.
type CheckResult struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int64  `json:"responseTime"` // milisegundos
	Message      string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type ReadinessResponse struct {
	Status    string        `json:"status"`
	Checks    []CheckResult `json:"checks"`
	Timestamp string        `json:"timestamp"`
}

// ---- Checkers ----

// pingCheck adapta cualquier Ping(ctx) a Checker.
type pingCheck struct {
	name string
	ping func(ctx context.Context) error
}

func NewPingCheck(name string, ping func(ctx context.Context) error) Checker {
	return &pingCheck{name: name, ping: ping}
}

func (p *pingCheck) Name() string                    { return p.name }
func (p *pingCheck) Check(ctx context.Context) error { return p.ping(ctx) }

// MemoryCheck falla cuando la memoria residente del proceso supera el límite.
type MemoryCheck struct {
	limitBytes uint64
	rss        func(ctx context.Context) (uint64, error)
}

func NewMemoryCheck(limitMB uint64) *MemoryCheck {
	return &MemoryCheck{limitBytes: limitMB * 1024 * 1024, rss: processRSS}
}

func (m *MemoryCheck) Name() string { return "memory" }

func (m *MemoryCheck) Check(ctx context.Context) error {
	rss, err := m.rss(ctx)
	if err != nil {
		return fmt.Errorf("reading process memory: %w", err)
	}
	if rss > m.limitBytes {
		return fmt.Errorf("RSS %d MB exceeds limit %d MB", rss/1024/1024, m.limitBytes/1024/1024)
	}
	return nil
}

func processRSS(ctx context.Context) (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// ---- Handlers ----

// Health agrupa los endpoints /health, /health/live y /health/ready.
type Health struct {
	checks []Checker
	now    func() time.Time
}

func NewHealth(checks ...Checker) *Health {
	return &Health{checks: checks, now: time.Now}
}

func (h *Health) timestamp() string {
	return h.now().UTC().Format(time.RFC3339Nano)
}

// Health godoc
// @Summary  Health check
// @Tags     Health
// @Produce  json
// @Success  200 {object} HealthResponse
// @Router   /health [get]
func (h *Health) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Timestamp: h.timestamp()})
}

// Live godoc
// @Summary  Liveness check
// @Tags     Health
// @Produce  json
// @Success  200 {object} HealthResponse
// @Router   /health/live [get]
func (h *Health) Live(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "alive", Timestamp: h.timestamp()})
}

// Ready godoc
// @Summary  Readiness check
// @Tags     Health
// @Produce  json
// @Success  200 {object} ReadinessResponse
// @Failure  503 {object} ReadinessResponse
// @Router   /health/ready [get]
func (h *Health) Ready(c *gin.Context) {
	results := h.runChecks(c.Request.Context())

	status, code := "ready", http.StatusOK
	for _, r := range results {
		if r.Status != "pass" {
			status, code = "not_ready", http.StatusServiceUnavailable
			break
		}
	}
	c.JSON(code, ReadinessResponse{Status: status, Checks: results, Timestamp: h.timestamp()})
}

// runChecks ejecuta todas las comprobaciones en paralelo; el orden del resultado es el de registro.
func (h *Health) runChecks(ctx context.Context) []CheckResult {
	results := make([]CheckResult, len(h.checks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chk := range h.checks {
		i, chk := i, chk
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, checkTimeout)
			defer cancel()

			start := time.Now()
			err := chk.Check(cctx)
			res := CheckResult{
				Name:         chk.Name(),
				Status:       "pass",
				ResponseTime: time.Since(start).Milliseconds(),
			}
			if err != nil {
				res.Status = "fail"
				res.Message = err.Error()
			}
			results[i] = res
			// Sin error: un fallo no cancela el resto de comprobaciones.
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Register monta las rutas de salud en r.
func (h *Health) Register(r gin.IRouter) {
	r.GET("/health", h.Health)
	r.GET("/health/live", h.Live)
	r.GET("/health/ready", h.Ready)
}
