package httpserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	sharedDomain "github.com/davicafu/hexagreet/internal/shared/domain"
	"github.com/davicafu/hexagreet/internal/shared/infra/observability"
	"github.com/davicafu/hexagreet/pkg/utils"
)

// RequestIDHeader es la cabecera que transporta el id de petición.
const RequestIDHeader = "X-Request-ID"

// RequestID reutiliza el X-Request-ID entrante o genera uno nuevo.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(utils.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestLogger escribe una línea por petición con zap.
func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", utils.RequestID(c)),
		}
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("Request completed", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("Request completed", fields...)
		default:
			log.Info("Request completed", fields...)
		}
	}
}

// Metrics registra duración, total y peticiones en curso por ruta.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method

		inProgress := m.HTTPRequestsInProgress.WithLabelValues(method, route)
		inProgress.Inc()
		start := time.Now()

		defer func() {
			inProgress.Dec()
			status := strconv.Itoa(c.Writer.Status())
			version := routeVersion(route)
			m.HTTPRequestDuration.WithLabelValues(method, route, status, version).Observe(time.Since(start).Seconds())
			m.HTTPRequestTotal.WithLabelValues(method, route, status, version).Inc()
		}()
		c.Next()
	}
}

// routeVersion extrae la versión de /api/<version>/...; el resto de rutas es "unknown".
func routeVersion(route string) string {
	parts := strings.Split(route, "/")
	if len(parts) > 2 && parts[1] == "api" && parts[2] != "" {
		return parts[2]
	}
	return "unknown"
}

// ErrorHandler traduce el último error registrado con c.Error en la respuesta estándar.
// Los errores de dominio conservan su estado y mensaje; el resto es un 500.
func ErrorHandler(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		log.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", utils.RequestID(c)),
			zap.Error(err),
		)
		writeError(c, err, production)
	}
}

// Recovery convierte un panic en un 500 con el formato estándar.
func Recovery(log *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := fmt.Errorf("panic: %v", r)
				log.Error("Recovered from panic",
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", utils.RequestID(c)),
					zap.Any("panic", r),
					zap.Stack("stack"),
				)
				utils.SendInternalServerError(c, err, production)
			}
		}()
		c.Next()
	}
}

func writeError(c *gin.Context, err error, production bool) {
	if de, ok := sharedDomain.AsDomainError(err); ok {
		utils.SendError(c, de.Status, de.Name, de.Message, string(de.Code))
		return
	}
	utils.SendInternalServerError(c, err, production)
}

// NotFound responde a las rutas no registradas.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		utils.SendNotFound(c, fmt.Sprintf("Route %s:%s not found", c.Request.Method, c.Request.URL.Path))
	}
}

// SecurityHeaders añade las cabeceras de seguridad habituales.
// La CSP solo se aplica en producción; en desarrollo estorba a Swagger UI.
func SecurityHeaders(production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-Download-Options", "noopen")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		if production {
			h.Set("Content-Security-Policy", strings.Join([]string{
				"default-src 'self'",
				"style-src 'self' 'unsafe-inline'",
				"script-src 'self'",
				"img-src 'self' data: https:",
				"connect-src 'self'",
				"font-src 'self'",
				"object-src 'none'",
				"media-src 'self'",
				"frame-src 'none'",
			}, "; "))
		}
		c.Next()
	}
}

// CORS configura gin-contrib/cors con los orígenes permitidos. "*" permite todos.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader, VersionHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
