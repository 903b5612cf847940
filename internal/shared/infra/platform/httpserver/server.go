package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/davicafu/hexagreet/internal/shared/infra/platform/httpserver/docs"
	"github.com/davicafu/hexagreet/internal/shared/infra/observability"
)

// RouteRegistrar monta las rutas de un contexto sobre el router.
type RouteRegistrar func(r gin.IRouter)

// Options configura el router común.
type Options struct {
	Log             *zap.Logger
	Metrics         *observability.Metrics
	Health          *Health
	Production      bool
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
	Routes          []RouteRegistrar
}

// NewRouter crea el gin.Engine con la cadena de middlewares, las rutas técnicas
// (/health, /metrics, /docs) y las rutas de los contextos.
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = false

	r.Use(
		RequestID(),
		RequestLogger(opts.Log),
		Metrics(opts.Metrics),
		Recovery(opts.Log, opts.Production),
		ErrorHandler(opts.Log, opts.Production),
		SecurityHeaders(opts.Production),
		CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitMax > 0 && opts.RateLimitWindow > 0 {
		r.Use(NewRateLimiter(opts.RateLimitMax, opts.RateLimitWindow).Middleware())
	}

	if opts.Health != nil {
		opts.Health.Register(r)
	}
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/docs/doc.json"))))

	for _, register := range opts.Routes {
		register(r)
	}

	r.NoRoute(NotFound())
	return r
}

// Server envuelve http.Server con apagado ordenado.
type Server struct {
	srv             *http.Server
	log             *zap.Logger
	shutdownTimeout time.Duration
}

func NewServer(addr string, handler http.Handler, shutdownTimeout time.Duration, log *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
		log:             log,
		shutdownTimeout: shutdownTimeout,
	}
}

// Run sirve hasta que ctx se cancela y entonces espera a las peticiones en curso
// como mucho shutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Server running", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server", zap.Duration("timeout", s.shutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
