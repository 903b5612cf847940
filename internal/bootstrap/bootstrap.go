package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/config"
	"github.com/davicafu/hexagreet/internal/greeting/application"
	v1 "github.com/davicafu/hexagreet/internal/greeting/application/v1"
	v2 "github.com/davicafu/hexagreet/internal/greeting/application/v2"
	"github.com/davicafu/hexagreet/internal/greeting/domain"
	greetingConsumer "github.com/davicafu/hexagreet/internal/greeting/infra/inbound/events"
	greetingHttp "github.com/davicafu/hexagreet/internal/greeting/infra/inbound/http"
	greetingAnalytics "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/analytics/clickhouse"
	greetingCache "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/cache"
	greetingEvents "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/events"
	"github.com/davicafu/hexagreet/internal/shared/infra/container"
	infraEvents "github.com/davicafu/hexagreet/internal/shared/infra/events"
	"github.com/davicafu/hexagreet/internal/shared/infra/observability"
	sharedBus "github.com/davicafu/hexagreet/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexagreet/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexagreet/internal/shared/infra/platform/httpserver"
)

// App es la aplicación ya resuelta: todo lo que main necesita, con tipos concretos.
type App struct {
	Config    *config.Config
	Log       *zap.Logger
	Metrics   *observability.Metrics
	Publisher *infraEvents.InMemoryPublisher
	Router    *gin.Engine
	Server    *httpserver.Server

	res *resources
}

// Build registra los servicios en un contenedor nuevo y lo resuelve una sola vez en App.
// Si algo falla, cierra lo que ya se hubiera abierto.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	res := &resources{}
	c := container.New(log)
	register(ctx, c, cfg, log, res)

	app, err := resolve(c, res)
	if err != nil {
		_ = res.closeAll(log)
		return nil, err
	}
	log.Info("Application bootstrapped",
		zap.String("env", cfg.AppEnv),
		zap.String("greeting_store", cfg.GreetingStore),
		zap.Strings("services", c.Keys()),
	)
	return app, nil
}

func resolve(c *container.Container, res *resources) (*App, error) {
	cfg, err := container.Resolve[*config.Config](c, KeyConfig)
	if err != nil {
		return nil, err
	}
	log, err := container.Resolve[*zap.Logger](c, KeyLogger)
	if err != nil {
		return nil, err
	}
	metrics, err := container.Resolve[*observability.Metrics](c, KeyMetrics)
	if err != nil {
		return nil, err
	}
	publisher, err := container.Resolve[*infraEvents.InMemoryPublisher](c, KeyEventPublisher)
	if err != nil {
		return nil, err
	}
	router, err := container.Resolve[*gin.Engine](c, KeyRouter)
	if err != nil {
		return nil, err
	}

	return &App{
		Config:    cfg,
		Log:       log,
		Metrics:   metrics,
		Publisher: publisher,
		Router:    router,
		Server:    httpserver.NewServer(cfg.Addr(), router, cfg.ShutdownTimeout, log),
		res:       res,
	}, nil
}

// register da de alta todas las factories. No construye nada: cada servicio se crea
// la primera vez que se resuelve.
func register(ctx context.Context, c *container.Container, cfg *config.Config, log *zap.Logger, res *resources) {
	// ---------------- Ambient ----------------
	c.RegisterSingleton(KeyConfig, func(*container.Container) (any, error) { return cfg, nil })
	c.RegisterSingleton(KeyLogger, func(*container.Container) (any, error) { return log, nil })
	c.RegisterSingleton(KeyMetrics, func(*container.Container) (any, error) { return observability.NewMetrics(), nil })

	// ---------------- Infra ----------------
	c.RegisterSingleton(KeyCache, func(*container.Container) (any, error) {
		return openCache(ctx, cfg, res, log), nil
	})

	c.RegisterSingleton(KeyGreetingStore, func(*container.Container) (any, error) {
		return openGreetingStore(ctx, cfg, res, log)
	})

	c.RegisterSingleton(KeyGreetingRepository, func(c *container.Container) (any, error) {
		store, err := container.Resolve[domain.GreetingRepository](c, KeyGreetingStore)
		if err != nil {
			return nil, err
		}
		cache, err := container.Resolve[sharedCache.Cache](c, KeyCache)
		if err != nil {
			return nil, err
		}
		return greetingCache.NewCachedGreetingRepo(store, cache, cfg.CacheTTL, log), nil
	})

	c.RegisterSingleton(KeyGreetingConsumer, func(c *container.Container) (any, error) {
		cache, err := container.Resolve[sharedCache.Cache](c, KeyCache)
		if err != nil {
			return nil, err
		}
		return greetingConsumer.NewGreetingConsumer(cache, cfg.CacheTTL, log), nil
	})

	c.RegisterSingleton(KeyEventBus, func(c *container.Container) (any, error) {
		consumer, err := container.Resolve[*greetingConsumer.GreetingConsumer](c, KeyGreetingConsumer)
		if err != nil {
			return nil, err
		}
		return openEventBus(cfg, consumer, res, log), nil
	})

	// ---------------- Events ---------------
	c.RegisterSingleton(KeyEventPublisher, func(c *container.Container) (any, error) {
		metrics, err := container.Resolve[*observability.Metrics](c, KeyMetrics)
		if err != nil {
			return nil, err
		}
		bus, err := container.Resolve[sharedBus.EventBus](c, KeyEventBus)
		if err != nil {
			return nil, err
		}

		publisher := infraEvents.NewInMemoryPublisher(log, metrics)
		publisher.Subscribe(application.NewGreetingCreatedHandler(log))
		publisher.Subscribe(greetingEvents.NewGreetingForwarder(bus, log))

		if cfg.ClickHouseAddr != "" {
			db, err := greetingAnalytics.OpenClickHouse(ctx, cfg.ClickHouseAddr, cfg.ClickHouseDB)
			if err == nil {
				res.onClose("clickhouse", db.Close)
				err = greetingAnalytics.InitClickHouse(ctx, db)
			}
			if err != nil {
				log.Warn("ClickHouse not available, greeting analytics disabled", zap.Error(err))
			} else {
				publisher.Subscribe(greetingAnalytics.NewGreetingAnalyticsHandler(db))
			}
		}
		return publisher, nil
	})

	// --------------- Use cases --------------
	c.Register(KeyGetGreetingV1, func(c *container.Container) (any, error) {
		repo, err := container.Resolve[domain.GreetingRepository](c, KeyGreetingRepository)
		if err != nil {
			return nil, err
		}
		return v1.NewGetGreetingUseCase(repo, log), nil
	})

	c.Register(KeyGetGreetingV2, func(c *container.Container) (any, error) {
		repo, err := container.Resolve[domain.GreetingRepository](c, KeyGreetingRepository)
		if err != nil {
			return nil, err
		}
		return v2.NewGetGreetingUseCase(repo, log), nil
	})

	c.Register(KeyCreateGreetingV2, func(c *container.Container) (any, error) {
		repo, err := container.Resolve[domain.GreetingRepository](c, KeyGreetingRepository)
		if err != nil {
			return nil, err
		}
		publisher, err := container.Resolve[*infraEvents.InMemoryPublisher](c, KeyEventPublisher)
		if err != nil {
			return nil, err
		}
		return v2.NewCreateGreetingUseCase(repo, publisher, log), nil
	})

	// ---------------- HTTP ----------------
	c.RegisterSingleton(KeyGreetingHandler, func(c *container.Container) (any, error) {
		getV1, err := container.Resolve[*v1.GetGreetingUseCase](c, KeyGetGreetingV1)
		if err != nil {
			return nil, err
		}
		getV2, err := container.Resolve[*v2.GetGreetingUseCase](c, KeyGetGreetingV2)
		if err != nil {
			return nil, err
		}
		create, err := container.Resolve[*v2.CreateGreetingUseCase](c, KeyCreateGreetingV2)
		if err != nil {
			return nil, err
		}
		return greetingHttp.NewGreetingHandler(getV1, getV2, create), nil
	})

	c.RegisterSingleton(KeyHealth, func(c *container.Container) (any, error) {
		checks := []httpserver.Checker{httpserver.NewMemoryCheck(cfg.MemoryLimitMB)}

		store, err := container.Resolve[domain.GreetingRepository](c, KeyGreetingStore)
		if err != nil {
			return nil, err
		}
		if p, ok := store.(domain.Pinger); ok {
			checks = append(checks, httpserver.NewPingCheck("repository", p.Ping))
		}

		cache, err := container.Resolve[sharedCache.Cache](c, KeyCache)
		if err != nil {
			return nil, err
		}
		// La caché en memoria no tiene nada que comprobar.
		if redisCache, ok := cache.(*sharedCache.RedisCache); ok {
			checks = append(checks, httpserver.NewPingCheck("cache", redisCache.Ping))
		}
		return httpserver.NewHealth(checks...), nil
	})

	c.RegisterSingleton(KeyRouter, func(c *container.Container) (any, error) {
		metrics, err := container.Resolve[*observability.Metrics](c, KeyMetrics)
		if err != nil {
			return nil, err
		}
		health, err := container.Resolve[*httpserver.Health](c, KeyHealth)
		if err != nil {
			return nil, err
		}
		handler, err := container.Resolve[*greetingHttp.GreetingHandler](c, KeyGreetingHandler)
		if err != nil {
			return nil, err
		}
		return httpserver.NewRouter(httpserver.Options{
			Log:             log,
			Metrics:         metrics,
			Health:          health,
			Production:      cfg.IsProduction(),
			AllowedOrigins:  cfg.AllowedOrigins,
			RateLimitMax:    cfg.RateLimitMax,
			RateLimitWindow: cfg.RateLimitWindow,
			Routes:          []httpserver.RouteRegistrar{greetingHttp.RegisterGreetingRoutes(handler)},
		}), nil
	})
}

// StartConsumers arranca los consumidores del bus. Los canales se cierran cuando
// cada consumidor termina (ctx cancelado o bus cerrado).
func (a *App) StartConsumers(ctx context.Context) []<-chan struct{} {
	done := make([]<-chan struct{}, 0, len(a.res.consumers))
	for _, cons := range a.res.consumers {
		a.Log.Info("Starting consumer", zap.String("consumer", cons.name))
		done = append(done, cons.start(ctx))
	}
	return done
}

// Run arranca los consumidores y el servidor HTTP hasta que ctx se cancela.
// Espera a que los consumidores terminen antes de volver.
func (a *App) Run(ctx context.Context) error {
	consumersCtx, stopConsumers := context.WithCancel(ctx)
	defer stopConsumers()
	done := a.StartConsumers(consumersCtx)

	err := a.Server.Run(ctx)

	stopConsumers()
	for _, d := range done {
		<-d
	}
	if err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Close libera conexiones, writers y readers en orden inverso a su apertura.
func (a *App) Close() error {
	a.Publisher.ClearHandlers()
	return a.res.closeAll(a.Log)
}
