package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	greetingCache "github.com/davicafu/hexagreet/internal/greeting/infra/outbound/cache"
	integration "github.com/davicafu/hexagreet/internal/shared/events"
	sharedCache "github.com/davicafu/hexagreet/internal/shared/infra/platform/cache"
	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

const projectionTimeout = 500 * time.Millisecond

// GreetingConsumer proyecta los greeting.created del bus en la caché del último saludo.
// Es idempotente: solo sobrescribe si el saludo recibido es más reciente que el proyectado.
type GreetingConsumer struct {
	cache   sharedCache.Cache
	ttlSecs int
	log     *zap.Logger
}

func NewGreetingConsumer(cache sharedCache.Cache, ttl time.Duration, log *zap.Logger) *GreetingConsumer {
	return &GreetingConsumer{cache: cache, ttlSecs: int(ttl.Seconds()), log: log}
}

func (c *GreetingConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base integration.IntegrationEvent
	if err := sharedUtils.JSON.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case domain.GreetingCreatedIntegration:
		sharedUtils.UnmarshalAndHandle(c.log, base.Data, func(evt integration.GreetingCreated) {
			c.withContext(ctx, evt, func(ctxProj context.Context) error {
				return c.project(ctxProj, evt)
			})
		})

	default:
		c.log.Warn("Unknown event type", zap.String("type", base.Type))
	}
}

func (c *GreetingConsumer) project(ctx context.Context, evt integration.GreetingCreated) error {
	var current greetingCache.Snapshot
	hit, err := c.cache.Get(ctx, domain.CacheKeyLatest, &current)
	if err != nil {
		return err
	}
	if hit && !evt.CreatedAt.After(current.CreatedAt) {
		c.log.Info("Stale greeting event ignored", zap.String("greeting_id", evt.ID.String()))
		return nil
	}

	// Validamos igual que el dominio antes de proyectar.
	g, err := domain.Reconstitute(evt.ID, evt.Message, evt.CreatedAt)
	if err != nil {
		return err
	}
	return c.cache.Set(ctx, domain.CacheKeyLatest, greetingCache.ToSnapshot(g), c.ttlSecs)
}

// withContext ejecuta la acción con un contexto limitado y deja constancia en el log.
func (c *GreetingConsumer) withContext(ctx context.Context, evt integration.GreetingCreated, action func(ctx context.Context) error) {
	ctxProj, cancel := context.WithTimeout(ctx, projectionTimeout)
	defer cancel()

	if err := action(ctxProj); err != nil {
		c.log.Warn("Failed to process greeting event",
			zap.String("greeting_id", evt.ID.String()),
			zap.String("event_id", evt.EventID),
			zap.Error(err),
		)
		return
	}
	c.log.Info("Greeting projected via event",
		zap.String("greeting_id", evt.ID.String()),
		zap.String("event_id", evt.EventID),
	)
}
