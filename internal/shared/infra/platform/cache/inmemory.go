package cache

import (
	"context"
	"sync"
	"time"

	sharedUtils "github.com/davicafu/hexagreet/internal/shared/infra/utils"
)

// entry guarda el valor serializado, igual que en Redis, para que ambos backends
// devuelvan copias y no punteros compartidos.
type entry struct {
	payload  []byte
	deadline time.Time
}

func (e entry) expired(at time.Time) bool { return !at.Before(e.deadline) }

// InMemoryCache implementa Cache sobre un mapa protegido por RWMutex.
// Se usa como fallback cuando Redis no responde al arrancar.
type InMemoryCache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	now        func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// Verificación estática
var _ Cache = (*InMemoryCache)(nil)

// NewInMemoryCache crea la caché. Cada sweepEvery se purgan las entradas vencidas.
func NewInMemoryCache(defaultTTL, sweepEvery time.Duration) *InMemoryCache {
	c := &InMemoryCache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		now:        func() time.Time { return time.Now().UTC() },
		done:       make(chan struct{}),
	}
	go c.sweepLoop(sweepEvery)
	return c
}

func (c *InMemoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || e.expired(c.now()) {
		return false, nil
	}
	if err := sharedUtils.JSON.Unmarshal(e.payload, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set sobrescribe la clave. ttlSecs <= 0 usa el TTL por defecto.
func (c *InMemoryCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	payload, err := sharedUtils.JSON.Marshal(val)
	if err != nil {
		return err
	}

	ttl := c.defaultTTL
	if ttlSecs > 0 {
		ttl = time.Duration(ttlSecs) * time.Second
	}
	e := entry{payload: payload, deadline: c.now().Add(ttl)}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *InMemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Ping siempre responde: no hay conexión que perder.
func (c *InMemoryCache) Ping(ctx context.Context) error { return nil }

// Len cuenta las entradas guardadas, incluidas las vencidas aún no purgadas.
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop detiene la purga periódica. Se puede llamar más de una vez.
func (c *InMemoryCache) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
}

// sweep elimina las entradas vencidas en at y devuelve cuántas quitó.
func (c *InMemoryCache) sweep(at time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.expired(at) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *InMemoryCache) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep(c.now())
		case <-c.done:
			return
		}
	}
}
