package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/hexagreet/internal/greeting/domain"
	sharedCache "github.com/davicafu/hexagreet/internal/shared/infra/platform/cache"
)

// Snapshot es la forma en que un saludo se guarda en caché.
type Snapshot struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func ToSnapshot(g *domain.Greeting) Snapshot {
	return Snapshot{ID: g.ID(), Message: g.Message(), CreatedAt: g.CreatedAt()}
}

func (s Snapshot) ToDomain() (*domain.Greeting, error) {
	return domain.Reconstitute(s.ID, s.Message, s.CreatedAt)
}

// CachedGreetingRepo decora un GreetingRepository con cache-aside sobre la clave del último saludo.
//
// Las escrituras en caché se serializan con mu. saves cuenta los Save completados: un relleno
// tras un miss solo se escribe si no hubo Save mientras se leía el repositorio y la clave sigue vacía.
type CachedGreetingRepo struct {
	next    domain.GreetingRepository
	cache   sharedCache.Cache
	ttlSecs int
	log     *zap.Logger

	mu    sync.Mutex
	saves uint64
}

// Verificación estática
var (
	_ domain.GreetingRepository = (*CachedGreetingRepo)(nil)
	_ domain.Pinger             = (*CachedGreetingRepo)(nil)
)

func NewCachedGreetingRepo(next domain.GreetingRepository, cache sharedCache.Cache, ttl time.Duration, log *zap.Logger) *CachedGreetingRepo {
	return &CachedGreetingRepo{next: next, cache: cache, ttlSecs: int(ttl.Seconds()), log: log}
}

func (r *CachedGreetingRepo) GetGreeting(ctx context.Context) (*domain.Greeting, error) {
	var snap Snapshot
	hit, err := r.cache.Get(ctx, domain.CacheKeyLatest, &snap)
	if err != nil {
		r.log.Warn("Cache read failed", zap.String("key", domain.CacheKeyLatest), zap.Error(err))
	}
	if hit {
		if g, err := snap.ToDomain(); err == nil {
			r.log.Debug("Greeting served from cache")
			return g, nil
		}
		r.log.Warn("Discarding invalid cached greeting", zap.String("key", domain.CacheKeyLatest))
	}

	r.mu.Lock()
	seen := r.saves
	r.mu.Unlock()

	g, err := r.next.GetGreeting(ctx)
	if err != nil {
		return nil, err
	}
	r.fill(ctx, g, seen)
	return g, nil
}

// fill rellena la caché tras un miss sin pisar un Save posterior a la lectura.
func (r *CachedGreetingRepo) fill(ctx context.Context, g *domain.Greeting, seen uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.saves != seen {
		r.log.Debug("Skipping cache fill, greeting saved meanwhile")
		return
	}
	var current Snapshot
	if hit, err := r.cache.Get(ctx, domain.CacheKeyLatest, &current); err == nil && hit {
		return
	}
	if err := r.cache.Set(ctx, domain.CacheKeyLatest, ToSnapshot(g), r.ttlSecs); err != nil {
		r.log.Warn("Cache fill failed", zap.String("key", domain.CacheKeyLatest), zap.Error(err))
	}
}

// Save escribe en el repositorio y después refresca la caché. Un fallo de caché solo se loguea.
func (r *CachedGreetingRepo) Save(ctx context.Context, g *domain.Greeting) error {
	if err := r.next.Save(ctx, g); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	if err := r.cache.Set(ctx, domain.CacheKeyLatest, ToSnapshot(g), r.ttlSecs); err != nil {
		r.log.Warn("Cache update failed", zap.String("key", domain.CacheKeyLatest), zap.Error(err))
		sharedCache.AsyncCacheDelete(ctx, r.cache, domain.CacheKeyLatest, r.log)
	}
	return nil
}

// Ping delega en el repositorio decorado cuando sabe hacerlo.
func (r *CachedGreetingRepo) Ping(ctx context.Context) error {
	if p, ok := r.next.(domain.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
